// Package httpapi exposes the trainer, capture, and pokedex REST API.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pokecapture/service/internal/app/auth"
	"github.com/pokecapture/service/internal/app/metrics"
	capturesvc "github.com/pokecapture/service/internal/app/services/capture"
	"github.com/pokecapture/service/internal/app/services/collection"
	speciessvc "github.com/pokecapture/service/internal/app/services/species"
	"github.com/pokecapture/service/internal/app/services/traineracct"
	"github.com/pokecapture/service/internal/middleware"
	"github.com/pokecapture/service/pkg/logger"
)

// Services bundles the application services the API fronts.
type Services struct {
	Accounts   *traineracct.Service
	Capture    *capturesvc.Service
	Collection *collection.Service
	Species    *speciessvc.Resolver
}

// Handler serves the REST API.
type Handler struct {
	svc    Services
	tokens *auth.Manager
	log    *logger.Logger
}

// Options tunes the middleware around the router. Limiter, when set, is
// applied to login and to every authenticated route after the token has been
// verified, so authenticated callers are throttled per trainer rather than
// per address.
type Options struct {
	CORSOrigins []string
	Limiter     *middleware.RateLimiter
}

// NewHandler builds the API handler.
func NewHandler(svc Services, tokens *auth.Manager, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	return &Handler{svc: svc, tokens: tokens, log: log}
}

// Router assembles the route table with its middleware stack.
func (h *Handler) Router(opts Options) http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.Middleware(routeTemplate))

	r.HandleFunc("/", h.banner).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", h.register).Methods(http.MethodPost)
	var login http.Handler = http.HandlerFunc(h.login)
	if opts.Limiter != nil {
		login = opts.Limiter.Handler(login)
	}
	api.Handle("/login", login).Methods(http.MethodPost)
	api.HandleFunc("/random", h.randomSpecies).Methods(http.MethodGet)
	api.HandleFunc("/trainers", h.listTrainers).Methods(http.MethodGet)
	api.HandleFunc("/trainers/{id}", h.getTrainer).Methods(http.MethodGet)
	api.HandleFunc("/trainers/{id}", h.updateTrainer).Methods(http.MethodPut)
	api.HandleFunc("/trainers/{id}", h.deleteTrainer).Methods(http.MethodDelete)

	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.NewAuthenticator(h.tokens, h.log).Handler)
	if opts.Limiter != nil {
		authed.Use(opts.Limiter.Handler)
	}
	authed.HandleFunc("/capturar", h.capture).Methods(http.MethodPost)
	authed.HandleFunc("/mis-pokemon", h.myPokemon).Methods(http.MethodGet)
	authed.HandleFunc("/pokemon/{id}", h.renamePokemon).Methods(http.MethodPut)
	authed.HandleFunc("/pokemon/{id}", h.releasePokemon).Methods(http.MethodDelete)
	authed.HandleFunc("/pokedex", h.pokedex).Methods(http.MethodGet)
	authed.HandleFunc("/admin/nuke-pokemon", h.nukePokemon).Methods(http.MethodDelete)

	var handler http.Handler = r
	if len(opts.CORSOrigins) > 0 {
		handler = middleware.NewCORS(opts.CORSOrigins).Handler(handler)
	}
	return handler
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return r.URL.Path
}

func (h *Handler) banner(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "pokecapture",
		"status":  "ok",
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FirstName string `json:"FirstName"`
		LastName  string `json:"LastName"`
		Username  string `json:"Username"`
		Password  string `json:"Password"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	created, err := h.svc.Accounts.Register(r.Context(), traineracct.RegisterInput{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Username:  payload.Username,
		Password:  payload.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"Username"`
		Password string `json:"Password"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	session, err := h.svc.Accounts.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"token":    session.Token,
		"username": session.Trainer.Username,
	})
}

func (h *Handler) listTrainers(w http.ResponseWriter, r *http.Request) {
	trainers, err := h.svc.Accounts.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trainers)
}

func (h *Handler) getTrainer(w http.ResponseWriter, r *http.Request) {
	tr, err := h.svc.Accounts.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

func (h *Handler) updateTrainer(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FirstName string `json:"FirstName"`
		LastName  string `json:"LastName"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	tr, err := h.svc.Accounts.Update(r.Context(), mux.Vars(r)["id"], payload.FirstName, payload.LastName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

func (h *Handler) deleteTrainer(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Accounts.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "trainer deleted"})
}

func (h *Handler) capture(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SpeciesID int    `json:"speciesId"`
		Nickname  string `json:"nickname"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	captured, err := h.svc.Capture.Capture(r.Context(), middleware.TrainerID(r.Context()), payload.SpeciesID, payload.Nickname)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, captured)
}

func (h *Handler) myPokemon(w http.ResponseWriter, r *http.Request) {
	owned, err := h.svc.Collection.List(r.Context(), middleware.TrainerID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, owned)
}

func (h *Handler) renamePokemon(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Nickname *string `json:"nickname"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	if payload.Nickname == nil {
		writeBadRequest(w, "nickname is required")
		return
	}
	err := h.svc.Collection.Rename(r.Context(), middleware.TrainerID(r.Context()), mux.Vars(r)["id"], *payload.Nickname)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "nickname updated"})
}

func (h *Handler) releasePokemon(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Collection.Release(r.Context(), middleware.TrainerID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "pokemon released"})
}

// speciesDisplay is the public teaser for a species: enough to show a card,
// none of the stat block.
type speciesDisplay struct {
	SpeciesID  int     `json:"speciesId"`
	Name       string  `json:"name"`
	SpriteURL  string  `json:"spriteUrl"`
	FlavorText *string `json:"flavorText"`
	Type1      *string `json:"type1"`
	Type2      *string `json:"type2"`
}

func (h *Handler) randomSpecies(w http.ResponseWriter, r *http.Request) {
	sp, err := h.svc.Species.Random(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, speciesDisplay{
		SpeciesID:  sp.ID,
		Name:       sp.Name,
		SpriteURL:  sp.SpriteURL,
		FlavorText: sp.FlavorText,
		Type1:      sp.Type1,
		Type2:      sp.Type2,
	})
}

func (h *Handler) pokedex(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Collection.Pokedex(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) nukePokemon(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Collection.Reset(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "pokedex reset"})
}
