package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pokecapture/service/internal/errors"
)

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError translates an error into a JSON body using the error's
// code for the HTTP status. Internal details are not leaked: anything
// mapping to a 5xx gets a generic message.
func writeError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)
	status := code.HTTPStatus()
	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = "internal error"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"code":  code.String(),
	})
}

func writeBadRequest(w http.ResponseWriter, format string, args ...interface{}) {
	writeError(w, errors.InvalidArgument(format, args...))
}
