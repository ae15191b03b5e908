package trainer

import "time"

// Trainer is a registered player account. The password hash never leaves the
// storage and service layers.
type Trainer struct {
	ID           string    `db:"id" json:"TrainerID"`
	FirstName    string    `db:"first_name" json:"FirstName"`
	LastName     string    `db:"last_name" json:"LastName"`
	Username     string    `db:"username" json:"Username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}
