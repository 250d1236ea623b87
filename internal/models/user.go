package models

import (
	"time"
)

// User as stored. Password is persisted exactly as received; hashing is a
// known gap carried over from the system this replaces.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
