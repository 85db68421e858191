// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data, similar to classes in other languages
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a registered account.
//
// WHY ID int64?
// The store assigns ids via SQLite's INTEGER PRIMARY KEY AUTOINCREMENT, so
// ids are monotonically increasing integers. int64 matches what the driver's
// LastInsertId() returns.
//
// WHY IS PasswordHash TAGGED json:"-"?
// The bcrypt hash must never leave the store boundary. The `json:"-"` tag
// makes encoding/json skip the field entirely, so a User can be encoded by
// handlers without ever leaking the hash. Templates only ever receive the
// fields they render.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"` // display name, trimmed, min length 2
	Email        string    `json:"email"`    // normalized: lowercased + trimmed, unique
	PasswordHash string    `json:"-"`        // bcrypt output, never serialized
	CreatedAt    time.Time `json:"createdAt"`
}
