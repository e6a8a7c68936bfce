// Package models defines the documents stored in MongoDB and their outward
// JSON projections.
package models

import "time"

// User is the credential and profile record. Emails are stored lowercased and
// are unique. PasswordHash is excluded from JSON serialization entirely; use
// Public for outward projections.
type User struct {
	ID                string     `bson:"_id" json:"id"`
	Email             string     `bson:"email" json:"email"`
	PasswordHash      string     `bson:"password" json:"-"`
	FirstName         string     `bson:"first_name" json:"firstName"`
	LastName          string     `bson:"last_name" json:"lastName"`
	Phone             string     `bson:"phone,omitempty" json:"phone,omitempty"`
	Country           string     `bson:"country,omitempty" json:"country,omitempty"`
	City              string     `bson:"city,omitempty" json:"city,omitempty"`
	PreferredCurrency string     `bson:"preferred_currency" json:"preferredCurrency"`
	IsActive          bool       `bson:"is_active" json:"isActive"`
	IsEmailVerified   bool       `bson:"is_email_verified" json:"isEmailVerified"`
	LastLogin         *time.Time `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	CreatedAt         time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time  `bson:"updated_at" json:"updatedAt"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Public returns a copy safe for serialization to clients. The hash is
// cleared on top of the json:"-" tag so a projection can never leak it
// through other encoders.
func (u *User) Public() User {
	out := *u
	out.PasswordHash = ""
	return out
}
