package domain

import (
	"net/mail"
	"time"
)

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Registration is the validated registration input, before hashing.
type Registration struct {
	Username string
	Email    string
	Password string
}

const minPasswordLen = 8

func (r *Registration) Validate() error {
	fields := map[string][]string{}
	if r.Username == "" {
		fields["username"] = []string{"This field may not be blank."}
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		fields["email"] = []string{"Enter a valid email address."}
	}
	if len(r.Password) < minPasswordLen {
		fields["password"] = []string{"Ensure this field has at least 8 characters."}
	}
	if len(fields) > 0 {
		return NewFieldError(fields)
	}
	return nil
}
