// Package model defines the domain records exchanged with the rumbo backend.
package model

import (
	"fmt"
	"time"
)

// User represents the authenticated account holder.
type User struct {
	CreatedAt time.Time `json:"fechaCreacion"`
	ID        string    `json:"usuarioId"`
	Name      string    `json:"nombre"`
	Email     string    `json:"correo"`
}

// Validate rejects malformed user payloads at the collaborator boundary.
func (u *User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user: missing usuarioId")
	}
	if u.Email == "" {
		return fmt.Errorf("user %s: missing correo", u.ID)
	}
	return nil
}
