package model

import (
	"fmt"
	"time"
)

// Transfer represents a completed movement of money between two accounts.
type Transfer struct {
	Date          time.Time `json:"fecha"`
	CreatedAt     time.Time `json:"fechaCreacion"`
	ID            string    `json:"transferenciaId"`
	UserID        string    `json:"usuarioId"`
	FromAccountID string    `json:"cuentaOrigenId"`
	ToAccountID   string    `json:"cuentaDestinoId"`
	Description   string    `json:"descripcion"`
	Currency      string    `json:"moneda"`
	Amount        float64   `json:"monto"`
}

// Validate rejects malformed transfer payloads at the collaborator boundary.
func (t *Transfer) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transfer: missing transferenciaId")
	}
	if t.FromAccountID == "" || t.ToAccountID == "" {
		return fmt.Errorf("transfer %s: missing account ids", t.ID)
	}
	if t.FromAccountID == t.ToAccountID {
		return fmt.Errorf("transfer %s: origin and destination are the same account", t.ID)
	}
	if t.Amount <= 0 {
		return fmt.Errorf("transfer %s: monto must be positive", t.ID)
	}
	return nil
}
