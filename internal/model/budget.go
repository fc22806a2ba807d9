package model

import (
	"fmt"
	"time"
)

// Budget represents a monthly spending limit for one category.
// Spent is server-computed from the movements recorded in the period.
type Budget struct {
	PeriodStart time.Time `json:"inicioPeriodo"`
	CreatedAt   time.Time `json:"fechaCreacion"`
	ID          string    `json:"presupuestoId"`
	UserID      string    `json:"usuarioId"`
	CategoryID  string    `json:"categoriaId"`
	Category    string    `json:"categoria"`
	Currency    string    `json:"moneda"`
	Limit       float64   `json:"monto"`
	Spent       float64   `json:"gastado"`
	Active      bool      `json:"estaActivo"`
}

// Remaining returns how much of the budget is left for the period.
// Negative means the budget is exceeded.
func (b *Budget) Remaining() float64 {
	return b.Limit - b.Spent
}

// UsedPercent returns spent/limit as a percentage, 0 for a zero limit.
func (b *Budget) UsedPercent() float64 {
	if b.Limit == 0 {
		return 0
	}
	return b.Spent / b.Limit * 100
}

// Validate rejects malformed budget payloads at the collaborator boundary.
func (b *Budget) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("budget: missing presupuestoId")
	}
	if b.CategoryID == "" {
		return fmt.Errorf("budget %s: missing categoriaId", b.ID)
	}
	if b.Limit < 0 {
		return fmt.Errorf("budget %s: negative monto", b.ID)
	}
	return nil
}
