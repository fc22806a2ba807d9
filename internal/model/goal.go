package model

import (
	"fmt"
	"time"
)

// Goal represents a savings goal with a target amount and deadline.
type Goal struct {
	Deadline  time.Time `json:"fechaLimite"`
	CreatedAt time.Time `json:"fechaCreacion"`
	ID        string    `json:"metaId"`
	UserID    string    `json:"usuarioId"`
	Name      string    `json:"nombre"`
	Currency  string    `json:"moneda"`
	Target    float64   `json:"montoObjetivo"`
	Saved     float64   `json:"montoActual"`
	Completed bool      `json:"completada"`
	Active    bool      `json:"estaActiva"`
}

// ProgressPercent returns saved/target as a percentage, 0 for a zero target.
func (g *Goal) ProgressPercent() float64 {
	if g.Target == 0 {
		return 0
	}
	return g.Saved / g.Target * 100
}

// Validate rejects malformed goal payloads at the collaborator boundary.
func (g *Goal) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("goal: missing metaId")
	}
	if g.Name == "" {
		return fmt.Errorf("goal %s: missing nombre", g.ID)
	}
	if g.Target < 0 {
		return fmt.Errorf("goal %s: negative montoObjetivo", g.ID)
	}
	return nil
}
