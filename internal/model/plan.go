package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TravelPlan is the parent record for activities, documents, checklist
// items, and trip expenses.
type TravelPlan struct {
	StartDate   time.Time `json:"fechaInicio"`
	EndDate     time.Time `json:"fechaFin"`
	CreatedAt   time.Time `json:"fechaCreacion"`
	ID          string    `json:"planId"`
	UserID      string    `json:"usuarioId"`
	Name        string    `json:"nombre"`
	Destination string    `json:"destino"`
	Currency    string    `json:"moneda"`
	Budget      float64   `json:"presupuesto"`
	Active      bool      `json:"estaActivo"`
}

// IsPlaceholder reports whether the plan id is the backend's all-zero
// sentinel, which several screens emit when the user has no real plan
// selected. The sentinel is not a selectable plan.
func IsPlaceholder(planID string) bool {
	id, err := uuid.Parse(planID)
	if err != nil {
		return false
	}
	return id == uuid.Nil
}

// Validate rejects malformed plan payloads at the collaborator boundary.
func (p *TravelPlan) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("travel plan: missing planId")
	}
	if p.Name == "" {
		return fmt.Errorf("travel plan %s: missing nombre", p.ID)
	}
	if !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("travel plan %s: fechaFin before fechaInicio", p.ID)
	}
	return nil
}
