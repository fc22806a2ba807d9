package model

import (
	"fmt"
	"time"
)

// TravelExpense is a single expense recorded against a travel plan.
type TravelExpense struct {
	Date        time.Time `json:"fecha"`
	CreatedAt   time.Time `json:"fechaCreacion"`
	ID          string    `json:"gastoId"`
	PlanID      string    `json:"planId"`
	Description string    `json:"descripcion"`
	Category    string    `json:"categoria"`
	Currency    string    `json:"moneda"`
	Amount      float64   `json:"monto"`
}

// Validate rejects malformed expense payloads at the collaborator boundary.
func (e *TravelExpense) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("travel expense: missing gastoId")
	}
	if e.PlanID == "" {
		return fmt.Errorf("travel expense %s: missing planId", e.ID)
	}
	if e.Amount < 0 {
		return fmt.Errorf("travel expense %s: negative monto", e.ID)
	}
	return nil
}
