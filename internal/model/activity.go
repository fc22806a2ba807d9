package model

import (
	"fmt"
	"time"
)

// TravelActivity is a scheduled activity inside a travel plan.
type TravelActivity struct {
	Date        time.Time `json:"fecha"`
	CreatedAt   time.Time `json:"fechaCreacion"`
	ID          string    `json:"actividadId"`
	PlanID      string    `json:"planId"`
	Name        string    `json:"nombre"`
	Location    string    `json:"ubicacion"`
	Currency    string    `json:"moneda"`
	Cost        float64   `json:"costo"`
	Completed   bool      `json:"completada"`
}

// Validate rejects malformed activity payloads at the collaborator boundary.
func (a *TravelActivity) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("travel activity: missing actividadId")
	}
	if a.PlanID == "" {
		return fmt.Errorf("travel activity %s: missing planId", a.ID)
	}
	if a.Name == "" {
		return fmt.Errorf("travel activity %s: missing nombre", a.ID)
	}
	return nil
}
