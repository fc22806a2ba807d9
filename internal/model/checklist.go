package model

import (
	"fmt"
	"time"
)

// ChecklistCategories is the fixed display order of checklist groups.
var ChecklistCategories = []string{"documentos", "equipaje", "salud", "finanzas", "general"}

// ChecklistItem is a pre-trip task inside a travel plan. Due-date
// urgency uses the 30-day threshold.
type ChecklistItem struct {
	DueDate     time.Time `json:"fechaLimite"`
	CreatedAt   time.Time `json:"fechaCreacion"`
	ID          string    `json:"itemId"`
	PlanID      string    `json:"planId"`
	Description string    `json:"descripcion"`
	Category    string    `json:"categoria"`
	Completed   bool      `json:"completado"`
}

// Validate rejects malformed checklist payloads at the collaborator boundary.
func (c *ChecklistItem) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("checklist item: missing itemId")
	}
	if c.PlanID == "" {
		return fmt.Errorf("checklist item %s: missing planId", c.ID)
	}
	if c.Description == "" {
		return fmt.Errorf("checklist item %s: missing descripcion", c.ID)
	}
	return nil
}
