package model

import (
	"fmt"
	"time"
)

// DocumentType classifies a travel document.
type DocumentType string

const (
	// DocumentPassport is a passport.
	DocumentPassport DocumentType = "pasaporte"
	// DocumentVisa is a travel visa.
	DocumentVisa DocumentType = "visa"
	// DocumentInsurance is a travel insurance policy.
	DocumentInsurance DocumentType = "seguro"
	// DocumentTicket is a transport ticket or reservation.
	DocumentTicket DocumentType = "tiquete"
	// DocumentOther is any other document.
	DocumentOther DocumentType = "otro"
)

// TravelDocument tracks a document the trip depends on, keyed by its
// expiry date. Expiry urgency uses the 30-day threshold.
type TravelDocument struct {
	ExpiryDate time.Time    `json:"fechaVencimiento"`
	CreatedAt  time.Time    `json:"fechaCreacion"`
	ID         string       `json:"documentoId"`
	PlanID     string       `json:"planId"`
	Name       string       `json:"nombre"`
	Number     string       `json:"numero"`
	Type       DocumentType `json:"tipo"`
	Verified   bool         `json:"verificado"`
}

// Validate rejects malformed document payloads at the collaborator boundary.
func (d *TravelDocument) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("travel document: missing documentoId")
	}
	if d.PlanID == "" {
		return fmt.Errorf("travel document %s: missing planId", d.ID)
	}
	switch d.Type {
	case DocumentPassport, DocumentVisa, DocumentInsurance, DocumentTicket, DocumentOther:
	default:
		return fmt.Errorf("travel document %s: unknown tipo %q", d.ID, d.Type)
	}
	return nil
}
