package model

import (
	"fmt"
	"time"
)

// AccountType classifies an account by how its balance behaves.
type AccountType string

const (
	// AccountTypeChecking represents a day-to-day spending account.
	AccountTypeChecking AccountType = "corriente"
	// AccountTypeSavings represents a savings account.
	AccountTypeSavings AccountType = "ahorros"
	// AccountTypeCash represents physical cash on hand.
	AccountTypeCash AccountType = "efectivo"
	// AccountTypeCredit represents a credit card or line of credit.
	AccountTypeCredit AccountType = "credito"
)

// Account represents a money account owned by the user.
// Balance is server-computed; the client never derives it locally.
type Account struct {
	CreatedAt time.Time   `json:"fechaCreacion"`
	ID        string      `json:"cuentaId"`
	UserID    string      `json:"usuarioId"`
	Name      string      `json:"nombre"`
	Type      AccountType `json:"tipo"`
	Currency  string      `json:"moneda"`
	Balance   float64     `json:"saldo"`
	Active    bool        `json:"estaActiva"`
}

// Validate rejects malformed account payloads at the collaborator boundary.
func (a *Account) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("account: missing cuentaId")
	}
	if a.Name == "" {
		return fmt.Errorf("account %s: missing nombre", a.ID)
	}
	switch a.Type {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCash, AccountTypeCredit:
	default:
		return fmt.Errorf("account %s: unknown tipo %q", a.ID, a.Type)
	}
	return nil
}
