package model

import (
	"fmt"
	"time"
)

// Interval is the fixed recurrence frequency of a recurring transaction.
type Interval string

const (
	// IntervalDaily recurs every day.
	IntervalDaily Interval = "diaria"
	// IntervalWeekly recurs every week.
	IntervalWeekly Interval = "semanal"
	// IntervalBiweekly recurs every two weeks.
	IntervalBiweekly Interval = "quincenal"
	// IntervalMonthly recurs every month.
	IntervalMonthly Interval = "mensual"
	// IntervalQuarterly recurs every three months.
	IntervalQuarterly Interval = "trimestral"
	// IntervalSemiannual recurs every six months.
	IntervalSemiannual Interval = "semestral"
	// IntervalAnnual recurs every year.
	IntervalAnnual Interval = "anual"
)

// MovementType classifies the direction of a recurring transaction.
type MovementType string

const (
	// MovementIncome adds money to an account.
	MovementIncome MovementType = "ingreso"
	// MovementExpense removes money from an account.
	MovementExpense MovementType = "gasto"
	// MovementTransfer moves money between two accounts.
	MovementTransfer MovementType = "transferencia"
)

// RecurringTransaction is a template that projects a periodic movement.
// NextRun is server-maintained; the client only classifies its urgency.
type RecurringTransaction struct {
	NextRun     time.Time    `json:"proximaEjecucion"`
	CreatedAt   time.Time    `json:"fechaCreacion"`
	ID          string       `json:"transaccionRecurrenteId"`
	UserID      string       `json:"usuarioId"`
	AccountID   string       `json:"cuentaId"`
	CategoryID  string       `json:"categoriaId"`
	Description string       `json:"descripcion"`
	Type        MovementType `json:"tipo"`
	Interval    Interval     `json:"frecuencia"`
	Currency    string       `json:"moneda"`
	Amount      float64      `json:"monto"`
	Active      bool         `json:"estaActiva"`
}

// Validate rejects malformed recurring-transaction payloads at the
// collaborator boundary.
func (r *RecurringTransaction) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("recurring transaction: missing transaccionRecurrenteId")
	}
	switch r.Interval {
	case IntervalDaily, IntervalWeekly, IntervalBiweekly, IntervalMonthly,
		IntervalQuarterly, IntervalSemiannual, IntervalAnnual:
	default:
		return fmt.Errorf("recurring transaction %s: unknown frecuencia %q", r.ID, r.Interval)
	}
	switch r.Type {
	case MovementIncome, MovementExpense, MovementTransfer:
	default:
		return fmt.Errorf("recurring transaction %s: unknown tipo %q", r.ID, r.Type)
	}
	if r.Amount < 0 {
		return fmt.Errorf("recurring transaction %s: negative monto", r.ID)
	}
	return nil
}
