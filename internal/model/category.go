package model

import (
	"fmt"
	"time"
)

// CategoryType indicates whether a category applies to income or expenses.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income movements.
	CategoryTypeIncome CategoryType = "ingreso"
	// CategoryTypeExpense represents categories for expense movements.
	CategoryTypeExpense CategoryType = "gasto"
)

// Category represents a user-defined spending or income category.
type Category struct {
	CreatedAt   time.Time    `json:"fechaCreacion"`
	ID          string       `json:"categoriaId"`
	UserID      string       `json:"usuarioId"`
	Name        string       `json:"nombre"`
	Description string       `json:"descripcion"`
	Type        CategoryType `json:"tipo"`
	Active      bool         `json:"estaActiva"`
}

// Validate rejects malformed category payloads at the collaborator boundary.
func (c *Category) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("category: missing categoriaId")
	}
	if c.Name == "" {
		return fmt.Errorf("category %s: missing nombre", c.ID)
	}
	if c.Type != CategoryTypeIncome && c.Type != CategoryTypeExpense {
		return fmt.Errorf("category %s: unknown tipo %q", c.ID, c.Type)
	}
	return nil
}
