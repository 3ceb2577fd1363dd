package domain

import (
	"context"
	"time"
)

// PlanStatus é o tipo string para o status do plano.
type PlanStatus string

const (
	PlanActive   PlanStatus = "ACTIVE"
	PlanInactive PlanStatus = "INACTIVE"
)

// Plan representa um plano de assinatura da academia.
// Invariante: um plano com contratos associados não pode ser excluído.
type Plan struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	DurationMonths int        `json:"durationMonths"`
	Price          float64    `json:"price"`
	Description    string     `json:"description,omitempty"`
	Status         PlanStatus `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// PlanPatch é o payload de atualização parcial do plano.
type PlanPatch struct {
	Name           *string     `json:"name,omitempty"`
	DurationMonths *int        `json:"durationMonths,omitempty"`
	Price          *float64    `json:"price,omitempty"`
	Description    *string     `json:"description,omitempty"`
	Status         *PlanStatus `json:"status,omitempty"`
}

// PlanRepository define o contrato de persistência para a entidade Plan.
type PlanRepository interface {
	Create(ctx context.Context, plan Plan) (Plan, error)
	FindByID(ctx context.Context, id string) (*Plan, error)
	FindAll(ctx context.Context) ([]Plan, error)
	Update(ctx context.Context, id string, patch PlanPatch) (*Plan, error)
	Delete(ctx context.Context, id string) error
}
