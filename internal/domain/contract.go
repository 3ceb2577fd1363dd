package domain

import (
	"context"
	"time"
)

// ContractStatus é o tipo string para o status do contrato.
// Contratos sempre nascem ACTIVE; as transições para os demais estados
// estão modeladas no dado, mas nenhum caso de uso as executa.
type ContractStatus string

const (
	ContractActive   ContractStatus = "ACTIVE"
	ContractPaused   ContractStatus = "PAUSED"
	ContractCanceled ContractStatus = "CANCELED"
	ContractExpired  ContractStatus = "EXPIRED"
)

// Contract vincula um Aluno a um Plano por um período, com o preço
// capturado no momento da contratação (não re-derivado do plano).
type Contract struct {
	ID        string         `json:"id"`
	StudentID string         `json:"studentId"`
	PlanID    string         `json:"planId"`
	StartDate time.Time      `json:"startDate"`
	EndDate   time.Time      `json:"endDate"`
	Status    ContractStatus `json:"status"`
	PricePaid float64        `json:"pricePaid"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// NewContract é o payload de criação de contrato.
// EndDate não existe aqui de propósito: é sempre derivado de
// StartDate + DurationMonths dentro do caso de uso.
// DurationMonths vem da requisição e pode divergir do DurationMonths
// nominal do plano (comportamento preservado do produto).
type NewContract struct {
	StudentID      string     `json:"studentId"`
	PlanID         string     `json:"planId"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	DurationMonths int        `json:"durationMonths"`
	PricePaid      float64    `json:"pricePaid"`
}

// ContractWithPlan é o read model do contrato junto do seu plano.
type ContractWithPlan struct {
	Contract
	Plan Plan `json:"plan"`
}

// ContractRepository define o contrato de persistência para a entidade Contract.
type ContractRepository interface {
	Create(ctx context.Context, contract Contract) (Contract, error)
	// FindByStudentID retorna os contratos de um aluno, mais recentes
	// primeiro, cada um acompanhado do seu plano.
	FindByStudentID(ctx context.Context, studentID string) ([]ContractWithPlan, error)
	CountByPlanID(ctx context.Context, planID string) (int, error)
	CountActive(ctx context.Context) (int, error)
}
