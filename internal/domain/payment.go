package domain

import (
	"context"
	"time"
)

// PaymentStatus é o tipo string para o status do pagamento.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentOverdue PaymentStatus = "OVERDUE"
)

// PaymentMethod é o tipo string para a forma de pagamento.
type PaymentMethod string

const (
	MethodPix    PaymentMethod = "PIX"
	MethodCard   PaymentMethod = "CARD"
	MethodCash   PaymentMethod = "CASH"
	MethodBoleto PaymentMethod = "BOLETO"
)

// Payment representa uma cobrança vinculada a um contrato.
// Muitos pagamentos por contrato; sem casos de uso dedicados além de
// criar e listar (nenhuma invariante própria).
type Payment struct {
	ID         string        `json:"id"`
	ContractID string        `json:"contractId"`
	Amount     float64       `json:"amount"`
	DueDate    time.Time     `json:"dueDate"`
	PaidAt     *time.Time    `json:"paidAt,omitempty"`
	Status     PaymentStatus `json:"status"`
	Method     PaymentMethod `json:"method"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// PaymentRepository define o contrato de persistência para a entidade Payment.
type PaymentRepository interface {
	Create(ctx context.Context, payment Payment) (Payment, error)
	FindByContractID(ctx context.Context, contractID string) ([]Payment, error)
}
