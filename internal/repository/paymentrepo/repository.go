package paymentrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"gofit/internal/domain"
	apperror "gofit/internal/errors"
	"gofit/internal/pkg/logger"
)

// PaymentRepository implementa domain.PaymentRepository sobre PostgreSQL.
type PaymentRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewPaymentRepository cria e retorna uma nova instância do Repositório de Pagamentos.
func NewPaymentRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *PaymentRepository {
	return &PaymentRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// Create insere um novo pagamento vinculado a um contrato.
func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	payment.ID = uuid.NewString()
	payment.CreatedAt = time.Now().UTC()
	if payment.Status == "" {
		payment.Status = domain.PaymentPending
	}

	query := `
        INSERT INTO payments (id, contract_id, amount, due_date, paid_at, status, method, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		payment.ID, payment.ContractID, payment.Amount, payment.DueDate,
		payment.PaidAt, payment.Status, payment.Method, payment.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir pagamento no DB.", err)
		return domain.Payment{}, apperror.NewDBError("Falha ao criar pagamento", err)
	}

	r.logger.Info("Pagamento criado no repositório.", map[string]interface{}{"id": payment.ID, "contract_id": payment.ContractID})
	return payment, nil
}

// FindByContractID retorna os pagamentos de um contrato, por vencimento.
func (r *PaymentRepository) FindByContractID(ctx context.Context, contractID string) ([]domain.Payment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, contract_id, amount, due_date, paid_at, status, method, created_at
        FROM payments
        WHERE contract_id = $1
        ORDER BY due_date`

	rows, err := r.DB.QueryContext(ctxTimeout, query, contractID)
	if err != nil {
		r.logger.Error("Falha ao executar FindByContractID de pagamentos.", err)
		return nil, apperror.NewDBError("Falha ao buscar pagamentos do contrato", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		err := rows.Scan(&p.ID, &p.ContractID, &p.Amount, &p.DueDate, &p.PaidAt, &p.Status, &p.Method, &p.CreatedAt)
		if err != nil {
			r.logger.Error("Falha ao mapear pagamento na iteração.", err)
			return nil, apperror.NewDBError("Falha ao mapear pagamentos do DB", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Erro após iteração de pagamentos", err)
	}

	return payments, nil
}
