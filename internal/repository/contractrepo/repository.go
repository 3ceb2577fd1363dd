package contractrepo

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/google/uuid"

	"gofit/internal/domain"
	apperror "gofit/internal/errors"
	"gofit/internal/pkg/cache"
	"gofit/internal/pkg/logger"
)

// Chave de cache para o agregado de dashboard (total de contratos ACTIVE).
const activeCountCacheKey = "contracts:active-count"

// ContractRepository implementa domain.ContractRepository sobre PostgreSQL.
// A contagem de contratos ativos (lida em todo acesso ao dashboard) passa
// por cache-aside no Redis, invalidado a cada criação de contrato.
type ContractRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewContractRepository cria e retorna uma nova instância do Repositório de Contratos.
func NewContractRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *ContractRepository {
	return &ContractRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Create insere um novo contrato. O contrato chega com EndDate já
// derivada e Status ACTIVE definidos pelo Serviço.
func (r *ContractRepository) Create(ctx context.Context, contract domain.Contract) (domain.Contract, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	contract.ID = uuid.NewString()
	now := time.Now().UTC()
	contract.CreatedAt = now
	contract.UpdatedAt = now

	query := `
        INSERT INTO contracts (id, student_id, plan_id, start_date, end_date, status, price_paid, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		contract.ID, contract.StudentID, contract.PlanID,
		contract.StartDate, contract.EndDate, contract.Status,
		contract.PricePaid, contract.CreatedAt, contract.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir contrato no DB.", err)
		return domain.Contract{}, apperror.NewDBError("Falha ao criar contrato", err)
	}

	// O agregado de dashboard mudou.
	r.Cache.Delete(ctxTimeout, activeCountCacheKey)

	r.logger.Info("Contrato criado no repositório.", map[string]interface{}{
		"id":         contract.ID,
		"student_id": contract.StudentID,
		"plan_id":    contract.PlanID,
	})
	return contract, nil
}

// FindByStudentID retorna os contratos de um aluno, mais recentes
// primeiro, cada um já acompanhado do seu plano (JOIN único).
func (r *ContractRepository) FindByStudentID(ctx context.Context, studentID string) ([]domain.ContractWithPlan, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT c.id, c.student_id, c.plan_id, c.start_date, c.end_date, c.status,
               c.price_paid, c.created_at, c.updated_at,
               p.id, p.name, p.duration_months, p.price, p.description, p.status,
               p.created_at, p.updated_at
        FROM contracts c
        JOIN plans p ON p.id = c.plan_id
        WHERE c.student_id = $1
        ORDER BY c.created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, studentID)
	if err != nil {
		r.logger.Error("Falha ao executar FindByStudentID de contratos.", err)
		return nil, apperror.NewDBError("Falha ao buscar contratos do aluno", err)
	}
	defer rows.Close()

	var contracts []domain.ContractWithPlan
	for rows.Next() {
		var cw domain.ContractWithPlan
		err := rows.Scan(
			&cw.ID, &cw.StudentID, &cw.PlanID, &cw.StartDate, &cw.EndDate, &cw.Status,
			&cw.PricePaid, &cw.CreatedAt, &cw.UpdatedAt,
			&cw.Plan.ID, &cw.Plan.Name, &cw.Plan.DurationMonths, &cw.Plan.Price,
			&cw.Plan.Description, &cw.Plan.Status, &cw.Plan.CreatedAt, &cw.Plan.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Falha ao mapear contrato na iteração de FindByStudentID.", err)
			return nil, apperror.NewDBError("Falha ao mapear contratos do DB", err)
		}
		contracts = append(contracts, cw)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Erro após iteração de contratos", err)
	}

	return contracts, nil
}

// CountByPlanID conta os contratos (em qualquer status) de um plano.
// Sustenta a invariante de exclusão de Plano — sem cache de propósito:
// uma contagem defasada aqui liberaria uma exclusão indevida.
func (r *ContractRepository) CountByPlanID(ctx context.Context, planID string) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var count int
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT COUNT(*) FROM contracts WHERE plan_id = $1`, planID,
	).Scan(&count)
	if err != nil {
		r.logger.Error("Falha ao contar contratos do plano.", err)
		return 0, apperror.NewDBError("Falha ao contar contratos do plano", err)
	}
	return count, nil
}

// CountActive conta os contratos ACTIVE do sistema inteiro, com
// cache-aside: o dashboard tolera um TTL curto de defasagem.
func (r *ContractRepository) CountActive(ctx context.Context) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if cached, err := r.Cache.GetInt(ctxTimeout, activeCountCacheKey); err == nil {
		return cached, nil
	}

	var count int
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT COUNT(*) FROM contracts WHERE status = $1`, domain.ContractActive,
	).Scan(&count)
	if err != nil {
		r.logger.Error("Falha ao contar contratos ativos.", err)
		return 0, apperror.NewDBError("Falha ao contar contratos ativos", err)
	}

	r.Cache.Set(ctxTimeout, activeCountCacheKey, strconv.Itoa(count), r.CacheTTL)

	return count, nil
}
