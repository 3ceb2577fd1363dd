package planrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gofit/internal/domain"
	apperror "gofit/internal/errors"
	"gofit/internal/pkg/cache"
	"gofit/internal/pkg/logger"
)

// Chave de cache para planos.
const planCacheKey = "plan:%s"

// PlanRepository implementa domain.PlanRepository sobre PostgreSQL, com
// cache-aside no Redis para a busca por ID (planos mudam raramente e são
// lidos em toda criação de contrato).
type PlanRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewPlanRepository cria e retorna uma nova instância do Repositório de Planos.
func NewPlanRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *PlanRepository {
	return &PlanRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// COALESCE em description: a coluna é anulável e linhas semeadas fora
// da aplicação podem carregar NULL.
const planColumns = `id, name, duration_months, price, COALESCE(description, ''), status, created_at, updated_at`

func scanPlan(row interface{ Scan(dest ...interface{}) error }) (domain.Plan, error) {
	var p domain.Plan
	err := row.Scan(
		&p.ID, &p.Name, &p.DurationMonths, &p.Price, &p.Description,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create insere um novo plano no banco de dados.
func (r *PlanRepository) Create(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	plan.ID = uuid.NewString()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	query := `
        INSERT INTO plans (id, name, duration_months, price, description, status, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		plan.ID, plan.Name, plan.DurationMonths, plan.Price,
		plan.Description, plan.Status, plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir plano no DB.", err)
		return domain.Plan{}, apperror.NewDBError("Falha ao criar plano", err)
	}

	r.logger.Info("Plano criado no repositório.", map[string]interface{}{"id": plan.ID, "name": plan.Name})
	return plan, nil
}

// FindByID busca um plano pelo ID com estratégia cache-aside:
// tenta o Redis, cai para o PostgreSQL e repovoa o cache no hit de DB.
// Falha de cache é tratada como miss — nunca derruba a leitura.
func (r *PlanRepository) FindByID(ctx context.Context, id string) (*domain.Plan, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(planCacheKey, id)

	if cached, err := r.Cache.Get(ctxTimeout, key); err == nil {
		var plan domain.Plan
		if json.Unmarshal([]byte(cached), &plan) == nil {
			return &plan, nil
		}
	}

	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`

	plan, err := scanPlan(r.DB.QueryRowContext(ctxTimeout, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Falha ao buscar plano no DB.", err)
		return nil, apperror.NewDBError("Falha ao buscar plano", err)
	}

	if planJSON, marshalErr := json.Marshal(plan); marshalErr == nil {
		r.Cache.Set(ctxTimeout, key, planJSON, r.CacheTTL)
	}

	return &plan, nil
}

// FindAll busca todos os planos, ordenados por nome.
func (r *PlanRepository) FindAll(ctx context.Context) ([]domain.Plan, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT `+planColumns+` FROM plans ORDER BY name`)
	if err != nil {
		r.logger.Error("Falha ao executar FindAll de planos.", err)
		return nil, apperror.NewDBError("Falha ao buscar planos", err)
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear plano na iteração de FindAll.", err)
			return nil, apperror.NewDBError("Falha ao mapear planos do DB", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Erro após iteração de planos", err)
	}

	return plans, nil
}

// Update aplica um patch parcial via COALESCE e invalida o cache.
// Retorna (nil, nil) se a linha não existe.
func (r *PlanRepository) Update(ctx context.Context, id string, patch domain.PlanPatch) (*domain.Plan, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE plans SET
            name = COALESCE($1, name),
            duration_months = COALESCE($2, duration_months),
            price = COALESCE($3, price),
            description = COALESCE($4, description),
            status = COALESCE($5, status),
            updated_at = $6
        WHERE id = $7
        RETURNING ` + planColumns

	plan, err := scanPlan(r.DB.QueryRowContext(ctxTimeout, query,
		patch.Name, patch.DurationMonths, patch.Price,
		patch.Description, patch.Status,
		time.Now().UTC(), id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar plano no DB.", err)
		return nil, apperror.NewDBError("Falha ao atualizar plano", err)
	}

	r.Cache.Delete(ctxTimeout, fmt.Sprintf(planCacheKey, id))

	r.logger.Info("Plano atualizado no repositório.", map[string]interface{}{"id": plan.ID})
	return &plan, nil
}

// Delete remove um plano pelo ID e invalida o cache.
func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar plano do DB.", err)
		return apperror.NewDBError("Falha ao deletar plano", err)
	}

	r.Cache.Delete(ctxTimeout, fmt.Sprintf(planCacheKey, id))

	r.logger.Info("Plano deletado do repositório.", map[string]interface{}{"id": id})
	return nil
}
