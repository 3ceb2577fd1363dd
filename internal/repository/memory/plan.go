package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"gofit/internal/domain"
)

// PlanRepository guarda planos em um map protegido por RWMutex.
type PlanRepository struct {
	mu    sync.RWMutex
	plans map[string]domain.Plan
	order []string
}

// NewPlanRepository cria um repositório de planos em memória vazio.
func NewPlanRepository() *PlanRepository {
	return &PlanRepository{plans: make(map[string]domain.Plan)}
}

func (r *PlanRepository) Create(_ context.Context, plan domain.Plan) (domain.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan.ID = uuid.NewString()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	r.plans[plan.ID] = plan
	r.order = append(r.order, plan.ID)
	return plan, nil
}

func (r *PlanRepository) FindByID(_ context.Context, id string) (*domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if plan, ok := r.plans[id]; ok {
		return &plan, nil
	}
	return nil, nil
}

func (r *PlanRepository) FindAll(_ context.Context) ([]domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]domain.Plan, 0, len(r.plans))
	for _, id := range r.order {
		if plan, ok := r.plans[id]; ok {
			plans = append(plans, plan)
		}
	}
	return plans, nil
}

func (r *PlanRepository) Update(_ context.Context, id string, patch domain.PlanPatch) (*domain.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan, ok := r.plans[id]
	if !ok {
		return nil, nil
	}

	if patch.Name != nil {
		plan.Name = *patch.Name
	}
	if patch.DurationMonths != nil {
		plan.DurationMonths = *patch.DurationMonths
	}
	if patch.Price != nil {
		plan.Price = *patch.Price
	}
	if patch.Description != nil {
		plan.Description = *patch.Description
	}
	if patch.Status != nil {
		plan.Status = *patch.Status
	}
	plan.UpdatedAt = time.Now().UTC()

	r.plans[id] = plan
	return &plan, nil
}

func (r *PlanRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.plans, id)
	return nil
}
