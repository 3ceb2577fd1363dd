package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"gofit/internal/domain"
)

// ContractRepository guarda contratos em memória. Recebe o repositório
// de planos para montar o read model contrato+plano, como o JOIN da
// implementação PostgreSQL.
type ContractRepository struct {
	mu        sync.RWMutex
	contracts map[string]domain.Contract
	order     []string
	plans     *PlanRepository
}

// NewContractRepository cria um repositório de contratos em memória vazio.
func NewContractRepository(plans *PlanRepository) *ContractRepository {
	return &ContractRepository{
		contracts: make(map[string]domain.Contract),
		plans:     plans,
	}
}

func (r *ContractRepository) Create(_ context.Context, contract domain.Contract) (domain.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contract.ID = uuid.NewString()
	now := time.Now().UTC()
	contract.CreatedAt = now
	contract.UpdatedAt = now

	r.contracts[contract.ID] = contract
	r.order = append(r.order, contract.ID)
	return contract, nil
}

// FindByStudentID retorna os contratos do aluno, mais recentes primeiro
// (ordem inversa de inserção), cada um com o seu plano.
func (r *ContractRepository) FindByStudentID(ctx context.Context, studentID string) ([]domain.ContractWithPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.ContractWithPlan
	for i := len(r.order) - 1; i >= 0; i-- {
		contract, ok := r.contracts[r.order[i]]
		if !ok || contract.StudentID != studentID {
			continue
		}

		cw := domain.ContractWithPlan{Contract: contract}
		if plan, err := r.plans.FindByID(ctx, contract.PlanID); err == nil && plan != nil {
			cw.Plan = *plan
		}
		result = append(result, cw)
	}
	return result, nil
}

func (r *ContractRepository) CountByPlanID(_ context.Context, planID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, contract := range r.contracts {
		if contract.PlanID == planID {
			count++
		}
	}
	return count, nil
}

func (r *ContractRepository) CountActive(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, contract := range r.contracts {
		if contract.Status == domain.ContractActive {
			count++
		}
	}
	return count, nil
}
