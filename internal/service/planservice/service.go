package planservice

import (
	"context"
	"strings"

	"gofit/internal/domain"
	apperror "gofit/internal/errors"
	"gofit/internal/pkg/logger"
)

// ContractCounter é o contrato mínimo que o Serviço de Planos precisa da
// camada de Contratos: apenas a contagem que guarda a exclusão de plano.
type ContractCounter interface {
	CountByPlanID(ctx context.Context, planID string) (int, error)
}

// Service implementa os casos de uso de Plano.
type Service struct {
	repo      domain.PlanRepository
	contracts ContractCounter
	logger    logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Planos.
func NewService(repo domain.PlanRepository, contracts ContractCounter, logger logger.Logger) *Service {
	return &Service{repo: repo, contracts: contracts, logger: logger}
}

// Create registra um novo plano. Não há restrição de unicidade;
// status ausente vira ACTIVE.
func (s *Service) Create(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	s.logger.Debug("Iniciando criação de plano no serviço.", map[string]interface{}{"name": plan.Name})

	if err := validatePlan(plan); err != nil {
		s.logger.Warn("Falha na validação do plano.", map[string]interface{}{"name": plan.Name, "error": err.Error()})
		return domain.Plan{}, err
	}

	if plan.Status == "" {
		plan.Status = domain.PlanActive
	}

	created, err := s.repo.Create(ctx, plan)
	if err != nil {
		s.logger.Error("Falha ao criar plano no repositório.", err)
		return domain.Plan{}, err
	}

	s.logger.Info("Plano criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// GetByID busca um plano pelo ID.
func (s *Service) GetByID(ctx context.Context, id string) (domain.Plan, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar plano no repositório.", err)
		return domain.Plan{}, err
	}
	if plan == nil {
		return domain.Plan{}, &apperror.PlanNotFoundError{ID: id}
	}
	return *plan, nil
}

// List retorna todos os planos.
func (s *Service) List(ctx context.Context) ([]domain.Plan, error) {
	plans, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar planos no repositório.", err)
		return nil, err
	}
	return plans, nil
}

// Update aplica um patch parcial a um plano existente.
func (s *Service) Update(ctx context.Context, id string, patch domain.PlanPatch) (domain.Plan, error) {
	s.logger.Debug("Iniciando atualização de plano no serviço.", map[string]interface{}{"id": id})

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar plano para atualização.", err)
		return domain.Plan{}, err
	}
	if current == nil {
		return domain.Plan{}, &apperror.PlanNotFoundError{ID: id}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error("Falha ao atualizar plano no repositório.", err)
		return domain.Plan{}, err
	}
	if updated == nil {
		return domain.Plan{}, &apperror.PlanNotFoundError{ID: id}
	}

	s.logger.Info("Plano atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return *updated, nil
}

// Delete remove um plano, desde que nenhum contrato o referencie.
// Esta é a única invariante entre agregados do sistema: a exclusão de
// Plano é bloqueada pela existência de Contrato.
func (s *Service) Delete(ctx context.Context, id string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar plano para exclusão.", err)
		return err
	}
	if current == nil {
		return &apperror.PlanNotFoundError{ID: id}
	}

	count, err := s.contracts.CountByPlanID(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao contar contratos do plano.", err)
		return err
	}
	if count > 0 {
		s.logger.Warn("Exclusão de plano bloqueada por contratos associados.", map[string]interface{}{"id": id, "contracts": count})
		return &apperror.PlanHasContractsError{ID: id, Count: count}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Falha ao deletar plano no repositório.", err)
		return err
	}

	s.logger.Info("Plano deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

func validatePlan(plan domain.Plan) error {
	if strings.TrimSpace(plan.Name) == "" {
		return apperror.NewValidationError("O nome do plano não pode ser vazio.")
	}
	if plan.DurationMonths <= 0 {
		return apperror.NewValidationError("A duração do plano deve ser de ao menos 1 mês.")
	}
	if plan.Price <= 0 {
		return apperror.NewValidationError("O preço do plano deve ser positivo.")
	}
	return nil
}
