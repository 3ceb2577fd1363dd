package contractservice

import (
	"context"
	"time"

	"gofit/internal/domain"
	apperror "gofit/internal/errors"
	"gofit/internal/pkg/logger"
)

// StudentFinder é o contrato mínimo que o Serviço de Contratos precisa
// da camada de Alunos: só a verificação de existência.
type StudentFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Student, error)
}

// PlanFinder é o contrato mínimo da camada de Planos.
type PlanFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Plan, error)
}

// Service implementa os casos de uso de Contrato.
type Service struct {
	repo     domain.ContractRepository
	students StudentFinder
	plans    PlanFinder
	logger   logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Contratos.
func NewService(repo domain.ContractRepository, students StudentFinder, plans PlanFinder, logger logger.Logger) *Service {
	return &Service{repo: repo, students: students, plans: plans, logger: logger}
}

// Create vincula um aluno a um plano.
//
// A ordem das verificações é fixa: primeiro o aluno, depois o plano;
// nada é escrito antes de ambas passarem. A data final é sempre derivada
// (StartDate + DurationMonths) e o contrato nasce ACTIVE. PricePaid é
// persistido como veio — preço promocional/histórico é permitido.
// DurationMonths vem da requisição e não é substituído pela duração
// nominal do plano.
func (s *Service) Create(ctx context.Context, input domain.NewContract) (domain.ContractWithPlan, error) {
	s.logger.Debug("Iniciando criação de contrato no serviço.", map[string]interface{}{
		"student_id": input.StudentID,
		"plan_id":    input.PlanID,
	})

	if input.DurationMonths <= 0 {
		return domain.ContractWithPlan{}, apperror.NewValidationError("A duração do contrato deve ser de ao menos 1 mês.")
	}

	student, err := s.students.FindByID(ctx, input.StudentID)
	if err != nil {
		s.logger.Error("Falha ao verificar aluno do contrato.", err)
		return domain.ContractWithPlan{}, err
	}
	if student == nil {
		s.logger.Warn("Contrato referenciou aluno inexistente.", map[string]interface{}{"student_id": input.StudentID})
		return domain.ContractWithPlan{}, &apperror.StudentNotFoundError{ID: input.StudentID}
	}

	plan, err := s.plans.FindByID(ctx, input.PlanID)
	if err != nil {
		s.logger.Error("Falha ao verificar plano do contrato.", err)
		return domain.ContractWithPlan{}, err
	}
	if plan == nil {
		s.logger.Warn("Contrato referenciou plano inexistente.", map[string]interface{}{"plan_id": input.PlanID})
		return domain.ContractWithPlan{}, &apperror.PlanNotFoundError{ID: input.PlanID}
	}

	startDate := time.Now().UTC()
	if input.StartDate != nil {
		startDate = *input.StartDate
	}
	endDate := startDate.AddDate(0, input.DurationMonths, 0)

	contract := domain.Contract{
		StudentID: input.StudentID,
		PlanID:    input.PlanID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    domain.ContractActive,
		PricePaid: input.PricePaid,
	}

	created, err := s.repo.Create(ctx, contract)
	if err != nil {
		s.logger.Error("Falha ao criar contrato no repositório.", err)
		return domain.ContractWithPlan{}, err
	}

	s.logger.Info("Contrato criado com sucesso.", map[string]interface{}{
		"id":         created.ID,
		"student_id": created.StudentID,
		"plan_id":    created.PlanID,
		"end_date":   created.EndDate,
	})
	return domain.ContractWithPlan{Contract: created, Plan: *plan}, nil
}

// GetStudentContracts retorna os contratos de um aluno, mais recentes
// primeiro, cada um com o seu plano. Não há verificação de existência do
// aluno: aluno sem contratos (ou inexistente) resulta em lista vazia.
func (s *Service) GetStudentContracts(ctx context.Context, studentID string) ([]domain.ContractWithPlan, error) {
	contracts, err := s.repo.FindByStudentID(ctx, studentID)
	if err != nil {
		s.logger.Error("Falha ao listar contratos do aluno.", err)
		return nil, err
	}
	return contracts, nil
}

// CountActive retorna o total de contratos ACTIVE no sistema inteiro —
// agregado de dashboard, não consulta por aluno.
func (s *Service) CountActive(ctx context.Context) (int, error) {
	count, err := s.repo.CountActive(ctx)
	if err != nil {
		s.logger.Error("Falha ao contar contratos ativos.", err)
		return 0, err
	}
	return count, nil
}
