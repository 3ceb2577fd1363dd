package contractservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gofit/internal/domain"
	apperror "gofit/internal/errors"
	"gofit/internal/pkg/logger"
	"gofit/internal/service/contractservice"
)

// MockContractRepository é uma implementação mock da interface ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) Create(ctx context.Context, contract domain.Contract) (domain.Contract, error) {
	args := m.Called(ctx, contract)
	return args.Get(0).(domain.Contract), args.Error(1)
}

func (m *MockContractRepository) FindByStudentID(ctx context.Context, studentID string) ([]domain.ContractWithPlan, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContractWithPlan), args.Error(1)
}

func (m *MockContractRepository) CountByPlanID(ctx context.Context, planID string) (int, error) {
	args := m.Called(ctx, planID)
	return args.Int(0), args.Error(1)
}

func (m *MockContractRepository) CountActive(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockStudentFinder é um mock do contrato mínimo com a camada de Alunos.
type MockStudentFinder struct {
	mock.Mock
}

func (m *MockStudentFinder) FindByID(ctx context.Context, id string) (*domain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

// MockPlanFinder é um mock do contrato mínimo com a camada de Planos.
type MockPlanFinder struct {
	mock.Mock
}

func (m *MockPlanFinder) FindByID(ctx context.Context, id string) (*domain.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func newMocks() (*MockContractRepository, *MockStudentFinder, *MockPlanFinder, *contractservice.Service) {
	mockRepo := new(MockContractRepository)
	mockStudents := new(MockStudentFinder)
	mockPlans := new(MockPlanFinder)
	svc := contractservice.NewService(mockRepo, mockStudents, mockPlans, logger.NewLogger("debug"))
	return mockRepo, mockStudents, mockPlans, svc
}

// TestCreateContract_DataFinalDerivada garante que endDate é sempre
// startDate + durationMonths, que o contrato nasce ACTIVE e que a duração
// da requisição prevalece sobre a duração nominal do plano.
func TestCreateContract_DataFinalDerivada(t *testing.T) {
	mockRepo, mockStudents, mockPlans, svc := newMocks()

	student := domain.Student{ID: uuid.New().String(), Name: "João da Silva"}
	// Plano de 1 mês; o contrato pede 12 — a requisição manda.
	plan := domain.Plan{ID: uuid.New().String(), Name: "Mensal", DurationMonths: 1, Price: 99.90}

	startDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	input := domain.NewContract{
		StudentID:      student.ID,
		PlanID:         plan.ID,
		StartDate:      &startDate,
		DurationMonths: 12,
		PricePaid:      89.90,
	}

	mockStudents.On("FindByID", mock.Anything, student.ID).Return(&student, nil)
	mockPlans.On("FindByID", mock.Anything, plan.ID).Return(&plan, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(c domain.Contract) bool {
		return c.StartDate.Equal(startDate) &&
			c.EndDate.Equal(startDate.AddDate(0, 12, 0)) &&
			c.Status == domain.ContractActive &&
			c.PricePaid == 89.90
	})).Return(domain.Contract{
		ID:        uuid.New().String(),
		StudentID: student.ID,
		PlanID:    plan.ID,
		StartDate: startDate,
		EndDate:   startDate.AddDate(0, 12, 0),
		Status:    domain.ContractActive,
		PricePaid: 89.90,
	}, nil)

	result, err := svc.Create(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC), result.EndDate)
	assert.Equal(t, domain.ContractActive, result.Status)
	assert.Equal(t, plan.ID, result.Plan.ID)
	mockRepo.AssertExpectations(t)
}

// TestCreateContract_AlunoInexistente garante que nada é gravado quando o
// aluno não existe e que o plano nem chega a ser consultado.
func TestCreateContract_AlunoInexistente(t *testing.T) {
	mockRepo, mockStudents, mockPlans, svc := newMocks()

	input := domain.NewContract{
		StudentID:      uuid.New().String(),
		PlanID:         uuid.New().String(),
		DurationMonths: 1,
	}

	mockStudents.On("FindByID", mock.Anything, input.StudentID).Return(nil, nil)

	_, err := svc.Create(context.Background(), input)

	assert.Error(t, err)
	assert.IsType(t, &apperror.StudentNotFoundError{}, err)
	mockPlans.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockStudents.AssertExpectations(t)
}

// TestCreateContract_PlanoInexistente garante que nada é gravado quando o
// plano não existe, mesmo com aluno válido.
func TestCreateContract_PlanoInexistente(t *testing.T) {
	mockRepo, mockStudents, mockPlans, svc := newMocks()

	student := domain.Student{ID: uuid.New().String(), Name: "João da Silva"}
	input := domain.NewContract{
		StudentID:      student.ID,
		PlanID:         uuid.New().String(),
		DurationMonths: 1,
	}

	mockStudents.On("FindByID", mock.Anything, student.ID).Return(&student, nil)
	mockPlans.On("FindByID", mock.Anything, input.PlanID).Return(nil, nil)

	_, err := svc.Create(context.Background(), input)

	assert.IsType(t, &apperror.PlanNotFoundError{}, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockStudents.AssertExpectations(t)
	mockPlans.AssertExpectations(t)
}

// TestCreateContract_DuracaoInvalida testa a rejeição de duração não positiva
// antes de qualquer consulta.
func TestCreateContract_DuracaoInvalida(t *testing.T) {
	mockRepo, mockStudents, _, svc := newMocks()

	input := domain.NewContract{
		StudentID:      uuid.New().String(),
		PlanID:         uuid.New().String(),
		DurationMonths: 0,
	}

	_, err := svc.Create(context.Background(), input)

	assert.Error(t, err)
	mockStudents.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestGetStudentContracts_SemContratos garante lista vazia, sem erro, para
// aluno sem contratos (ou inexistente).
func TestGetStudentContracts_SemContratos(t *testing.T) {
	mockRepo, _, _, svc := newMocks()

	studentID := uuid.New().String()
	mockRepo.On("FindByStudentID", mock.Anything, studentID).Return([]domain.ContractWithPlan{}, nil)

	contracts, err := svc.GetStudentContracts(context.Background(), studentID)

	assert.NoError(t, err)
	assert.Empty(t, contracts)
	mockRepo.AssertExpectations(t)
}

// TestCountActive testa o agregado de contratos ativos do painel.
func TestCountActive(t *testing.T) {
	mockRepo, _, _, svc := newMocks()

	mockRepo.On("CountActive", mock.Anything).Return(42, nil)

	count, err := svc.CountActive(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 42, count)
	mockRepo.AssertExpectations(t)
}
