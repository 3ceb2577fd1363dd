package planservice_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gofit/internal/domain"
	apperror "gofit/internal/errors"
	"gofit/internal/pkg/logger"
	"gofit/internal/service/planservice"
)

// MockPlanRepository é uma implementação mock da interface PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Create(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	args := m.Called(ctx, plan)
	return args.Get(0).(domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id string) (*domain.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindAll(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) Update(ctx context.Context, id string, patch domain.PlanPatch) (*domain.Plan, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockContractCounter é um mock do contrato mínimo com a camada de Contratos.
type MockContractCounter struct {
	mock.Mock
}

func (m *MockContractCounter) CountByPlanID(ctx context.Context, planID string) (int, error) {
	args := m.Called(ctx, planID)
	return args.Int(0), args.Error(1)
}

func validPlan() domain.Plan {
	return domain.Plan{
		Name:           "Mensal",
		DurationMonths: 1,
		Price:          99.90,
	}
}

// TestCreatePlan_StatusPadraoAtivo garante que plano criado sem status vira ACTIVE.
func TestCreatePlan_StatusPadraoAtivo(t *testing.T) {
	mockRepo := new(MockPlanRepository)
	mockCounter := new(MockContractCounter)
	mockLogger := logger.NewLogger("debug")
	svc := planservice.NewService(mockRepo, mockCounter, mockLogger)

	input := validPlan()
	expected := input
	expected.Status = domain.PlanActive

	created := expected
	created.ID = uuid.New().String()

	mockRepo.On("Create", mock.Anything, expected).Return(created, nil)

	result, err := svc.Create(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, domain.PlanActive, result.Status)
	mockRepo.AssertExpectations(t)
}

// TestCreatePlan_DuracaoInvalida testa a rejeição de duração não positiva.
func TestCreatePlan_DuracaoInvalida(t *testing.T) {
	mockRepo := new(MockPlanRepository)
	mockCounter := new(MockContractCounter)
	mockLogger := logger.NewLogger("debug")
	svc := planservice.NewService(mockRepo, mockCounter, mockLogger)

	input := validPlan()
	input.DurationMonths = 0

	_, err := svc.Create(context.Background(), input)

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestDeletePlan_ComContratos garante que a exclusão é bloqueada quando
// existe ao menos um contrato referenciando o plano, qualquer que seja o
// status desses contratos.
func TestDeletePlan_ComContratos(t *testing.T) {
	mockRepo := new(MockPlanRepository)
	mockCounter := new(MockContractCounter)
	mockLogger := logger.NewLogger("debug")
	svc := planservice.NewService(mockRepo, mockCounter, mockLogger)

	plan := validPlan()
	plan.ID = uuid.New().String()

	mockRepo.On("FindByID", mock.Anything, plan.ID).Return(&plan, nil)
	mockCounter.On("CountByPlanID", mock.Anything, plan.ID).Return(3, nil)

	err := svc.Delete(context.Background(), plan.ID)

	assert.Error(t, err)
	assert.IsType(t, &apperror.PlanHasContractsError{}, err)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
	mockCounter.AssertExpectations(t)
}

// TestDeletePlan_SemContratos testa a exclusão de plano sem contratos.
func TestDeletePlan_SemContratos(t *testing.T) {
	mockRepo := new(MockPlanRepository)
	mockCounter := new(MockContractCounter)
	mockLogger := logger.NewLogger("debug")
	svc := planservice.NewService(mockRepo, mockCounter, mockLogger)

	plan := validPlan()
	plan.ID = uuid.New().String()

	mockRepo.On("FindByID", mock.Anything, plan.ID).Return(&plan, nil)
	mockCounter.On("CountByPlanID", mock.Anything, plan.ID).Return(0, nil)
	mockRepo.On("Delete", mock.Anything, plan.ID).Return(nil)

	err := svc.Delete(context.Background(), plan.ID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockCounter.AssertExpectations(t)
}

// TestDeletePlan_NaoEncontrado testa a exclusão de plano inexistente.
func TestDeletePlan_NaoEncontrado(t *testing.T) {
	mockRepo := new(MockPlanRepository)
	mockCounter := new(MockContractCounter)
	mockLogger := logger.NewLogger("debug")
	svc := planservice.NewService(mockRepo, mockCounter, mockLogger)

	id := uuid.New().String()
	mockRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

	err := svc.Delete(context.Background(), id)

	assert.IsType(t, &apperror.PlanNotFoundError{}, err)
	mockCounter.AssertNotCalled(t, "CountByPlanID", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

// TestGetPlan_NaoEncontrado testa a conversão de nulo em erro tipado.
func TestGetPlan_NaoEncontrado(t *testing.T) {
	mockRepo := new(MockPlanRepository)
	mockCounter := new(MockContractCounter)
	mockLogger := logger.NewLogger("debug")
	svc := planservice.NewService(mockRepo, mockCounter, mockLogger)

	id := uuid.New().String()
	mockRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.GetByID(context.Background(), id)

	assert.IsType(t, &apperror.PlanNotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}
