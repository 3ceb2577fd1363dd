package studentservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gofit/internal/domain"
	apperror "gofit/internal/errors"
	"gofit/internal/pkg/logger"
	"gofit/internal/service/studentservice"
)

// MockStudentRepository é uma implementação mock da interface StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student domain.Student) (domain.Student, error) {
	args := m.Called(ctx, student)
	return args.Get(0).(domain.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByID(ctx context.Context, id string) (*domain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByEmail(ctx context.Context, email string) (*domain.Student, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByCPF(ctx context.Context, cpf string) (*domain.Student, error) {
	args := m.Called(ctx, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) FindAll(ctx context.Context) ([]domain.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Student), args.Error(1)
}

func (m *MockStudentRepository) Update(ctx context.Context, id string, patch domain.StudentPatch) (*domain.Student, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func validStudent() domain.Student {
	return domain.Student{
		Name:  "João da Silva",
		Email: "joao@email.com",
		CPF:   "123.456.789-00",
	}
}

// TestCreateStudent_Success testa a criação de aluno com email e CPF livres.
func TestCreateStudent_Success(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	mockLogger := logger.NewLogger("debug")
	svc := studentservice.NewService(mockRepo, mockLogger)

	input := validStudent()
	created := input
	created.ID = uuid.New().String()

	mockRepo.On("FindByEmail", mock.Anything, input.Email).Return(nil, nil)
	mockRepo.On("FindByCPF", mock.Anything, input.CPF).Return(nil, nil)
	mockRepo.On("Create", mock.Anything, input).Return(created, nil)

	result, err := svc.Create(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, created.ID, result.ID)
	mockRepo.AssertExpectations(t)
}

// TestCreateStudent_EmailEmUso testa a rejeição de email duplicado.
func TestCreateStudent_EmailEmUso(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	mockLogger := logger.NewLogger("debug")
	svc := studentservice.NewService(mockRepo, mockLogger)

	input := validStudent()
	existing := validStudent()
	existing.ID = uuid.New().String()

	mockRepo.On("FindByEmail", mock.Anything, input.Email).Return(&existing, nil)

	_, err := svc.Create(context.Background(), input)

	assert.Error(t, err)
	assert.IsType(t, &apperror.StudentEmailInUseError{}, err)
	// Nada deve ser gravado após a colisão.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

// TestCreateStudent_CPFEmUso testa a rejeição de CPF duplicado.
func TestCreateStudent_CPFEmUso(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	mockLogger := logger.NewLogger("debug")
	svc := studentservice.NewService(mockRepo, mockLogger)

	input := validStudent()
	existing := validStudent()
	existing.ID = uuid.New().String()
	existing.Email = "outro@email.com"

	mockRepo.On("FindByEmail", mock.Anything, input.Email).Return(nil, nil)
	mockRepo.On("FindByCPF", mock.Anything, input.CPF).Return(&existing, nil)

	_, err := svc.Create(context.Background(), input)

	assert.Error(t, err)
	assert.IsType(t, &apperror.StudentCPFInUseError{}, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

// TestCreateStudent_EmailPrecedeCPF garante que, quando email e CPF colidem
// ao mesmo tempo, o erro reportado é o de email.
func TestCreateStudent_EmailPrecedeCPF(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	mockLogger := logger.NewLogger("debug")
	svc := studentservice.NewService(mockRepo, mockLogger)

	input := validStudent()
	existing := validStudent()
	existing.ID = uuid.New().String()

	mockRepo.On("FindByEmail", mock.Anything, input.Email).Return(&existing, nil)

	_, err := svc.Create(context.Background(), input)

	assert.IsType(t, &apperror.StudentEmailInUseError{}, err)
	mockRepo.AssertNotCalled(t, "FindByCPF", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

// TestCreateStudent_CamposObrigatorios testa a validação de campos mínimos.
func TestCreateStudent_CamposObrigatorios(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	mockLogger := logger.NewLogger("debug")
	svc := studentservice.NewService(mockRepo, mockLogger)

	input := validStudent()
	input.Name = "   "

	_, err := svc.Create(context.Background(), input)

	assert.Error(t, err)
	var appErr apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CategoryValidation, appErr.Category())
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestGetStudent_NaoEncontrado testa a conversão de nulo em erro tipado.
func TestGetStudent_NaoEncontrado(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	mockLogger := logger.NewLogger("debug")
	svc := studentservice.NewService(mockRepo, mockLogger)

	id := uuid.New().String()
	mockRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.GetByID(context.Background(), id)

	assert.Error(t, err)
	assert.IsType(t, &apperror.StudentNotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}

// TestUpdateStudent_EmailProprio garante que atualizar o aluno para o email
// que ele já possui não dispara o erro de unicidade.
func TestUpdateStudent_EmailProprio(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	mockLogger := logger.NewLogger("debug")
	svc := studentservice.NewService(mockRepo, mockLogger)

	current := validStudent()
	current.ID = uuid.New().String()
	email := current.Email
	patch := domain.StudentPatch{Email: &email}

	mockRepo.On("FindByID", mock.Anything, current.ID).Return(&current, nil)
	mockRepo.On("FindByEmail", mock.Anything, email).Return(&current, nil)
	mockRepo.On("Update", mock.Anything, current.ID, patch).Return(&current, nil)

	result, err := svc.Update(context.Background(), current.ID, patch)

	assert.NoError(t, err)
	assert.Equal(t, current.ID, result.ID)
	mockRepo.AssertExpectations(t)
}

// TestUpdateStudent_EmailDeOutro testa a colisão de email com outro aluno.
func TestUpdateStudent_EmailDeOutro(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	mockLogger := logger.NewLogger("debug")
	svc := studentservice.NewService(mockRepo, mockLogger)

	current := validStudent()
	current.ID = uuid.New().String()
	other := validStudent()
	other.ID = uuid.New().String()
	other.Email = "ocupado@email.com"

	patch := domain.StudentPatch{Email: &other.Email}

	mockRepo.On("FindByID", mock.Anything, current.ID).Return(&current, nil)
	mockRepo.On("FindByEmail", mock.Anything, other.Email).Return(&other, nil)

	_, err := svc.Update(context.Background(), current.ID, patch)

	assert.IsType(t, &apperror.StudentEmailInUseError{}, err)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

// TestDeleteStudent_NaoEncontrado testa a exclusão de aluno inexistente.
func TestDeleteStudent_NaoEncontrado(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	mockLogger := logger.NewLogger("debug")
	svc := studentservice.NewService(mockRepo, mockLogger)

	id := uuid.New().String()
	mockRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

	err := svc.Delete(context.Background(), id)

	assert.IsType(t, &apperror.StudentNotFoundError{}, err)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}
