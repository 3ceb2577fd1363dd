package studentservice

import (
	"context"
	"strings"

	"gofit/internal/domain"
	apperror "gofit/internal/errors"
	"gofit/internal/pkg/logger"
)

// Service implementa os casos de uso de Aluno.
// As unicidades de email e CPF são pré-validadas aqui com buscas
// explícitas, nunca delegadas à violação de constraint do banco.
type Service struct {
	repo   domain.StudentRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Alunos.
func NewService(repo domain.StudentRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create registra um novo aluno após as verificações de unicidade.
// A verificação de email roda antes da de CPF: se ambos colidirem,
// o erro reportado é o de email.
func (s *Service) Create(ctx context.Context, student domain.Student) (domain.Student, error) {
	s.logger.Debug("Iniciando criação de aluno no serviço.", map[string]interface{}{"email": student.Email})

	if err := validateRequired(student); err != nil {
		s.logger.Warn("Falha na validação de dados do aluno.", map[string]interface{}{"email": student.Email, "error": err.Error()})
		return domain.Student{}, err
	}

	existing, err := s.repo.FindByEmail(ctx, student.Email)
	if err != nil {
		s.logger.Error("Falha ao verificar unicidade de email.", err)
		return domain.Student{}, err
	}
	if existing != nil {
		s.logger.Warn("Email de aluno já em uso.", map[string]interface{}{"email": student.Email})
		return domain.Student{}, &apperror.StudentEmailInUseError{Email: student.Email}
	}

	existing, err = s.repo.FindByCPF(ctx, student.CPF)
	if err != nil {
		s.logger.Error("Falha ao verificar unicidade de CPF.", err)
		return domain.Student{}, err
	}
	if existing != nil {
		s.logger.Warn("CPF de aluno já em uso.", map[string]interface{}{"cpf": student.CPF})
		return domain.Student{}, &apperror.StudentCPFInUseError{CPF: student.CPF}
	}

	created, err := s.repo.Create(ctx, student)
	if err != nil {
		s.logger.Error("Falha ao criar aluno no repositório.", err)
		return domain.Student{}, err
	}

	s.logger.Info("Aluno criado com sucesso.", map[string]interface{}{"id": created.ID, "email": created.Email})
	return created, nil
}

// GetByID busca um aluno pelo ID.
func (s *Service) GetByID(ctx context.Context, id string) (domain.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar aluno no repositório.", err)
		return domain.Student{}, err
	}
	if student == nil {
		return domain.Student{}, &apperror.StudentNotFoundError{ID: id}
	}
	return *student, nil
}

// List retorna todos os alunos na ordem definida pelo repositório.
func (s *Service) List(ctx context.Context) ([]domain.Student, error) {
	students, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar alunos no repositório.", err)
		return nil, err
	}
	return students, nil
}

// Update aplica um patch parcial a um aluno existente.
// Quando o patch traz email ou CPF, a unicidade é re-verificada
// excluindo o próprio aluno: atualizar para o valor já possuído não falha.
func (s *Service) Update(ctx context.Context, id string, patch domain.StudentPatch) (domain.Student, error) {
	s.logger.Debug("Iniciando atualização de aluno no serviço.", map[string]interface{}{"id": id})

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar aluno para atualização.", err)
		return domain.Student{}, err
	}
	if current == nil {
		return domain.Student{}, &apperror.StudentNotFoundError{ID: id}
	}

	if patch.Email != nil {
		match, err := s.repo.FindByEmail(ctx, *patch.Email)
		if err != nil {
			s.logger.Error("Falha ao verificar unicidade de email na atualização.", err)
			return domain.Student{}, err
		}
		if match != nil && match.ID != id {
			s.logger.Warn("Email de aluno já em uso por outro aluno.", map[string]interface{}{"email": *patch.Email})
			return domain.Student{}, &apperror.StudentEmailInUseError{Email: *patch.Email}
		}
	}

	if patch.CPF != nil {
		match, err := s.repo.FindByCPF(ctx, *patch.CPF)
		if err != nil {
			s.logger.Error("Falha ao verificar unicidade de CPF na atualização.", err)
			return domain.Student{}, err
		}
		if match != nil && match.ID != id {
			s.logger.Warn("CPF de aluno já em uso por outro aluno.", map[string]interface{}{"cpf": *patch.CPF})
			return domain.Student{}, &apperror.StudentCPFInUseError{CPF: *patch.CPF}
		}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error("Falha ao atualizar aluno no repositório.", err)
		return domain.Student{}, err
	}
	if updated == nil {
		// O registro sumiu entre a leitura e a escrita.
		return domain.Student{}, &apperror.StudentNotFoundError{ID: id}
	}

	s.logger.Info("Aluno atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return *updated, nil
}

// Delete remove um aluno existente. Contratos do aluno não são tocados.
func (s *Service) Delete(ctx context.Context, id string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar aluno para exclusão.", err)
		return err
	}
	if current == nil {
		return &apperror.StudentNotFoundError{ID: id}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Falha ao deletar aluno no repositório.", err)
		return err
	}

	s.logger.Info("Aluno deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// validateRequired garante os campos mínimos do cadastro.
// A validação de formato (schema) acontece fora deste núcleo.
func validateRequired(student domain.Student) error {
	if strings.TrimSpace(student.Name) == "" {
		return apperror.NewValidationError("O nome do aluno não pode ser vazio.")
	}
	if strings.TrimSpace(student.Email) == "" {
		return apperror.NewValidationError("O email do aluno não pode ser vazio.")
	}
	if strings.TrimSpace(student.CPF) == "" {
		return apperror.NewValidationError("O CPF do aluno não pode ser vazio.")
	}
	return nil
}
