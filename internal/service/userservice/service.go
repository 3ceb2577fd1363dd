package userservice

import (
	"context"
	"strings"

	"gofit/internal/domain"
	apperror "gofit/internal/errors"
	"gofit/internal/pkg/logger"
	"gofit/internal/pkg/password"
)

// TokenGenerator é o contrato da camada de token (internal/pkg/token)
// visto pelo serviço: só a emissão.
type TokenGenerator interface {
	GenerateToken(user domain.User) (string, error)
}

// Service implementa os casos de uso de Usuário e Autenticação.
// O hashing de senha e a assinatura de token são colaboradores opacos.
type Service struct {
	repo     domain.UserRepository
	hasher   password.Hasher
	tokenSvc TokenGenerator
	logger   logger.Logger
}

// NewService cria uma nova instância do Serviço de Usuários.
func NewService(repo domain.UserRepository, hasher password.Hasher, tokenSvc TokenGenerator, logger logger.Logger) *Service {
	return &Service{repo: repo, hasher: hasher, tokenSvc: tokenSvc, logger: logger}
}

// Register registra um novo usuário: valida, verifica unicidade de
// email, hasheia a senha e persiste. Retorna a visão sem o hash.
func (s *Service) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	s.logger.Debug("Iniciando registro de usuário no serviço.", map[string]interface{}{"email": registration.Email})

	if strings.TrimSpace(registration.Email) == "" || registration.Password == "" {
		return domain.User{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}

	existing, err := s.repo.FindByEmail(ctx, registration.Email)
	if err != nil {
		s.logger.Error("Falha ao verificar unicidade de email de usuário.", err)
		return domain.User{}, err
	}
	if existing != nil {
		s.logger.Warn("Email de usuário já em uso.", map[string]interface{}{"email": registration.Email})
		return domain.User{}, &apperror.EmailInUseError{Email: registration.Email}
	}

	hashed, err := s.hasher.Hash(registration.Password)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	role := registration.Role
	if role == "" {
		role = domain.RoleStaff
	}

	newUser := domain.User{
		Name:         registration.Name,
		Email:        registration.Email,
		PasswordHash: hashed,
		Role:         role,
	}

	created, err := s.repo.Create(ctx, newUser)
	if err != nil {
		s.logger.Error("Falha ao criar usuário no repositório.", err)
		return domain.User{}, err
	}

	s.logger.Info("Usuário registrado com sucesso.", map[string]interface{}{"id": created.ID, "email": created.Email})
	return created.Sanitized(), nil
}

// Update aplica um patch parcial a um usuário existente. Quando o patch
// traz email, a unicidade é re-verificada excluindo o próprio usuário.
func (s *Service) Update(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	s.logger.Debug("Iniciando atualização de usuário no serviço.", map[string]interface{}{"id": id})

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar usuário para atualização.", err)
		return domain.User{}, err
	}
	if current == nil {
		return domain.User{}, &apperror.UserNotFoundError{ID: id}
	}

	if patch.Email != nil {
		match, err := s.repo.FindByEmail(ctx, *patch.Email)
		if err != nil {
			s.logger.Error("Falha ao verificar unicidade de email na atualização.", err)
			return domain.User{}, err
		}
		if match != nil && match.ID != id {
			s.logger.Warn("Email de usuário já em uso por outro usuário.", map[string]interface{}{"email": *patch.Email})
			return domain.User{}, &apperror.EmailInUseError{Email: *patch.Email}
		}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error("Falha ao atualizar usuário no repositório.", err)
		return domain.User{}, err
	}
	if updated == nil {
		return domain.User{}, &apperror.UserNotFoundError{ID: id}
	}

	s.logger.Info("Usuário atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated.Sanitized(), nil
}

// ChangePassword troca a senha após verificar a senha atual contra o
// hash armazenado. Em caso de senha atual incorreta nada é persistido.
func (s *Service) ChangePassword(ctx context.Context, input domain.ChangePassword) error {
	s.logger.Debug("Iniciando troca de senha no serviço.", map[string]interface{}{"user_id": input.UserID})

	if input.NewPassword == "" {
		return apperror.NewValidationError("A nova senha não pode ser vazia.")
	}

	user, err := s.repo.FindByID(ctx, input.UserID)
	if err != nil {
		s.logger.Error("Falha ao buscar usuário para troca de senha.", err)
		return err
	}
	if user == nil {
		return &apperror.UserNotFoundError{ID: input.UserID}
	}

	if !s.hasher.Compare(input.CurrentPassword, user.PasswordHash) {
		s.logger.Warn("Troca de senha rejeitada: senha atual incorreta.", map[string]interface{}{"user_id": input.UserID})
		return apperror.NewInvalidCredentialsError()
	}

	hashed, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return apperror.NewInternalError("Falha ao gerar hash da nova senha.", err)
	}

	if err := s.repo.UpdatePassword(ctx, input.UserID, hashed); err != nil {
		s.logger.Error("Falha ao persistir nova senha.", err)
		return err
	}

	s.logger.Info("Senha alterada com sucesso.", map[string]interface{}{"user_id": input.UserID})
	return nil
}

// Authenticate autentica por email e senha e devolve apenas o token.
//
// Email inexistente e senha incorreta produzem exatamente o mesmo erro,
// sem sinal distinguível — evita enumeração de emails.
func (s *Service) Authenticate(ctx context.Context, email, plainPassword string) (string, error) {
	if email == "" || plainPassword == "" {
		return "", apperror.NewInvalidCredentialsError()
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Falha ao buscar usuário para autenticação.", err)
		return "", err
	}
	if user == nil {
		return "", apperror.NewInvalidCredentialsError()
	}

	if !s.hasher.Compare(plainPassword, user.PasswordHash) {
		return "", apperror.NewInvalidCredentialsError()
	}

	tokenString, err := s.tokenSvc.GenerateToken(*user)
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	s.logger.Info("Usuário autenticado com sucesso.", map[string]interface{}{"user_id": user.ID})
	return tokenString, nil
}
