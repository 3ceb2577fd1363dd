package errors

import "fmt"

// AppError é a interface central para todos os erros de domínio do GoFit.
// Ela permite que o código externo acesse a Categoria e a Mensagem do erro.
// Diferente de carregar um status HTTP aqui, a tradução Categoria -> status
// fica na borda HTTP (internal/api/httperr): o domínio não conhece transporte.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "NOT_FOUND", "CONFLICT")
	Unwrap() error    // Permite encapsular erros subjacentes
}

// Categorias possíveis. Cada erro nomeado abaixo pertence a exatamente uma.
const (
	CategoryValidation   = "VALIDATION_ERROR"
	CategoryNotFound     = "NOT_FOUND"
	CategoryConflict     = "CONFLICT"
	CategoryUnauthorized = "UNAUTHORIZED"
	CategoryInternal     = "INTERNAL_ERROR"
)

// --- Erros nomeados de Aluno ---

// StudentNotFoundError indica que o aluno referenciado não existe.
type StudentNotFoundError struct{ ID string }

func (e *StudentNotFoundError) Error() string    { return fmt.Sprintf("Aluno com ID %s não encontrado.", e.ID) }
func (e *StudentNotFoundError) Category() string { return CategoryNotFound }
func (e *StudentNotFoundError) Unwrap() error    { return nil }

// StudentEmailInUseError indica que o email já pertence a outro aluno.
type StudentEmailInUseError struct{ Email string }

func (e *StudentEmailInUseError) Error() string {
	return fmt.Sprintf("O email '%s' já está em uso por outro aluno.", e.Email)
}
func (e *StudentEmailInUseError) Category() string { return CategoryConflict }
func (e *StudentEmailInUseError) Unwrap() error    { return nil }

// StudentCPFInUseError indica que o CPF já pertence a outro aluno.
type StudentCPFInUseError struct{ CPF string }

func (e *StudentCPFInUseError) Error() string {
	return fmt.Sprintf("O CPF '%s' já está em uso por outro aluno.", e.CPF)
}
func (e *StudentCPFInUseError) Category() string { return CategoryConflict }
func (e *StudentCPFInUseError) Unwrap() error    { return nil }

// --- Erros nomeados de Plano ---

// PlanNotFoundError indica que o plano referenciado não existe.
type PlanNotFoundError struct{ ID string }

func (e *PlanNotFoundError) Error() string    { return fmt.Sprintf("Plano com ID %s não encontrado.", e.ID) }
func (e *PlanNotFoundError) Category() string { return CategoryNotFound }
func (e *PlanNotFoundError) Unwrap() error    { return nil }

// PlanHasContractsError bloqueia a exclusão de plano com contratos associados.
type PlanHasContractsError struct {
	ID    string
	Count int
}

func (e *PlanHasContractsError) Error() string {
	return fmt.Sprintf("O plano %s possui %d contrato(s) associado(s) e não pode ser excluído.", e.ID, e.Count)
}
func (e *PlanHasContractsError) Category() string { return CategoryConflict }
func (e *PlanHasContractsError) Unwrap() error    { return nil }

// --- Erros nomeados de Usuário / Autenticação ---

// UserNotFoundError indica que o usuário referenciado não existe.
type UserNotFoundError struct{ ID string }

func (e *UserNotFoundError) Error() string    { return fmt.Sprintf("Usuário com ID %s não encontrado.", e.ID) }
func (e *UserNotFoundError) Category() string { return CategoryNotFound }
func (e *UserNotFoundError) Unwrap() error    { return nil }

// EmailInUseError indica que o email já pertence a outro usuário.
type EmailInUseError struct{ Email string }

func (e *EmailInUseError) Error() string    { return fmt.Sprintf("O email '%s' já está em uso.", e.Email) }
func (e *EmailInUseError) Category() string { return CategoryConflict }
func (e *EmailInUseError) Unwrap() error    { return nil }

// InvalidCredentialsError cobre tanto email inexistente quanto senha
// incorreta, com a mesma mensagem — sem sinal distinguível para evitar
// enumeração de emails.
type InvalidCredentialsError struct{}

func (e *InvalidCredentialsError) Error() string    { return "Credenciais inválidas." }
func (e *InvalidCredentialsError) Category() string { return CategoryUnauthorized }
func (e *InvalidCredentialsError) Unwrap() error    { return nil }

// NewInvalidCredentialsError cria o erro genérico de credenciais.
func NewInvalidCredentialsError() AppError { return &InvalidCredentialsError{} }

// --- Erros genéricos ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return CategoryValidation }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso sem erro nomeado próprio
// (e.g., fichas de treino).
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return CategoryNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// UnauthorizedError representa falhas de autenticação/autorização na borda
// (token ausente, inválido ou sem permissão).
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return CategoryUnauthorized }
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autorização.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// InternalError representa falhas inesperadas no servidor, serviço ou
// repositório. Encapsula o erro original.
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return CategoryInternal }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas não esperadas).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}
