package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"gofit/internal/api/httperr"
	"gofit/internal/domain"
	apperror "gofit/internal/errors"
	"gofit/internal/pkg/logger"
)

// UserService define o contrato que o Handler espera da camada de Serviço.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error)
	ChangePassword(ctx context.Context, input domain.ChangePassword) error
	Authenticate(ctx context.Context, email, plainPassword string) (string, error)
}

// Handler agrupa os métodos de Handler de usuários e autenticação.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, message := httperr.MapToHTTPStatus(err)
	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d.", status), map[string]interface{}{"path": r.URL.Path, "category": category})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// LoginRequest é o corpo esperado pelo endpoint de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carrega o token JWT emitido após autenticação.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterHandler lida com a requisição POST /v1/register.
// @Summary Registra um novo usuário do sistema
// @Description Cria um usuário da equipe (admin, trainer ou staff); a senha é armazenada com hash bcrypt.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body domain.UserRegistration true "Dados do usuário"
// @Success 201 {object} domain.User "Usuário criado (sem hash de senha)"
// @Failure 409 {object} domain.ErrorResponse "Email já em uso"
// @Router /register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var registration domain.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&registration); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}

	created, err := h.Service.Register(r.Context(), registration)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// LoginHandler lida com a requisição POST /v1/login.
// @Summary Autentica um usuário
// @Description Valida email e senha e retorna um token JWT. Credenciais inválidas retornam sempre a mesma mensagem, sem revelar se o email existe.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credenciais"
// @Success 200 {object} LoginResponse "Token JWT"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}

	token, err := h.Service.Authenticate(r.Context(), req.Email, req.Password)
	h.handleServiceResponse(w, r, LoginResponse{Token: token}, err, http.StatusOK)
}

// UpdateUserHandler lida com a requisição PATCH /v1/users/{id}.
// @Summary Atualiza parcialmente um usuário
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "ID do Usuário"
// @Param patch body domain.UserPatch true "Campos a atualizar"
// @Success 200 {object} domain.User "Usuário atualizado"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Email já em uso"
// @Security ApiKeyAuth
// @Router /users/{id} [patch]
func (h *Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	var patch domain.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}

	updated, err := h.Service.Update(r.Context(), id, patch)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// ChangePasswordHandler lida com a requisição PUT /v1/users/{id}/password.
// @Summary Troca a senha de um usuário
// @Description Exige a senha atual correta; nada é persistido se a verificação falhar.
// @Tags users
// @Accept json
// @Param id path string true "ID do Usuário"
// @Param input body domain.ChangePassword true "Senha atual e nova senha"
// @Success 204 "Nenhum conteúdo"
// @Failure 401 {object} domain.ErrorResponse "Senha atual incorreta"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Security ApiKeyAuth
// @Router /users/{id}/password [put]
func (h *Handler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.ChangePassword
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}
	input.UserID = pathID(r)

	err := h.Service.ChangePassword(r.Context(), input)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// pathID extrai o ID de caminhos /v1/users/{id}[...].
func pathID(r *http.Request) string {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/users/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
