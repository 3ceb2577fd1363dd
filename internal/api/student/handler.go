package student

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

// StudentService define o contrato que o Handler espera da camada de Serviço.
type StudentService interface {
	Create(ctx context.Context, student domain.Student) (domain.Student, error)
	GetByID(ctx context.Context, id string) (domain.Student, error)
	List(ctx context.Context) ([]domain.Student, error)
	Update(ctx context.Context, id string, patch domain.StudentPatch) (domain.Student, error)
	Delete(ctx context.Context, id string) error
}

// Handler agrupa os métodos de Handler de alunos.
type Handler struct {
	Service StudentService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc StudentService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas.
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

// CreateStudentHandler lida com a requisição POST /v1/students.
// @Summary Cadastra um novo aluno
// @Description Cria um novo aluno após verificar unicidade de email e CPF.
// @Tags students
// @Accept json
// @Produce json
// @Param student body domain.Student true "Dados do aluno"
// @Success 201 {object} domain.Student "Aluno criado"
// @Failure 409 {object} domain.ErrorResponse "Email ou CPF já em uso"
// @Security ApiKeyAuth
// @Router /students [post]
func (h *Handler) CreateStudentHandler(w http.ResponseWriter, r *http.Request) {
	var student domain.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}

	created, err := h.Service.Create(r.Context(), student)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// ListStudentsHandler lida com a requisição GET /v1/students.
// @Summary Lista todos os alunos
// @Tags students
// @Produce json
// @Success 200 {array} domain.Student "Lista de alunos"
// @Security ApiKeyAuth
// @Router /students [get]
func (h *Handler) ListStudentsHandler(w http.ResponseWriter, r *http.Request) {
	students, err := h.Service.List(r.Context())
	h.handleServiceResponse(w, r, students, err, http.StatusOK)
}

// GetStudentHandler lida com a requisição GET /v1/students/{id}.
// @Summary Busca um aluno por ID
// @Tags students
// @Produce json
// @Param id path string true "ID do Aluno"
// @Success 200 {object} domain.Student "Aluno encontrado"
// @Failure 404 {object} domain.ErrorResponse "Aluno não encontrado"
// @Security ApiKeyAuth
// @Router /students/{id} [get]
func (h *Handler) GetStudentHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	student, err := h.Service.GetByID(r.Context(), id)
	h.handleServiceResponse(w, r, student, err, http.StatusOK)
}

// UpdateStudentHandler lida com a requisição PATCH /v1/students/{id}.
// @Summary Atualiza parcialmente um aluno
// @Description Aplica um patch parcial; email e CPF são re-validados excluindo o próprio aluno.
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "ID do Aluno"
// @Param patch body domain.StudentPatch true "Campos a atualizar"
// @Success 200 {object} domain.Student "Aluno atualizado"
// @Failure 404 {object} domain.ErrorResponse "Aluno não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Email ou CPF já em uso"
// @Security ApiKeyAuth
// @Router /students/{id} [patch]
func (h *Handler) UpdateStudentHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	var patch domain.StudentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}

	updated, err := h.Service.Update(r.Context(), id, patch)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeleteStudentHandler lida com a requisição DELETE /v1/students/{id}.
// @Summary Remove um aluno
// @Tags students
// @Param id path string true "ID do Aluno"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Aluno não encontrado"
// @Security ApiKeyAuth
// @Router /students/{id} [delete]
func (h *Handler) DeleteStudentHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	err := h.Service.Delete(r.Context(), id)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// pathID extrai o ID de caminhos /v1/students/{id}[...].
func pathID(r *http.Request) string {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/students/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
