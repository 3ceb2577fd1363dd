package workout

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"gofit/internal/api/httperr"
	"gofit/internal/domain"
	apperror "gofit/internal/errors"
	"gofit/internal/pkg/logger"
)

// Handler agrupa os métodos de Handler de treinos e atribuições.
// Superfície fina: fala direto com o repositório.
type Handler struct {
	Repo   domain.WorkoutRepository
	Logger logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o repositório e o Logger.
func NewHandler(repo domain.WorkoutRepository, log logger.Logger) *Handler {
	return &Handler{Repo: repo, Logger: log}
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
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// CreateWorkoutHandler lida com a requisição POST /v1/workouts.
// @Summary Cadastra uma ficha de treino
// @Tags workouts
// @Accept json
// @Produce json
// @Param workout body domain.Workout true "Dados da ficha"
// @Success 201 {object} domain.Workout "Ficha criada"
// @Security ApiKeyAuth
// @Router /workouts [post]
func (h *Handler) CreateWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	var workout domain.Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}
	if strings.TrimSpace(workout.Name) == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("O nome da ficha de treino é obrigatório."), 0)
		return
	}

	created, err := h.Repo.CreateWorkout(r.Context(), workout)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// ListWorkoutsHandler lida com a requisição GET /v1/workouts.
// @Summary Lista as fichas de treino
// @Tags workouts
// @Produce json
// @Success 200 {array} domain.Workout "Fichas de treino"
// @Security ApiKeyAuth
// @Router /workouts [get]
func (h *Handler) ListWorkoutsHandler(w http.ResponseWriter, r *http.Request) {
	workouts, err := h.Repo.FindAllWorkouts(r.Context())
	if workouts == nil && err == nil {
		workouts = []domain.Workout{}
	}
	h.handleServiceResponse(w, r, workouts, err, http.StatusOK)
}

// CreateAssignmentHandler lida com a requisição POST /v1/workout-assignments.
// @Summary Atribui uma ficha de treino a um aluno
// @Tags workouts
// @Accept json
// @Produce json
// @Param assignment body domain.WorkoutAssignment true "Dados da atribuição"
// @Success 201 {object} domain.WorkoutAssignment "Atribuição criada"
// @Security ApiKeyAuth
// @Router /workout-assignments [post]
func (h *Handler) CreateAssignmentHandler(w http.ResponseWriter, r *http.Request) {
	var assignment domain.WorkoutAssignment
	if err := json.NewDecoder(r.Body).Decode(&assignment); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}
	if assignment.StudentID == "" || assignment.WorkoutID == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("studentId e workoutId são obrigatórios."), 0)
		return
	}

	created, err := h.Repo.CreateAssignment(r.Context(), assignment)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// ListAssignmentsHandler lida com a requisição GET /v1/workout-assignments?studentId={id}.
// @Summary Lista as atribuições de treino de um aluno
// @Tags workouts
// @Produce json
// @Param studentId query string true "ID do Aluno"
// @Success 200 {array} domain.WorkoutAssignment "Atribuições do aluno"
// @Security ApiKeyAuth
// @Router /workout-assignments [get]
func (h *Handler) ListAssignmentsHandler(w http.ResponseWriter, r *http.Request) {
	studentID := r.URL.Query().Get("studentId")
	if studentID == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("O parâmetro studentId é obrigatório."), 0)
		return
	}

	assignments, err := h.Repo.FindAssignmentsByStudentID(r.Context(), studentID)
	if assignments == nil && err == nil {
		assignments = []domain.WorkoutAssignment{}
	}
	h.handleServiceResponse(w, r, assignments, err, http.StatusOK)
}

// UpdateAssignmentStatusRequest é o corpo do endpoint de progresso de treino.
type UpdateAssignmentStatusRequest struct {
	Status domain.AssignmentStatus `json:"status"`
	Notes  *string                 `json:"notes,omitempty"`
}

// UpdateAssignmentStatusHandler lida com a requisição PATCH /v1/workout-assignments/{id}.
// @Summary Atualiza o status de uma atribuição de treino
// @Tags workouts
// @Accept json
// @Produce json
// @Param id path string true "ID da Atribuição"
// @Param input body UpdateAssignmentStatusRequest true "Novo status"
// @Success 200 {object} domain.WorkoutAssignment "Atribuição atualizada"
// @Failure 404 {object} domain.ErrorResponse "Atribuição não encontrada"
// @Security ApiKeyAuth
// @Router /workout-assignments/{id} [patch]
func (h *Handler) UpdateAssignmentStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/workout-assignments/")

	var req UpdateAssignmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}

	switch req.Status {
	case domain.AssignmentPending, domain.AssignmentInProgress, domain.AssignmentCompleted:
	default:
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Status de atribuição inválido."), 0)
		return
	}

	updated, err := h.Repo.UpdateAssignmentStatus(r.Context(), id, req.Status, req.Notes)
	if err == nil && updated == nil {
		h.handleServiceResponse(w, r, nil, apperror.NewNotFoundError("Atribuição de treino não encontrada."), 0)
		return
	}
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}
