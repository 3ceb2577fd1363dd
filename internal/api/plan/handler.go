package plan

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

// PlanService define o contrato que o Handler espera da camada de Serviço.
type PlanService interface {
	Create(ctx context.Context, plan domain.Plan) (domain.Plan, error)
	GetByID(ctx context.Context, id string) (domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
	Update(ctx context.Context, id string, patch domain.PlanPatch) (domain.Plan, error)
	Delete(ctx context.Context, id string) error
}

// Handler agrupa os métodos de Handler de planos.
type Handler struct {
	Service PlanService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc PlanService, log logger.Logger) *Handler {
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
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// CreatePlanHandler lida com a requisição POST /v1/plans.
// @Summary Cadastra um novo plano
// @Description Cria um novo plano de assinatura; status ausente vira ACTIVE.
// @Tags plans
// @Accept json
// @Produce json
// @Param plan body domain.Plan true "Dados do plano"
// @Success 201 {object} domain.Plan "Plano criado"
// @Security ApiKeyAuth
// @Router /plans [post]
func (h *Handler) CreatePlanHandler(w http.ResponseWriter, r *http.Request) {
	var plan domain.Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}

	created, err := h.Service.Create(r.Context(), plan)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// ListPlansHandler lida com a requisição GET /v1/plans.
// @Summary Lista todos os planos
// @Tags plans
// @Produce json
// @Success 200 {array} domain.Plan "Lista de planos"
// @Security ApiKeyAuth
// @Router /plans [get]
func (h *Handler) ListPlansHandler(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Service.List(r.Context())
	h.handleServiceResponse(w, r, plans, err, http.StatusOK)
}

// GetPlanHandler lida com a requisição GET /v1/plans/{id}.
// @Summary Busca um plano por ID
// @Tags plans
// @Produce json
// @Param id path string true "ID do Plano"
// @Success 200 {object} domain.Plan "Plano encontrado"
// @Failure 404 {object} domain.ErrorResponse "Plano não encontrado"
// @Security ApiKeyAuth
// @Router /plans/{id} [get]
func (h *Handler) GetPlanHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/plans/")
	plan, err := h.Service.GetByID(r.Context(), id)
	h.handleServiceResponse(w, r, plan, err, http.StatusOK)
}

// UpdatePlanHandler lida com a requisição PATCH /v1/plans/{id}.
// @Summary Atualiza parcialmente um plano
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "ID do Plano"
// @Param patch body domain.PlanPatch true "Campos a atualizar"
// @Success 200 {object} domain.Plan "Plano atualizado"
// @Failure 404 {object} domain.ErrorResponse "Plano não encontrado"
// @Security ApiKeyAuth
// @Router /plans/{id} [patch]
func (h *Handler) UpdatePlanHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/plans/")

	var patch domain.PlanPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}

	updated, err := h.Service.Update(r.Context(), id, patch)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeletePlanHandler lida com a requisição DELETE /v1/plans/{id}.
// @Summary Remove um plano sem contratos
// @Description A exclusão é bloqueada (409) se o plano possui contratos associados.
// @Tags plans
// @Param id path string true "ID do Plano"
// @Success 204 "Nenhum conteúdo"
// @Failure 404 {object} domain.ErrorResponse "Plano não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Plano possui contratos"
// @Security ApiKeyAuth
// @Router /plans/{id} [delete]
func (h *Handler) DeletePlanHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/plans/")
	err := h.Service.Delete(r.Context(), id)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}
