package contract

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

// ContractService define o contrato que o Handler espera da camada de Serviço.
type ContractService interface {
	Create(ctx context.Context, input domain.NewContract) (domain.ContractWithPlan, error)
	GetStudentContracts(ctx context.Context, studentID string) ([]domain.ContractWithPlan, error)
	CountActive(ctx context.Context) (int, error)
}

// Handler agrupa os métodos de Handler de contratos.
type Handler struct {
	Service ContractService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ContractService, log logger.Logger) *Handler {
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

// CreateContractHandler lida com a requisição POST /v1/contracts.
// @Summary Cria um contrato para um aluno
// @Description Valida aluno e plano antes de gravar; endDate é derivada de startDate + durationMonths.
// @Tags contracts
// @Accept json
// @Produce json
// @Param contract body domain.NewContract true "Dados do contrato"
// @Success 201 {object} domain.ContractWithPlan "Contrato criado com o plano associado"
// @Failure 404 {object} domain.ErrorResponse "Aluno ou plano não encontrado"
// @Security ApiKeyAuth
// @Router /contracts [post]
func (h *Handler) CreateContractHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.NewContract
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}

	created, err := h.Service.Create(r.Context(), input)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// GetStudentContractsHandler lida com a requisição GET /v1/students/{id}/contracts.
// @Summary Lista os contratos de um aluno
// @Description Retorna os contratos do aluno, mais recentes primeiro, cada um com o plano associado.
// @Tags contracts
// @Produce json
// @Param id path string true "ID do Aluno"
// @Success 200 {array} domain.ContractWithPlan "Contratos do aluno"
// @Security ApiKeyAuth
// @Router /students/{id}/contracts [get]
func (h *Handler) GetStudentContractsHandler(w http.ResponseWriter, r *http.Request) {
	studentID := strings.TrimPrefix(r.URL.Path, "/v1/students/")
	studentID = strings.TrimSuffix(studentID, "/contracts")

	contracts, err := h.Service.GetStudentContracts(r.Context(), studentID)
	if contracts == nil && err == nil {
		contracts = []domain.ContractWithPlan{}
	}
	h.handleServiceResponse(w, r, contracts, err, http.StatusOK)
}

// CountActiveHandler lida com a requisição GET /v1/dashboard/active-contracts.
// @Summary Conta os contratos ativos
// @Description Métrica de painel: total de contratos com status ACTIVE, com cache.
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]int "Total de contratos ativos"
// @Security ApiKeyAuth
// @Router /dashboard/active-contracts [get]
func (h *Handler) CountActiveHandler(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.CountActive(r.Context())
	h.handleServiceResponse(w, r, map[string]int{"activeContracts": count}, err, http.StatusOK)
}
