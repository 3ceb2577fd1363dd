package payment

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

// Handler agrupa os métodos de Handler de pagamentos. A superfície é fina:
// o Handler fala direto com o repositório, sem regra de negócio intermediária.
type Handler struct {
	Repo   domain.PaymentRepository
	Logger logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o repositório e o Logger.
func NewHandler(repo domain.PaymentRepository, log logger.Logger) *Handler {
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

// CreatePaymentHandler lida com a requisição POST /v1/contracts/{id}/payments.
// @Summary Registra um pagamento de contrato
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "ID do Contrato"
// @Param payment body domain.Payment true "Dados do pagamento"
// @Success 201 {object} domain.Payment "Pagamento registrado"
// @Security ApiKeyAuth
// @Router /contracts/{id}/payments [post]
func (h *Handler) CreatePaymentHandler(w http.ResponseWriter, r *http.Request) {
	var payment domain.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}
	payment.ContractID = contractID(r)

	if payment.Amount <= 0 {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("O valor do pagamento deve ser maior que zero."), 0)
		return
	}

	created, err := h.Repo.Create(r.Context(), payment)
	h.handleServiceResponse(w, r, created, err, http.StatusCreated)
}

// ListPaymentsHandler lida com a requisição GET /v1/contracts/{id}/payments.
// @Summary Lista os pagamentos de um contrato
// @Tags payments
// @Produce json
// @Param id path string true "ID do Contrato"
// @Success 200 {array} domain.Payment "Pagamentos do contrato"
// @Security ApiKeyAuth
// @Router /contracts/{id}/payments [get]
func (h *Handler) ListPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Repo.FindByContractID(r.Context(), contractID(r))
	if payments == nil && err == nil {
		payments = []domain.Payment{}
	}
	h.handleServiceResponse(w, r, payments, err, http.StatusOK)
}

// contractID extrai o ID de caminhos /v1/contracts/{id}/payments.
func contractID(r *http.Request) string {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/contracts/")
	return strings.TrimSuffix(rest, "/payments")
}
