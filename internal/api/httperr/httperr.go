package httperr

import (
	"net/http"

	apperror "gofit/internal/errors"
)

// statusByCategory traduz a categoria de um erro de domínio para o status
// HTTP sugerido. A tradução mora aqui, na borda, para que o pacote de
// erros de domínio não conheça transporte.
var statusByCategory = map[string]int{
	apperror.CategoryValidation:   http.StatusBadRequest,
	apperror.CategoryNotFound:     http.StatusNotFound,
	apperror.CategoryConflict:     http.StatusConflict,
	apperror.CategoryUnauthorized: http.StatusUnauthorized,
	apperror.CategoryInternal:     http.StatusInternalServerError,
}

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, a
// categoria e a mensagem do corpo de resposta.
func MapToHTTPStatus(err error) (int, string, string) {
	if appErr, ok := err.(apperror.AppError); ok {
		if status, known := statusByCategory[appErr.Category()]; known {
			return status, appErr.Category(), appErr.Error()
		}
		return http.StatusInternalServerError, appErr.Category(), appErr.Error()
	}

	// Erro não tipado (falha de infraestrutura que vazou sem encapsulamento).
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}
