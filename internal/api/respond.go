package api

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// ErrorResponse — тело ошибки HTTP API.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Warn("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// respondDomainError переводит доменную ошибку в HTTP-статус и тело ошибки.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code := classifyError(err)
	respondError(w, status, code, err.Error())
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict, "insufficient_stock"
	case errors.Is(err, domain.ErrOrderVersionConflict):
		return http.StatusConflict, "version_conflict"
	case errors.Is(err, domain.ErrOrderStatusTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrCartEmpty),
		errors.Is(err, domain.ErrOrderStatusInvalid),
		errors.Is(err, domain.ErrProductNameRequired),
		errors.Is(err, domain.ErrProductPriceNegative),
		errors.Is(err, domain.ErrProductStockNegative),
		errors.Is(err, domain.ErrProductConditionInvalid),
		errors.Is(err, domain.ErrProductIDConflict),
		errors.Is(err, domain.ErrCustomerEmailRequired),
		errors.Is(err, domain.ErrCustomerEmailInvalid),
		errors.Is(err, domain.ErrCustomerIDConflict),
		errors.Is(err, domain.ErrCustomerRequired):
		return http.StatusBadRequest, "invalid_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
