package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"musicroombooking/internal/delivery/http/helpers"
	"musicroombooking/internal/domain"
)

// writeDomainError maps domain sentinel errors to the stable HTTP error
// vocabulary. Unknown errors are logged and become 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInterval):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotEligible):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, err.Error())
	case errors.Is(err, domain.ErrQuotaExceeded):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeQuotaExceeded, err.Error())
	case errors.Is(err, domain.ErrSlotTaken):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, err.Error())
	case errors.Is(err, domain.ErrAssetMissing):
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeAssetMissing, "schedule rendering unavailable")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// rejectionReason labels a failed booking create for metrics.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInterval):
		return "invalid_interval"
	case errors.Is(err, domain.ErrNotEligible):
		return "not_eligible"
	case errors.Is(err, domain.ErrSlotTaken):
		return "slot_taken"
	case errors.Is(err, domain.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, domain.ErrNotFound):
		return "unknown_participant"
	default:
		return "internal"
	}
}
