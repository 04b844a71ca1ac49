package get_ledger_history

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/api/middleware"
)

const (
	msgInvalidMemberID = "некорректный идентификатор участника"
	msgAccessDenied    = "доступ запрещён"
)

type Handler struct {
	service LedgerService
	logger  Logger
}

func NewHandler(service LedgerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/members/{id}/credits/history
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	authID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}

	memberID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	if memberID != authID {
		h.logger.Warn("GET /members/{id}/credits/history - Access denied: member_id=%d, auth_id=%d", memberID, authID)
		handlers.RespondError(w, http.StatusForbidden, msgAccessDenied)
		return
	}

	result, err := h.service.History(r.Context(), memberID)
	if err != nil {
		h.logger.Error("GET /members/{id}/credits/history - Failed to get history: member_id=%d, error=%v", memberID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
