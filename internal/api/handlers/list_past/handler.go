package list_past

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
	service SessionsService
	logger  Logger
}

func NewHandler(service SessionsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/members/{id}/sessions/past
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
		h.logger.Warn("GET /members/{id}/sessions/past - Access denied: member_id=%d, auth_id=%d", memberID, authID)
		handlers.RespondError(w, http.StatusForbidden, msgAccessDenied)
		return
	}

	result, err := h.service.ListPast(r.Context(), memberID)
	if err != nil {
		h.logger.Error("GET /members/{id}/sessions/past - Failed to list sessions: member_id=%d, error=%v", memberID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
