package cancel_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/api/middleware"
	cancelSession "github.com/m04kA/GMS-BookingService/internal/usecase/cancel_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSessionID   = "некорректный идентификатор сессии"
	msgInvalidData        = "некорректные данные отмены"
	msgSessionNotFound    = "сессия не найдена"
	msgAccessDenied       = "доступ запрещён"
	msgAlreadyTerminal    = "сессия уже завершена или отменена"
)

type Handler struct {
	useCase CancelSessionUseCase
	logger  Logger
}

func NewHandler(useCase CancelSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/sessions/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgAccessDenied)
		return
	}

	sessionID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req cancelSession.CancelSessionRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /sessions/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), memberID, sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, cancelSession.ErrInvalidData):
			h.logger.Warn("PATCH /sessions/{id}/cancel - Invalid data: session_id=%d, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, cancelSession.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id}/cancel - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, cancelSession.ErrAccessDenied):
			h.logger.Warn("PATCH /sessions/{id}/cancel - Access denied: session_id=%d, member_id=%d", sessionID, memberID)
			handlers.RespondError(w, http.StatusForbidden, msgAccessDenied)

		case errors.Is(err, cancelSession.ErrAlreadyTerminal):
			h.logger.Warn("PATCH /sessions/{id}/cancel - Already terminal: session_id=%d", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyTerminal)

		default:
			h.logger.Error("PATCH /sessions/{id}/cancel - Failed to cancel session: session_id=%d, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id}/cancel - Session cancelled: session_id=%d, member_id=%d, refunded=%d",
		sessionID, memberID, result.RefundedCredits)
	handlers.RespondJSON(w, http.StatusOK, result)
}
