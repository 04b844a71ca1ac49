package book_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/api/middleware"
	bookSession "github.com/m04kA/GMS-BookingService/internal/usecase/book_session"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidData         = "некорректные данные бронирования"
	msgMemberNotFound      = "участник не найден"
	msgSlotNotFound        = "слот не найден"
	msgDateTooFar          = "дата сессии за пределами горизонта бронирования"
	msgSlotUnavailable     = "слот недоступен для бронирования"
	msgInsufficientCredits = "недостаточно кредитов"
	msgBookingFailed       = "бронирование не выполнено, обратитесь в поддержку"
)

type Handler struct {
	useCase BookSessionUseCase
	logger  Logger
}

func NewHandler(useCase BookSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgInvalidData)
		return
	}

	var req bookSession.BookSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), memberID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookSession.ErrInvalidData):
			h.logger.Warn("POST /sessions - Invalid data: member_id=%d, error=%v", memberID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, bookSession.ErrMemberNotFound):
			h.logger.Warn("POST /sessions - Member not found: member_id=%d", memberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, bookSession.ErrSlotNotFound):
			h.logger.Warn("POST /sessions - Slot not found: member_id=%d, slot_code=%s", memberID, req.SlotCode)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookSession.ErrDateTooFarInFuture):
			h.logger.Warn("POST /sessions - Date beyond booking horizon: member_id=%d, date=%s", memberID, req.SessionDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, bookSession.ErrSlotUnavailable):
			h.logger.Warn("POST /sessions - Slot unavailable: member_id=%d, slot_code=%s, date=%s",
				memberID, req.SlotCode, req.SessionDate)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, bookSession.ErrInsufficientCredits):
			h.logger.Warn("POST /sessions - Insufficient credits: member_id=%d", memberID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgInsufficientCredits)

		case errors.Is(err, bookSession.ErrBookingFailed):
			h.logger.Error("POST /sessions - Booking failed: member_id=%d, error=%v", memberID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgBookingFailed)

		default:
			h.logger.Error("POST /sessions - Failed to book session: member_id=%d, error=%v", memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session booked: session_id=%d, member_id=%d, slot_code=%s, date=%s",
		result.ID, memberID, result.SlotCode, result.SessionDate)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
