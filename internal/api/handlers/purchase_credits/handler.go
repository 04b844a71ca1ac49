package purchase_credits

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/api/middleware"
	purchaseCredits "github.com/m04kA/GMS-BookingService/internal/usecase/purchase_credits"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMemberID    = "некорректный идентификатор участника"
	msgInvalidData        = "некорректные данные покупки"
	msgAccessDenied       = "доступ запрещён"
	msgMemberNotFound     = "участник не найден"
	msgPaymentDeclined    = "платёж отклонён, попробуйте другой способ оплаты"
	msgPaymentUnavailable = "платёжный сервис временно недоступен"
	msgPurchaseFailed     = "покупка не выполнена, обратитесь в поддержку"
)

type Handler struct {
	useCase PurchaseCreditsUseCase
	logger  Logger
}

func NewHandler(useCase PurchaseCreditsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/members/{id}/credits/purchase
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
		h.logger.Warn("POST /members/{id}/credits/purchase - Access denied: member_id=%d, auth_id=%d", memberID, authID)
		handlers.RespondError(w, http.StatusForbidden, msgAccessDenied)
		return
	}

	var req purchaseCredits.PurchaseCreditsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /members/{id}/credits/purchase - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), memberID, &req)
	if err != nil {
		switch {
		case errors.Is(err, purchaseCredits.ErrInvalidData):
			h.logger.Warn("POST /members/{id}/credits/purchase - Invalid data: member_id=%d, error=%v", memberID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, purchaseCredits.ErrMemberNotFound):
			h.logger.Warn("POST /members/{id}/credits/purchase - Member not found: member_id=%d", memberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, purchaseCredits.ErrPaymentDeclined):
			h.logger.Warn("POST /members/{id}/credits/purchase - Payment declined: member_id=%d", memberID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentDeclined)

		case errors.Is(err, purchaseCredits.ErrPaymentUnavailable):
			h.logger.Error("POST /members/{id}/credits/purchase - Payment provider unavailable: member_id=%d, error=%v", memberID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentUnavailable)

		case errors.Is(err, purchaseCredits.ErrInternal):
			h.logger.Error("POST /members/{id}/credits/purchase - Purchase failed after charge: member_id=%d, error=%v", memberID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgPurchaseFailed)

		default:
			h.logger.Error("POST /members/{id}/credits/purchase - Failed to purchase credits: member_id=%d, error=%v", memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /members/{id}/credits/purchase - Credits granted: member_id=%d, amount=%d, balance=%d",
		memberID, result.Amount, result.Balance)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
