package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	getAvailability "github.com/m04kA/GMS-BookingService/internal/usecase/get_availability"
)

const (
	msgInvalidMonth = "некорректный формат месяца, ожидается YYYY-MM"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?month=YYYY-MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	result, err := h.useCase.Execute(r.Context(), month)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidMonth):
			h.logger.Warn("GET /availability - Invalid month: %q", month)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /availability - Failed to build grid: month=%s, error=%v", month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
