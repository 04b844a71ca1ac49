package get_slots

import (
	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	Code       string           `json:"code"`
	StartTime  types.TimeString `json:"start_time"`
	EndTime    types.TimeString `json:"end_time"`
	Weekdays   []int            `json:"weekdays"`
	CreditCost int              `json:"credit_cost"`
}

// SlotListResponse список настроенных слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

func fromDomainSlots(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{Slots: make([]SlotResponse, 0, len(slots))}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			Code:       s.Code,
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
			Weekdays:   s.Weekdays,
			CreditCost: s.CreditCost,
		})
	}
	return resp
}
