package get_availability

import "github.com/m04kA/GMS-BookingService/pkg/types"

// SlotAvailability состояние одного слота в конкретный день
type SlotAvailability struct {
	SlotCode   string           `json:"slot_code"`
	StartTime  types.TimeString `json:"start_time"`
	EndTime    types.TimeString `json:"end_time"`
	CreditCost int              `json:"credit_cost"`
	State      string           `json:"state"`
}

// DayAvailability все слоты одного дня месяца
type DayAvailability struct {
	Date  string             `json:"date"`
	Slots []SlotAvailability `json:"slots"`
}

// AvailabilityResponse сетка доступности на месяц
type AvailabilityResponse struct {
	Month string            `json:"month"`
	Days  []DayAvailability `json:"days"`
}
