package domain

// SlotState is the availability state of one slot on one day
type SlotState string

const (
	// SlotFree means the slot is offered on the day and has no active session
	SlotFree SlotState = "free"
	// SlotBooked means an active session already occupies the (day, slot) pair
	SlotBooked SlotState = "booked"
	// SlotUnavailable means the slot is not offered on the day at all
	// (wrong weekday, or the day is outside the operating range); it is
	// excluded from free/booked counts
	SlotUnavailable SlotState = "unavailable"
)
