package get_availability

import (
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

type slotKey struct {
	date string
	code string
}

// buildMonthGrid строит сетку доступности месяца по чистым данным.
// Для каждого дня месяца и каждого слота определяется одно из трёх
// состояний: free, booked, unavailable.
//
// День недоступен целиком, если он в прошлом или за горизонтом
// бронирования. Слот недоступен в дне, если не предлагается в этот
// день недели. Занятость определяется наличием активной сессии.
func buildMonthGrid(monthStart time.Time, slots []*domain.Slot, active []*domain.Session, today time.Time, horizonDays int) []DayAvailability {
	booked := make(map[slotKey]bool, len(active))
	for _, s := range active {
		booked[slotKey{date: s.SessionDate.Format(domain.DateFormat), code: s.SlotCode}] = true
	}

	var horizon time.Time
	if horizonDays > 0 {
		horizon = today.AddDate(0, 0, horizonDays)
	}

	monthEnd := monthStart.AddDate(0, 1, 0)
	days := make([]DayAvailability, 0, 31)

	for day := monthStart; day.Before(monthEnd); day = day.AddDate(0, 0, 1) {
		dateStr := day.Format(domain.DateFormat)
		outOfRange := day.Before(today) || (horizonDays > 0 && day.After(horizon))

		daySlots := make([]SlotAvailability, 0, len(slots))
		for _, slot := range slots {
			state := domain.SlotUnavailable
			switch {
			case outOfRange || !slot.OfferedOn(day):
				// остаётся unavailable
			case booked[slotKey{date: dateStr, code: slot.Code}]:
				state = domain.SlotBooked
			default:
				state = domain.SlotFree
			}

			daySlots = append(daySlots, SlotAvailability{
				SlotCode:   slot.Code,
				StartTime:  slot.StartTime,
				EndTime:    slot.EndTime,
				CreditCost: slot.CreditCost,
				State:      string(state),
			})
		}

		days = append(days, DayAvailability{
			Date:  dateStr,
			Slots: daySlots,
		})
	}

	return days
}
