package domain

// Default configuration values
const (
	DefaultCreditCost              = 1
	DefaultAdvanceBookingDays      = 30
	DefaultMinBookingNoticeMinutes = 60
)

// Business validation constants
const (
	MinPurchaseAmount = 1
	MaxPurchaseAmount = 100

	MaxCancellationReasonLength = 500

	// WarningBandMax upper bound of the "warning" credit band; balances above
	// it report "ok"
	WarningBandMax = 2
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// ActiveStatuses список статусов, при которых сессия удерживает свой слот
// Используется в фильтрах доступности и в частичном уникальном индексе
var ActiveStatuses = []SessionStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses список финальных статусов сессии
var TerminalStatuses = []SessionStatus{
	StatusCompleted,
	StatusCancelled,
}
