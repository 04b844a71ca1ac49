package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")
)

// TimeString время суток в формате HH:MM ("07:30")
// Используется для хранения времени слотов без привязки к дате и часовому поясу
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку HH:MM в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString(t.Format(timeLayout)), nil
}

// String возвращает строковое представление HH:MM
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero проверяет, что значение не задано
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет корректность формата
func (ts TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return nil
}

// toTime парсит TimeString в time.Time (дата не имеет значения)
func (ts TimeString) toTime() (time.Time, error) {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return t, nil
}

// AddMinutes возвращает время, сдвинутое на указанное количество минут
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	t, err := ts.toTime()
	if err != nil {
		return "", err
	}
	return TimeString(t.Add(time.Duration(minutes) * time.Minute).Format(timeLayout)), nil
}

// MinutesUntil возвращает количество минут от ts до other
// Отрицательное значение означает, что other раньше ts
func (ts TimeString) MinutesUntil(other TimeString) (int, error) {
	from, err := ts.toTime()
	if err != nil {
		return 0, err
	}
	to, err := other.toTime()
	if err != nil {
		return 0, err
	}
	return int(to.Sub(from).Minutes()), nil
}

// IsBefore проверяет, что ts строго раньше other
// Некорректные значения считаются "не раньше"
func (ts TimeString) IsBefore(other TimeString) bool {
	a, err := ts.toTime()
	if err != nil {
		return false
	}
	b, err := other.toTime()
	if err != nil {
		return false
	}
	return a.Before(b)
}

// IsAfter проверяет, что ts строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	a, err := ts.toTime()
	if err != nil {
		return false
	}
	b, err := other.toTime()
	if err != nil {
		return false
	}
	return a.After(b)
}

// Value реализует driver.Valuer для записи в колонку TIME
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan реализует sql.Scanner для чтения из колонки TIME
// Postgres возвращает TIME как строку "07:30:00" либо как time.Time
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		return ts.scanString(string(v))
	case string:
		return ts.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeString, src)
	}
}

func (ts *TimeString) scanString(s string) error {
	// Сначала пробуем полный формат TIME (HH:MM:SS), затем короткий
	if t, err := time.Parse("15:04:05", s); err == nil {
		*ts = NewTimeString(t)
		return nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	*ts = NewTimeString(t)
	return nil
}
