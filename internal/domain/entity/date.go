package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout formato ISO de fecha de calendario (sin hora).
const DateLayout = "2006-01-02"

// Date fecha de calendario sin hora ni zona. El valor cero representa "ausente".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate toma la fecha de calendario de t (en su propia zona).
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today fecha de calendario actual en la zona local.
func Today() Date {
	return NewDate(time.Now())
}

// ParseDate interpreta una fecha ISO estricta (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

// IsZero indica si la fecha está ausente.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time devuelve la medianoche UTC de la fecha.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String devuelve YYYY-MM-DD, o cadena vacía si la fecha está ausente.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateLayout)
}

// OrToday devuelve la fecha o, si está ausente, la de hoy.
func (d Date) OrToday() Date {
	if d.IsZero() {
		return Today()
	}
	return d
}

// MarshalJSON serializa como "YYYY-MM-DD" o null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON acepta "YYYY-MM-DD", "" o null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("fecha inválida: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("fecha inválida %q: se espera YYYY-MM-DD", s)
	}
	*d = parsed
	return nil
}
