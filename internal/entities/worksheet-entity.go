package entities

import "time"

// Worksheet - запись учёта времени, отработанного по заявке.
type Worksheet struct {
	ID          uint64    `json:"id"`
	RequestID   uint64    `json:"request_id"`
	UserID      uint64    `json:"user_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Description *string   `json:"description"`
}

// Hours возвращает длительность записи в часах; инвертированный интервал
// даёт 0, а не отрицательное значение.
func (w Worksheet) Hours() float64 {
	h := w.EndTime.Sub(w.StartTime).Hours()
	if h < 0 {
		return 0
	}
	return h
}
