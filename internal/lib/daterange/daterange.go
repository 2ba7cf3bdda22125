// Package daterange содержит операции над календарными диапазонами дат.
// Диапазон задается парой дат [start, end], обе границы включительно,
// компонента времени игнорируется.
package daterange

import "time"

// Day обнуляет компоненту времени, оставляя календарную дату в UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps сообщает, пересекаются ли диапазоны [s1, e1] и [s2, e2].
// Пересечением считается хотя бы один общий день:
// s1 <= e2 AND e1 >= s2.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	s1, e1, s2, e2 = Day(s1), Day(e1), Day(s2), Day(e2)
	return !s1.After(e2) && !e1.Before(s2)
}

// Valid проверяет инвариант диапазона start <= end.
func Valid(start, end time.Time) bool {
	return !Day(start).After(Day(end))
}
