// Package period содержит календарную арифметику для расчёта сроков действия premium.
//
// В отличие от time.AddDate, функции не переносят лишние дни в следующий месяц:
// 31 января + 1 месяц даёт последний день февраля, а не 2 или 3 марта.
package period

import "time"

// AddMonths сдвигает t на n календарных месяцев с сохранением времени суток.
// Если в целевом месяце нет такого числа, берётся его последний день.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	target := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := DaysIn(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

// AddYears сдвигает t на n календарных лет (29 февраля переходит в 28 февраля).
func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, 12*n)
}

// DaysIn возвращает количество дней в месяце.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
