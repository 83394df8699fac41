package service

import (
	"time"

	"github.com/fsdevblog/pos-ledger/internal/domain"
)

const (
	daysInWeek     = 7
	monthsQuarter  = 3
	monthsInYear   = 12
	daysInFortnite = 14
)

// NextOccurrence возвращает следующую дату после from для частоты f. Месячные частоты считаются по календарю:
// если в целевом месяце нет такого дня, дата прижимается к его последнему дню (31 января + месяц = 29 февраля
// в високосный год). Неизвестная частота считается MONTHLY.
func NextOccurrence(from time.Time, f domain.Frequency) time.Time {
	switch f {
	case domain.FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case domain.FrequencyWeekly:
		return from.AddDate(0, 0, daysInWeek)
	case domain.FrequencyBiweekly:
		return from.AddDate(0, 0, daysInFortnite)
	case domain.FrequencyQuarterly:
		return addMonthsClamped(from, monthsQuarter)
	case domain.FrequencyAnnually:
		return addMonthsClamped(from, monthsInYear)
	default:
		return addMonthsClamped(from, 1)
	}
}

// addMonthsClamped в отличии от time.AddDate не переносит лишние дни в следующий месяц.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(firstOfTarget.Year(), firstOfTarget.Month(), t.Location()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	// нулевой день следующего месяца - последний день текущего.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// truncateDay отбрасывает время, оставляя полночь того же дня.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// monthKey ключ месяца в формате YYYY-MM. Лексикографический порядок ключей совпадает с хронологическим.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
