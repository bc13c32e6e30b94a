package desk

import (
	"time"

	"axiapac.com/hrdesk/utils"
)

// Locale controls how timestamps are shown. Calendar days (attendance dates, payroll
// periods) travel as midnight UTC and are shown in UTC so they never shift a day.
type Locale struct {
	Location       *time.Location
	DateLayout     string
	TimeLayout     string
	DateTimeLayout string
}

func DefaultLocale() Locale {
	return Locale{
		Location:       utils.BrisbaneTZ,
		DateLayout:     "02/01/2006",
		TimeLayout:     "3:04:05 pm",
		DateTimeLayout: "02/01/2006, 3:04:05 pm",
	}
}

func (l Locale) location() *time.Location {
	if l.Location == nil {
		return time.Local
	}
	return l.Location
}

func (l Locale) Day(t time.Time) string {
	return t.UTC().Format(l.DateLayout)
}

func (l Locale) Time(t time.Time) string {
	return t.In(l.location()).Format(l.TimeLayout)
}

func (l Locale) DateTime(t time.Time) string {
	return t.In(l.location()).Format(l.DateTimeLayout)
}

// Today is the local calendar day containing now, as midnight UTC.
func (l Locale) Today(now time.Time) time.Time {
	local := now.In(l.location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
