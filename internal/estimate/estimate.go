// Package estimate derives an approximate account-creation date from a
// numeric Telegram ID. Telegram never exposes creation timestamps; the
// result is a heuristic ID-to-date interpolation, nothing more.
package estimate

import (
	"fmt"
	"strings"
	"time"
)

// idsPerDay is the assumed ID allocation rate used for interpolation
// between reference points. Purely a heuristic constant; observed rates
// span millions per day and precision here would be fictional.
const idsPerDay = 6_000_000

// futureClamp is subtracted from "now" when the raw interpolation lands
// in the future.
const futureClamp = 30 * 24 * time.Hour

// referencePoint pairs an ID threshold with the approximate calendar date
// IDs around that magnitude were first seen.
type referencePoint struct {
	id   int64
	date time.Time
}

// referencePoints is ascending by ID. Calibration from observed public
// registration data; treated as fixed.
var referencePoints = []referencePoint{
	{100_000_000, date(2013, time.August, 1)},
	{500_000_000, date(2016, time.May, 1)},
	{1_000_000_000, date(2018, time.December, 1)},
	{1_500_000_000, date(2020, time.August, 1)},
	{2_000_000_000, date(2021, time.December, 1)},
	{2_500_000_000, date(2023, time.March, 1)},
	{3_000_000_000, date(2024, time.June, 1)},
	{3_500_000_000, date(2025, time.September, 1)},
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Creation estimates the account-creation date for the given positive ID.
// Chat IDs must be passed by absolute value; the caller owns that
// approximation.
func Creation(id int64) time.Time {
	return CreationAt(id, time.Now().UTC())
}

// CreationAt is Creation with an injectable clock.
//
// It picks the reference point whose threshold is numerically closest to
// id (exact midpoint ties go to the smaller threshold), offsets its date
// by the ID distance at idsPerDay, and clamps future results to
// now minus 30 days.
func CreationAt(id int64, now time.Time) time.Time {
	closest := referencePoints[0]
	for _, rp := range referencePoints[1:] {
		if absDiff(rp.id, id) < absDiff(closest.id, id) {
			closest = rp
		}
	}

	offsetDays := float64(id-closest.id) / idsPerDay
	estimated := closest.date.Add(time.Duration(offsetDays * 24 * float64(time.Hour)))

	if estimated.After(now) {
		estimated = now.Add(-futureClamp)
	}
	return estimated
}

// Age renders the calendar difference between now and the creation date as
// a comma-joined list of non-zero components ("2 years, 3 months, 5 days"),
// or "Created today" when the dates coincide.
func Age(created time.Time) string {
	return AgeAt(created, time.Now().UTC())
}

// AgeAt is Age with an injectable clock.
func AgeAt(created, now time.Time) string {
	years, months, days := calendarDiff(created, now)

	var parts []string
	if years > 0 {
		parts = append(parts, fmt.Sprintf("%d years", years))
	}
	if months > 0 {
		parts = append(parts, fmt.Sprintf("%d months", months))
	}
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d days", days))
	}

	if len(parts) == 0 {
		return "Created today"
	}
	return strings.Join(parts, ", ")
}

// calendarDiff computes the (years, months, days) between from and to,
// borrowing from the next-larger unit the way humans count ages.
func calendarDiff(from, to time.Time) (years, months, days int) {
	if to.Before(from) {
		return 0, 0, 0
	}

	years = to.Year() - from.Year()
	months = int(to.Month()) - int(from.Month())
	days = to.Day() - from.Day()

	if days < 0 {
		// Borrow the length of the month preceding "to".
		prevMonthEnd := time.Date(to.Year(), to.Month(), 0, 0, 0, 0, 0, to.Location())
		days += prevMonthEnd.Day()
		months--
	}
	if months < 0 {
		months += 12
		years--
	}
	return years, months, days
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
