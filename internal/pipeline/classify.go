package pipeline

import (
	"fmt"
	"strings"
	"time"
)

// Season is the classification key for the Pre/Post split.
type Season string

const (
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonFall   Season = "Fall"
)

// startDateLayouts are the only accepted StartDate forms. Qualtrics
// exports use month/day order ("8/27/2025 10:13:40 AM"); ISO dates show
// up in hand-edited files. Anything else is treated as unparseable
// rather than guessed at - a wrong guess would silently misclassify the
// row, a blank classification is visible and recoverable.
var startDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04",
	"1/2/2006",
}

// ParseStartDate parses a StartDate cell against the accepted layouts.
// Dates are timezone-naive.
func ParseStartDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SeasonOf maps a month to its academic season: Jan-Jun Spring, Jul
// Summer, Aug-Dec Fall.
func SeasonOf(month time.Month) Season {
	switch {
	case month >= time.January && month <= time.June:
		return SeasonSpring
	case month == time.July:
		return SeasonSummer
	default:
		return SeasonFall
	}
}

// SemesterLabel formats the semester cell, e.g. "Fall 2024". The year is
// the calendar year of the date, taken verbatim.
func SemesterLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", SeasonOf(t.Month()), t.Year())
}

// PrePost classifies a month within an already-computed season:
//
//	Fall:   Aug-Oct Pre, Nov-Dec Post
//	Spring: Jan-Mar Pre, Apr-Jun Post
//	Summer: Jun-Jul Pre, Aug-Sep Post
//
// The Summer ranges deliberately overlap Fall's Pre boundary (Aug) and
// Spring's Post boundary (Jun): classification is keyed on the season,
// not the raw month, so a June date in a Summer row yields "Pre" while
// June in a Spring row yields "Post". This mirrors the source rule set
// exactly. A month outside both of a season's ranges is a gap and
// returns "".
func PrePost(month time.Month, season Season) string {
	switch season {
	case SeasonFall:
		switch {
		case month >= time.August && month <= time.October:
			return "Pre"
		case month == time.November || month == time.December:
			return "Post"
		}
	case SeasonSpring:
		switch {
		case month >= time.January && month <= time.March:
			return "Pre"
		case month >= time.April && month <= time.June:
			return "Post"
		}
	case SeasonSummer:
		switch {
		case month == time.June || month == time.July:
			return "Pre"
		case month == time.August || month == time.September:
			return "Post"
		}
	}
	return ""
}

// Classify derives both cells for one StartDate value. An empty or
// unparseable date yields ("", "") - the row is still emitted, just
// without classification.
func Classify(startDate string) (semester, prePost string) {
	t, ok := ParseStartDate(startDate)
	if !ok {
		return "", ""
	}
	season := SeasonOf(t.Month())
	return SemesterLabel(t), PrePost(t.Month(), season)
}
