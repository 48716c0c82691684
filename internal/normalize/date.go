package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// germanMonths maps German month names (and common abbreviations) to
// their English equivalents before layout-based parsing.
var germanMonths = map[string]string{
	"januar":    "January",
	"februar":   "February",
	"märz":      "March",
	"maerz":     "March",
	"april":     "April",
	"mai":       "May",
	"juni":      "June",
	"juli":      "July",
	"august":    "August",
	"september": "September",
	"oktober":   "October",
	"november":  "November",
	"dezember":  "December",
	"jan":       "Jan",
	"feb":       "Feb",
	"mär":       "Mar",
	"okt":       "Oct",
	"dez":       "Dec",
}

// absoluteLayouts are tried in order against the (month-translated)
// date string.
var absoluteLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"02.01.2006",
	"2.1.2006",
	"02/01/2006",
	"January 2, 2006",
	"2 January 2006",
	"2. January 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// relativeRe matches English and German relative date expressions such
// as "3 days ago", "2 weeks ago", "vor 3 Tagen", "vor 2 Wochen".
var relativeRe = regexp.MustCompile(`(?i)(?:vor\s+)?(\d+|a|an|einem|einer)\s+(day|days|week|weeks|month|months|hour|hours|tag|tagen|woche|wochen|monat|monaten|stunde|stunden)(?:\s+ago)?`)

// todayRe matches "today"/"yesterday" style postings in both locales.
var todayRe = regexp.MustCompile(`(?i)^(today|heute|just posted|gerade veröffentlicht)$`)
var yesterdayRe = regexp.MustCompile(`(?i)^(yesterday|gestern)$`)

// ParseDate resolves a raw posted-date string to an absolute timestamp.
// Relative expressions are anchored at `now` (the pipeline run time).
// Unparseable strings yield nil.
func ParseDate(raw string, now time.Time) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if todayRe.MatchString(s) {
		t := now
		return &t
	}
	if yesterdayRe.MatchString(s) {
		t := now.AddDate(0, 0, -1)
		return &t
	}

	if t := parseRelative(s, now); t != nil {
		return t
	}
	return parseAbsolute(s)
}

func parseRelative(s string, now time.Time) *time.Time {
	m := relativeRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}

	n := 1
	if v, err := strconv.Atoi(m[1]); err == nil {
		n = v
	}

	var t time.Time
	switch strings.ToLower(m[2]) {
	case "hour", "hours", "stunde", "stunden":
		t = now.Add(-time.Duration(n) * time.Hour)
	case "day", "days", "tag", "tagen":
		t = now.AddDate(0, 0, -n)
	case "week", "weeks", "woche", "wochen":
		t = now.AddDate(0, 0, -7*n)
	case "month", "months", "monat", "monaten":
		t = now.AddDate(0, -n, 0)
	default:
		return nil
	}
	return &t
}

func parseAbsolute(s string) *time.Time {
	translated := translateGermanMonths(s)
	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, translated); err == nil {
			return &t
		}
	}
	return nil
}

// translateGermanMonths rewrites German month names so the English
// time layouts apply.
func translateGermanMonths(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		key := strings.ToLower(strings.TrimRight(w, "."))
		if en, ok := germanMonths[key]; ok {
			words[i] = en
		}
	}
	return strings.Join(words, " ")
}
