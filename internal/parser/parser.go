// Package parser turns a free-text utterance into partial task fields.
//
// Parsing is a best-effort heuristic: an ordered pipeline of independent rules,
// each inspecting the original input and proposing a field value. Anything a
// rule cannot recognise is left undetermined so the caller's defaults apply.
// Keyword matching is English-only and substring based, so "homework" is
// classified as work.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rezkam/taskmind/internal/domain"
)

// rule proposes field values for out by inspecting input.
type rule func(input string, now time.Time, out *domain.ParsedTask)

// pipeline runs in order; no rule depends on another rule's output.
var pipeline = []rule{
	detectPriority,
	detectDueDate,
	detectCategory,
	cleanTitle,
}

var (
	dateRe = regexp.MustCompile(`(?i)(today|tomorrow|next week|\d{1,2}/\d{1,2}/\d{4}|\d{1,2}/\d{1,2}|\d{4}-\d{2}-\d{2})`)

	// clockRe matches H:MM with an optional am/pm modifier.
	clockRe = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})(?:\s*(am|pm)\b)?`)
	// hourRe matches a bare hour with a required am/pm modifier, such as "5pm".
	hourRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(am|pm)\b`)

	dateTokenRe     = regexp.MustCompile(`(?i)\s*(today|tomorrow|next week|\d{1,2}/\d{1,2}/\d{4}|\d{1,2}/\d{1,2}|\d{4}-\d{2}-\d{2})\s*`)
	timeTokenRe     = regexp.MustCompile(`(?i)\s*(?:\bat\s+)?(?:\b\d{1,2}:\d{2}(?:\s*(?:am|pm)\b)?|\b\d{1,2}\s*(?:am|pm)\b)\s*`)
	priorityTokenRe = regexp.MustCompile(`(?i)\s*(high priority|low priority|urgent|asap|when possible)\s*`)
	spacesRe        = regexp.MustCompile(`\s+`)
)

type keywordGroup[T any] struct {
	keywords []string
	value    T
}

var priorityKeywords = []keywordGroup[domain.Priority]{
	{keywords: []string{"high priority", "urgent", "asap"}, value: domain.PriorityHigh},
	{keywords: []string{"low priority", "when possible"}, value: domain.PriorityLow},
}

var categoryKeywords = []keywordGroup[string]{
	{keywords: []string{"meeting", "call"}, value: "meetings"},
	{keywords: []string{"buy", "purchase", "shop"}, value: "shopping"},
	{keywords: []string{"work", "project"}, value: "work"},
	{keywords: []string{"personal", "home"}, value: "personal"},
}

// Parse extracts priority, due date, category and a cleaned title from input.
// Relative dates resolve against now, in now's location. Parse performs no I/O.
func Parse(input string, now time.Time) domain.ParsedTask {
	out := domain.ParsedTask{Tags: []string{}}
	for _, r := range pipeline {
		r(input, now, &out)
	}
	return out
}

func detectPriority(input string, _ time.Time, out *domain.ParsedTask) {
	if p, ok := firstGroup(input, priorityKeywords); ok {
		out.Priority = &p
	}
}

func detectCategory(input string, _ time.Time, out *domain.ParsedTask) {
	if c, ok := firstGroup(input, categoryKeywords); ok {
		out.Category = &c
	}
}

func detectDueDate(input string, now time.Time, out *domain.ParsedTask) {
	m := dateRe.FindStringSubmatch(input)
	if m == nil {
		return
	}

	day, ok := resolveDate(m[1], now)
	if !ok {
		return
	}

	hour, minute := 0, 0
	if h, mm, ok := findTime(input); ok {
		hour, minute = h, mm
	}

	y, mo, d := day.Date()
	due := time.Date(y, mo, d, hour, minute, 0, 0, now.Location())
	out.DueDate = &due
}

func cleanTitle(input string, _ time.Time, out *domain.ParsedTask) {
	s := dateTokenRe.ReplaceAllString(input, " ")
	s = timeTokenRe.ReplaceAllString(s, " ")
	s = priorityTokenRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))

	if s == "" {
		s = input
	}
	out.Title = &s
}

// resolveDate maps a matched date token to a calendar day.
func resolveDate(token string, now time.Time) (time.Time, bool) {
	switch strings.ToLower(token) {
	case "today":
		return now, true
	case "tomorrow":
		return now.AddDate(0, 0, 1), true
	case "next week":
		return now.AddDate(0, 0, 7), true
	}

	if strings.Contains(token, "-") {
		parts := strings.Split(token, "-")
		return literalDate(atoi(parts[0]), atoi(parts[1]), atoi(parts[2]), now.Location())
	}

	parts := strings.Split(token, "/")
	year := now.Year()
	if len(parts) == 3 {
		year = atoi(parts[2])
	}
	return literalDate(year, atoi(parts[0]), atoi(parts[1]), now.Location())
}

// literalDate rejects dates time.Date would normalise, such as 2/30.
func literalDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// findTime returns the 24-hour clock value of the first time token in input.
func findTime(input string) (hour, minute int, ok bool) {
	var meridiem string
	if m := clockRe.FindStringSubmatch(input); m != nil {
		hour, minute, meridiem = atoi(m[1]), atoi(m[2]), m[3]
	} else if m := hourRe.FindStringSubmatch(input); m != nil {
		hour, meridiem = atoi(m[1]), m[2]
	} else {
		return 0, 0, false
	}

	switch strings.ToLower(meridiem) {
	case "pm":
		if hour > 12 {
			return 0, 0, false
		}
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour > 12 {
			return 0, 0, false
		}
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

func firstGroup[T any](input string, groups []keywordGroup[T]) (T, bool) {
	lower := strings.ToLower(input)
	for _, g := range groups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g.value, true
			}
		}
	}
	var zero T
	return zero, false
}

// atoi is only called on regexp digit groups.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
