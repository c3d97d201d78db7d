package advisor

import (
	"testing"
	"time"

	"github.com/rezkam/taskmind/internal/domain"
	"github.com/rezkam/taskmind/internal/ptr"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func TestSuggestOptimalScheduling(t *testing.T) {
	testCases := []struct {
		name    string
		tasks   []domain.Task
		message string
		reason  string
	}{
		{
			name: "single overdue pending task",
			tasks: []domain.Task{
				{ID: "1", Priority: domain.PriorityLow, DueDate: ptr.To(now.Add(-time.Hour))},
				{ID: "2", Completed: true, Priority: domain.PriorityHigh, DueDate: ptr.To(now.Add(-48 * time.Hour))},
			},
			message: "You have 1 overdue task(s). Consider prioritizing these first.",
			reason:  "Overdue tasks should be completed immediately",
		},
		{
			name: "overdue wins over high priority",
			tasks: []domain.Task{
				{ID: "1", Priority: domain.PriorityHigh},
				{ID: "2", Priority: domain.PriorityMedium, DueDate: ptr.To(now.AddDate(0, 0, -2))},
				{ID: "3", Priority: domain.PriorityMedium, DueDate: ptr.To(now.AddDate(0, 0, -1))},
			},
			message: "You have 2 overdue task(s). Consider prioritizing these first.",
			reason:  "Overdue tasks should be completed immediately",
		},
		{
			name: "high priority pending",
			tasks: []domain.Task{
				{ID: "1", Priority: domain.PriorityHigh},
				{ID: "2", Priority: domain.PriorityHigh, Completed: true},
				{ID: "3", Priority: domain.PriorityLow, DueDate: ptr.To(now.Add(time.Hour))},
			},
			message: "Focus on 1 high priority task(s) first.",
			reason:  "High priority tasks require immediate attention",
		},
		{
			name: "due later today",
			tasks: []domain.Task{
				{ID: "1", Priority: domain.PriorityMedium, DueDate: ptr.To(now.Add(time.Hour))},
				{ID: "2", Priority: domain.PriorityMedium, DueDate: ptr.To(now.AddDate(0, 0, 3))},
			},
			message: "You have 1 task(s) due today. Plan your day accordingly.",
			reason:  "Tasks due today should be completed soon",
		},
		{
			name:    "nothing pressing",
			tasks:   []domain.Task{{ID: "1", Priority: domain.PriorityLow, DueDate: ptr.To(now.AddDate(0, 0, 3))}},
			message: "Great job! You're on top of your tasks. Consider planning ahead for upcoming deadlines.",
			reason:  "Maintain current productivity",
		},
		{
			name:    "empty collection",
			message: "Great job! You're on top of your tasks. Consider planning ahead for upcoming deadlines.",
			reason:  "Maintain current productivity",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := SuggestOptimalScheduling(tc.tasks, now)
			assert.Equal(t, tc.message, s.Message)
			assert.Equal(t, tc.reason, s.Reason)
			assert.Equal(t, now, s.SuggestedTime)
		})
	}
}

func TestGenerateSmartReminder(t *testing.T) {
	testCases := []struct {
		name     string
		due      *time.Time
		expected string
	}{
		{"no due date", nil, "No due date set for this task."},
		{"past", ptr.To(now.Add(-30 * time.Minute)), "This task is overdue!"},
		{"exactly now", ptr.To(now), "This task is overdue!"},
		{"one second ago", ptr.To(now.Add(-time.Second)), "This task is overdue!"},
		{"in one second", ptr.To(now.Add(time.Second)), "This task is due within the next hour."},
		{"in thirty minutes", ptr.To(now.Add(30 * time.Minute)), "This task is due within the next hour."},
		{"in 59 minutes", ptr.To(now.Add(59 * time.Minute)), "This task is due within the next hour."},
		{"in ninety minutes", ptr.To(now.Add(90 * time.Minute)), "This task is due within the next hour."},
		{"in five hours", ptr.To(now.Add(5*time.Hour + 59*time.Minute)), "This task is due in 5 hours."},
		{"in a day", ptr.To(now.Add(24 * time.Hour)), "This task is due in 24 hours."},
		{"in 47 hours", ptr.To(now.Add(47 * time.Hour)), "This task is due in 1 day(s)."},
		{"in three days", ptr.To(now.AddDate(0, 0, 3)), "This task is due in 3 day(s)."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, GenerateSmartReminder(domain.Task{DueDate: tc.due}, now))
		})
	}
}

func TestGenerateDailySummary(t *testing.T) {
	done := func(id string) domain.Task { return domain.Task{ID: id, Completed: true} }
	open := func(id string) domain.Task { return domain.Task{ID: id} }

	testCases := []struct {
		name    string
		tasks   []domain.Task
		rate    string
		closing string
	}{
		{
			name:    "overdue urges prioritization",
			tasks:   []domain.Task{done("1"), {ID: "2", DueDate: ptr.To(now.Add(-time.Hour))}},
			rate:    "• Completion rate: 50%",
			closing: "\n⚠️ You have 1 overdue task(s). Consider prioritizing these.",
		},
		{
			name:    "eighty percent congratulates",
			tasks:   []domain.Task{done("1"), done("2"), done("3"), done("4"), open("5")},
			rate:    "• Completion rate: 80%",
			closing: "\n🎉 Great job! You're doing excellent work.",
		},
		{
			name:    "sixty percent encourages",
			tasks:   []domain.Task{done("1"), done("2"), done("3"), open("4"), open("5")},
			rate:    "• Completion rate: 60%",
			closing: "\n👍 Good progress! Keep it up.",
		},
		{
			name:    "low rate motivates",
			tasks:   []domain.Task{done("1"), open("2"), open("3")},
			rate:    "• Completion rate: 33%",
			closing: "\n💪 You can do better! Focus on completing more tasks.",
		},
		{
			name:    "empty collection",
			rate:    "• Completion rate: 0%",
			closing: "\n💪 You can do better! Focus on completing more tasks.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			summary := GenerateDailySummary(tc.tasks, now)
			assert.Contains(t, summary, "Daily Summary:\n")
			assert.Contains(t, summary, tc.rate)
			assert.Contains(t, summary, tc.closing)
		})
	}
}

func TestGenerateDailySummary_Layout(t *testing.T) {
	tasks := []domain.Task{{ID: "1", Completed: true}, {ID: "2"}}

	expected := "Daily Summary:\n" +
		"• Total tasks: 2\n" +
		"• Completed: 1\n" +
		"• Pending: 1\n" +
		"• Overdue: 0\n" +
		"• Completion rate: 50%\n" +
		"\n💪 You can do better! Focus on completing more tasks."

	assert.Equal(t, expected, GenerateDailySummary(tasks, now))
}
