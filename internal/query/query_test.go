package query

import (
	"testing"
	"time"

	"github.com/rezkam/taskmind/internal/domain"
	"github.com/rezkam/taskmind/internal/ptr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func ids(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

// fixture covers every status bucket once.
func fixture() []domain.Task {
	return []domain.Task{
		{ID: "done", Title: "Finished report", Completed: true, Priority: domain.PriorityLow, Category: "work", CreatedAt: now.Add(-5 * time.Hour)},
		{ID: "overdue", Title: "Pay rent", Priority: domain.PriorityHigh, Category: "personal", DueDate: ptr.To(now.AddDate(0, 0, -1)), CreatedAt: now.Add(-4 * time.Hour)},
		{ID: "today", Title: "call Mom", Priority: domain.PriorityMedium, Category: "meetings", DueDate: ptr.To(now.Add(2 * time.Hour)), CreatedAt: now.Add(-3 * time.Hour), Tags: []string{"Family"}},
		{ID: "upcoming", Title: "Buy gift", Priority: domain.PriorityMedium, Category: "shopping", DueDate: ptr.To(now.AddDate(0, 0, 3)), CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "someday", Title: "Learn piano", Priority: domain.PriorityLow, Category: "general", Description: ptr.To("Scales every morning"), CreatedAt: now.Add(-1 * time.Hour)},
	}
}

func TestFilterByStatus(t *testing.T) {
	testCases := []struct {
		filter   domain.Filter
		expected []string
	}{
		{domain.FilterAll, []string{"done", "overdue", "today", "upcoming", "someday"}},
		{domain.FilterCompleted, []string{"done"}},
		{domain.FilterPending, []string{"overdue", "today", "upcoming", "someday"}},
		{domain.FilterOverdue, []string{"overdue"}},
		{domain.FilterToday, []string{"today"}},
		{domain.FilterUpcoming, []string{"upcoming"}},
	}

	for _, tc := range testCases {
		t.Run(string(tc.filter), func(t *testing.T) {
			assert.Equal(t, tc.expected, ids(FilterByStatus(fixture(), tc.filter, now)))
		})
	}
}

func TestFilterByStatus_UnknownFilterMatchesNothing(t *testing.T) {
	assert.Empty(t, FilterByStatus(fixture(), domain.Filter("archived"), now))
}

func TestFilterByStatus_CompletedAndPendingPartition(t *testing.T) {
	tasks := fixture()
	completed := FilterByStatus(tasks, domain.FilterCompleted, now)
	pending := FilterByStatus(tasks, domain.FilterPending, now)

	assert.Len(t, append(completed, pending...), len(tasks))
	assert.ElementsMatch(t, ids(tasks), append(ids(completed), ids(pending)...))
}

func TestSearch(t *testing.T) {
	testCases := []struct {
		term     string
		expected []string
	}{
		{"", []string{"done", "overdue", "today", "upcoming", "someday"}},
		{"   ", []string{"done", "overdue", "today", "upcoming", "someday"}},
		{"MOM", []string{"today"}},
		{"family", []string{"today"}},
		{"scales", []string{"someday"}},
		{"shopping", []string{"upcoming"}},
		{"nothing-matches", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.term, func(t *testing.T) {
			assert.Equal(t, tc.expected, ids(Search(fixture(), tc.term)))
		})
	}
}

func TestSort_DueDate(t *testing.T) {
	asc := Sort(fixture(), domain.SortByDueDate, domain.SortAsc)
	assert.Equal(t, []string{"overdue", "today", "upcoming", "done", "someday"}, ids(asc))

	desc := Sort(fixture(), domain.SortByDueDate, domain.SortDesc)
	assert.Equal(t, []string{"done", "someday", "upcoming", "today", "overdue"}, ids(desc))
}

func TestSort_Priority(t *testing.T) {
	desc := Sort(fixture(), domain.SortByPriority, domain.SortDesc)
	assert.Equal(t, []string{"overdue", "today", "upcoming", "done", "someday"}, ids(desc))

	asc := Sort(fixture(), domain.SortByPriority, domain.SortAsc)
	assert.Equal(t, []string{"done", "someday", "today", "upcoming", "overdue"}, ids(asc))
}

func TestSort_CreatedAndTitle(t *testing.T) {
	created := Sort(fixture(), domain.SortByCreated, domain.SortDesc)
	assert.Equal(t, []string{"someday", "upcoming", "today", "overdue", "done"}, ids(created))

	title := Sort(fixture(), domain.SortByTitle, domain.SortAsc)
	assert.Equal(t, []string{"upcoming", "today", "done", "someday", "overdue"}, ids(title))
}

func TestSort_StableOnTies(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Title: "same"},
		{ID: "b", Title: "Same"},
		{ID: "c", Title: "SAME"},
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids(Sort(tasks, domain.SortByTitle, domain.SortAsc)))
	assert.Equal(t, []string{"a", "b", "c"}, ids(Sort(tasks, domain.SortByTitle, domain.SortDesc)))
	assert.Equal(t, []string{"a", "b", "c"}, ids(Sort(tasks, domain.SortByDueDate, domain.SortAsc)))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	tasks := fixture()
	_ = Sort(tasks, domain.SortByTitle, domain.SortAsc)
	assert.Equal(t, []string{"done", "overdue", "today", "upcoming", "someday"}, ids(tasks))
}

func TestStats(t *testing.T) {
	tasks := fixture()
	s := Stats(tasks, now)

	assert.Equal(t, domain.TaskStats{Total: 5, Completed: 1, Pending: 4, Overdue: 1, Today: 1, Upcoming: 1}, s)
	assert.Equal(t, len(tasks), s.Total)
	assert.Equal(t, s.Total, s.Completed+s.Pending)
}

func TestStats_Empty(t *testing.T) {
	assert.Equal(t, domain.TaskStats{}, Stats(nil, now))
}

func TestTasksOnDate(t *testing.T) {
	tasks := fixture()
	tasks[0].DueDate = ptr.To(now.Add(-time.Hour))

	assert.Equal(t, []string{"done", "today"}, ids(TasksOnDate(tasks, now)))
	assert.Equal(t, []string{"overdue"}, ids(TasksOnDate(tasks, now.AddDate(0, 0, -1))))
}

func TestApply(t *testing.T) {
	result := Apply(fixture(), Query{
		Filter:    domain.FilterPending,
		SortKey:   domain.SortByPriority,
		SortOrder: domain.SortDesc,
	}, now)
	assert.Equal(t, []string{"overdue", "today", "upcoming", "someday"}, ids(result))

	result = Apply(fixture(), Query{Search: "b"}, now)
	require.Len(t, result, 1)
	assert.Equal(t, "upcoming", result[0].ID)
}
