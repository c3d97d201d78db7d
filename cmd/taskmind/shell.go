package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rezkam/taskmind/internal/advisor"
	"github.com/rezkam/taskmind/internal/application/reminder"
	"github.com/rezkam/taskmind/internal/application/todo"
	"github.com/rezkam/taskmind/internal/domain"
	"github.com/rezkam/taskmind/internal/query"
)

const (
	minIDWidth = 8
	dateLayout = "2006-01-02 15:04"
)

var errUsage = errors.New("usage")

// shell executes slash commands against the store and writes results to out.
type shell struct {
	store   *todo.Store
	monitor *reminder.Monitor

	mu        sync.Mutex
	out       io.Writer
	sortKey   domain.SortKey
	sortOrder domain.SortOrder
}

func newShell(store *todo.Store, monitor *reminder.Monitor, out io.Writer) *shell {
	return &shell{
		store:     store,
		monitor:   monitor,
		out:       out,
		sortKey:   domain.DefaultSortKey,
		sortOrder: domain.DefaultSortOrder,
	}
}

type command struct {
	usage string
	help  string
	run   func(sh *shell, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"help":     {"/help", "show this help", (*shell).cmdHelp},
		"list":     {"/list [filter]", "list tasks (all, pending, completed, overdue, today, upcoming)", (*shell).cmdList},
		"search":   {"/search <term>", "list tasks whose title, description or tags match", (*shell).cmdSearch},
		"sort":     {"/sort <key> [asc|desc]", "order lists by dueDate, priority, created or title", (*shell).cmdSort},
		"filter":   {"/filter <filter>", "set the default list filter", (*shell).cmdFilter},
		"done":     {"/done <id>", "toggle completion", (*shell).cmdDone},
		"delete":   {"/delete <id>", "delete a task", (*shell).cmdDelete},
		"priority": {"/priority <id> <high|medium|low>", "change priority", (*shell).cmdPriority},
		"rename":   {"/rename <id> <title>", "change the title", (*shell).cmdRename},
		"describe": {"/describe <id> [text]", "set or clear the description", (*shell).cmdDescribe},
		"remind":   {"/remind <id> <YYYY-MM-DD HH:MM|off>", "set or clear the reminder", (*shell).cmdRemind},
		"stats":    {"/stats", "show task counts", (*shell).cmdStats},
		"summary":  {"/summary", "show the daily summary", (*shell).cmdSummary},
		"suggest":  {"/suggest", "suggest what to work on next", (*shell).cmdSuggest},
		"calendar": {"/calendar [YYYY-MM-DD]", "list tasks due on a day", (*shell).cmdCalendar},
		"theme":    {"/theme [light|dark]", "set or toggle the theme", (*shell).cmdTheme},
		"view":     {"/view <dashboard|list|calendar>", "set the view mode", (*shell).cmdView},
		"alerts":   {"/alerts", "show surfaced reminders", (*shell).cmdAlerts},
		"dismiss":  {"/dismiss <id|all>", "dismiss reminders for a task, or all", (*shell).cmdDismiss},
	}
}

// handle consumes lines starting with "/". Anything else is left for task capture.
func (sh *shell) handle(ctx context.Context, line string) bool {
	if !strings.HasPrefix(line, "/") {
		return false
	}

	fields := strings.Fields(strings.TrimPrefix(line, "/"))
	if len(fields) == 0 {
		fields = []string{"help"}
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	cmd, ok := commands[name]
	if !ok {
		sh.printf("unknown command /%s, try /help\n", name)
		return true
	}
	if err := cmd.run(sh, ctx, args); err != nil {
		if errors.Is(err, errUsage) {
			sh.printf("usage: %s\n", cmd.usage)
		} else {
			sh.printf("error: %v\n", err)
		}
	}
	return true
}

func (sh *shell) printf(format string, args ...any) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	fmt.Fprintf(sh.out, format, args...)
}

func (sh *shell) printAdded(task domain.Task) {
	sh.printf("added %s\n", sh.formatTask(task, idWidth(sh.store.Tasks())))
}

func (sh *shell) printTasks(tasks []domain.Task) {
	if len(tasks) == 0 {
		sh.printf("no tasks\n")
		return
	}
	width := idWidth(sh.store.Tasks())
	var b strings.Builder
	for _, t := range tasks {
		b.WriteString(sh.formatTask(t, width))
		b.WriteByte('\n')
	}
	sh.printf("%s", b.String())
}

func (sh *shell) formatTask(t domain.Task, width int) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s (%s, %s", shortID(t.ID, width), mark, t.Title, t.Priority, t.Category)
	if t.DueDate != nil {
		fmt.Fprintf(&b, ", due %s", t.DueDate.Format(dateLayout))
		if !t.Completed && t.IsOverdue(sh.store.Now()) {
			b.WriteString(" OVERDUE")
		}
	}
	b.WriteByte(')')
	for _, tag := range t.Tags {
		fmt.Fprintf(&b, " #%s", tag)
	}
	return b.String()
}

// idWidth returns the shortest prefix length, at least minIDWidth, that
// keeps every id in tasks distinct.
func idWidth(tasks []domain.Task) int {
	width := minIDWidth
	for ; ; width++ {
		seen := make(map[string]struct{}, len(tasks))
		unique, exhausted := true, true
		for _, t := range tasks {
			p := shortID(t.ID, width)
			if len(t.ID) > width {
				exhausted = false
			}
			if _, dup := seen[p]; dup {
				unique = false
				break
			}
			seen[p] = struct{}{}
		}
		if unique || exhausted {
			return width
		}
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func shortID(id string, width int) string {
	if len(id) <= width {
		return id
	}
	return id[:width]
}

func (sh *shell) currentQuery() query.Query {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return query.Query{
		Filter:    sh.store.CurrentFilter(),
		SortKey:   sh.sortKey,
		SortOrder: sh.sortOrder,
	}
}

func (sh *shell) cmdHelp(_ context.Context, _ []string) error {
	names := []string{
		"list", "search", "sort", "filter", "done", "delete", "priority", "rename",
		"describe", "remind", "stats", "summary", "suggest", "calendar", "theme",
		"view", "alerts", "dismiss", "help",
	}
	var b strings.Builder
	b.WriteString("Type a task in plain language, e.g. \"Call mom tomorrow at 5pm urgent\".\n")
	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(&b, "  %-38s %s\n", cmd.usage, cmd.help)
	}
	fmt.Fprintf(&b, "Filters: %s\n", joinValues(domain.Filters()))
	fmt.Fprintf(&b, "Priorities: %s\n", joinValues(domain.Priorities()))
	sh.printf("%s", b.String())
	return nil
}

func (sh *shell) cmdList(_ context.Context, args []string) error {
	q := sh.currentQuery()
	if len(args) > 0 {
		f, err := domain.NewFilter(args[0])
		if err != nil {
			return err
		}
		q.Filter = f
	}
	sh.printTasks(sh.store.View(q))
	return nil
}

func (sh *shell) cmdSearch(_ context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	q := sh.currentQuery()
	q.Filter = domain.FilterAll
	q.Search = strings.Join(args, " ")
	sh.printTasks(sh.store.View(q))
	return nil
}

func (sh *shell) cmdSort(_ context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return errUsage
	}
	key, err := domain.NewSortKey(args[0])
	if err != nil {
		return err
	}
	order := domain.DefaultSortOrder
	if len(args) == 2 {
		if order, err = domain.NewSortOrder(args[1]); err != nil {
			return err
		}
	}

	sh.mu.Lock()
	sh.sortKey, sh.sortOrder = key, order
	sh.mu.Unlock()

	sh.printf("sorting by %s %s\n", key, order)
	return nil
}

func (sh *shell) cmdFilter(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	f, err := domain.NewFilter(args[0])
	if err != nil {
		return err
	}
	sh.store.SetCurrentFilter(f)
	sh.printf("filter set to %s\n", f)
	return nil
}

// withTask resolves the id prefix in args[0].
func (sh *shell) withTask(args []string, minArgs int, fn func(domain.Task, []string) error) error {
	if len(args) < minArgs {
		return errUsage
	}
	task, err := sh.store.FindByPrefix(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return fn(task, args[1:])
}

func (sh *shell) cmdDone(_ context.Context, args []string) error {
	return sh.withTask(args, 1, func(t domain.Task, _ []string) error {
		if !sh.store.ToggleTask(t.ID) {
			return domain.ErrTaskNotFound
		}
		state := "completed"
		if t.Completed {
			state = "reopened"
		}
		sh.printf("%s %s\n", state, t.Title)
		return nil
	})
}

func (sh *shell) cmdDelete(_ context.Context, args []string) error {
	return sh.withTask(args, 1, func(t domain.Task, _ []string) error {
		if !sh.store.DeleteTask(t.ID) {
			return domain.ErrTaskNotFound
		}
		sh.printf("deleted %s\n", t.Title)
		return nil
	})
}

func (sh *shell) update(id string, patch domain.TaskPatch) error {
	if !sh.store.UpdateTask(id, patch) {
		return domain.ErrTaskNotFound
	}
	task, _ := sh.store.Task(id)
	sh.printf("updated %s\n", sh.formatTask(task, idWidth(sh.store.Tasks())))
	return nil
}

func (sh *shell) cmdPriority(_ context.Context, args []string) error {
	return sh.withTask(args, 2, func(t domain.Task, rest []string) error {
		p, err := domain.NewPriority(rest[0])
		if err != nil {
			return err
		}
		return sh.update(t.ID, domain.TaskPatch{Priority: &p})
	})
}

func (sh *shell) cmdRename(_ context.Context, args []string) error {
	return sh.withTask(args, 2, func(t domain.Task, rest []string) error {
		title, err := domain.NewTitle(strings.Join(rest, " "))
		if err != nil {
			return err
		}
		s := title.String()
		return sh.update(t.ID, domain.TaskPatch{Title: &s})
	})
}

func (sh *shell) cmdDescribe(_ context.Context, args []string) error {
	return sh.withTask(args, 1, func(t domain.Task, rest []string) error {
		if len(rest) == 0 {
			return sh.update(t.ID, domain.TaskPatch{ClearDescription: true})
		}
		d := strings.Join(rest, " ")
		if utf8.RuneCountInString(d) > domain.DescriptionMaxLength {
			return fmt.Errorf("description exceeds %d characters", domain.DescriptionMaxLength)
		}
		return sh.update(t.ID, domain.TaskPatch{Description: &d})
	})
}

func (sh *shell) cmdRemind(_ context.Context, args []string) error {
	return sh.withTask(args, 2, func(t domain.Task, rest []string) error {
		value := strings.Join(rest, " ")
		if strings.EqualFold(value, "off") {
			return sh.update(t.ID, domain.TaskPatch{ClearReminder: true})
		}
		at, err := time.ParseInLocation(dateLayout, value, sh.store.Now().Location())
		if err != nil {
			return errUsage
		}
		return sh.update(t.ID, domain.TaskPatch{Reminder: &at})
	})
}

func (sh *shell) cmdStats(_ context.Context, _ []string) error {
	s := sh.store.TaskStats()
	sh.printf("total %d, completed %d, pending %d, overdue %d, today %d, upcoming %d (%d%% done)\n",
		s.Total, s.Completed, s.Pending, s.Overdue, s.Today, s.Upcoming, s.CompletionRate())
	return nil
}

func (sh *shell) cmdSummary(_ context.Context, _ []string) error {
	sh.printf("%s\n", advisor.GenerateDailySummary(sh.store.Tasks(), sh.store.Now()))
	return nil
}

func (sh *shell) cmdSuggest(_ context.Context, _ []string) error {
	s := advisor.SuggestOptimalScheduling(sh.store.Tasks(), sh.store.Now())
	sh.printf("%s\n  %s\n", s.Message, s.Reason)
	return nil
}

func (sh *shell) cmdCalendar(_ context.Context, args []string) error {
	now := sh.store.Now()
	day := now
	if len(args) > 0 {
		d, err := time.ParseInLocation(time.DateOnly, args[0], now.Location())
		if err != nil {
			return errUsage
		}
		day = d
	}
	q := sh.currentQuery()
	sh.printTasks(query.Sort(query.TasksOnDate(sh.store.Tasks(), day), q.SortKey, q.SortOrder))
	return nil
}

func (sh *shell) cmdTheme(_ context.Context, args []string) error {
	theme := sh.store.Theme().Toggle()
	if len(args) > 0 {
		t, err := domain.NewTheme(args[0])
		if err != nil {
			return err
		}
		theme = t
	}
	sh.store.SetTheme(theme)
	sh.printf("theme set to %s\n", theme)
	return nil
}

func (sh *shell) cmdView(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	mode, err := domain.NewViewMode(args[0])
	if err != nil {
		return err
	}
	sh.store.SetViewMode(mode)
	sh.printf("view set to %s\n", mode)
	return nil
}

func (sh *shell) cmdAlerts(_ context.Context, _ []string) error {
	alerts := sh.monitor.Surfaced()
	if len(alerts) == 0 {
		sh.printf("no reminders\n")
		return nil
	}
	width := idWidth(sh.store.Tasks())
	var b strings.Builder
	for _, a := range alerts {
		fmt.Fprintf(&b, "%s %s: %s (%s)\n", shortID(a.TaskID, width), a.Title, a.Body, a.Hint)
	}
	sh.printf("%s", b.String())
	return nil
}

func (sh *shell) cmdDismiss(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if strings.EqualFold(args[0], "all") {
		sh.monitor.Clear()
		sh.printf("reminders cleared\n")
		return nil
	}

	var matched []string
	for _, a := range sh.monitor.Surfaced() {
		if strings.HasPrefix(a.TaskID, args[0]) {
			matched = append(matched, a.TaskID)
			sh.monitor.Dismiss(a.TaskID, a.Condition)
		}
	}
	if len(matched) == 0 {
		return fmt.Errorf("%s: no reminders", args[0])
	}
	sh.printf("dismissed %d reminder(s)\n", len(matched))
	return nil
}
