package models

import (
	"fmt"
	"sort"
	"strings"
)

type PrivacyStatus string

const (
	PrivacyPrivate PrivacyStatus = "private"
	PrivacyPublic  PrivacyStatus = "public"
)

// ValidPrivacyStatus reports whether s is one of the two legal states.
func ValidPrivacyStatus(s PrivacyStatus) bool {
	return s == PrivacyPrivate || s == PrivacyPublic
}

type PlannerType string

const (
	PlannerDaily    PlannerType = "daily"
	PlannerProject  PlannerType = "project"
	PlannerReminder PlannerType = "reminder"
)

// Planner is a scheduling document. Exactly one of the variant payloads
// (Daily, Project, Reminder) is non-nil, matching Type.
type Planner struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Author   string        `json:"author,omitempty"`
	Privacy  PrivacyStatus `json:"privacy"`
	Type     PlannerType   `json:"type"`
	Daily    *DailyAgenda  `json:"daily,omitempty"`
	Project  *ProjectBoard `json:"project,omitempty"`
	Reminder *ReminderList `json:"reminder,omitempty"`
}

// Edit dispatches a key/value edit to the planner variant. The meaning
// of key and value depends on the type: a time slot and agenda text for
// daily planners, a task and status column for project planners, a task
// and due date for reminder planners.
func (p *Planner) Edit(key, value string) bool {
	switch p.Type {
	case PlannerDaily:
		return p.Daily.Edit(key, value)
	case PlannerProject:
		return p.Project.Edit(key, value)
	case PlannerReminder:
		return p.Reminder.Edit(key, value)
	}
	return false
}

// NumAgendas returns the number of filled agenda entries.
func (p *Planner) NumAgendas() int {
	switch p.Type {
	case PlannerDaily:
		return len(p.Daily.Agenda)
	case PlannerProject:
		n := 0
		for _, col := range p.Project.Columns {
			n += len(col.Tasks)
		}
		return n
	case PlannerReminder:
		return len(p.Reminder.Tasks)
	}
	return 0
}

// String renders a complete, deterministic summary of the planner state.
func (p *Planner) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s planner #%s: %s [%s]", p.Type, p.ID, p.Name, p.Privacy)
	if p.Author != "" {
		fmt.Fprintf(&b, " by %s", p.Author)
	}
	b.WriteString("\n")
	switch p.Type {
	case PlannerDaily:
		p.Daily.render(&b)
	case PlannerProject:
		p.Project.render(&b)
	case PlannerReminder:
		p.Reminder.render(&b)
	}
	return b.String()
}

// DailyAgenda maps fixed HH:MM time slots, spaced Interval minutes apart
// between Start (inclusive) and End (exclusive), to agenda text.
type DailyAgenda struct {
	Start    string            `json:"start"`
	End      string            `json:"end"`
	Interval int               `json:"interval"`
	Slots    []string          `json:"slots"`
	Agenda   map[string]string `json:"agenda"`
}

// NewDailyAgenda builds the slot grid. Start and End are HH:MM clock
// times with Start < End; Interval is a positive minute count.
func NewDailyAgenda(start, end string, interval int) (*DailyAgenda, error) {
	startMin, err := ClockToMinutes(start)
	if err != nil {
		return nil, err
	}
	endMin, err := ClockToMinutes(end)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %d", interval)
	}
	if startMin >= endMin {
		return nil, fmt.Errorf("start time %s is not before end time %s", start, end)
	}

	var slots []string
	for m := startMin; m < endMin; m += interval {
		slots = append(slots, minutesToClock(m))
	}
	return &DailyAgenda{
		Start:    start,
		End:      end,
		Interval: interval,
		Slots:    slots,
		Agenda:   make(map[string]string),
	}, nil
}

// Edit writes agenda text into the slot matching timeStr. A time between
// slots resolves to the nearest one; on an exact tie the earlier slot
// wins. Returns false for an unparseable time.
func (d *DailyAgenda) Edit(timeStr, agenda string) bool {
	slot, ok := d.NearestSlot(timeStr)
	if !ok {
		return false
	}
	if d.Agenda == nil {
		d.Agenda = make(map[string]string)
	}
	d.Agenda[slot] = agenda
	return true
}

// NearestSlot resolves an HH:MM time to the closest slot in the grid.
func (d *DailyAgenda) NearestSlot(timeStr string) (string, bool) {
	target, err := ClockToMinutes(timeStr)
	if err != nil || len(d.Slots) == 0 {
		return "", false
	}
	best := d.Slots[0]
	bestDist := -1
	for _, slot := range d.Slots {
		m, err := ClockToMinutes(slot)
		if err != nil {
			continue
		}
		dist := m - target
		if dist < 0 {
			dist = -dist
		}
		// Strict comparison keeps the earlier slot on ties, slots are
		// in ascending order.
		if bestDist < 0 || dist < bestDist {
			best = slot
			bestDist = dist
		}
	}
	return best, bestDist >= 0
}

func (d *DailyAgenda) render(b *strings.Builder) {
	fmt.Fprintf(b, "  %s - %s every %d min\n", d.Start, d.End, d.Interval)
	for _, slot := range d.Slots {
		fmt.Fprintf(b, "  %s  %s\n", slot, d.Agenda[slot])
	}
}

// ProjectColumn is one named status column holding task names.
type ProjectColumn struct {
	Heading string   `json:"heading"`
	Tasks   []string `json:"tasks"`
}

// ProjectBoard tracks tasks across three status columns; every task
// lives in exactly one column.
type ProjectBoard struct {
	Columns []ProjectColumn `json:"columns"`
}

func NewProjectBoard(first, second, third string) *ProjectBoard {
	return &ProjectBoard{
		Columns: []ProjectColumn{
			{Heading: first},
			{Heading: second},
			{Heading: third},
		},
	}
}

// Edit moves or adds a task. If key names an existing task, value must
// name a column and the task moves there. Otherwise key addresses a
// column by heading or 0-based index and value is appended as a new
// task.
func (p *ProjectBoard) Edit(key, value string) bool {
	if from := p.columnOf(key); from >= 0 {
		to := p.columnIndex(value)
		if to < 0 {
			return false
		}
		p.remove(from, key)
		p.Columns[to].Tasks = append(p.Columns[to].Tasks, key)
		return true
	}
	to := p.columnIndex(key)
	if to < 0 || value == "" {
		return false
	}
	if p.columnOf(value) >= 0 {
		return false
	}
	p.Columns[to].Tasks = append(p.Columns[to].Tasks, value)
	return true
}

func (p *ProjectBoard) columnOf(task string) int {
	for i, col := range p.Columns {
		for _, t := range col.Tasks {
			if t == task {
				return i
			}
		}
	}
	return -1
}

func (p *ProjectBoard) columnIndex(key string) int {
	for i, col := range p.Columns {
		if col.Heading == key {
			return i
		}
	}
	var idx int
	if _, err := fmt.Sscanf(key, "%d", &idx); err == nil && idx >= 0 && idx < len(p.Columns) {
		return idx
	}
	return -1
}

func (p *ProjectBoard) remove(col int, task string) {
	tasks := p.Columns[col].Tasks
	for i, t := range tasks {
		if t == task {
			p.Columns[col].Tasks = append(tasks[:i], tasks[i+1:]...)
			return
		}
	}
}

func (p *ProjectBoard) render(b *strings.Builder) {
	for _, col := range p.Columns {
		fmt.Fprintf(b, "  [%s]\n", col.Heading)
		for _, t := range col.Tasks {
			fmt.Fprintf(b, "    - %s\n", t)
		}
	}
}

// ReminderTask is one row of a reminder planner.
type ReminderTask struct {
	Name string `json:"name"`
	Date string `json:"date"` // YYYY-MM-DD
	Done bool   `json:"done"`
}

// ReminderList maps tasks to due dates and completion under three
// user-chosen column headings.
type ReminderList struct {
	TaskHeading   string         `json:"task_heading"`
	DateHeading   string         `json:"date_heading"`
	StatusHeading string         `json:"status_heading"`
	Tasks         []ReminderTask `json:"tasks"`
}

func NewReminderList(taskHeading, dateHeading, statusHeading string) *ReminderList {
	return &ReminderList{
		TaskHeading:   taskHeading,
		DateHeading:   dateHeading,
		StatusHeading: statusHeading,
	}
}

// Edit sets the due date of task, creating the task if absent. Returns
// false for an invalid date or empty task name.
func (r *ReminderList) Edit(task, date string) bool {
	if task == "" || !ValidDate(date) {
		return false
	}
	for i := range r.Tasks {
		if r.Tasks[i].Name == task {
			r.Tasks[i].Date = date
			return true
		}
	}
	r.Tasks = append(r.Tasks, ReminderTask{Name: task, Date: date})
	return true
}

// SetStatus updates the completion flag of an existing task.
func (r *ReminderList) SetStatus(task string, done bool) bool {
	for i := range r.Tasks {
		if r.Tasks[i].Name == task {
			r.Tasks[i].Done = done
			return true
		}
	}
	return false
}

func (r *ReminderList) render(b *strings.Builder) {
	fmt.Fprintf(b, "  %s | %s | %s\n", r.TaskHeading, r.DateHeading, r.StatusHeading)
	tasks := make([]ReminderTask, len(r.Tasks))
	copy(tasks, r.Tasks)
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Date < tasks[j].Date })
	for _, t := range tasks {
		status := "pending"
		if t.Done {
			status = "done"
		}
		fmt.Fprintf(b, "  %s | %s | %s\n", t.Name, t.Date, status)
	}
}
