package force

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Mission statuses. Pending is initial; Completed, Failed and Aborted are
// terminal.
const (
	MissionPending   = "Pending"
	MissionActive    = "Active"
	MissionCompleted = "Completed"
	MissionFailed    = "Failed"
	MissionAborted   = "Aborted"
)

// MissionStatuses lists the valid mission statuses in lifecycle order.
var MissionStatuses = []string{MissionPending, MissionActive, MissionCompleted, MissionFailed, MissionAborted}

func validMissionStatus(s string) bool {
	for _, v := range MissionStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func terminalMissionStatus(s string) bool {
	return s == MissionCompleted || s == MissionFailed || s == MissionAborted
}

// Objective is one completable sub-goal.
type Objective struct {
	Description string
	Completed   bool
	Added       time.Time
	CompletedAt time.Time
}

// Mission is an objective-bearing task bound to a location. Assigned teams
// are references; the Registry owns them.
type Mission struct {
	ID          string
	Name        string
	Description string
	Location    Vec2i
	Status      string
	Objectives  []Objective
	Teams       []*Team

	// Difficulty is 1..10. SuccessRate caches the last computed probability.
	Difficulty  int
	SuccessRate float64
	Rewards     map[string]int

	StartTime time.Time
	EndTime   time.Time
	Events    []string

	reportTail int
	now        Clock
	sink       eventSink
}

func newMission(id, name, description string, loc Vec2i, reportTail int, now Clock, sink eventSink) *Mission {
	if reportTail <= 0 {
		reportTail = 5
	}
	m := &Mission{
		ID:          id,
		Name:        name,
		Description: description,
		Location:    loc,
		Status:      MissionPending,
		Difficulty:  1,
		Rewards:     map[string]int{"experience": 10},
		reportTail:  reportTail,
		now:         now,
		sink:        sink,
	}
	m.logEvent(fmt.Sprintf("Mission created: %s", name))
	return m
}

// AddTeam assigns a team to the mission.
func (m *Mission) AddTeam(t *Team) {
	m.Teams = append(m.Teams, t)
	m.logEvent(fmt.Sprintf("Team %s added to mission", t.Name))
}

// AddObjective appends an objective. It never triggers the completion check,
// even when created pre-completed.
func (m *Mission) AddObjective(description string, completed bool) {
	m.Objectives = append(m.Objectives, Objective{
		Description: description,
		Completed:   completed,
		Added:       m.now(),
	})
	m.logEvent(fmt.Sprintf("Objective added: %s", description))
}

// CompleteObjective marks objective i done. Completing the last open
// objective finalizes the mission: Completed status, end time, success rate
// 100, and the experience reward granted once to every member of every
// assigned team.
func (m *Mission) CompleteObjective(i int) bool {
	if i < 0 || i >= len(m.Objectives) {
		return false
	}
	if m.Objectives[i].Completed {
		return true
	}
	m.Objectives[i].Completed = true
	m.Objectives[i].CompletedAt = m.now()
	m.logEvent(fmt.Sprintf("Objective completed: %s", m.Objectives[i].Description))

	for _, obj := range m.Objectives {
		if !obj.Completed {
			return true
		}
	}
	// The status guard keeps the reward fan-out a one-shot even if the
	// mission was force-completed earlier.
	if m.Status == MissionCompleted {
		return true
	}
	m.Status = MissionCompleted
	if m.EndTime.IsZero() {
		m.EndTime = m.now()
	}
	m.SuccessRate = 100
	m.logEvent("All objectives completed")
	for _, t := range m.Teams {
		for _, member := range t.Members {
			member.GainExperience(m.Rewards["experience"])
		}
	}
	return true
}

// UpdateStatus drives the lifecycle. Start and end times are recorded on the
// first transition into Active and into a terminal status respectively.
func (m *Mission) UpdateStatus(newStatus string) bool {
	if !validMissionStatus(newStatus) {
		return false
	}
	old := m.Status
	m.Status = newStatus
	if newStatus == MissionActive && m.StartTime.IsZero() {
		m.StartTime = m.now()
	} else if terminalMissionStatus(newStatus) && m.EndTime.IsZero() {
		m.EndTime = m.now()
	}
	m.logEvent(fmt.Sprintf("Status updated from %s to %s", old, m.Status))
	return true
}

// SetDifficulty accepts 1..10 and rebases the experience reward to 10x the
// level, overwriting any custom value.
func (m *Mission) SetDifficulty(level int) bool {
	if level < 1 || level > 10 {
		return false
	}
	m.Difficulty = level
	m.Rewards["experience"] = level * 10
	m.logEvent(fmt.Sprintf("Difficulty set to %d", level))
	return true
}

// AddReward sets an arbitrary reward entry.
func (m *Mission) AddReward(kind string, value int) {
	m.Rewards[kind] = value
	m.logEvent(fmt.Sprintf("Added reward: %s = %d", kind, value))
}

// CalculateSuccessProbability derives the mission's chance from assigned
// teams: average skill of Active members, scaled down by difficulty and by
// the active ratio. The result is cached in SuccessRate.
func (m *Mission) CalculateSuccessProbability() float64 {
	total, active := 0, 0
	skillSum := 0
	for _, t := range m.Teams {
		for _, member := range t.Members {
			total++
			if member.Status == StatusActive {
				active++
				for _, sk := range SkillNames {
					skillSum += member.Skills[sk]
				}
			}
		}
	}
	if total == 0 || active == 0 {
		return 0
	}

	activeRatio := float64(active) / float64(total)
	avgSkill := float64(skillSum) / float64(active*len(SkillNames))

	p := (avgSkill / 10) * (1 / float64(m.Difficulty)) * activeRatio * 100
	p = math.Min(100, math.Max(0, p))

	m.SuccessRate = math.Round(p*10) / 10
	m.logEvent(fmt.Sprintf("Success probability calculated: %.1f%%", m.SuccessRate))
	return m.SuccessRate
}

// MissionReport renders the full mission snapshot with per-objective check
// marks and the last few events.
func (m *Mission) MissionReport() string {
	completed := 0
	for _, obj := range m.Objectives {
		if obj.Completed {
			completed++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nMission Report: %s\n", m.Name)
	fmt.Fprintf(&b, "Status: %s\n", m.Status)
	fmt.Fprintf(&b, "Location: %s\n", m.Location)
	fmt.Fprintf(&b, "Description: %s\n", m.Description)
	fmt.Fprintf(&b, "Difficulty: %d/10\n", m.Difficulty)
	if !m.StartTime.IsZero() {
		fmt.Fprintf(&b, "Start time: %s\n", m.StartTime.Format(timeLayout))
	}
	if !m.EndTime.IsZero() {
		fmt.Fprintf(&b, "End time: %s\n", m.EndTime.Format(timeLayout))
		if !m.StartTime.IsZero() {
			fmt.Fprintf(&b, "Duration: %s\n", m.EndTime.Sub(m.StartTime))
		}
	}
	fmt.Fprintf(&b, "Objectives: %d/%d completed\n", completed, len(m.Objectives))
	for i, obj := range m.Objectives {
		mark := "✗"
		if obj.Completed {
			mark = "✓"
		}
		fmt.Fprintf(&b, "  %s %d. %s\n", mark, i+1, obj.Description)
	}
	b.WriteString("\nTeams assigned:\n")
	for _, t := range m.Teams {
		fmt.Fprintf(&b, "- %s (%d members)\n", t.Name, len(t.Members))
	}
	if len(m.Events) > 0 {
		b.WriteString("\nRecent events:\n")
		for _, e := range tail(m.Events, m.reportTail) {
			fmt.Fprintf(&b, "  - %s\n", e)
		}
	}

	m.logEvent("Mission report generated")
	return b.String()
}

// EventsTail returns the last n mission event lines.
func (m *Mission) EventsTail(n int) []string { return tail(m.Events, n) }

// LogEvent appends an externally produced mission event line.
func (m *Mission) LogEvent(desc string) { m.logEvent(desc) }

func (m *Mission) logEvent(desc string) {
	at := m.now()
	line := stamp(at, desc)
	m.Events = append(m.Events, line)
	if m.sink != nil {
		m.sink(JournalEntry{At: at, Scope: ScopeMission, ID: m.ID, Line: line})
	}
}

func (m *Mission) String() string {
	return fmt.Sprintf("Mission: %s (%s)", m.Name, m.Status)
}
