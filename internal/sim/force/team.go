package force

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Team statuses are free-form labels, unlike soldier statuses.
const (
	TeamStandby   = "Standby"
	TeamOnMission = "On Mission"
)

// Team is a named group of soldiers. Members are references into the
// Registry's roster; the team never owns them.
type Team struct {
	ID        string
	Name      string
	Members   []*Soldier
	Commander *Soldier
	Location  Vec2i
	Status    string
	Created   time.Time

	// Inventory caches the last equipment aggregation. EquipmentReport
	// recomputes it; members' personal equipment stays the source of truth.
	Inventory map[string]int

	Chat []string
	Log  []string

	missionSeq int
	now        Clock
	sink       eventSink
}

func newTeam(id, name string, now Clock, sink eventSink) *Team {
	return &Team{
		ID:        id,
		Name:      name,
		Status:    TeamStandby,
		Created:   now(),
		Inventory: map[string]int{},
		now:       now,
		sink:      sink,
	}
}

// AddMember appends a soldier to the member list.
func (t *Team) AddMember(s *Soldier) {
	t.Members = append(t.Members, s)
	t.logEvent(fmt.Sprintf("%s %s added to team", s.Rank, s.Name))
}

// RemoveMember drops a soldier by reference. The soldier itself lives on in
// the Registry.
func (t *Team) RemoveMember(s *Soldier) bool {
	for i, m := range t.Members {
		if m == s {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			if t.Commander == s {
				t.Commander = nil
			}
			t.logEvent(fmt.Sprintf("%s %s removed from team", s.Rank, s.Name))
			return true
		}
	}
	return false
}

// SetCommander promotes a current member to commander. Non-members are
// rejected.
func (t *Team) SetCommander(s *Soldier) bool {
	for _, m := range t.Members {
		if m == s {
			t.Commander = s
			t.logEvent(fmt.Sprintf("%s %s is now commander", s.Rank, s.Name))
			return true
		}
	}
	t.logEvent(fmt.Sprintf("%s %s is not in team", s.Rank, s.Name))
	return false
}

// TeamStatus renders the member roster with counts, commander and location.
func (t *Team) TeamStatus() string {
	active, injured := 0, 0
	for _, m := range t.Members {
		switch m.Status {
		case StatusActive:
			active++
		case StatusInjured:
			injured++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nTeam %s Status Report:\n", t.Name)
	fmt.Fprintf(&b, "Total members: %d, Active: %d, Injured: %d\n", len(t.Members), active, injured)
	if t.Commander != nil {
		fmt.Fprintf(&b, "Commander: %s %s\n", t.Commander.Rank, t.Commander.Name)
	}
	fmt.Fprintf(&b, "Current location: %s\n", t.Location)
	fmt.Fprintf(&b, "Current status: %s\n\n", t.Status)
	b.WriteString("Members:\n")
	for _, m := range t.Members {
		fmt.Fprintf(&b, "%s %s: %s at %s, Health: %d%%\n", m.Rank, m.Name, m.Status, m.Location, m.Health)
	}

	t.logEvent("Team status report generated")
	return b.String()
}

// BroadcastMessage delivers to every member and records the line in chat.
func (t *Team) BroadcastMessage(text, sender string) {
	t.Chat = append(t.Chat, fmt.Sprintf("%s - %s: %s", t.now().Format(timeLayout), sender, text))
	for _, m := range t.Members {
		m.ReceiveMessage(sender, text)
	}
	t.logEvent(fmt.Sprintf("Message broadcast from %s: %s", sender, text))
}

// DirectMessage delivers to the member whose name matches exactly. Fails if
// no member matches.
func (t *Team) DirectMessage(sender, recipientName, text string) bool {
	for _, m := range t.Members {
		if m.Name == recipientName {
			t.Chat = append(t.Chat, fmt.Sprintf("%s - %s to %s: %s", t.now().Format(timeLayout), sender, recipientName, text))
			m.ReceiveMessage(sender, text)
			t.logEvent(fmt.Sprintf("Direct message from %s to %s", sender, recipientName))
			return true
		}
	}
	t.logEvent(fmt.Sprintf("Recipient %s not found", recipientName))
	return false
}

// AssignTeamMission labels every Active member with a sequential mission tag
// and flips the team status. Returns the mission number.
func (t *Team) AssignTeamMission(description string) int {
	t.missionSeq++
	label := fmt.Sprintf("Mission #%d: %s", t.missionSeq, description)
	for _, m := range t.Members {
		if m.Status == StatusActive {
			m.AssignMission(label)
		}
	}
	t.Status = TeamOnMission
	t.logEvent(fmt.Sprintf("Team assigned to %s", label))
	return t.missionSeq
}

// MoveTeam fans the team out around target: slot 0 on target, odd slots to
// the right, even slots to the left, spaced by spacing. Only Active members
// relocate; the rest keep their positions but still occupy their slot index.
func (t *Team) MoveTeam(target Vec2i, spacing int) bool {
	if len(t.Members) == 0 {
		return false
	}
	t.logEvent(fmt.Sprintf("Moving team to %s", target))

	for i, m := range t.Members {
		if m.Status != StatusActive {
			continue
		}
		pos := target
		switch {
		case i == 0:
		case i%2 == 1:
			pos.X += ((i + 1) / 2) * spacing
		default:
			pos.X -= (i / 2) * spacing
		}
		m.UpdateLocation(pos)
	}
	t.Location = target
	return true
}

// EquipmentReport recomputes the team-wide aggregation from members'
// personal equipment, refreshes the cache and renders it.
func (t *Team) EquipmentReport() string {
	agg := map[string]int{}
	for _, m := range t.Members {
		for item, qty := range m.Equipment {
			agg[item] += qty
		}
	}
	t.Inventory = agg
	t.logEvent("Equipment report generated")

	items := make([]string, 0, len(agg))
	for item := range agg {
		items = append(items, item)
	}
	sort.Strings(items)

	var b strings.Builder
	fmt.Fprintf(&b, "\nTeam %s Equipment Report:\n", t.Name)
	for _, item := range items {
		fmt.Fprintf(&b, "- %s: %d\n", item, agg[item])
	}
	return b.String()
}

// DistributeEquipment splits each item evenly across Active members, handing
// the remainder one unit at a time to the first members in order. Fails when
// no member is Active.
func (t *Team) DistributeEquipment(items map[string]int) bool {
	var active []*Soldier
	for _, m := range t.Members {
		if m.Status == StatusActive {
			active = append(active, m)
		}
	}
	if len(active) == 0 {
		t.logEvent("No active members to distribute equipment to")
		return false
	}

	names := make([]string, 0, len(items))
	for item := range items {
		names = append(names, item)
	}
	sort.Strings(names)

	for _, item := range names {
		qty := items[item]
		per := qty / len(active)
		rem := qty % len(active)
		if per > 0 {
			for _, m := range active {
				m.AddEquipment(item, per)
			}
		}
		for i := 0; i < rem; i++ {
			active[i].AddEquipment(item, 1)
		}
	}
	t.logEvent(fmt.Sprintf("Equipment distributed among %d active members", len(active)))
	return true
}

// TeamSkillReport totals the four skills over every member, Active or not,
// and averages over the full member count.
func (t *Team) TeamSkillReport() string {
	totals := map[string]int{}
	for _, m := range t.Members {
		for _, sk := range SkillNames {
			totals[sk] += m.Skills[sk]
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nTeam %s Skill Report:\n", t.Name)
	for _, sk := range SkillNames {
		avg := 0.0
		if len(t.Members) > 0 {
			avg = float64(totals[sk]) / float64(len(t.Members))
		}
		fmt.Fprintf(&b, "- %s: Total %d, Avg %.1f\n", titleCase(sk), totals[sk], avg)
	}
	t.logEvent("Team skill report generated")
	return b.String()
}

// LogTail returns the last n team event lines.
func (t *Team) LogTail(n int) []string { return tail(t.Log, n) }

// LogEvent appends an externally produced team event, e.g. a casualty note.
func (t *Team) LogEvent(desc string) { t.logEvent(desc) }

func (t *Team) logEvent(desc string) {
	at := t.now()
	line := stamp(at, fmt.Sprintf("Team %s - %s", t.Name, desc))
	t.Log = append(t.Log, line)
	if t.sink != nil {
		t.sink(JournalEntry{At: at, Scope: ScopeTeam, ID: t.ID, Line: line})
	}
}

func (t *Team) String() string {
	cmd := "None"
	if t.Commander != nil {
		cmd = t.Commander.Name
	}
	return fmt.Sprintf("Team %s (%d members, Commander: %s)", t.Name, len(t.Members), cmd)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
