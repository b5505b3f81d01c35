package force

import (
	"fmt"
	"time"

	"milsim.dev/internal/sim/catalogs"
)

// Soldier statuses. The set is closed: UpdateStatus rejects anything else.
const (
	StatusActive      = "Active"
	StatusInjured     = "Injured"
	StatusUnavailable = "Unavailable"
	StatusOnLeave     = "OnLeave"
	StatusMIA         = "MIA"
)

// SoldierStatuses lists the valid soldier statuses in display order.
var SoldierStatuses = []string{StatusActive, StatusInjured, StatusUnavailable, StatusOnLeave, StatusMIA}

// SkillNames is the closed set of trainable skills. Each starts at level 1.
var SkillNames = []string{"combat", "medical", "recon", "leadership"}

func validSoldierStatus(s string) bool {
	for _, v := range SoldierStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Soldier is a single service member. The Registry owns its lifetime; teams
// hold non-owning references. All mutation goes through the methods below,
// and every mutating method appends one timestamped history line.
type Soldier struct {
	ID       string
	Name     string
	Rank     string
	Status   string
	Location Vec2i
	Health   int

	Equipment  map[string]int
	Skills     map[string]int
	Experience int

	// Mission is an opaque assignment label, never validated against a
	// Mission entity.
	Mission string

	Inbox   []Message
	History []string

	ranks  *catalogs.RankCatalog
	xpStep int
	now    Clock
	sink   eventSink
}

// Message is one delivered inbox entry.
type Message struct {
	Sender string
	Text   string
	At     time.Time
}

// SoldierSnapshot is the read-only state dump behind ReportStatus.
type SoldierSnapshot struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Rank       string         `json:"rank"`
	Status     string         `json:"status"`
	Location   Vec2i          `json:"location"`
	Health     int            `json:"health"`
	Equipment  map[string]int `json:"equipment"`
	Mission    string         `json:"mission,omitempty"`
	Experience int            `json:"experience"`
	Skills     map[string]int `json:"skills"`
}

func newSoldier(id, name, status string, loc Vec2i, rank string, ranks *catalogs.RankCatalog, xpStep int, now Clock, sink eventSink) *Soldier {
	if !validSoldierStatus(status) {
		status = StatusActive
	}
	s := &Soldier{
		ID:        id,
		Name:      name,
		Rank:      rank,
		Status:    status,
		Location:  loc,
		Health:    100,
		Equipment: map[string]int{},
		Skills:    map[string]int{},
		ranks:     ranks,
		xpStep:    xpStep,
		now:       now,
		sink:      sink,
	}
	for _, sk := range SkillNames {
		s.Skills[sk] = 1
	}
	s.logEvent(fmt.Sprintf("Soldier created with rank %s", rank))
	return s
}

// UpdateStatus replaces the status. Statuses outside the fixed set are
// rejected without mutation.
func (s *Soldier) UpdateStatus(newStatus string) bool {
	if !validSoldierStatus(newStatus) {
		return false
	}
	old := s.Status
	s.Status = newStatus
	s.logEvent(fmt.Sprintf("Status updated from %s to %s", old, s.Status))
	return true
}

// UpdateLocation moves the soldier and logs the distance covered.
func (s *Soldier) UpdateLocation(loc Vec2i) {
	d := Distance(s.Location, loc)
	s.Location = loc
	s.logEvent(fmt.Sprintf("Location updated to %s (moved %.2f units)", s.Location, d))
}

// UpdateHealth applies a delta, clamped to [0,100]. Hitting exactly 0 forces
// the Injured status. Returns the new health.
func (s *Soldier) UpdateHealth(delta int) int {
	old := s.Health
	s.Health += delta
	if s.Health > 100 {
		s.Health = 100
	} else if s.Health <= 0 {
		s.Health = 0
		s.Status = StatusInjured
		s.logEvent("Injured and needs medical attention!")
	}
	s.logEvent(fmt.Sprintf("Health changed from %d to %d", old, s.Health))
	return s.Health
}

// AddEquipment issues qty of item. The quantity is taken as given; catalog
// membership is not enforced.
func (s *Soldier) AddEquipment(item string, qty int) {
	s.Equipment[item] += qty
	s.logEvent(fmt.Sprintf("Received %d %s", qty, item))
}

// UseEquipment consumes qty of item. Fails without mutation when the held
// count is short. A count reaching 0 removes the entry entirely.
func (s *Soldier) UseEquipment(item string, qty int) bool {
	if s.Equipment[item] < qty {
		s.logEvent(fmt.Sprintf("Not enough %s", item))
		return false
	}
	s.Equipment[item] -= qty
	s.logEvent(fmt.Sprintf("Used %d %s", qty, item))
	if s.Equipment[item] == 0 {
		delete(s.Equipment, item)
	}
	return true
}

// GainExperience adds experience and runs the promotion check: one rank step
// at most, however far the total jumped.
func (s *Soldier) GainExperience(amount int) {
	s.Experience += amount
	s.logEvent(fmt.Sprintf("Gained %d experience points", amount))

	idx := 0
	if i, ok := s.ranks.Index[s.Rank]; ok {
		idx = i
	}
	if s.Experience >= s.xpStep*(idx+1) && idx < len(s.ranks.Sequence)-1 {
		s.Rank = s.ranks.Sequence[idx+1]
		s.logEvent(fmt.Sprintf("Promoted to %s", s.Rank))
	}
}

// ImproveSkill raises one of the four fixed skills.
func (s *Soldier) ImproveSkill(name string, amount int) bool {
	if _, ok := s.Skills[name]; !ok {
		return false
	}
	s.Skills[name] += amount
	s.logEvent(fmt.Sprintf("Improved %s skill by %d", name, amount))
	return true
}

// AssignMission sets the soldier's mission label.
func (s *Soldier) AssignMission(label string) {
	s.Mission = label
	s.logEvent(fmt.Sprintf("Assigned to mission: %s", label))
}

// SendMessage formats an outgoing line and records the send.
func (s *Soldier) SendMessage(text string) string {
	s.logEvent(fmt.Sprintf("Sent message: %s", text))
	return fmt.Sprintf("%s %s sends: %s", s.Rank, s.Name, text)
}

// ReceiveMessage delivers into the inbox.
func (s *Soldier) ReceiveMessage(sender, text string) {
	s.Inbox = append(s.Inbox, Message{Sender: sender, Text: text, At: s.now()})
	s.logEvent(fmt.Sprintf("Received message from %s", sender))
}

// ReportStatus returns a copy of all observable state.
func (s *Soldier) ReportStatus() SoldierSnapshot {
	eq := make(map[string]int, len(s.Equipment))
	for k, v := range s.Equipment {
		eq[k] = v
	}
	sk := make(map[string]int, len(s.Skills))
	for k, v := range s.Skills {
		sk[k] = v
	}
	return SoldierSnapshot{
		ID:         s.ID,
		Name:       s.Name,
		Rank:       s.Rank,
		Status:     s.Status,
		Location:   s.Location,
		Health:     s.Health,
		Equipment:  eq,
		Mission:    s.Mission,
		Experience: s.Experience,
		Skills:     sk,
	}
}

// HistoryTail returns the last n history lines.
func (s *Soldier) HistoryTail(n int) []string { return tail(s.History, n) }

func (s *Soldier) logEvent(desc string) {
	at := s.now()
	line := stamp(at, fmt.Sprintf("%s %s - %s", s.Rank, s.Name, desc))
	s.History = append(s.History, line)
	if s.sink != nil {
		s.sink(JournalEntry{At: at, Scope: ScopeSoldier, ID: s.ID, Line: line})
	}
}

func (s *Soldier) String() string {
	return fmt.Sprintf("%s %s (%s, Health: %d%%)", s.Rank, s.Name, s.Status, s.Health)
}
