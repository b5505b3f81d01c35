package force

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"milsim.dev/internal/sim/catalogs"
	"milsim.dev/internal/sim/tuning"
)

// Config carries the injectable dependencies of a Registry. Zero values fall
// back to real time and a time-seeded source.
type Config struct {
	Rand Rand
	Now  Clock
}

// Registry owns every soldier, team and mission for the process lifetime and
// carries the global event log. It is single-threaded by contract: a host
// exposing it to concurrent callers must serialize access externally.
type Registry struct {
	cats *catalogs.Catalogs
	tune tuning.Tuning
	rng  Rand
	now  Clock

	Soldiers []*Soldier
	Teams    []*Team
	Missions []*Mission
	Events   []string

	nextSoldierNum int
	nextTeamNum    int
	nextMissionNum int

	sinks []eventSink
}

func New(cfg Config, cats *catalogs.Catalogs, tune tuning.Tuning) *Registry {
	r := &Registry{
		cats: cats,
		tune: tune,
		rng:  cfg.Rand,
		now:  cfg.Now,
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if r.now == nil {
		r.now = time.Now
	}
	r.logEvent("Military Simulator initialized")
	return r
}

// Catalogs exposes the immutable configuration for display enrichment.
func (r *Registry) Catalogs() *catalogs.Catalogs { return r.cats }

// Tuning exposes the loaded tuning values.
func (r *Registry) Tuning() tuning.Tuning { return r.tune }

// AddEventSink registers a consumer for every event-log line produced by any
// entity. Sinks registered before entity creation see the full stream.
func (r *Registry) AddEventSink(fn func(JournalEntry)) {
	r.sinks = append(r.sinks, eventSink(fn))
}

func (r *Registry) emit(e JournalEntry) {
	for _, s := range r.sinks {
		s(e)
	}
}

// CreateSoldier registers a new soldier. An empty or invalid status becomes
// Active; an empty rank becomes the entry rank. Unknown ranks are kept as
// given and treated as entry-level for promotion.
func (r *Registry) CreateSoldier(name, status string, loc Vec2i, rank string) *Soldier {
	if rank == "" {
		rank = r.cats.Ranks.Sequence[0]
	}
	r.nextSoldierNum++
	id := fmt.Sprintf("S%d", r.nextSoldierNum)
	s := newSoldier(id, name, status, loc, rank, &r.cats.Ranks, r.tune.PromotionXPStep, r.now, r.emit)
	r.Soldiers = append(r.Soldiers, s)
	r.logEvent(fmt.Sprintf("Soldier created: %s", name))
	return s
}

// CreateTeam registers a new, empty team.
func (r *Registry) CreateTeam(name string) *Team {
	r.nextTeamNum++
	id := fmt.Sprintf("T%d", r.nextTeamNum)
	t := newTeam(id, name, r.now, r.emit)
	r.Teams = append(r.Teams, t)
	r.logEvent(fmt.Sprintf("Team created: %s", name))
	return t
}

// CreateMission registers a new pending mission.
func (r *Registry) CreateMission(name, description string, loc Vec2i) *Mission {
	r.nextMissionNum++
	id := fmt.Sprintf("M%d", r.nextMissionNum)
	m := newMission(id, name, description, loc, r.tune.ReportTail, r.now, r.emit)
	r.Missions = append(r.Missions, m)
	r.logEvent(fmt.Sprintf("Mission created: %s", name))
	return m
}

// FindSoldier returns the first soldier whose name matches, ignoring case.
// Duplicate names shadow later entries; look up by ID to disambiguate.
func (r *Registry) FindSoldier(name string) *Soldier {
	for _, s := range r.Soldiers {
		if strings.EqualFold(s.Name, name) {
			return s
		}
	}
	return nil
}

// FindTeam returns the first case-insensitive name match.
func (r *Registry) FindTeam(name string) *Team {
	for _, t := range r.Teams {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return nil
}

// FindMission returns the first case-insensitive name match.
func (r *Registry) FindMission(name string) *Mission {
	for _, m := range r.Missions {
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	return nil
}

// SoldierByID resolves a soldier by its generated ID.
func (r *Registry) SoldierByID(id string) *Soldier {
	for _, s := range r.Soldiers {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// TeamByID resolves a team by its generated ID.
func (r *Registry) TeamByID(id string) *Team {
	for _, t := range r.Teams {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// MissionByID resolves a mission by its generated ID.
func (r *Registry) MissionByID(id string) *Mission {
	for _, m := range r.Missions {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// AssignSoldierToTeam wires a soldier into a team by name.
func (r *Registry) AssignSoldierToTeam(soldierName, teamName string) bool {
	s := r.FindSoldier(soldierName)
	t := r.FindTeam(teamName)
	if s == nil || t == nil {
		return false
	}
	t.AddMember(s)
	r.logEvent(fmt.Sprintf("%s assigned to team %s", s.Name, t.Name))
	return true
}

// AssignTeamToMission attaches the team to the mission and labels its active
// members with the mission name.
func (r *Registry) AssignTeamToMission(teamName, missionName string) bool {
	t := r.FindTeam(teamName)
	m := r.FindMission(missionName)
	if t == nil || m == nil {
		return false
	}
	m.AddTeam(t)
	t.AssignTeamMission(m.Name)
	r.logEvent(fmt.Sprintf("Team %s assigned to mission %s", t.Name, m.Name))
	return true
}

// DistributeEquipment forwards to the named team.
func (r *Registry) DistributeEquipment(teamName string, items map[string]int) bool {
	t := r.FindTeam(teamName)
	if t == nil {
		return false
	}
	return t.DistributeEquipment(items)
}

// EventsTail returns the last n global event lines (default 20).
func (r *Registry) EventsTail(n int) []string {
	if n <= 0 {
		n = r.tune.EventsTail
	}
	return tail(r.Events, n)
}

// LogEvent appends an adapter-produced line to the global log.
func (r *Registry) LogEvent(desc string) { r.logEvent(desc) }

func (r *Registry) logEvent(desc string) {
	at := r.now()
	line := stamp(at, desc)
	r.Events = append(r.Events, line)
	r.emit(JournalEntry{At: at, Scope: ScopeRegistry, Line: line})
}
