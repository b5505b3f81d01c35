package force

import (
	"strings"
	"testing"
)

func stepperMission(t *testing.T, r *Registry, objectives int) *Mission {
	t.Helper()
	team := r.CreateTeam("Alpha")
	team.AddMember(r.CreateSoldier("Anders", StatusActive, Vec2i{}, ""))
	team.AddMember(r.CreateSoldier("Brooks", StatusActive, Vec2i{}, ""))
	m := r.CreateMission("Eagle Eye", "recon", Vec2i{})
	for i := 0; i < objectives; i++ {
		m.AddObjective("objective", false)
	}
	m.AddTeam(team)
	return m
}

func TestSimulate_UnknownAndTerminal(t *testing.T) {
	r := newTestRegistry(t, &scriptRand{})
	if status, ok := r.SimulateMissionProgress("ghost"); ok || status != "" {
		t.Fatalf("unknown mission: %q %v", status, ok)
	}

	stepperMission(t, r, 1)
	r.AutoCompleteMission("Eagle Eye")
	status, ok := r.SimulateMissionProgress("Eagle Eye")
	if ok || status != MissionCompleted {
		t.Fatalf("terminal mission stepped: %q %v", status, ok)
	}
}

func TestSimulate_PendingActivates(t *testing.T) {
	rng := &scriptRand{floats: []float64{0.5}}
	r := newTestRegistry(t, rng)
	m := stepperMission(t, r, 2)

	status, ok := r.SimulateMissionProgressWithChance("Eagle Eye", 100)
	if !ok || status != MissionActive {
		t.Fatalf("step: %q %v", status, ok)
	}
	if m.StartTime.IsZero() {
		t.Fatalf("activation did not set start time")
	}
	if !m.Objectives[0].Completed || m.Objectives[1].Completed {
		t.Fatalf("objectives: %+v", m.Objectives)
	}
}

func TestSimulate_SuccessWithFlavorAndInjury(t *testing.T) {
	// Draws: objective roll, flavor gate, injury round gate, then one gate
	// per Active member. Exhaustion misses the second member's gate.
	rng := &scriptRand{
		floats: []float64{0.5, 0.1, 0.1, 0.05},
		ints:   []int{2, 3},
	}
	r := newTestRegistry(t, rng)
	m := stepperMission(t, r, 2)
	anders := r.FindSoldier("Anders")

	if _, ok := r.SimulateMissionProgressWithChance("Eagle Eye", 100); !ok {
		t.Fatalf("step rejected")
	}
	if anders.Health != 92 {
		t.Fatalf("damage not applied: health %d", anders.Health)
	}
	if got := r.FindSoldier("Brooks").Health; got != 100 {
		t.Fatalf("second member hit: health %d", got)
	}

	joined := strings.Join(m.Events, "\n")
	flavor := r.Catalogs().Events.Lines[2]
	if !strings.Contains(joined, "Random event: "+flavor) {
		t.Fatalf("flavor line missing:\n%s", joined)
	}
	if !strings.Contains(joined, "Anders took 8 damage") {
		t.Fatalf("damage line missing:\n%s", joined)
	}
}

func TestSimulate_FailureCanFailMission(t *testing.T) {
	rng := &scriptRand{floats: []float64{0.5, 0.1}}
	r := newTestRegistry(t, rng)
	m := stepperMission(t, r, 2)

	status, ok := r.SimulateMissionProgressWithChance("Eagle Eye", 0)
	if !ok || status != MissionFailed {
		t.Fatalf("step: %q %v", status, ok)
	}
	if m.Objectives[0].Completed {
		t.Fatalf("failed step completed the objective")
	}
	if !strings.Contains(strings.Join(m.Events, "\n"), "Failed to complete objective: objective") {
		t.Fatalf("failure line missing: %v", m.Events)
	}
}

func TestSimulate_FailureCanLeaveMissionActive(t *testing.T) {
	rng := &scriptRand{floats: []float64{0.5, 0.9}}
	r := newTestRegistry(t, rng)
	stepperMission(t, r, 2)

	status, ok := r.SimulateMissionProgressWithChance("Eagle Eye", 0)
	if !ok || status != MissionActive {
		t.Fatalf("step: %q %v", status, ok)
	}
}

func TestSimulate_OneObjectivePerCall(t *testing.T) {
	rng := &scriptRand{floats: []float64{0.0, 0.9, 0.9, 0.0, 0.9, 0.9}}
	r := newTestRegistry(t, rng)
	m := stepperMission(t, r, 3)

	r.SimulateMissionProgressWithChance("Eagle Eye", 100)
	if !m.Objectives[0].Completed || m.Objectives[1].Completed {
		t.Fatalf("first call: %+v", m.Objectives)
	}
	r.SimulateMissionProgressWithChance("Eagle Eye", 100)
	if !m.Objectives[1].Completed || m.Objectives[2].Completed {
		t.Fatalf("second call: %+v", m.Objectives)
	}
}

func TestSimulate_ComputedChanceZeroFails(t *testing.T) {
	// No teams: computed probability is zero, so the objective roll
	// always lands in the failure branch.
	rng := &scriptRand{floats: []float64{0.5, 0.9}}
	r := newTestRegistry(t, rng)
	m := r.CreateMission("Ghost Walk", "infiltration", Vec2i{})
	m.AddObjective("objective", false)

	if _, ok := r.SimulateMissionProgress("Ghost Walk"); !ok {
		t.Fatalf("step rejected")
	}
	if m.Objectives[0].Completed {
		t.Fatalf("objective completed at zero probability")
	}
}

func TestAutoCompleteMission(t *testing.T) {
	r := newTestRegistry(t, &scriptRand{})
	m := stepperMission(t, r, 3)
	m.SetDifficulty(4)
	anders := r.FindSoldier("Anders")

	if !r.AutoCompleteMission("Eagle Eye") {
		t.Fatalf("auto-complete rejected")
	}
	if m.Status != MissionCompleted {
		t.Fatalf("status: %s", m.Status)
	}
	for i, o := range m.Objectives {
		if !o.Completed {
			t.Fatalf("objective %d open", i)
		}
	}
	if anders.Experience != 40 {
		t.Fatalf("reward: %d", anders.Experience)
	}
	if r.AutoCompleteMission("Eagle Eye") {
		t.Fatalf("re-completed a finalized mission")
	}
	if r.AutoCompleteMission("ghost") {
		t.Fatalf("completed unknown mission")
	}
}

func TestCasualtyEvent(t *testing.T) {
	rng := &scriptRand{ints: []int{1, 40}}
	r := newTestRegistry(t, rng)
	team := r.CreateTeam("Alpha")
	team.AddMember(r.CreateSoldier("Anders", StatusActive, Vec2i{}, ""))
	team.AddMember(r.CreateSoldier("Brooks", StatusInjured, Vec2i{}, ""))
	team.AddMember(r.CreateSoldier("Carter", StatusActive, Vec2i{}, ""))

	rep, ok := r.CasualtyEvent("Alpha")
	if !ok {
		t.Fatalf("casualty rejected")
	}
	// Intn(2)=1 picks the second Active member, skipping the injured one.
	if rep.Victim != "Carter" || rep.Damage != 50 || rep.NewHealth != 50 || rep.Injured {
		t.Fatalf("report: %+v", rep)
	}
	if !strings.Contains(strings.Join(team.Log, "\n"), "Casualty event: Carter took 50 damage") {
		t.Fatalf("team log: %v", team.Log)
	}

	if _, ok := r.CasualtyEvent("ghost"); ok {
		t.Fatalf("unknown team accepted")
	}
	empty := r.CreateTeam("Bravo")
	empty.AddMember(r.FindSoldier("Brooks"))
	if _, ok := r.CasualtyEvent("Bravo"); ok {
		t.Fatalf("team without active members accepted")
	}
}

func TestCasualtyEvent_CanInjure(t *testing.T) {
	rng := &scriptRand{ints: []int{0, 40}}
	r := newTestRegistry(t, rng)
	team := r.CreateTeam("Alpha")
	s := r.CreateSoldier("Anders", StatusActive, Vec2i{}, "")
	team.AddMember(s)
	s.UpdateHealth(-80)

	rep, ok := r.CasualtyEvent("Alpha")
	if !ok || !rep.Injured || rep.NewHealth != 0 {
		t.Fatalf("report: %+v", rep)
	}
	if s.Status != StatusInjured {
		t.Fatalf("status: %s", s.Status)
	}
}

func TestRandomEvent(t *testing.T) {
	rng := &scriptRand{ints: []int{4}}
	r := newTestRegistry(t, rng)
	m := r.CreateMission("Eagle Eye", "recon", Vec2i{})

	line, ok := r.RandomEvent("Eagle Eye")
	if !ok || line != r.Catalogs().Events.Lines[4] {
		t.Fatalf("event: %q %v", line, ok)
	}
	if !strings.Contains(m.Events[len(m.Events)-1], "Random event: "+line) {
		t.Fatalf("mission log: %v", m.Events)
	}
	if _, ok := r.RandomEvent("ghost"); ok {
		t.Fatalf("unknown mission accepted")
	}
}
