package force

import (
	"strings"
	"testing"
)

func TestSetCommander_RequiresMembership(t *testing.T) {
	r := newTestRegistry(t, nil)
	team := r.CreateTeam("Alpha")
	in := r.CreateSoldier("Johnson", StatusActive, Vec2i{}, "")
	out := r.CreateSoldier("Smith", StatusActive, Vec2i{}, "")
	team.AddMember(in)

	if team.SetCommander(out) {
		t.Fatalf("non-member accepted as commander")
	}
	if team.Commander != nil {
		t.Fatalf("commander mutated on rejection")
	}
	if !team.SetCommander(in) {
		t.Fatalf("member rejected as commander")
	}
	if team.Commander != in {
		t.Fatalf("wrong commander set")
	}
}

func TestRemoveMember_ByReference(t *testing.T) {
	r := newTestRegistry(t, nil)
	team := r.CreateTeam("Alpha")
	a := r.CreateSoldier("Johnson", StatusActive, Vec2i{}, "")
	b := r.CreateSoldier("Smith", StatusActive, Vec2i{}, "")
	team.AddMember(a)
	team.AddMember(b)
	team.SetCommander(a)

	if !team.RemoveMember(a) {
		t.Fatalf("remove failed")
	}
	if len(team.Members) != 1 || team.Members[0] != b {
		t.Fatalf("member list after remove: %v", team.Members)
	}
	if team.Commander != nil {
		t.Fatalf("commander survived own removal")
	}
	if team.RemoveMember(a) {
		t.Fatalf("second remove succeeded")
	}
	// The soldier itself stays in the registry roster.
	if r.FindSoldier("Johnson") != a {
		t.Fatalf("soldier vanished from registry")
	}
}

func TestDistributeEquipment_RemainderToFirstMembers(t *testing.T) {
	r := newTestRegistry(t, nil)
	team := r.CreateTeam("Alpha")
	var members []*Soldier
	for _, name := range []string{"A", "B", "C"} {
		s := r.CreateSoldier(name, StatusActive, Vec2i{}, "")
		team.AddMember(s)
		members = append(members, s)
	}

	if !team.DistributeEquipment(map[string]int{"Ammo": 10}) {
		t.Fatalf("distribute failed")
	}
	want := []int{4, 3, 3}
	for i, m := range members {
		if m.Equipment["Ammo"] != want[i] {
			t.Fatalf("member %d share: got %d want %d", i, m.Equipment["Ammo"], want[i])
		}
	}
}

func TestDistributeEquipment_SkipsInactive(t *testing.T) {
	r := newTestRegistry(t, nil)
	team := r.CreateTeam("Alpha")
	active := r.CreateSoldier("A", StatusActive, Vec2i{}, "")
	hurt := r.CreateSoldier("B", StatusInjured, Vec2i{}, "")
	team.AddMember(active)
	team.AddMember(hurt)

	if !team.DistributeEquipment(map[string]int{"Rations": 3}) {
		t.Fatalf("distribute failed")
	}
	if active.Equipment["Rations"] != 3 {
		t.Fatalf("active share: %d", active.Equipment["Rations"])
	}
	if hurt.Equipment["Rations"] != 0 {
		t.Fatalf("inactive member received equipment")
	}
}

func TestDistributeEquipment_NoActiveMembers(t *testing.T) {
	r := newTestRegistry(t, nil)
	team := r.CreateTeam("Alpha")
	team.AddMember(r.CreateSoldier("A", StatusInjured, Vec2i{}, ""))

	if team.DistributeEquipment(map[string]int{"Ammo": 10}) {
		t.Fatalf("distribute succeeded with no active members")
	}
}

func TestMoveTeam_FormationOffsets(t *testing.T) {
	r := newTestRegistry(t, nil)
	team := r.CreateTeam("Alpha")
	a := r.CreateSoldier("A", StatusActive, Vec2i{}, "")
	b := r.CreateSoldier("B", StatusActive, Vec2i{}, "")
	c := r.CreateSoldier("C", StatusActive, Vec2i{}, "")
	d := r.CreateSoldier("D", StatusActive, Vec2i{}, "")
	for _, s := range []*Soldier{a, b, c, d} {
		team.AddMember(s)
	}

	if !team.MoveTeam(Vec2i{10, 20}, 5) {
		t.Fatalf("move failed")
	}
	if a.Location != (Vec2i{10, 20}) {
		t.Fatalf("slot 0: %v", a.Location)
	}
	if b.Location != (Vec2i{15, 20}) {
		t.Fatalf("slot 1: %v", b.Location)
	}
	if c.Location != (Vec2i{5, 20}) {
		t.Fatalf("slot 2: %v", c.Location)
	}
	if d.Location != (Vec2i{20, 20}) {
		t.Fatalf("slot 3: %v", d.Location)
	}
	if team.Location != (Vec2i{10, 20}) {
		t.Fatalf("team location: %v", team.Location)
	}
}

func TestMoveTeam_InactiveKeepSlotAndPosition(t *testing.T) {
	r := newTestRegistry(t, nil)
	team := r.CreateTeam("Alpha")
	a := r.CreateSoldier("A", StatusActive, Vec2i{}, "")
	b := r.CreateSoldier("B", StatusInjured, Vec2i{1, 1}, "")
	c := r.CreateSoldier("C", StatusActive, Vec2i{}, "")
	for _, s := range []*Soldier{a, b, c} {
		team.AddMember(s)
	}

	team.MoveTeam(Vec2i{0, 0}, 5)
	if b.Location != (Vec2i{1, 1}) {
		t.Fatalf("inactive member moved: %v", b.Location)
	}
	// The inactive member still occupies slot 1; slot 2 fans left.
	if c.Location != (Vec2i{-5, 0}) {
		t.Fatalf("slot 2: %v", c.Location)
	}
}

func TestMoveTeam_EmptyTeam(t *testing.T) {
	r := newTestRegistry(t, nil)
	team := r.CreateTeam("Alpha")
	if team.MoveTeam(Vec2i{1, 1}, 5) {
		t.Fatalf("empty team moved")
	}
	if team.Location != (Vec2i{}) {
		t.Fatalf("location mutated: %v", team.Location)
	}
}

func TestBroadcastAndDirectMessage(t *testing.T) {
	r := newTestRegistry(t, nil)
	team := r.CreateTeam("Alpha")
	a := r.CreateSoldier("Johnson", StatusActive, Vec2i{}, "")
	b := r.CreateSoldier("Smith", StatusActive, Vec2i{}, "")
	team.AddMember(a)
	team.AddMember(b)

	team.BroadcastMessage("move out", "HQ")
	if len(a.Inbox) != 1 || len(b.Inbox) != 1 {
		t.Fatalf("broadcast delivery: %d/%d", len(a.Inbox), len(b.Inbox))
	}
	if a.Inbox[0].Sender != "HQ" || a.Inbox[0].Text != "move out" {
		t.Fatalf("inbox entry: %+v", a.Inbox[0])
	}

	if !team.DirectMessage("HQ", "Smith", "hold position") {
		t.Fatalf("direct message failed")
	}
	if len(b.Inbox) != 2 {
		t.Fatalf("recipient inbox: %d", len(b.Inbox))
	}
	if len(a.Inbox) != 1 {
		t.Fatalf("direct message leaked to other member")
	}
	if team.DirectMessage("HQ", "Nobody", "hello") {
		t.Fatalf("unknown recipient accepted")
	}
	if len(team.Chat) != 2 {
		t.Fatalf("chat lines: %d", len(team.Chat))
	}
}

func TestEquipmentReport_AggregatesAndCaches(t *testing.T) {
	r := newTestRegistry(t, nil)
	team := r.CreateTeam("Alpha")
	a := r.CreateSoldier("A", StatusActive, Vec2i{}, "")
	b := r.CreateSoldier("B", StatusInjured, Vec2i{}, "")
	team.AddMember(a)
	team.AddMember(b)
	a.AddEquipment("Ammo", 5)
	b.AddEquipment("Ammo", 2)
	b.AddEquipment("Medkit", 1)

	report := team.EquipmentReport()
	if !strings.Contains(report, "- Ammo: 7") || !strings.Contains(report, "- Medkit: 1") {
		t.Fatalf("report:\n%s", report)
	}
	if team.Inventory["Ammo"] != 7 {
		t.Fatalf("cache: %v", team.Inventory)
	}

	// Cache is refreshed, not trusted, on the next report.
	a.UseEquipment("Ammo", 5)
	report = team.EquipmentReport()
	if !strings.Contains(report, "- Ammo: 2") {
		t.Fatalf("stale report:\n%s", report)
	}
}

func TestTeamSkillReport_CountsAllMembers(t *testing.T) {
	r := newTestRegistry(t, nil)
	team := r.CreateTeam("Alpha")
	a := r.CreateSoldier("A", StatusActive, Vec2i{}, "")
	b := r.CreateSoldier("B", StatusInjured, Vec2i{}, "")
	team.AddMember(a)
	team.AddMember(b)
	a.ImproveSkill("combat", 3)

	report := team.TeamSkillReport()
	if !strings.Contains(report, "- Combat: Total 5, Avg 2.5") {
		t.Fatalf("report:\n%s", report)
	}
}

func TestAssignTeamMission_LabelsActiveMembers(t *testing.T) {
	r := newTestRegistry(t, nil)
	team := r.CreateTeam("Alpha")
	a := r.CreateSoldier("A", StatusActive, Vec2i{}, "")
	b := r.CreateSoldier("B", StatusMIA, Vec2i{}, "")
	team.AddMember(a)
	team.AddMember(b)

	n := team.AssignTeamMission("Eagle Eye")
	if n != 1 {
		t.Fatalf("mission number: %d", n)
	}
	if a.Mission != "Mission #1: Eagle Eye" {
		t.Fatalf("active member label: %q", a.Mission)
	}
	if b.Mission != "" {
		t.Fatalf("inactive member labeled: %q", b.Mission)
	}
	if team.Status != TeamOnMission {
		t.Fatalf("team status: %s", team.Status)
	}
	if n2 := team.AssignTeamMission("Hammer Strike"); n2 != 2 {
		t.Fatalf("second mission number: %d", n2)
	}
}
