package ws

import (
	"encoding/json"
	"testing"

	"milsim.dev/internal/protocol"
	"milsim.dev/internal/sim/catalogs"
	"milsim.dev/internal/sim/force"
	"milsim.dev/internal/sim/tuning"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cats, err := catalogs.Load("../../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	reg := force.New(force.Config{}, cats, tuning.Defaults())
	return NewServer(reg, nil)
}

func cmd(t *testing.T, op string, args any) protocol.CmdMsg {
	t.Helper()
	c := protocol.CmdMsg{
		Type:            protocol.TypeCmd,
		ProtocolVersion: protocol.Version,
		ID:              "c-1",
		Op:              op,
	}
	if args != nil {
		raw, err := json.Marshal(args)
		if err != nil {
			t.Fatalf("marshal args: %v", err)
		}
		c.Args = raw
	}
	return c
}

func TestDispatch_CreateAndAssign(t *testing.T) {
	s := newTestServer(t)

	res := s.dispatch(cmd(t, protocol.OpCreateSoldier, protocol.CreateSoldierArgs{Name: "Johnson", Rank: "Sergeant", X: 10, Y: 10}))
	if !res.OK {
		t.Fatalf("create_soldier: %+v", res)
	}
	if body := res.Body.(map[string]string); body["id"] != "S1" {
		t.Fatalf("body: %v", res.Body)
	}

	if res := s.dispatch(cmd(t, protocol.OpCreateTeam, protocol.CreateTeamArgs{Name: "Alpha"})); !res.OK {
		t.Fatalf("create_team: %+v", res)
	}
	if res := s.dispatch(cmd(t, protocol.OpAssignSoldier, protocol.AssignArgs{Soldier: "Johnson", Team: "Alpha"})); !res.OK {
		t.Fatalf("assign_soldier: %+v", res)
	}

	res = s.dispatch(cmd(t, protocol.OpAssignSoldier, protocol.AssignArgs{Soldier: "ghost", Team: "Alpha"}))
	if res.OK || res.Code != protocol.ErrNotFound {
		t.Fatalf("unknown soldier: %+v", res)
	}

	res = s.dispatch(cmd(t, protocol.OpCreateSoldier, nil))
	if res.OK || res.Code != protocol.ErrBadRequest {
		t.Fatalf("missing args: %+v", res)
	}

	res = s.dispatch(cmd(t, "launch_nukes", nil))
	if res.OK || res.Code != protocol.ErrBadRequest {
		t.Fatalf("unknown op: %+v", res)
	}
}

func TestDispatch_SeedDemoOnce(t *testing.T) {
	s := newTestServer(t)

	if res := s.dispatch(cmd(t, protocol.OpSeedDemo, nil)); !res.OK {
		t.Fatalf("seed: %+v", res)
	}
	res := s.dispatch(cmd(t, protocol.OpSeedDemo, nil))
	if res.OK || res.Code != protocol.ErrConflict {
		t.Fatalf("reseed: %+v", res)
	}
}

func TestDispatch_Reports(t *testing.T) {
	s := newTestServer(t)
	s.dispatch(cmd(t, protocol.OpSeedDemo, nil))

	for _, kind := range []string{"global", "equipment", "personnel", "probability"} {
		res := s.dispatch(cmd(t, protocol.OpReport, protocol.ReportArgs{Kind: kind}))
		if !res.OK {
			t.Fatalf("report %s: %+v", kind, res)
		}
	}
	res := s.dispatch(cmd(t, protocol.OpReport, protocol.ReportArgs{Kind: "mission", Name: "Eagle Eye"}))
	if !res.OK {
		t.Fatalf("mission report: %+v", res)
	}
	res = s.dispatch(cmd(t, protocol.OpReport, protocol.ReportArgs{Kind: "mission", Name: "ghost"}))
	if res.OK || res.Code != protocol.ErrNotFound {
		t.Fatalf("unknown mission report: %+v", res)
	}
}

func TestSnapshotAndEventFlush(t *testing.T) {
	s := newTestServer(t)

	s.mu.Lock()
	s.pending = nil // discard setup noise
	s.mu.Unlock()

	s.dispatch(cmd(t, protocol.OpCreateSoldier, protocol.CreateSoldierArgs{Name: "Johnson", X: 2, Y: 3}))

	s.mu.Lock()
	events := s.flushPendingLocked()
	state := s.snapshotLocked()
	again := s.flushPendingLocked()
	s.mu.Unlock()

	if events == nil || len(events.Events) == 0 {
		t.Fatalf("no events flushed")
	}
	if again != nil {
		t.Fatalf("flush not drained")
	}
	if len(state.Soldiers) != 1 || state.Soldiers[0].Location != [2]int{2, 3} {
		t.Fatalf("snapshot: %+v", state.Soldiers)
	}
}
