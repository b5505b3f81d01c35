package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"milsim.dev/internal/protocol"
	"milsim.dev/internal/sim/force"
)

const timeLayout = "2006-01-02 15:04:05"

// Server bridges websocket dashboards onto a single-threaded Registry. All
// Registry access happens under mu; journal lines produced during a command
// are collected and broadcast to every connected client afterwards.
type Server struct {
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu          sync.Mutex
	reg         *force.Registry
	clients     map[*client]struct{}
	pending     []protocol.EventItem
	nextSession int
}

type client struct {
	out chan []byte
}

func NewServer(reg *force.Registry, logger *log.Logger) *Server {
	s := &Server{
		logger:  logger,
		reg:     reg,
		clients: map[*client]struct{}{},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
	reg.AddEventSink(func(e force.JournalEntry) {
		s.pending = append(s.pending, protocol.EventItem{
			At:    e.At.Format(timeLayout),
			Scope: e.Scope,
			ID:    e.ID,
			Line:  e.Line,
		})
	})
	return s
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		session, c := s.handshake(conn)
		if session == "" {
			return
		}

		s.mu.Lock()
		s.clients[c] = struct{}{}
		s.mu.Unlock()
		defer func() {
			s.mu.Lock()
			delete(s.clients, c)
			s.mu.Unlock()
		}()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-c.out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				break
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil || base.Type != protocol.TypeCmd {
				continue
			}
			var cmd protocol.CmdMsg
			if err := json.Unmarshal(msg, &cmd); err != nil {
				continue
			}

			var res protocol.ResultMsg
			if cmd.ProtocolVersion != protocol.Version {
				res = fail(cmd.ID, protocol.ErrProtoBadRequest, "unsupported protocol_version")
				c.send(marshal(res))
				continue
			}

			s.mu.Lock()
			res = s.dispatch(cmd)
			events := s.flushPendingLocked()
			state := s.snapshotLocked()
			s.mu.Unlock()

			c.send(marshal(res))
			if events != nil {
				s.broadcast(marshal(events))
			}
			s.broadcast(marshal(state))

			if s.logger != nil && !res.OK {
				s.logger.Printf("cmd %s (%s) rejected: %s %s", cmd.ID, cmd.Op, res.Code, res.Message)
			}
		}
	}
}

func (s *Server) handshake(conn *websocket.Conn) (string, *client) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", nil
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return "", nil
	}

	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return "", nil
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return "", nil
	}

	s.mu.Lock()
	s.nextSession++
	session := fmt.Sprintf("C%d", s.nextSession)
	cats := s.reg.Catalogs()
	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       session,
		Catalogs: protocol.CatalogDigests{
			Equipment: protocol.DigestRef{Digest: cats.Equipment.Digest, Count: len(cats.Equipment.Defs)},
			Ranks:     protocol.DigestRef{Digest: cats.Ranks.Digest, Count: len(cats.Ranks.Sequence)},
			Events:    protocol.DigestRef{Digest: cats.Events.Digest, Count: len(cats.Events.Lines)},
		},
		Counts: protocol.StateCounts{
			Soldiers: len(s.reg.Soldiers),
			Teams:    len(s.reg.Teams),
			Missions: len(s.reg.Missions),
		},
	}
	state := s.snapshotLocked()
	s.mu.Unlock()

	if err := writeJSON(conn, welcome); err != nil {
		return "", nil
	}
	if err := writeJSON(conn, state); err != nil {
		return "", nil
	}

	if s.logger != nil {
		s.logger.Printf("session %s connected (%s)", session, hello.ClientName)
	}
	return session, &client{out: make(chan []byte, 32)}
}

// send never blocks; a client that cannot drain its queue loses frames.
func (c *client) send(b []byte) {
	select {
	case c.out <- b:
	default:
	}
}

// Counts reports registry sizes for the metrics endpoint.
func (s *Server) Counts() (soldiers, teams, missions, clients int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reg.Soldiers), len(s.reg.Teams), len(s.reg.Missions), len(s.clients)
}

func (s *Server) broadcast(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.send(b)
	}
}

func (s *Server) flushPendingLocked() *protocol.EventMsg {
	if len(s.pending) == 0 {
		return nil
	}
	msg := &protocol.EventMsg{
		Type:            protocol.TypeEvent,
		ProtocolVersion: protocol.Version,
		Events:          s.pending,
	}
	s.pending = nil
	return msg
}

func (s *Server) snapshotLocked() protocol.StateMsg {
	state := protocol.StateMsg{
		Type:            protocol.TypeState,
		ProtocolVersion: protocol.Version,
		Soldiers:        []protocol.SoldierState{},
		Teams:           []protocol.TeamState{},
		Missions:        []protocol.MissionState{},
	}
	for _, sd := range s.reg.Soldiers {
		state.Soldiers = append(state.Soldiers, protocol.SoldierState{
			ID:         sd.ID,
			Name:       sd.Name,
			Rank:       sd.Rank,
			Status:     sd.Status,
			Health:     sd.Health,
			Location:   [2]int{sd.Location.X, sd.Location.Y},
			Experience: sd.Experience,
			Mission:    sd.Mission,
		})
	}
	for _, t := range s.reg.Teams {
		ts := protocol.TeamState{
			ID:      t.ID,
			Name:    t.Name,
			Status:  t.Status,
			Members: []string{},
		}
		if t.Commander != nil {
			ts.Commander = t.Commander.ID
		}
		for _, m := range t.Members {
			ts.Members = append(ts.Members, m.ID)
		}
		state.Teams = append(state.Teams, ts)
	}
	for _, m := range s.reg.Missions {
		done := 0
		for _, o := range m.Objectives {
			if o.Completed {
				done++
			}
		}
		state.Missions = append(state.Missions, protocol.MissionState{
			ID:             m.ID,
			Name:           m.Name,
			Status:         m.Status,
			Difficulty:     m.Difficulty,
			ObjectivesDone: done,
			Objectives:     len(m.Objectives),
			SuccessRate:    m.SuccessRate,
			Teams:          len(m.Teams),
		})
	}
	return state
}

func ok(ackFor string, body any) protocol.ResultMsg {
	return protocol.ResultMsg{
		Type:            protocol.TypeResult,
		ProtocolVersion: protocol.Version,
		AckFor:          ackFor,
		OK:              true,
		Body:            body,
	}
}

func fail(ackFor, code, message string) protocol.ResultMsg {
	return protocol.ResultMsg{
		Type:            protocol.TypeResult,
		ProtocolVersion: protocol.Version,
		AckFor:          ackFor,
		OK:              false,
		Code:            code,
		Message:         message,
	}
}

// dispatch runs one command against the Registry. Caller holds mu.
func (s *Server) dispatch(cmd protocol.CmdMsg) protocol.ResultMsg {
	decode := func(v any) bool {
		if len(cmd.Args) == 0 {
			return false
		}
		return json.Unmarshal(cmd.Args, v) == nil
	}

	switch cmd.Op {
	case protocol.OpCreateSoldier:
		var a protocol.CreateSoldierArgs
		if !decode(&a) || a.Name == "" {
			return fail(cmd.ID, protocol.ErrBadRequest, "name required")
		}
		sd := s.reg.CreateSoldier(a.Name, a.Status, force.Vec2i{X: a.X, Y: a.Y}, a.Rank)
		return ok(cmd.ID, map[string]string{"id": sd.ID})

	case protocol.OpCreateTeam:
		var a protocol.CreateTeamArgs
		if !decode(&a) || a.Name == "" {
			return fail(cmd.ID, protocol.ErrBadRequest, "name required")
		}
		t := s.reg.CreateTeam(a.Name)
		return ok(cmd.ID, map[string]string{"id": t.ID})

	case protocol.OpCreateMission:
		var a protocol.CreateMissionArgs
		if !decode(&a) || a.Name == "" {
			return fail(cmd.ID, protocol.ErrBadRequest, "name required")
		}
		m := s.reg.CreateMission(a.Name, a.Description, force.Vec2i{X: a.X, Y: a.Y})
		return ok(cmd.ID, map[string]string{"id": m.ID})

	case protocol.OpAssignSoldier:
		var a protocol.AssignArgs
		if !decode(&a) {
			return fail(cmd.ID, protocol.ErrBadRequest, "soldier and team required")
		}
		if !s.reg.AssignSoldierToTeam(a.Soldier, a.Team) {
			return fail(cmd.ID, protocol.ErrNotFound, "unknown soldier or team")
		}
		return ok(cmd.ID, nil)

	case protocol.OpAssignTeam:
		var a protocol.AssignArgs
		if !decode(&a) {
			return fail(cmd.ID, protocol.ErrBadRequest, "team and mission required")
		}
		if !s.reg.AssignTeamToMission(a.Team, a.Mission) {
			return fail(cmd.ID, protocol.ErrNotFound, "unknown team or mission")
		}
		return ok(cmd.ID, nil)

	case protocol.OpSetCommander:
		var a protocol.AssignArgs
		if !decode(&a) {
			return fail(cmd.ID, protocol.ErrBadRequest, "soldier and team required")
		}
		t := s.reg.FindTeam(a.Team)
		sd := s.reg.FindSoldier(a.Soldier)
		if t == nil || sd == nil {
			return fail(cmd.ID, protocol.ErrNotFound, "unknown soldier or team")
		}
		if !t.SetCommander(sd) {
			return fail(cmd.ID, protocol.ErrInvalidTarget, "commander must be a team member")
		}
		return ok(cmd.ID, nil)

	case protocol.OpAddObjective:
		var a protocol.ObjectiveArgs
		if !decode(&a) || a.Description == "" {
			return fail(cmd.ID, protocol.ErrBadRequest, "mission and description required")
		}
		m := s.reg.FindMission(a.Mission)
		if m == nil {
			return fail(cmd.ID, protocol.ErrNotFound, "unknown mission")
		}
		m.AddObjective(a.Description, false)
		return ok(cmd.ID, nil)

	case protocol.OpSetDifficulty:
		var a protocol.DifficultyArgs
		if !decode(&a) {
			return fail(cmd.ID, protocol.ErrBadRequest, "mission and level required")
		}
		m := s.reg.FindMission(a.Mission)
		if m == nil {
			return fail(cmd.ID, protocol.ErrNotFound, "unknown mission")
		}
		if !m.SetDifficulty(a.Level) {
			return fail(cmd.ID, protocol.ErrBadRequest, "difficulty must be 1..10")
		}
		return ok(cmd.ID, nil)

	case protocol.OpDistribute:
		var a protocol.DistributeArgs
		if !decode(&a) || len(a.Items) == 0 {
			return fail(cmd.ID, protocol.ErrBadRequest, "team and items required")
		}
		if !s.reg.DistributeEquipment(a.Team, a.Items) {
			return fail(cmd.ID, protocol.ErrInvalidTarget, "unknown team or no active members")
		}
		return ok(cmd.ID, nil)

	case protocol.OpMoveTeam:
		var a protocol.MoveTeamArgs
		if !decode(&a) {
			return fail(cmd.ID, protocol.ErrBadRequest, "team and target required")
		}
		t := s.reg.FindTeam(a.Team)
		if t == nil {
			return fail(cmd.ID, protocol.ErrNotFound, "unknown team")
		}
		if !t.MoveTeam(force.Vec2i{X: a.X, Y: a.Y}, s.reg.Tuning().FormationSpacing) {
			return fail(cmd.ID, protocol.ErrInvalidTarget, "team has no members")
		}
		return ok(cmd.ID, nil)

	case protocol.OpSimulate:
		var a protocol.SimulateArgs
		if !decode(&a) {
			return fail(cmd.ID, protocol.ErrBadRequest, "mission required")
		}
		var status string
		var stepped bool
		if a.Chance != nil {
			status, stepped = s.reg.SimulateMissionProgressWithChance(a.Mission, *a.Chance)
		} else {
			status, stepped = s.reg.SimulateMissionProgress(a.Mission)
		}
		if !stepped {
			if status == "" {
				return fail(cmd.ID, protocol.ErrNotFound, "unknown mission")
			}
			return fail(cmd.ID, protocol.ErrConflict, "mission already finalized: "+status)
		}
		return ok(cmd.ID, map[string]string{"status": status})

	case protocol.OpAutoComplete:
		var a protocol.AssignArgs
		if !decode(&a) {
			return fail(cmd.ID, protocol.ErrBadRequest, "mission required")
		}
		if !s.reg.AutoCompleteMission(a.Mission) {
			return fail(cmd.ID, protocol.ErrConflict, "unknown or finalized mission")
		}
		return ok(cmd.ID, nil)

	case protocol.OpCasualty:
		var a protocol.AssignArgs
		if !decode(&a) {
			return fail(cmd.ID, protocol.ErrBadRequest, "team required")
		}
		rep, hit := s.reg.CasualtyEvent(a.Team)
		if !hit {
			return fail(cmd.ID, protocol.ErrInvalidTarget, "unknown team or no active members")
		}
		return ok(cmd.ID, rep)

	case protocol.OpRandomEvent:
		var a protocol.AssignArgs
		if !decode(&a) {
			return fail(cmd.ID, protocol.ErrBadRequest, "mission required")
		}
		line, found := s.reg.RandomEvent(a.Mission)
		if !found {
			return fail(cmd.ID, protocol.ErrNotFound, "unknown mission")
		}
		return ok(cmd.ID, map[string]string{"event": line})

	case protocol.OpReport:
		var a protocol.ReportArgs
		if !decode(&a) {
			return fail(cmd.ID, protocol.ErrBadRequest, "kind required")
		}
		text, err := s.report(a)
		if err != "" {
			return fail(cmd.ID, protocol.ErrNotFound, err)
		}
		return ok(cmd.ID, map[string]string{"report": text})

	case protocol.OpEvents:
		var a protocol.EventsArgs
		if len(cmd.Args) > 0 {
			_ = json.Unmarshal(cmd.Args, &a)
		}
		return ok(cmd.ID, map[string]any{"events": s.reg.EventsTail(a.N)})

	case protocol.OpSeedDemo:
		if len(s.reg.Soldiers) > 0 {
			return fail(cmd.ID, protocol.ErrConflict, "registry already populated")
		}
		s.reg.SeedDemo()
		return ok(cmd.ID, nil)
	}

	return fail(cmd.ID, protocol.ErrBadRequest, "unknown op: "+cmd.Op)
}

func (s *Server) report(a protocol.ReportArgs) (text, errMsg string) {
	switch a.Kind {
	case "global":
		return s.reg.GlobalStatusReport(), ""
	case "equipment":
		return s.reg.EquipmentSummary(), ""
	case "personnel":
		return s.reg.PersonnelByStatus(), ""
	case "probability":
		return s.reg.MissionProbabilityReport(), ""
	case "mission":
		m := s.reg.FindMission(a.Name)
		if m == nil {
			return "", "unknown mission"
		}
		return m.MissionReport(), ""
	case "team":
		t := s.reg.FindTeam(a.Name)
		if t == nil {
			return "", "unknown team"
		}
		return t.TeamStatus(), ""
	case "team_equipment":
		t := s.reg.FindTeam(a.Name)
		if t == nil {
			return "", "unknown team"
		}
		return t.EquipmentReport(), ""
	case "team_skills":
		t := s.reg.FindTeam(a.Name)
		if t == nil {
			return "", "unknown team"
		}
		return t.TeamSkillReport(), ""
	}
	return "", "unknown report kind: " + a.Kind
}

func marshal(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
