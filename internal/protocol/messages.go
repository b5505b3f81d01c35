package protocol

import "encoding/json"

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ClientName      string `json:"client_name"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string         `json:"type"`
	ProtocolVersion string         `json:"protocol_version"`
	SessionID       string         `json:"session_id"`
	Catalogs        CatalogDigests `json:"catalogs"`
	Counts          StateCounts    `json:"counts"`
}

type CatalogDigests struct {
	Equipment DigestRef `json:"equipment"`
	Ranks     DigestRef `json:"ranks"`
	Events    DigestRef `json:"events"`
}

type DigestRef struct {
	Digest string `json:"digest"`
	Count  int    `json:"count"`
}

type StateCounts struct {
	Soldiers int `json:"soldiers"`
	Teams    int `json:"teams"`
	Missions int `json:"missions"`
}

// Command ops.
const (
	OpCreateSoldier = "create_soldier"
	OpCreateTeam    = "create_team"
	OpCreateMission = "create_mission"
	OpAssignSoldier = "assign_soldier"
	OpAssignTeam    = "assign_team"
	OpSetCommander  = "set_commander"
	OpAddObjective  = "add_objective"
	OpSetDifficulty = "set_difficulty"
	OpDistribute    = "distribute"
	OpMoveTeam      = "move_team"
	OpSimulate      = "simulate"
	OpAutoComplete  = "auto_complete"
	OpCasualty      = "casualty"
	OpRandomEvent   = "random_event"
	OpReport        = "report"
	OpEvents        = "events"
	OpSeedDemo      = "seed_demo"
)

// CMD (client -> server). Args decodes per Op.
type CmdMsg struct {
	Type            string          `json:"type"`
	ProtocolVersion string          `json:"protocol_version"`
	ID              string          `json:"id"`
	Op              string          `json:"op"`
	Args            json.RawMessage `json:"args,omitempty"`
}

type CreateSoldierArgs struct {
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
	Rank   string `json:"rank,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

type CreateTeamArgs struct {
	Name string `json:"name"`
}

type CreateMissionArgs struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
}

type AssignArgs struct {
	Soldier string `json:"soldier,omitempty"`
	Team    string `json:"team,omitempty"`
	Mission string `json:"mission,omitempty"`
}

type ObjectiveArgs struct {
	Mission     string `json:"mission"`
	Description string `json:"description"`
}

type DifficultyArgs struct {
	Mission string `json:"mission"`
	Level   int    `json:"level"`
}

type DistributeArgs struct {
	Team  string         `json:"team"`
	Items map[string]int `json:"items"`
}

type MoveTeamArgs struct {
	Team string `json:"team"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

type SimulateArgs struct {
	Mission string   `json:"mission"`
	Chance  *float64 `json:"chance,omitempty"`
}

// ReportArgs selects one report kind: global, equipment, personnel,
// probability, mission, team. Name scopes the last two.
type ReportArgs struct {
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
}

type EventsArgs struct {
	N int `json:"n,omitempty"`
}

// RESULT (server -> client)
type ResultMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	AckFor          string `json:"ack_for"`
	OK              bool   `json:"ok"`
	Code            string `json:"code,omitempty"`
	Message         string `json:"message,omitempty"`
	Body            any    `json:"body,omitempty"`
}

type EventItem struct {
	At    string `json:"at"`
	Scope string `json:"scope"`
	ID    string `json:"id,omitempty"`
	Line  string `json:"line"`
}

// EVENT (server -> client): a batch of journal lines.
type EventMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	Events          []EventItem `json:"events"`
}

// STATE (server -> client): full dashboard snapshot, pushed after every
// accepted command.
type StateMsg struct {
	Type            string         `json:"type"`
	ProtocolVersion string         `json:"protocol_version"`
	Soldiers        []SoldierState `json:"soldiers"`
	Teams           []TeamState    `json:"teams"`
	Missions        []MissionState `json:"missions"`
}

type SoldierState struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Rank       string `json:"rank"`
	Status     string `json:"status"`
	Health     int    `json:"health"`
	Location   [2]int `json:"location"`
	Experience int    `json:"experience"`
	Mission    string `json:"mission,omitempty"`
}

type TeamState struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Status    string   `json:"status"`
	Commander string   `json:"commander,omitempty"`
	Members   []string `json:"members"`
}

type MissionState struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Status         string  `json:"status"`
	Difficulty     int     `json:"difficulty"`
	ObjectivesDone int     `json:"objectives_done"`
	Objectives     int     `json:"objectives"`
	SuccessRate    float64 `json:"success_rate"`
	Teams          int     `json:"teams"`
}
