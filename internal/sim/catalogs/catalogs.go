package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Catalogs is the immutable configuration a Registry is constructed with.
// Nothing here is mutated after Load.
type Catalogs struct {
	Equipment EquipmentCatalog
	Ranks     RankCatalog
	Events    EventCatalog
}

type EquipmentCatalog struct {
	Defs   map[string]EquipmentDef
	Names  []string
	Digest string
}

// EquipmentDef enriches display output only. Items outside the catalog can
// still be issued to soldiers.
type EquipmentDef struct {
	ID            string  `json:"id"`
	Weight        float64 `json:"weight"`
	Effectiveness int     `json:"effectiveness"`
}

// RankCatalog is the ordered promotion ladder. Index 0 is the entry rank.
type RankCatalog struct {
	Sequence []string
	Index    map[string]int
	Digest   string
}

// EventCatalog holds the flavor lines the progress stepper and the
// random-event generator draw from.
type EventCatalog struct {
	Lines  []string
	Digest string
}

func Load(configDir string) (*Catalogs, error) {
	var c Catalogs

	if err := loadEquipment(filepath.Join(configDir, "equipment.json"), &c.Equipment); err != nil {
		return nil, err
	}
	if err := loadRanks(filepath.Join(configDir, "ranks.json"), &c.Ranks); err != nil {
		return nil, err
	}
	if err := loadEvents(filepath.Join(configDir, "events.json"), &c.Events); err != nil {
		return nil, err
	}
	return &c, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func loadEquipment(path string, out *EquipmentCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []EquipmentDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("equipment.json: %w", err)
	}
	out.Defs = map[string]EquipmentDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("equipment.json: empty id")
		}
		if _, dup := out.Defs[d.ID]; dup {
			return fmt.Errorf("equipment.json: duplicate id %q", d.ID)
		}
		out.Defs[d.ID] = d
	}

	names := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		names = append(names, id)
	}
	sort.Strings(names)
	out.Names = names
	return nil
}

func loadRanks(path string, out *RankCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var seq []string
	if err := json.Unmarshal(raw, &seq); err != nil {
		return fmt.Errorf("ranks.json: %w", err)
	}
	if len(seq) == 0 {
		return fmt.Errorf("ranks.json: empty rank sequence")
	}
	out.Index = make(map[string]int, len(seq))
	for i, r := range seq {
		if r == "" {
			return fmt.Errorf("ranks.json: empty rank at index %d", i)
		}
		if _, dup := out.Index[r]; dup {
			return fmt.Errorf("ranks.json: duplicate rank %q", r)
		}
		out.Index[r] = i
	}
	out.Sequence = seq
	return nil
}

func loadEvents(path string, out *EventCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		return fmt.Errorf("events.json: %w", err)
	}
	if len(lines) == 0 {
		return fmt.Errorf("events.json: empty event list")
	}
	for i, l := range lines {
		if l == "" {
			return fmt.Errorf("events.json: empty line at index %d", i)
		}
	}
	out.Lines = lines
	return nil
}
