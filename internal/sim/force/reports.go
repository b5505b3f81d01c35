package force

import (
	"fmt"
	"sort"
	"strings"
)

// GlobalStatusReport summarizes personnel, teams and missions with status
// breakdowns. Statuses render in their canonical order.
func (r *Registry) GlobalStatusReport() string {
	var b strings.Builder
	b.WriteString("\n===== GLOBAL STATUS REPORT =====\n")
	fmt.Fprintf(&b, "Total personnel: %d\n", len(r.Soldiers))
	fmt.Fprintf(&b, "Active teams: %d\n", len(r.Teams))
	fmt.Fprintf(&b, "Missions: %d\n\n", len(r.Missions))

	counts := map[string]int{}
	for _, s := range r.Soldiers {
		counts[s.Status]++
	}
	b.WriteString("Personnel status:\n")
	for _, st := range SoldierStatuses {
		if counts[st] > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", st, counts[st])
		}
	}

	mcounts := map[string]int{}
	for _, m := range r.Missions {
		mcounts[m.Status]++
	}
	b.WriteString("\nMission status:\n")
	for _, st := range MissionStatuses {
		if mcounts[st] > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", st, mcounts[st])
		}
	}
	return b.String()
}

// EquipmentSummary totals equipment across every soldier and enriches each
// line from the catalog. Items outside the catalog show N/A.
func (r *Registry) EquipmentSummary() string {
	totals := map[string]int{}
	for _, s := range r.Soldiers {
		for item, qty := range s.Equipment {
			totals[item] += qty
		}
	}

	var b strings.Builder
	b.WriteString("\n===== EQUIPMENT SUMMARY =====\n")
	if len(totals) == 0 {
		b.WriteString("No equipment found\n")
		return b.String()
	}

	items := make([]string, 0, len(totals))
	for item := range totals {
		items = append(items, item)
	}
	sort.Strings(items)

	for _, item := range items {
		weight, eff := "N/A", "N/A"
		if def, ok := r.cats.Equipment.Defs[item]; ok {
			weight = fmt.Sprintf("%.1f", def.Weight)
			eff = fmt.Sprintf("%d", def.Effectiveness)
		}
		fmt.Fprintf(&b, "- %s: %d units (Weight: %s, Effectiveness: %s)\n", item, totals[item], weight, eff)
	}
	return b.String()
}

// PersonnelByStatus groups the roster by status.
func (r *Registry) PersonnelByStatus() string {
	groups := map[string][]*Soldier{}
	for _, s := range r.Soldiers {
		groups[s.Status] = append(groups[s.Status], s)
	}

	var b strings.Builder
	b.WriteString("\n===== PERSONNEL STATUS =====\n")
	if len(r.Soldiers) == 0 {
		b.WriteString("No personnel found\n")
		return b.String()
	}
	for _, st := range SoldierStatuses {
		members := groups[st]
		if len(members) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s Personnel (%d):\n", st, len(members))
		for _, s := range members {
			fmt.Fprintf(&b, "- %s %s, Health: %d%%\n", s.Rank, s.Name, s.Health)
		}
	}
	return b.String()
}

// MissionProbabilityReport recomputes every mission's success probability
// and lists the composition factors behind it.
func (r *Registry) MissionProbabilityReport() string {
	var b strings.Builder
	b.WriteString("\n===== MISSION SUCCESS PROBABILITIES =====\n")
	if len(r.Missions) == 0 {
		b.WriteString("No missions found\n")
		return b.String()
	}
	for _, m := range r.Missions {
		p := m.CalculateSuccessProbability()
		fmt.Fprintf(&b, "Mission: %s\n", m.Name)
		fmt.Fprintf(&b, "Status: %s\n", m.Status)
		fmt.Fprintf(&b, "Difficulty: %d/10\n", m.Difficulty)
		fmt.Fprintf(&b, "Success probability: %.1f%%\n", p)
		b.WriteString("Factors affecting probability:\n")
		fmt.Fprintf(&b, "- Teams assigned: %d\n", len(m.Teams))
		total, active := 0, 0
		for _, t := range m.Teams {
			total += len(t.Members)
			for _, member := range t.Members {
				if member.Status == StatusActive {
					active++
				}
			}
		}
		fmt.Fprintf(&b, "- Personnel: %d active out of %d total\n\n", active, total)
	}
	return b.String()
}
