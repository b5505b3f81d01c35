package force

import "fmt"

// SimulateMissionProgress advances the named mission by one randomized step
// using its current computed success probability. See simulateStep.
func (r *Registry) SimulateMissionProgress(name string) (string, bool) {
	return r.simulate(name, -1)
}

// SimulateMissionProgressWithChance is SimulateMissionProgress with a
// caller-supplied success probability override in [0,100].
func (r *Registry) SimulateMissionProgressWithChance(name string, chance float64) (string, bool) {
	return r.simulate(name, chance)
}

// simulate is the one-step state advancer. Exactly one incomplete objective
// is evaluated per call; callers loop to run a mission to conclusion.
func (r *Registry) simulate(name string, chance float64) (string, bool) {
	m := r.FindMission(name)
	if m == nil {
		return "", false
	}
	if m.Status != MissionPending && m.Status != MissionActive {
		return m.Status, false
	}
	if m.Status == MissionPending {
		m.UpdateStatus(MissionActive)
	}
	if chance < 0 {
		chance = m.CalculateSuccessProbability()
	}
	r.simulateStep(m, chance)
	return m.Status, true
}

func (r *Registry) simulateStep(m *Mission, chance float64) {
	st := r.tune.Stepper
	for i := range m.Objectives {
		if m.Objectives[i].Completed {
			continue
		}
		if r.rng.Float64()*100 < chance {
			m.CompleteObjective(i)

			if r.permille(st.FlavorEventPermille) {
				m.LogEvent("Random event: " + r.cats.Events.Lines[r.rng.Intn(len(r.cats.Events.Lines))])
			}
			if r.permille(st.InjuryRoundPermille) {
				for _, t := range m.Teams {
					for _, member := range t.Members {
						if member.Status == StatusActive && r.permille(st.InjuryMemberPermille) {
							damage := r.damage(st.DamageMin, st.DamageMax)
							member.UpdateHealth(-damage)
							m.LogEvent(fmt.Sprintf("%s took %d damage", member.Name, damage))
						}
					}
				}
			}
		} else {
			m.LogEvent(fmt.Sprintf("Failed to complete objective: %s", m.Objectives[i].Description))
			if r.permille(st.FailMissionPermille) {
				m.UpdateStatus(MissionFailed)
			}
		}
		return
	}
}

// AutoCompleteMission forces the mission Active and completes every open
// objective in order, finishing in Completed. Returns false for unknown or
// already finalized missions.
func (r *Registry) AutoCompleteMission(name string) bool {
	m := r.FindMission(name)
	if m == nil {
		return false
	}
	if terminalMissionStatus(m.Status) {
		return false
	}
	m.UpdateStatus(MissionActive)
	for i := range m.Objectives {
		if !m.Objectives[i].Completed {
			m.CompleteObjective(i)
		}
	}
	if m.Status != MissionCompleted {
		m.UpdateStatus(MissionCompleted)
	}
	return true
}

// CasualtyReport describes the outcome of a generated casualty event.
type CasualtyReport struct {
	Victim    string
	Damage    int
	NewHealth int
	Injured   bool
}

// CasualtyEvent damages one uniformly chosen Active member of the named
// team. Fails when the team is unknown or has no Active member.
func (r *Registry) CasualtyEvent(teamName string) (CasualtyReport, bool) {
	t := r.FindTeam(teamName)
	if t == nil {
		return CasualtyReport{}, false
	}
	var active []*Soldier
	for _, m := range t.Members {
		if m.Status == StatusActive {
			active = append(active, m)
		}
	}
	if len(active) == 0 {
		return CasualtyReport{}, false
	}

	victim := active[r.rng.Intn(len(active))]
	damage := r.damage(r.tune.Casualty.DamageMin, r.tune.Casualty.DamageMax)
	victim.UpdateHealth(-damage)
	t.LogEvent(fmt.Sprintf("Casualty event: %s took %d damage", victim.Name, damage))

	return CasualtyReport{
		Victim:    victim.Name,
		Damage:    damage,
		NewHealth: victim.Health,
		Injured:   victim.Status == StatusInjured,
	}, true
}

// RandomEvent appends one flavor line from the event catalog to the named
// mission's log and returns the chosen line.
func (r *Registry) RandomEvent(missionName string) (string, bool) {
	m := r.FindMission(missionName)
	if m == nil {
		return "", false
	}
	line := r.cats.Events.Lines[r.rng.Intn(len(r.cats.Events.Lines))]
	m.LogEvent("Random event: " + line)
	return line, true
}

// permille draws true with probability p/1000.
func (r *Registry) permille(p int) bool {
	return r.rng.Float64()*1000 < float64(p)
}

// damage draws a uniform integer in [min,max].
func (r *Registry) damage(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min+1)
}
