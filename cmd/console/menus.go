package main

import (
	"fmt"
	"strings"
	"time"

	"milsim.dev/internal/sim/force"
)

func (c *console) soldierMenu() {
	fmt.Println("\n===== SOLDIER MANAGEMENT =====")
	fmt.Println("1. Create New Soldier")
	fmt.Println("2. View Soldier Details")
	fmt.Println("3. Update Soldier Status")
	fmt.Println("4. Add Equipment to Soldier")
	fmt.Println("5. Update Soldier Health")
	fmt.Println("6. List All Soldiers")
	fmt.Println("7. Back to Main Menu")

	switch c.prompt("\nEnter your choice (1-7): ") {
	case "1":
		name := c.prompt("Enter soldier name: ")
		rank := c.prompt("Enter soldier rank (default: Private): ")
		status := c.promptDefault("Enter status (Active/Injured/Unavailable, default: Active): ", force.StatusActive)
		s := c.reg.CreateSoldier(name, status, force.Vec2i{}, rank)
		fmt.Printf("Soldier created: %s\n", s)

	case "2":
		name := c.prompt("Enter soldier name: ")
		s := c.reg.FindSoldier(name)
		if s == nil {
			fmt.Printf("Soldier '%s' not found\n", name)
			break
		}
		snap := s.ReportStatus()
		fmt.Println("\n===== SOLDIER DETAILS =====")
		fmt.Printf("Id: %s\n", snap.ID)
		fmt.Printf("Name: %s\n", snap.Name)
		fmt.Printf("Rank: %s\n", snap.Rank)
		fmt.Printf("Status: %s\n", snap.Status)
		fmt.Printf("Location: %s\n", snap.Location)
		fmt.Printf("Health: %d\n", snap.Health)
		fmt.Printf("Equipment: %v\n", snap.Equipment)
		fmt.Printf("Mission: %s\n", snap.Mission)
		fmt.Printf("Experience: %d\n", snap.Experience)
		fmt.Printf("Skills: %v\n", snap.Skills)
		fmt.Println("\nRecent history:")
		for _, line := range s.HistoryTail(5) {
			fmt.Printf("- %s\n", line)
		}

	case "3":
		name := c.prompt("Enter soldier name: ")
		s := c.reg.FindSoldier(name)
		if s == nil {
			fmt.Printf("Soldier '%s' not found\n", name)
			break
		}
		fmt.Printf("Current status: %s\n", s.Status)
		status := c.prompt("Enter new status (Active/Injured/Unavailable/OnLeave/MIA): ")
		if s.UpdateStatus(status) {
			fmt.Printf("Status updated to %s\n", status)
		} else {
			fmt.Println("Invalid status")
		}

	case "4":
		name := c.prompt("Enter soldier name: ")
		s := c.reg.FindSoldier(name)
		if s == nil {
			fmt.Printf("Soldier '%s' not found\n", name)
			break
		}
		fmt.Println("Available equipment:")
		for _, item := range c.reg.Catalogs().Equipment.Names {
			fmt.Printf("- %s\n", item)
		}
		item := c.prompt("Enter equipment to add: ")
		if _, known := c.reg.Catalogs().Equipment.Defs[item]; !known {
			fmt.Printf("Equipment '%s' not found in database\n", item)
			break
		}
		qty, valid := c.promptInt("Enter quantity: ")
		if !valid {
			fmt.Println("Invalid quantity")
			break
		}
		s.AddEquipment(item, qty)
		fmt.Printf("Added %d %s to %s\n", qty, item, s.Name)

	case "5":
		name := c.prompt("Enter soldier name: ")
		s := c.reg.FindSoldier(name)
		if s == nil {
			fmt.Printf("Soldier '%s' not found\n", name)
			break
		}
		fmt.Printf("Current health: %d\n", s.Health)
		amount, valid := c.promptInt("Enter health change (positive to heal, negative for damage): ")
		if !valid {
			fmt.Println("Invalid input")
			break
		}
		fmt.Printf("Health updated to %d\n", s.UpdateHealth(amount))

	case "6":
		if len(c.reg.Soldiers) == 0 {
			fmt.Println("No soldiers found")
			break
		}
		fmt.Println("\n===== ALL SOLDIERS =====")
		for i, s := range c.reg.Soldiers {
			fmt.Printf("%d. %s\n", i+1, s)
		}
	}
	c.pause()
}

func (c *console) teamMenu() {
	fmt.Println("\n===== TEAM MANAGEMENT =====")
	fmt.Println("1. Create New Team")
	fmt.Println("2. Add Soldier to Team")
	fmt.Println("3. Set Team Commander")
	fmt.Println("4. View Team Status")
	fmt.Println("5. Move Team")
	fmt.Println("6. Generate Equipment Report")
	fmt.Println("7. Distribute Equipment")
	fmt.Println("8. List All Teams")
	fmt.Println("9. Back to Main Menu")

	switch c.prompt("\nEnter your choice (1-9): ") {
	case "1":
		name := c.prompt("Enter team name: ")
		t := c.reg.CreateTeam(name)
		fmt.Printf("Team created: %s\n", t)

	case "2":
		t := c.findTeam()
		if t == nil {
			break
		}
		name := c.prompt("Enter soldier name to add: ")
		s := c.reg.FindSoldier(name)
		if s == nil {
			fmt.Printf("Soldier '%s' not found\n", name)
			break
		}
		t.AddMember(s)
		fmt.Printf("%s added to team %s\n", s.Name, t.Name)

	case "3":
		t := c.findTeam()
		if t == nil {
			break
		}
		fmt.Println("Current team members:")
		for i, m := range t.Members {
			fmt.Printf("%d. %s\n", i+1, m)
		}
		name := c.prompt("Enter the name of the soldier to set as commander: ")
		s := c.reg.FindSoldier(name)
		if s == nil || !t.SetCommander(s) {
			fmt.Printf("Soldier '%s' not found or not in team\n", name)
			break
		}
		fmt.Printf("%s set as commander of team %s\n", s.Name, t.Name)

	case "4":
		if t := c.findTeam(); t != nil {
			fmt.Println(t.TeamStatus())
		}

	case "5":
		t := c.findTeam()
		if t == nil {
			break
		}
		x, okX := c.promptInt("Enter x-coordinate: ")
		y, okY := c.promptInt("Enter y-coordinate: ")
		if !okX || !okY {
			fmt.Println("Invalid coordinate format")
			break
		}
		spacing := c.reg.Tuning().FormationSpacing
		if n, valid := c.promptInt(fmt.Sprintf("Enter formation spacing (default: %d): ", spacing)); valid {
			spacing = n
		}
		if t.MoveTeam(force.Vec2i{X: x, Y: y}, spacing) {
			fmt.Printf("Team %s moved to (%d, %d)\n", t.Name, x, y)
		} else {
			fmt.Println("Team has no members")
		}

	case "6":
		if t := c.findTeam(); t != nil {
			fmt.Println(t.EquipmentReport())
		}

	case "7":
		t := c.findTeam()
		if t == nil {
			break
		}
		fmt.Println("Available equipment:")
		for _, item := range c.reg.Catalogs().Equipment.Names {
			fmt.Printf("- %s\n", item)
		}
		items := map[string]int{}
		for {
			item := c.prompt("Enter equipment to distribute (or 'done' to finish): ")
			if strings.EqualFold(item, "done") {
				break
			}
			if _, known := c.reg.Catalogs().Equipment.Defs[item]; !known {
				fmt.Printf("Equipment '%s' not found in database\n", item)
				continue
			}
			qty, valid := c.promptInt("Enter quantity: ")
			if !valid {
				fmt.Println("Invalid quantity")
				continue
			}
			items[item] = qty
		}
		if len(items) > 0 {
			if t.DistributeEquipment(items) {
				fmt.Printf("Equipment distributed to team %s\n", t.Name)
			} else {
				fmt.Println("No active members to distribute to")
			}
		}

	case "8":
		if len(c.reg.Teams) == 0 {
			fmt.Println("No teams found")
			break
		}
		fmt.Println("\n===== ALL TEAMS =====")
		for i, t := range c.reg.Teams {
			commander := "None"
			if t.Commander != nil {
				commander = t.Commander.Name
			}
			fmt.Printf("%d. %s - Members: %d, Commander: %s\n", i+1, t.Name, len(t.Members), commander)
		}
	}
	c.pause()
}

func (c *console) missionMenu() {
	fmt.Println("\n===== MISSION MANAGEMENT =====")
	fmt.Println("1. Create New Mission")
	fmt.Println("2. Add Team to Mission")
	fmt.Println("3. Add Objective to Mission")
	fmt.Println("4. Complete Objective")
	fmt.Println("5. Change Mission Status")
	fmt.Println("6. View Mission Report")
	fmt.Println("7. Calculate Success Probability")
	fmt.Println("8. Set Mission Difficulty")
	fmt.Println("9. List All Missions")
	fmt.Println("0. Back to Main Menu")

	switch c.prompt("\nEnter your choice (0-9): ") {
	case "1":
		name := c.prompt("Enter mission name: ")
		description := c.prompt("Enter mission description: ")
		x, okX := c.promptInt("Enter x-coordinate: ")
		y, okY := c.promptInt("Enter y-coordinate: ")
		if !okX || !okY {
			fmt.Println("Invalid coordinate format")
			break
		}
		m := c.reg.CreateMission(name, description, force.Vec2i{X: x, Y: y})
		if level, valid := c.promptInt("Enter mission difficulty (1-10, default: 1): "); valid {
			if !m.SetDifficulty(level) {
				fmt.Println("Invalid difficulty, using default")
			}
		}
		fmt.Printf("Mission created: %s\n", m)

	case "2":
		m := c.findMission()
		if m == nil {
			break
		}
		name := c.prompt("Enter team name to add: ")
		t := c.reg.FindTeam(name)
		if t == nil {
			fmt.Printf("Team '%s' not found\n", name)
			break
		}
		m.AddTeam(t)
		t.AssignTeamMission(m.Name)
		fmt.Printf("Team %s added to mission %s\n", t.Name, m.Name)

	case "3":
		m := c.findMission()
		if m == nil {
			break
		}
		m.AddObjective(c.prompt("Enter objective description: "), false)
		fmt.Printf("Objective added to mission %s\n", m.Name)

	case "4":
		m := c.findMission()
		if m == nil {
			break
		}
		fmt.Println("Current objectives:")
		for i, obj := range m.Objectives {
			mark := "✗"
			if obj.Completed {
				mark = "✓"
			}
			fmt.Printf("%d. %s %s\n", i+1, mark, obj.Description)
		}
		n, valid := c.promptInt("Enter objective number to complete: ")
		if valid && m.CompleteObjective(n-1) {
			fmt.Println("Objective completed")
		} else {
			fmt.Println("Invalid objective number")
		}

	case "5":
		m := c.findMission()
		if m == nil {
			break
		}
		fmt.Printf("Current status: %s\n", m.Status)
		fmt.Println("Available statuses: Pending, Active, Completed, Failed, Aborted")
		status := c.prompt("Enter new status: ")
		if m.UpdateStatus(status) {
			fmt.Printf("Status updated to %s\n", status)
		} else {
			fmt.Println("Invalid status")
		}

	case "6":
		if m := c.findMission(); m != nil {
			fmt.Println(m.MissionReport())
		}

	case "7":
		if m := c.findMission(); m != nil {
			fmt.Printf("Mission success probability: %.1f%%\n", m.CalculateSuccessProbability())
		}

	case "8":
		m := c.findMission()
		if m == nil {
			break
		}
		level, valid := c.promptInt("Enter difficulty level (1-10): ")
		if !valid {
			fmt.Println("Invalid input")
			break
		}
		if m.SetDifficulty(level) {
			fmt.Printf("Difficulty set to %d\n", level)
		} else {
			fmt.Println("Invalid difficulty level")
		}

	case "9":
		if len(c.reg.Missions) == 0 {
			fmt.Println("No missions found")
			break
		}
		fmt.Println("\n===== ALL MISSIONS =====")
		for i, m := range c.reg.Missions {
			done := 0
			for _, obj := range m.Objectives {
				if obj.Completed {
					done++
				}
			}
			fmt.Printf("%d. %s - Status: %s, Objectives: %d/%d, Teams: %d\n", i+1, m.Name, m.Status, done, len(m.Objectives), len(m.Teams))
		}
	}
	c.pause()
}

func (c *console) simulationMenu() {
	fmt.Println("\n===== SIMULATION CONTROLS =====")
	fmt.Println("1. Simulate Mission Progress")
	fmt.Println("2. Auto-complete Mission")
	fmt.Println("3. Generate Casualty Event")
	fmt.Println("4. Generate Random Event")
	fmt.Println("5. Back to Main Menu")

	switch c.prompt("\nEnter your choice (1-5): ") {
	case "1":
		name := c.prompt("Enter mission name: ")
		status, stepped := c.reg.SimulateMissionProgress(name)
		if status == "" {
			fmt.Printf("Mission '%s' not found\n", name)
			break
		}
		if !stepped {
			fmt.Printf("Mission already finalized with status: %s\n", status)
			break
		}
		fmt.Printf("Mission progress simulated. New status: %s\n", status)

	case "2":
		m := c.findMission()
		if m == nil {
			break
		}
		if m.Status == force.MissionCompleted || m.Status == force.MissionFailed || m.Status == force.MissionAborted {
			fmt.Printf("Mission %s already finalized with status: %s\n", m.Name, m.Status)
			break
		}
		m.UpdateStatus(force.MissionActive)
		fmt.Printf("Auto-completing mission %s...\n", m.Name)
		for i := range m.Objectives {
			if !m.Objectives[i].Completed {
				m.CompleteObjective(i)
				time.Sleep(500 * time.Millisecond) // small delay for effect
			}
		}
		if m.Status != force.MissionCompleted {
			m.UpdateStatus(force.MissionCompleted)
		}
		fmt.Printf("Mission %s auto-completed\n", m.Name)

	case "3":
		name := c.prompt("Enter team name: ")
		if c.reg.FindTeam(name) == nil {
			fmt.Printf("Team '%s' not found\n", name)
			break
		}
		rep, hit := c.reg.CasualtyEvent(name)
		if !hit {
			fmt.Println("No active members in team")
			break
		}
		fmt.Printf("Casualty event generated for %s\n", rep.Victim)
		fmt.Printf("%s's health reduced to %d\n", rep.Victim, rep.NewHealth)
		if rep.Injured {
			fmt.Printf("%s is now injured and requires medical attention!\n", rep.Victim)
		}

	case "4":
		name := c.prompt("Enter mission name: ")
		event, found := c.reg.RandomEvent(name)
		if !found {
			fmt.Printf("Mission '%s' not found\n", name)
			break
		}
		fmt.Printf("Random event generated for mission %s: %s\n", name, event)
	}
	c.pause()
}

func (c *console) reportsMenu() {
	fmt.Println("\n===== REPORTS =====")
	fmt.Println("1. Global Status Report")
	fmt.Println("2. Team Skill Assessment")
	fmt.Println("3. Mission Success Probabilities")
	fmt.Println("4. Recent Events Log")
	fmt.Println("5. Equipment Summary")
	fmt.Println("6. Personnel Status")
	fmt.Println("7. Back to Main Menu")

	switch c.prompt("\nEnter your choice (1-7): ") {
	case "1":
		fmt.Println(c.reg.GlobalStatusReport())

	case "2":
		fmt.Println("\n===== TEAM SKILL ASSESSMENT =====")
		if len(c.reg.Teams) == 0 {
			fmt.Println("No teams found")
			break
		}
		for _, t := range c.reg.Teams {
			fmt.Println(t.TeamSkillReport())
		}

	case "3":
		fmt.Println(c.reg.MissionProbabilityReport())

	case "4":
		fmt.Println("\n===== RECENT EVENTS LOG =====")
		for _, line := range c.reg.EventsTail(0) {
			fmt.Println(line)
		}

	case "5":
		fmt.Println(c.reg.EquipmentSummary())

	case "6":
		fmt.Println(c.reg.PersonnelByStatus())
	}
	c.pause()
}

func (c *console) findTeam() *force.Team {
	name := c.prompt("Enter team name: ")
	t := c.reg.FindTeam(name)
	if t == nil {
		fmt.Printf("Team '%s' not found\n", name)
	}
	return t
}

func (c *console) findMission() *force.Mission {
	name := c.prompt("Enter mission name: ")
	m := c.reg.FindMission(name)
	if m == nil {
		fmt.Printf("Mission '%s' not found\n", name)
	}
	return m
}
