package force

// SeedDemo loads the canonical two-team demo scenario: eight soldiers with
// starter equipment, teams Alpha and Bravo, and two missions with partial
// progress on the first.
func (r *Registry) SeedDemo() {
	s1 := r.CreateSoldier("Johnson", StatusActive, Vec2i{10, 10}, "Sergeant")
	s2 := r.CreateSoldier("Smith", StatusActive, Vec2i{12, 10}, "Corporal")
	s3 := r.CreateSoldier("Williams", StatusActive, Vec2i{8, 10}, "Medic")
	s4 := r.CreateSoldier("Miller", StatusActive, Vec2i{10, 12}, "Private")
	s5 := r.CreateSoldier("Davis", StatusActive, Vec2i{10, 8}, "Private")
	s6 := r.CreateSoldier("Garcia", StatusActive, Vec2i{20, 20}, "Sergeant")
	s7 := r.CreateSoldier("Wilson", StatusActive, Vec2i{22, 20}, "Corporal")
	s8 := r.CreateSoldier("Taylor", StatusActive, Vec2i{20, 22}, "Private")

	s1.AddEquipment("Rifle", 1)
	s1.AddEquipment("Ammo", 5)
	s2.AddEquipment("Radio", 1)
	s2.AddEquipment("Pistol", 1)
	s3.AddEquipment("Medkit", 3)
	s3.AddEquipment("Water", 2)
	s4.AddEquipment("Binoculars", 1)
	s4.AddEquipment("Ammo", 3)
	s5.AddEquipment("Rifle", 1)
	s5.AddEquipment("Grenade", 2)
	s6.AddEquipment("Rifle", 1)
	s6.AddEquipment("Night Vision", 1)
	s7.AddEquipment("Radio", 1)
	s7.AddEquipment("Ammo", 4)
	s8.AddEquipment("Rifle", 1)
	s8.AddEquipment("Rations", 3)

	alpha := r.CreateTeam("Alpha")
	bravo := r.CreateTeam("Bravo")

	alpha.AddMember(s1)
	alpha.AddMember(s2)
	alpha.AddMember(s3)
	alpha.AddMember(s4)
	alpha.AddMember(s5)
	bravo.AddMember(s6)
	bravo.AddMember(s7)
	bravo.AddMember(s8)

	alpha.SetCommander(s1)
	bravo.SetCommander(s6)

	recon := r.CreateMission("Eagle Eye", "Reconnaissance of enemy territory", Vec2i{50, 60})
	recon.SetDifficulty(3)
	recon.AddObjective("Reach observation point", false)
	recon.AddObjective("Gather intelligence", false)
	recon.AddObjective("Document enemy movements", false)
	recon.AddObjective("Return to base", false)

	assault := r.CreateMission("Hammer Strike", "Clear enemy outpost", Vec2i{80, 30})
	assault.SetDifficulty(7)
	assault.AddObjective("Secure perimeter", false)
	assault.AddObjective("Neutralize enemy forces", false)
	assault.AddObjective("Secure objective", false)
	assault.AddObjective("Extract intel", false)
	assault.AddObjective("Withdraw from area", false)

	recon.AddTeam(alpha)
	alpha.AssignTeamMission(recon.Name)

	assault.AddTeam(bravo)
	bravo.AssignTeamMission(assault.Name)

	recon.UpdateStatus(MissionActive)
	recon.CompleteObjective(0)
	recon.LogEvent("Team Alpha reached observation point")

	r.logEvent("Sample data created successfully")
}
