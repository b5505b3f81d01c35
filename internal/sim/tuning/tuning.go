package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning carries the knobs of the progress stepper and a few display
// defaults. Probabilities are permille so the file stays integer-only.
type Tuning struct {
	Stepper  Stepper  `yaml:"stepper"`
	Casualty Casualty `yaml:"casualty"`

	PromotionXPStep  int `yaml:"promotion_xp_step"`
	FormationSpacing int `yaml:"formation_spacing"`
	EventsTail       int `yaml:"events_tail"`
	ReportTail       int `yaml:"report_tail"`
}

type Stepper struct {
	FlavorEventPermille  int `yaml:"flavor_event_permille"`
	InjuryRoundPermille  int `yaml:"injury_round_permille"`
	InjuryMemberPermille int `yaml:"injury_member_permille"`
	FailMissionPermille  int `yaml:"fail_mission_permille"`
	DamageMin            int `yaml:"damage_min"`
	DamageMax            int `yaml:"damage_max"`
}

type Casualty struct {
	DamageMin int `yaml:"damage_min"`
	DamageMax int `yaml:"damage_max"`
}

func Defaults() Tuning {
	return Tuning{
		Stepper: Stepper{
			FlavorEventPermille:  300,
			InjuryRoundPermille:  200,
			InjuryMemberPermille: 100,
			FailMissionPermille:  300,
			DamageMin:            5,
			DamageMax:            25,
		},
		Casualty: Casualty{
			DamageMin: 10,
			DamageMax: 50,
		},
		PromotionXPStep:  100,
		FormationSpacing: 5,
		EventsTail:       20,
		ReportTail:       5,
	}
}

func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if t.Stepper.DamageMax < t.Stepper.DamageMin {
		return t, fmt.Errorf("tuning.yaml: stepper damage_max < damage_min")
	}
	if t.Casualty.DamageMax < t.Casualty.DamageMin {
		return t, fmt.Errorf("tuning.yaml: casualty damage_max < damage_min")
	}
	return t, nil
}
