package team

import (
	"fmt"
	"time"
)

// Gender tags a squad's competition category.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderMixed  Gender = "mixed"
)

var AllGenders = map[Gender]struct{}{
	GenderMale:   {},
	GenderFemale: {},
	GenderMixed:  {},
}

// Team is a club side. ParentTeamID links affiliate/youth squads to the main
// club team. Teams are reference data during a match session: nothing in the
// match flow mutates them.
type Team struct {
	ID           string
	Name         string
	CrestURL     string
	Gender       Gender
	ParentTeamID string
	CreatedBy    string
	CreatedAt    time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Gender != "" {
		if _, ok := AllGenders[t.Gender]; !ok {
			return fmt.Errorf("invalid team gender: %s", t.Gender)
		}
	}
	return nil
}
