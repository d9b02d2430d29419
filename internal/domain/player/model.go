package player

import (
	"fmt"
	"strings"
	"time"
)

// Type distinguishes a club's permanent squad members from ad-hoc players
// created inline while building a single match's roster. Temporary players
// are full records, not a separate entity; the distinction is conventional.
type Type string

const (
	TypeOfficial  Type = "official"
	TypeTemporary Type = "temporary"
)

var AllTypes = map[Type]struct{}{
	TypeOfficial:  {},
	TypeTemporary: {},
}

type Player struct {
	ID        string
	FirstName string
	LastName  string
	Number    *int
	TeamID    string
	Type      Type
	CreatedAt time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.FirstName) == "" {
		return fmt.Errorf("player first name is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if _, ok := AllTypes[p.Type]; !ok {
		return fmt.Errorf("invalid player type: %s", p.Type)
	}
	if p.Number != nil && *p.Number < 0 {
		return fmt.Errorf("player number must be >= 0")
	}
	return nil
}

// DisplayName renders the feed/report label, e.g. "#7 Aoife Ni Bhriain".
func (p Player) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if p.Number == nil {
		return name
	}
	return fmt.Sprintf("#%d %s", *p.Number, name)
}
