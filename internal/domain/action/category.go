package action

// Category is the fixed taxonomy the full feed groups by. Order matters for
// presentation: every category renders even when it holds no events.
type Category string

const (
	CategoryShooting    Category = "shooting"
	CategoryPossession  Category = "possession"
	CategoryDefense     Category = "defense"
	CategoryInfractions Category = "infractions"
	CategoryGoalkeeping Category = "goalkeeping"
)

var CategoryOrder = []Category{
	CategoryShooting,
	CategoryPossession,
	CategoryDefense,
	CategoryInfractions,
	CategoryGoalkeeping,
}

var TypesByCategory = map[Category][]Type{
	CategoryShooting:    {TypeGoal, TypePoint, TypeMissedShot},
	CategoryPossession:  {TypeCarry, TypeTurnover},
	CategoryDefense:     {TypeBallWon, TypeRecovery, TypeBlock},
	CategoryInfractions: {TypeFoulCommitted, TypePenaltyConceded, TypeYellowCard, TypeBlackCard, TypeRedCard},
	CategoryGoalkeeping: {TypeKickout, TypeSave},
}

var categoryLabels = map[Category]string{
	CategoryShooting:    "Shooting",
	CategoryPossession:  "Possession",
	CategoryDefense:     "Defense",
	CategoryInfractions: "Infractions",
	CategoryGoalkeeping: "Goalkeeping",
}

func (c Category) Label() string {
	return categoryLabels[c]
}

// CategoryOf returns the category a type belongs to.
func CategoryOf(t Type) (Category, bool) {
	for _, category := range CategoryOrder {
		for _, member := range TypesByCategory[category] {
			if member == t {
				return category, true
			}
		}
	}
	return "", false
}
