package component

import "rainbow-rogue/internal/ecs"

const CCombatStats ecs.ComponentType = 5

// CombatStats holds hit points and the attack/defense pair used by the
// damage formula. HP stays within [0, MaxHP].
type CombatStats struct {
	MaxHP   int
	HP      int
	Power   int
	Defense int
}

func (CombatStats) Type() ecs.ComponentType { return CCombatStats }

// Ratio is HP/MaxHP. A zero MaxHP counts as full health.
func (c CombatStats) Ratio() float64 {
	if c.MaxHP <= 0 {
		return 1
	}
	return float64(c.HP) / float64(c.MaxHP)
}

// Dead reports whether hit points are exhausted.
func (c CombatStats) Dead() bool { return c.HP <= 0 }
