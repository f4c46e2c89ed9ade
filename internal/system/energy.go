package system

import (
	"math"

	"rainbow-rogue/internal/component"
	"rainbow-rogue/internal/ecs"
)

// RunEnergy adds each actor's speed to its energy, saturating at the int
// limits instead of wrapping.
func RunEnergy(w *ecs.World) {
	for _, id := range w.Query(component.CActor) {
		a := w.Get(id, component.CActor).(component.Actor)
		a.Energy = saturatingAdd(a.Energy, a.Speed)
		w.Add(id, a)
	}
}

func saturatingAdd(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

// saturatingSub subtracts b from a without going below zero.
func saturatingSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}
