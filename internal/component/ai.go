package component

import "rainbow-rogue/internal/ecs"

const (
	CBrain      ecs.ComponentType = 7
	CIntentStep ecs.ComponentType = 8
)

// Brain drives monster AI. WanderChance is the probability in [0,1] of a
// random step when the player is out of range.
type Brain struct {
	WanderChance float64
}

func (Brain) Type() ecs.ComponentType { return CBrain }

// IntentStep is a movement delta queued for the next movement pass. It is
// removed by that pass whether or not the move succeeded.
type IntentStep struct {
	DX, DY int
}

func (IntentStep) Type() ecs.ComponentType { return CIntentStep }
