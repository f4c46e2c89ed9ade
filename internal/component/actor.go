package component

import "rainbow-rogue/internal/ecs"

const CActor ecs.ComponentType = 4

// Actor accumulates Speed into Energy once per pipeline pass.
type Actor struct {
	Energy int
	Speed  int
}

func (Actor) Type() ecs.ComponentType { return CActor }
