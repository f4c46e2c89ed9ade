package component

import "rainbow-rogue/internal/ecs"

const (
	CTagPlayer  ecs.ComponentType = 9
	CTagMonster ecs.ComponentType = 10
	CMonster    ecs.ComponentType = 11
)

// TagPlayer marks the player-controlled entity.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }

// TagMonster marks entities driven by the wander system.
type TagMonster struct{}

func (TagMonster) Type() ecs.ComponentType { return CTagMonster }

// Monster carries a monster's display name.
type Monster struct {
	Name string
}

func (Monster) Type() ecs.ComponentType { return CMonster }
