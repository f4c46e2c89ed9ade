package system

import (
	"math/rand"

	"rainbow-rogue/internal/ecs"
)

// Pipeline runs the per-pass systems in their fixed order: energy, wander,
// movement, field of view. Deletions decided during the pass are applied
// once all four have run.
type Pipeline struct {
	rng *rand.Rand
	log *CombatLog
}

// NewPipeline builds a pipeline drawing AI randomness from rng and writing
// combat messages to log.
func NewPipeline(rng *rand.Rand, log *CombatLog) *Pipeline {
	return &Pipeline{rng: rng, log: log}
}

// Run executes one pass against ctx and reports how many entities were
// removed at its end.
func (p *Pipeline) Run(w *ecs.World, ctx *Context) int {
	RunEnergy(w)
	RunWander(w, ctx, p.rng)
	RunMovement(w, ctx, p.log)
	RunFOV(w, ctx)
	return w.Maintain()
}
