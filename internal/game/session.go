// Package game orchestrates one player's runs: it turns queued actions into
// simulation calls, drives the turn scheduler, keeps the message log and
// records run statistics.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"

	"rainbow-rogue/internal/component"
	"rainbow-rogue/internal/content"
	"rainbow-rogue/internal/dungeon"
	"rainbow-rogue/internal/gamemap"
	"rainbow-rogue/internal/runlog"
	"rainbow-rogue/internal/sim"
	"rainbow-rogue/internal/turn"
)

// LogCapacity is how many messages the log keeps.
const LogCapacity = 8

// Health warning thresholds.
const (
	criticalRatio = 0.3
	recoverRatio  = 0.5
)

// Monster seeding per plane: one monster per seedDensity walkable tiles,
// clamped to [minSeeded, maxSeeded].
const (
	seedDensity = 80
	minSeeded   = 2
	maxSeeded   = 6
	seedSalt    = 0xdeadbeef
)

// Options configures a Session. Zero values select defaults.
type Options struct {
	Width, Height int
	// Seed for the first run; 0 derives one from the clock.
	Seed      int64
	FOVRadius int
	Catalog   *content.Catalog
	Logger    *slog.Logger
	Stats     runlog.Store
	// Now stamps run records; nil uses time.Now.
	Now func() time.Time
}

func (o *Options) applyDefaults() error {
	if o.Width == 0 {
		o.Width = 80
	}
	if o.Height == 0 {
		o.Height = 48
	}
	if o.FOVRadius == 0 {
		o.FOVRadius = 8
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Stats == nil {
		o.Stats = runlog.NopStore{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Catalog == nil {
		c, err := content.Default()
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}
		o.Catalog = c
	}
	return nil
}

type moveAttempt struct {
	origin, target gamemap.Point
}

// Session is one player's sequence of runs. It is not safe for concurrent
// use.
type Session struct {
	opts    Options
	logger  *slog.Logger
	sched   *turn.Scheduler
	queue   []Action
	summary runlog.Summary
	quit    bool

	// Per-run state, rebuilt by newRun.
	runID     string
	seed      int64
	dungeon   *dungeon.Dungeon
	sim       *sim.Sim
	floor     gamemap.FloorID
	plane     gamemap.Plane
	seeded    mapset.Set[gamemap.FloorID]
	attuned   mapset.Set[gamemap.Plane]
	visible   mapset.Set[gamemap.Point]
	log       []string
	attempt   *moveAttempt
	hpAlerted bool
	hpRatio   float64
	dead      bool
	recorded  bool
	kills     int
	bestDepth int
}

// NewSession loads the run summary from opts.Stats and starts the first
// run. A failing summary load is logged and treated as empty.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	if err := opts.applyDefaults(); err != nil {
		return nil, err
	}
	s := &Session{opts: opts, logger: opts.Logger}
	s.sched = turn.NewScheduler(pipelineDriver{s}, opts.Logger)

	sum, err := opts.Stats.Summary(ctx)
	if err != nil {
		s.logger.Warn("run log: load summary", "error", err)
	}
	s.summary = sum
	s.newRun(opts.Seed)
	return s, nil
}

// newRun rebuilds every piece of per-run state from seed.
func (s *Session) newRun(seed int64) {
	s.runID = uuid.NewString()
	s.seed = seed
	s.dungeon = dungeon.New(s.opts.Width, s.opts.Height, seed, s.logger)
	s.floor = 0
	s.plane = gamemap.PlaneRed
	s.dungeon.Ensure(s.floor)

	spawn := component.Position{Floor: s.floor, Plane: s.plane}.At(s.dungeon.SpawnPoint(s.floor))
	s.sim = sim.New(spawn, s.opts.FOVRadius, s.opts.Catalog.Starters(s.plane), seed)
	s.seeded = mapset.New[gamemap.FloorID]()
	s.attuned = mapset.New[gamemap.Plane]()
	s.attuned.Put(s.plane)
	s.visible = mapset.New[gamemap.Point]()
	s.attempt = nil
	s.hpAlerted = false
	s.hpRatio = 1
	s.dead = false
	s.recorded = false
	s.kills = 0
	s.bestDepth = 0

	s.log = s.log[:0]
	for _, p := range gamemap.Spectrum {
		s.log = append(s.log, fmt.Sprintf("%s focus: %s", p, p.Rule()))
	}
	if len(s.log) > LogCapacity {
		s.log = s.log[:LogCapacity]
	}

	s.seedMonsters(s.floor)
	s.refreshView()
	s.logger.Info("run started", "run", s.runID, "seed", seed)
}

// Submit queues an action for a later Tick.
func (s *Session) Submit(a Action) { s.queue = append(s.queue, a) }

// Pending reports how many queued actions have not been processed.
func (s *Session) Pending() int { return len(s.queue) }

// Quit reports whether a quit action has been processed.
func (s *Session) Quit() bool { return s.quit }

// Dead reports whether the current run's player has died.
func (s *Session) Dead() bool { return s.dead }

// Log returns a copy of the message log, newest first.
func (s *Session) Log() []string { return append([]string(nil), s.log...) }

// Summary returns the cross-run statistics including recorded runs.
func (s *Session) Summary() runlog.Summary { return s.summary }

// Seed is the current run's seed.
func (s *Session) Seed() int64 { return s.seed }

// Location returns the active floor and plane.
func (s *Session) Location() (gamemap.FloorID, gamemap.Plane) { return s.floor, s.plane }

// Sim exposes the simulation core of the current run.
func (s *Session) Sim() *sim.Sim { return s.sim }

// Dungeon exposes the current run's floors.
func (s *Session) Dungeon() *dungeon.Dungeon { return s.dungeon }

// Kills counts monsters the player destroyed this run.
func (s *Session) Kills() int { return s.kills }

// Tick processes at most one queued action, lets the scheduler run the
// resulting turn and folds its outcome into the log. It returns the number
// of pipeline passes performed.
func (s *Session) Tick(ctx context.Context) int {
	if s.quit {
		return 0
	}
	consumed := false
	if len(s.queue) > 0 && s.sched.State() == turn.AwaitingInput {
		a := s.queue[0]
		s.queue = s.queue[1:]
		consumed = s.apply(ctx, a)
		if s.quit {
			return 0
		}
	}

	previous := s.sim.PlayerPoint()
	passes, err := s.sched.Tick(ctx, consumed)
	if err != nil {
		s.logger.Error("turn scheduler fault", "error", err, "turn", s.sim.Turn())
	}
	s.resolveMoveAttempt(previous)
	s.updateVisibility()
	s.flushCombatLog()
	s.checkHealth()
	s.checkDeath(ctx)
	return passes
}

// Play submits actions one at a time, ticking after each, until the list is
// exhausted or a quit is processed.
func (s *Session) Play(ctx context.Context, actions []Action) {
	for _, a := range actions {
		s.Submit(a)
		s.Tick(ctx)
		if s.quit {
			return
		}
	}
}

// Finish records the current run if it has not been recorded yet.
func (s *Session) Finish(ctx context.Context) { s.recordRun(ctx) }

// apply performs a and reports whether it consumes a turn.
func (s *Session) apply(ctx context.Context, a Action) bool {
	switch a.Kind {
	case ActionQuit:
		s.recordRun(ctx)
		s.quit = true
		return false
	case ActionRestart:
		s.restart(ctx)
		return false
	}
	if s.dead {
		return false
	}

	switch a.Kind {
	case ActionMove:
		return s.tryStep(a.DX, a.DY)
	case ActionWait:
		s.pushLog("You wait.")
		return true
	case ActionCyclePlane:
		return s.cyclePlane(a.DX)
	case ActionDescend:
		s.descend()
	case ActionAscend:
		s.ascend()
	case ActionUseSlot:
		return s.useSlot(a.Slot)
	}
	return false
}

// tryStep attacks an occupant of the target tile or queues a step into it.
// Killing the occupant still queues the step.
func (s *Session) tryStep(dx, dy int) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	current := s.sim.PlayerPoint()
	target := current.Add(dx, dy)
	if id, ok := s.sim.EntityAt(target, s.floor, s.plane); ok && id != s.sim.Player() {
		if rep, ok := s.sim.PlayerAttack(target, s.floor, s.plane); ok {
			s.pushLog(rep.Hit)
			if rep.Kill == "" {
				s.attempt = nil
				return true
			}
			s.kills++
			s.pushLog(rep.Kill)
		}
	}
	s.sim.QueuePlayerIntent(dx, dy)
	s.attempt = &moveAttempt{origin: current, target: target}
	return true
}

// cyclePlane re-attunes the player to the neighboring plane at the same
// point. A monster standing there blocks the shift.
func (s *Session) cyclePlane(delta int) bool {
	if delta == 0 {
		return false
	}
	next := s.plane.Cycle(delta)
	point := s.sim.PlayerPoint()
	if _, occupied := s.sim.EntityAt(point, s.floor, next); occupied {
		s.pushLog(fmt.Sprintf("Attunement to %s blocked by a presence.", next))
		return false
	}
	s.plane = next
	s.sim.SetPlayerPosition(point, s.floor, s.plane)
	s.sim.ClearPlayerIntent()
	s.attempt = nil
	s.pushLog(fmt.Sprintf("Shifted attunement to %s", s.plane))
	s.attune(s.plane)
	return true
}

// attune grants a plane's starter consumables the first time the player
// shifts onto it in a run. Items already held by name are not duplicated.
func (s *Session) attune(p gamemap.Plane) {
	if s.attuned.Has(p) {
		return
	}
	s.attuned.Put(p)
	for _, name := range s.sim.GrantConsumables(s.opts.Catalog.Starters(p)) {
		s.pushLog(fmt.Sprintf("%s resonance yields %s.", p, name))
	}
}

func (s *Session) currentTile() (gamemap.Tile, bool) {
	layer, ok := s.dungeon.Layer(s.floor, s.plane)
	if !ok {
		return gamemap.Tile{}, false
	}
	return layer.TileAt(s.sim.PlayerPoint())
}

// descend moves to the next floor's spawn, generating and seeding it on
// first visit. Stairs are free actions.
func (s *Session) descend() {
	if t, ok := s.currentTile(); !ok || t.Kind != gamemap.TileStairsDown {
		s.pushLog("There are no stairs down here.")
		return
	}
	next := s.floor + 1
	_, created := s.dungeon.Ensure(next)
	arrival := s.dungeon.SpawnPoint(next)
	if !created {
		if _, occupied := s.sim.EntityAt(arrival, next, s.plane); occupied {
			s.pushLog("Something lurks at the foot of the stairs.")
			return
		}
	}
	s.changeFloor(next, arrival)
	s.pushLog(fmt.Sprintf("Descended to floor %d", s.floor))
}

// ascend returns to the previous floor's down stairs.
func (s *Session) ascend() {
	if t, ok := s.currentTile(); !ok || t.Kind != gamemap.TileStairsUp {
		s.pushLog("There are no stairs up here.")
		return
	}
	if s.floor == 0 {
		s.pushLog("The way up is sealed.")
		return
	}
	prev := s.floor - 1
	arrival := s.dungeon.DownAnchor(prev)
	if _, occupied := s.sim.EntityAt(arrival, prev, s.plane); occupied {
		s.pushLog("Something lurks at the top of the stairs.")
		return
	}
	s.changeFloor(prev, arrival)
	s.pushLog(fmt.Sprintf("Climbed to floor %d", s.floor))
}

func (s *Session) changeFloor(id gamemap.FloorID, arrival gamemap.Point) {
	s.floor = id
	s.bestDepth = max(s.bestDepth, int(id))
	s.sim.SetPlayerPosition(arrival, s.floor, s.plane)
	s.sim.ClearPlayerIntent()
	s.attempt = nil
	s.visible = mapset.New[gamemap.Point]()
	s.seedMonsters(id)
	s.refreshView()
}

// useSlot spends one use of an inventory slot. An empty slot costs nothing.
func (s *Session) useSlot(slot int) bool {
	before := s.sim.MonsterCount(s.floor, s.plane)
	lines, ok := s.sim.UseConsumable(slot, s.dungeon, s.floor, s.plane)
	if !ok {
		s.pushLog(fmt.Sprintf("Slot %d is empty.", slot+1))
		return false
	}
	for _, line := range lines {
		s.pushLog(line)
	}
	s.kills += before - s.sim.MonsterCount(s.floor, s.plane)
	s.attempt = nil
	return true
}

// seedMonsters populates every plane of floor id once. Positions are drawn
// without replacement from the walkable tiles using the floor's seed; the
// player's own tile on the active plane is skipped.
func (s *Session) seedMonsters(id gamemap.FloorID) {
	if s.seeded.Has(id) {
		return
	}
	f, ok := s.dungeon.Floor(id)
	if !ok {
		return
	}
	s.seeded.Put(id)

	rng := rand.New(rand.NewSource(s.dungeon.FloorSeed(id) ^ seedSalt))
	player := s.sim.PlayerPoint()
	for _, p := range gamemap.Spectrum {
		walkable := f.Layer(p).WalkablePoints()
		templates := s.opts.Catalog.Monsters(p)
		if len(walkable) == 0 || len(templates) == 0 {
			continue
		}
		count := min(max(len(walkable)/seedDensity, minSeeded), maxSeeded)
		spawned := 0
		for range count {
			if len(walkable) == 0 {
				break
			}
			idx := rng.Intn(len(walkable))
			pt := walkable[idx]
			walkable[idx] = walkable[len(walkable)-1]
			walkable = walkable[:len(walkable)-1]
			if p == s.plane && pt == player {
				continue
			}
			tmpl := templates[rng.Intn(len(templates))]
			s.sim.SpawnMonster(tmpl, pt, id, p)
			spawned++
		}
		s.logger.Debug("monsters seeded", "floor", id, "plane", p, "count", spawned)
	}
}

// restart records the current run and begins a fresh one from a derived
// seed. Only the cross-run summary carries over.
func (s *Session) restart(ctx context.Context) {
	s.recordRun(ctx)
	seed := nextSeed(s.seed)
	s.logger.Info("run restarted", "previous", s.runID, "seed", seed)
	s.newRun(seed)
	s.pushLog(fmt.Sprintf("A new spectrum unfolds (run %d).", s.summary.Runs+1))
}

// nextSeed derives the following run's seed with a 64-bit LCG step.
func nextSeed(seed int64) int64 {
	next := int64(uint64(seed)*6364136223846793005 + 1442695040888963407)
	if next == 0 {
		next = 1
	}
	return next
}

// recordRun stores the current run once. Store failures are logged.
func (s *Session) recordRun(ctx context.Context) {
	if s.recorded {
		return
	}
	s.recorded = true
	rec := runlog.Record{
		ID:        s.runID,
		Timestamp: s.opts.Now().UTC(),
		Seed:      s.seed,
		Depth:     s.bestDepth,
		Turns:     s.sim.Turn(),
		Kills:     s.kills,
		Died:      s.dead,
	}
	s.summary = s.summary.Add(rec)
	if err := s.opts.Stats.Append(ctx, rec); err != nil {
		s.logger.Warn("run log: append", "run", rec.ID, "error", err)
	}
}

// resolveMoveAttempt reports the outcome of the step queued this tick.
func (s *Session) resolveMoveAttempt(previous gamemap.Point) {
	if s.attempt == nil {
		return
	}
	a := *s.attempt
	s.attempt = nil
	current := s.sim.PlayerPoint()
	switch {
	case current == a.target:
		s.pushLog(fmt.Sprintf("Stepped to %s in %s", current, s.plane))
	case a.origin == previous:
		s.pushLog(fmt.Sprintf("Blocked at %s", a.target))
	}
}

// refreshView recomputes the player's field of view without spending a
// turn.
func (s *Session) refreshView() {
	if layer, ok := s.dungeon.Layer(s.floor, s.plane); ok {
		s.sim.Refresh(layer, s.floor, s.plane)
	}
	s.updateVisibility()
}

// updateVisibility reveals what the player sees and reports newly visible
// tiles.
func (s *Session) updateVisibility() {
	if _, ok := s.dungeon.Layer(s.floor, s.plane); !ok {
		s.visible = mapset.New[gamemap.Point]()
		return
	}
	previous := s.visible
	s.visible = mapset.New[gamemap.Point]()
	fresh := 0
	for _, pt := range s.sim.PlayerVisible() {
		s.dungeon.Reveal(s.floor, s.plane, pt)
		if s.visible.Has(pt) {
			continue
		}
		s.visible.Put(pt)
		if !previous.Has(pt) {
			fresh++
		}
	}
	if fresh > 0 {
		s.pushLog(fmt.Sprintf("Glimpsed %d new tiles in %s", fresh, s.plane))
	}
}

func (s *Session) flushCombatLog() {
	for _, line := range s.sim.DrainCombatLog() {
		s.pushLog(line)
	}
}

// checkHealth raises the critical warning once and clears it after the
// player recovers past recoverRatio.
func (s *Session) checkHealth() {
	stats, ok := s.sim.PlayerStats()
	if !ok {
		return
	}
	ratio := stats.Ratio()
	critical := ratio <= criticalRatio
	switch {
	case critical && !s.hpAlerted:
		s.pushLog("!! Vitality critical !!")
		s.hpAlerted = true
	case !critical && s.hpAlerted && ratio > recoverRatio:
		s.pushLog("Vitality stabilizes.")
		s.hpAlerted = false
	}
	s.hpRatio = ratio
}

// checkDeath flags the run over the first time the player's hp hits zero.
func (s *Session) checkDeath(ctx context.Context) {
	if s.dead {
		return
	}
	stats, ok := s.sim.PlayerStats()
	if !ok || !stats.Dead() {
		return
	}
	s.dead = true
	s.pushLog(fmt.Sprintf("Your run ends on floor %d. Press r to restart or q to quit.", s.floor))
	s.logger.Info("player died", "run", s.runID, "floor", s.floor, "turns", s.sim.Turn(), "kills", s.kills)
	s.recordRun(ctx)
}

func (s *Session) pushLog(entry string) {
	s.log = append([]string{entry}, s.log...)
	if len(s.log) > LogCapacity {
		s.log = s.log[:LogCapacity]
	}
}

// pipelineDriver lets the scheduler run passes against the active layer.
type pipelineDriver struct{ s *Session }

func (d pipelineDriver) RunPipeline() {
	s := d.s
	layer, ok := s.dungeon.Layer(s.floor, s.plane)
	if !ok {
		s.sim.ClearPlayerIntent()
		return
	}
	s.sim.Advance(layer, s.floor, s.plane)
}

func (d pipelineDriver) MonstersPending() bool { return d.s.sim.PendingMonsterIntents() }
