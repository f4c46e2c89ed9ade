package system

import (
	"fmt"

	"rainbow-rogue/internal/component"
	"rainbow-rogue/internal/ecs"
)

// CombatLog collects messages produced while resolving attacks and effects
// until the caller drains them.
type CombatLog struct {
	entries []string
}

// Push appends one message.
func (l *CombatLog) Push(msg string) {
	l.entries = append(l.entries, msg)
}

// Pushf appends one formatted message.
func (l *CombatLog) Pushf(format string, args ...any) {
	l.Push(fmt.Sprintf(format, args...))
}

// Drain returns the accumulated messages oldest first and clears the log.
func (l *CombatLog) Drain() []string {
	out := l.entries
	l.entries = nil
	return out
}

// Len reports how many messages are waiting.
func (l *CombatLog) Len() int { return len(l.entries) }

// AttackResult holds the outcome of one attack.
type AttackResult struct {
	Damage int
	Killed bool
}

// Damage is the shared attack formula: power minus defense, never below 1.
func Damage(power, defense int) int {
	return max(1, power-defense)
}

// Attack resolves one hit from attacker against defender. It reports false
// when either side lacks CombatStats. A monster brought to 0 hp is deleted
// (removed at the next Maintain); the player is left in place at 0 hp.
func Attack(w *ecs.World, attacker, defender ecs.EntityID) (AttackResult, bool) {
	ac := w.Get(attacker, component.CCombatStats)
	dc := w.Get(defender, component.CCombatStats)
	if ac == nil || dc == nil {
		return AttackResult{}, false
	}
	atk := ac.(component.CombatStats)
	def := dc.(component.CombatStats)

	dmg := Damage(atk.Power, def.Defense)
	def.HP = saturatingSub(def.HP, dmg)
	w.Add(defender, def)

	res := AttackResult{Damage: dmg, Killed: def.HP == 0}
	if res.Killed && !w.Has(defender, component.CTagPlayer) {
		w.Delete(defender)
	}
	return res, true
}

// monsterName falls back to "foe" for entities without a Monster component.
func monsterName(w *ecs.World, id ecs.EntityID) string {
	if c := w.Get(id, component.CMonster); c != nil {
		return c.(component.Monster).Name
	}
	return "foe"
}

// AttackReport is the message pair produced by a player attack.
type AttackReport struct {
	Hit  string
	Kill string // empty unless the target died
}

// PlayerAttack makes player strike target. It reports false when the target
// is the player itself or either side lacks stats. A killed target is
// deleted and must be flushed with Maintain by the caller.
func PlayerAttack(w *ecs.World, player, target ecs.EntityID) (AttackReport, bool) {
	if target == player || !w.Alive(target) {
		return AttackReport{}, false
	}
	name := monsterName(w, target)
	res, ok := Attack(w, player, target)
	if !ok {
		return AttackReport{}, false
	}
	rep := AttackReport{Hit: fmt.Sprintf("You strike %s for %d", name, res.Damage)}
	if res.Killed {
		rep.Kill = name + " collapses into specter dust."
	}
	return rep, true
}
