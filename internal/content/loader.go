package content

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	lua "github.com/yuin/gopher-lua"

	"rainbow-rogue/internal/component"
	"rainbow-rogue/internal/gamemap"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	monsters []rawDef
	starters []rawDef
}

type rawDef struct {
	key   string
	table *lua.LTable
}

// Load executes src in a sandboxed Lua VM and compiles the definitions it
// registers. name is only used in error messages. The VM is discarded
// after loading.
func Load(name, src string) (*Catalog, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("executing %s: %w", name, err)
	}

	cat, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", name, err)
	}
	if err := cat.validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", name, err)
	}
	return cat, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the VM or break determinism.
func sandbox(L *lua.LState) {
	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	} {
		L.SetGlobal(name, lua.LNil)
	}
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("randomseed", lua.LNil)
		tbl.RawSetString("random", lua.LNil)
	}
}

// registerAPI installs the curried constructors Monster "name" { ... } and
// Starter "plane" { ... } plus the effect helpers.
func registerAPI(L *lua.LState, coll *collector) {
	curried := func(dst *[]rawDef) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			key := L.CheckString(1)
			L.Push(L.NewFunction(func(L *lua.LState) int {
				*dst = append(*dst, rawDef{key: key, table: L.CheckTable(1)})
				return 0
			}))
			return 1
		})
	}
	L.SetGlobal("Monster", curried(&coll.monsters))
	L.SetGlobal("Starter", curried(&coll.starters))

	effect := func(kind string, fields ...string) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			tbl := L.NewTable()
			tbl.RawSetString("kind", lua.LString(kind))
			for i, f := range fields {
				tbl.RawSetString(f, lua.LNumber(L.CheckInt(i+1)))
			}
			L.Push(tbl)
			return 1
		})
	}
	L.SetGlobal("Heal", effect("heal", "amount"))
	L.SetGlobal("Cleanse", effect("cleanse"))
	L.SetGlobal("Blink", effect("blink", "range"))
	L.SetGlobal("Nova", effect("nova", "damage", "radius"))
}

func compile(coll *collector) (*Catalog, error) {
	cat := &Catalog{}
	for _, raw := range coll.monsters {
		p, m, err := compileMonster(raw)
		if err != nil {
			return nil, err
		}
		cat.monsters[p.Index()] = append(cat.monsters[p.Index()], m)
	}
	for _, raw := range coll.starters {
		p, ok := gamemap.ParsePlane(raw.key)
		if !ok {
			return nil, fmt.Errorf("starter: unknown plane %q", raw.key)
		}
		s, err := compileStarter(raw.table)
		if err != nil {
			return nil, err
		}
		cat.starters[p.Index()] = append(cat.starters[p.Index()], s)
	}
	return cat, nil
}

func compileMonster(raw rawDef) (gamemap.Plane, MonsterTemplate, error) {
	tbl := raw.table
	p, ok := gamemap.ParsePlane(getString(tbl, "plane"))
	if !ok {
		return 0, MonsterTemplate{}, fmt.Errorf("monster %q: unknown plane %q", raw.key, getString(tbl, "plane"))
	}
	glyph, err := getGlyph(tbl)
	if err != nil {
		return 0, MonsterTemplate{}, fmt.Errorf("monster %q: %w", raw.key, err)
	}
	return p, MonsterTemplate{
		Name:         raw.key,
		Glyph:        glyph,
		Color:        tcell.GetColor(getString(tbl, "color")),
		WanderChance: getNumber(tbl, "wander"),
		HP:           getInt(tbl, "hp"),
		Power:        getInt(tbl, "power"),
		Defense:      getInt(tbl, "defense"),
	}, nil
}

func compileStarter(tbl *lua.LTable) (ConsumableTemplate, error) {
	name := getString(tbl, "name")
	if name == "" {
		return ConsumableTemplate{}, fmt.Errorf("starter: missing name")
	}
	eff, err := compileEffect(getTable(tbl, "effect"))
	if err != nil {
		return ConsumableTemplate{}, fmt.Errorf("starter %q: %w", name, err)
	}
	uses := getInt(tbl, "uses")
	if tbl.RawGetString("uses") == lua.LNil {
		uses = 1
	}
	return ConsumableTemplate{
		Name:        name,
		Description: getString(tbl, "description"),
		Color:       tcell.GetColor(getString(tbl, "color")),
		Uses:        uses,
		Effect:      eff,
	}, nil
}

func compileEffect(tbl *lua.LTable) (component.Effect, error) {
	if tbl == nil {
		return component.Effect{}, fmt.Errorf("missing effect")
	}
	switch kind := getString(tbl, "kind"); kind {
	case "heal":
		return component.Effect{Kind: component.EffectHeal, Amount: getInt(tbl, "amount")}, nil
	case "cleanse":
		return component.Effect{Kind: component.EffectCleanse}, nil
	case "blink":
		return component.Effect{Kind: component.EffectBlink, Range: getInt(tbl, "range")}, nil
	case "nova":
		return component.Effect{Kind: component.EffectNova, Damage: getInt(tbl, "damage"), Radius: getInt(tbl, "radius")}, nil
	default:
		return component.Effect{}, fmt.Errorf("unknown effect kind %q", kind)
	}
}

func getGlyph(tbl *lua.LTable) (rune, error) {
	s := getString(tbl, "glyph")
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("glyph %q must be a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}
