package game

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ActionKind identifies a player-requested game action.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionMove
	ActionWait
	ActionCyclePlane
	ActionDescend
	ActionAscend
	ActionUseSlot
	ActionRestart
	ActionQuit
)

// Action is one queued player command. DX/DY carry a move delta or, for
// ActionCyclePlane, the cycle direction in DX. Slot is zero-based.
type Action struct {
	Kind   ActionKind
	DX, DY int
	Slot   int
}

func move(dx, dy int) Action { return Action{Kind: ActionMove, DX: dx, DY: dy} }
func cycle(delta int) Action { return Action{Kind: ActionCyclePlane, DX: delta} }
func useSlot(i int) Action   { return Action{Kind: ActionUseSlot, Slot: i} }

// keyToAction maps a tcell key event to a game action.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return move(0, -1)
	case tcell.KeyDown:
		return move(0, 1)
	case tcell.KeyRight:
		return move(1, 0)
	case tcell.KeyLeft:
		return move(-1, 0)
	case tcell.KeyTab:
		return cycle(1)
	case tcell.KeyBacktab, tcell.KeyBackspace, tcell.KeyBackspace2:
		return cycle(-1)
	case tcell.KeyPgDn:
		return Action{Kind: ActionDescend}
	case tcell.KeyPgUp:
		return Action{Kind: ActionAscend}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Action{Kind: ActionQuit}
	case tcell.KeyRune:
		return runeToAction(ev.Rune())
	}
	return Action{}
}

// runeToAction maps a single key character to an action. Keyboard input and
// scripts share this table.
func runeToAction(r rune) Action {
	switch r {
	case 'k', 'K', 'w', 'W':
		return move(0, -1)
	case 'j', 'J', 's', 'S':
		return move(0, 1)
	case 'l', 'L', 'd', 'D':
		return move(1, 0)
	case 'h', 'H', 'a', 'A':
		return move(-1, 0)
	case '\t':
		return cycle(1)
	case '!':
		return cycle(-1)
	case '>':
		return Action{Kind: ActionDescend}
	case '<':
		return Action{Kind: ActionAscend}
	case '1', '2', '3', '4', '5':
		return useSlot(int(r - '1'))
	case '.':
		return Action{Kind: ActionWait}
	case 'r', 'R':
		return Action{Kind: ActionRestart}
	case 'q', 'Q', '\x1b':
		return Action{Kind: ActionQuit}
	}
	return Action{}
}

// ScriptWarning reports a character a script could not map.
type ScriptWarning struct {
	Line int
	Char rune
}

func (w ScriptWarning) String() string {
	return fmt.Sprintf("line %d: unknown key %q", w.Line, w.Char)
}

// ParseScript reads one action per character. Blank lines and lines
// starting with '#' are skipped, as is surrounding whitespace on each line.
// Unknown characters are skipped and reported.
func ParseScript(r io.Reader) ([]Action, []ScriptWarning, error) {
	var (
		actions  []Action
		warnings []ScriptWarning
	)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		for _, ch := range text {
			a := runeToAction(ch)
			if a.Kind == ActionNone {
				warnings = append(warnings, ScriptWarning{Line: line, Char: ch})
				continue
			}
			actions = append(actions, a)
		}
	}
	if err := sc.Err(); err != nil {
		return actions, warnings, fmt.Errorf("read script: %w", err)
	}
	return actions, warnings, nil
}
