// Package ssh adapts gliderlabs SSH sessions into tcell screens.
package ssh

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// DefaultTerm is used when the client does not send TERM.
const DefaultTerm = "xterm-256color"

// allowedTerms lists the terminal types the server will look up in the
// terminfo database. Anything else is refused before it reaches os.Setenv.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"xterm-color":           true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
	"alacritty":             true,
}

// ErrNoPTY is returned for sessions opened without a pseudo-terminal.
var ErrNoPTY = errors.New("ssh: session has no PTY")

// termMu serializes the TERM environment swap around terminfo lookup.
var termMu sync.Mutex

// SessionTerm returns the session's TERM, defaulting to DefaultTerm, and
// whether it is on the allow-list.
func SessionTerm(s gossh.Session) (string, bool) {
	term := DefaultTerm
	for _, env := range s.Environ() {
		if v, ok := strings.CutPrefix(env, "TERM="); ok && v != "" {
			term = v
			break
		}
	}
	return term, allowedTerms[term]
}

// NewScreen builds and initializes a tcell screen drawing to s. The caller
// must Fini the screen.
func NewScreen(s gossh.Session) (tcell.Screen, error) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		return nil, ErrNoPTY
	}
	term, ok := SessionTerm(s)
	if !ok {
		return nil, fmt.Errorf("ssh: terminal type %q is not supported", term)
	}

	tty := NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("ssh: terminal setup: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("ssh: screen init: %w", err)
	}
	return screen, nil
}

// SessionTty implements tcell.Tty backed by a gliderlabs/ssh session.
// Each connected SSH client gets its own SessionTty → tcell.Screen pair.
type SessionTty struct {
	session gossh.Session
	mu      sync.Mutex
	window  gossh.Window
	winCh   <-chan gossh.Window
	cb      func()
	watch   sync.Once
}

// NewSessionTty wraps a gliderlabs SSH session as a tcell Tty.
// pty holds the initial window size; winCh delivers subsequent resize events.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
	}
}

func (t *SessionTty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }
func (t *SessionTty) Close() error                { return t.session.Close() }

// Start, Stop and Drain are no-ops: the channel is owned by the server
// handler and writes are not buffered.
func (t *SessionTty) Start() error { return nil }
func (t *SessionTty) Stop() error  { return nil }
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the current terminal dimensions.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers the callback invoked on window changes. The
// window-change channel is drained by a single goroutine for the lifetime of
// the session, however often tcell re-registers.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()
	t.watch.Do(func() { go t.watchResize() })
}

func (t *SessionTty) watchResize() {
	for win := range t.winCh {
		t.mu.Lock()
		t.window = win
		cb := t.cb
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}
