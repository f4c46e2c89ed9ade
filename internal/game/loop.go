package game

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"rainbow-rogue/internal/render"
)

// Run drives the session from a tcell screen until the player quits, the
// screen is finalized or ctx is cancelled. The caller owns the screen.
func (s *Session) Run(ctx context.Context, screen tcell.Screen) {
	renderer := render.NewRenderer(screen)
	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, events, done)

	for !s.quit {
		renderer.Draw(s.Frame())
		select {
		case <-ctx.Done():
			s.recordRun(context.WithoutCancel(ctx))
			return
		case ev, ok := <-events:
			if !ok {
				s.recordRun(ctx)
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if a := keyToAction(ev); a.Kind != ActionNone {
					s.Submit(a)
				}
			}
		}
		for s.Pending() > 0 && !s.quit {
			s.Tick(ctx)
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
