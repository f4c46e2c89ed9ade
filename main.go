// Command rainbow-rogue plays a local run in the terminal, or replays a
// scripted run headlessly with -script.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"rainbow-rogue/internal/config"
	"rainbow-rogue/internal/content"
	"rainbow-rogue/internal/game"
	"rainbow-rogue/internal/runlog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML config file")
	seed := flag.Int64("seed", 0, "world seed (overrides config; 0 keeps it)")
	script := flag.String("script", "", "replay an action script headlessly and print the log")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	logger, closer, err := cfg.Log.NewLogger(nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := runlog.Open(ctx, cfg.Stats.Backend, cfg.Stats.DSN, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	catalog, err := content.Default()
	if err != nil {
		return err
	}

	sess, err := game.NewSession(ctx, game.Options{
		Width:     cfg.Map.Width,
		Height:    cfg.Map.Height,
		Seed:      cfg.Seed,
		FOVRadius: cfg.Player.FOVRadius,
		Catalog:   catalog,
		Logger:    logger,
		Stats:     store,
	})
	if err != nil {
		return err
	}

	if *script != "" {
		return replay(ctx, sess, *script)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnablePaste()
	sess.Run(ctx, screen)
	return nil
}

func replay(ctx context.Context, sess *game.Session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	actions, warnings, err := game.ParseScript(f)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, w)
	}

	sess.Play(ctx, actions)
	sess.Finish(ctx)
	floor, plane := sess.Location()
	fmt.Printf("seed %d · floor %d · %s · turn %d · kills %d\n",
		sess.Seed(), floor, plane, sess.Sim().Turn(), sess.Kills())
	log := sess.Log()
	for i := len(log) - 1; i >= 0; i-- {
		fmt.Println(log[i])
	}
	return nil
}
