// rainbow-rogue-server hosts independent rainbow-rogue runs over SSH: every
// connection gets its own session, seed and run log entries. Build:
//
//	go build -o rainbow-rogue-server ./cmd/server
//
// Usage:
//
//	./rainbow-rogue-server [-config rogue.yaml] [-port 2222] [-key server_host_key]
//
// Connect with:
//
//	ssh -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unicode"
	"unicode/utf8"

	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"

	"rainbow-rogue/internal/config"
	"rainbow-rogue/internal/content"
	"rainbow-rogue/internal/game"
	"rainbow-rogue/internal/runlog"
	internalssh "rainbow-rogue/internal/ssh"
)

// maxNameBytes caps the SSH user name as it appears in logs.
const maxNameBytes = 16

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML config file")
	port := flag.Int("port", 0, "SSH server port (overrides config)")
	keyFile := flag.String("key", "", "path to the PEM-encoded host key (auto-generated if absent)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *keyFile != "" {
		cfg.Server.HostKey = *keyFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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

	signer, err := loadOrCreateHostKey(cfg.Server.HostKey, logger)
	if err != nil {
		return err
	}

	h := &handler{cfg: cfg, catalog: catalog, store: store, logger: logger}
	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No auth options: any client may connect. Add gossh.PublicKeyAuth
		// for a server exposed beyond a trusted network.
		HostSigners: []gossh.Signer{signer},
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("rainbow-rogue SSH server listening", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		return err
	}
	return nil
}

// handler owns what SSH sessions share: configuration, the immutable content
// catalog and the run log store.
type handler struct {
	cfg     config.Config
	catalog *content.Catalog
	store   runlog.Store
	logger  *slog.Logger
}

func (h *handler) handleSession(s gossh.Session) {
	name := sanitizeName(s.User())
	logger := h.logger.With("user", name, "remote", s.RemoteAddr().String())

	screen, err := internalssh.NewScreen(s)
	if err != nil {
		logger.Warn("session rejected", "err", err)
		fmt.Fprintf(s, "rainbow-rogue: %v\r\n", err)
		_ = s.Exit(1)
		return
	}
	defer screen.Fini()

	sess, err := game.NewSession(s.Context(), game.Options{
		Width:     h.cfg.Map.Width,
		Height:    h.cfg.Map.Height,
		Seed:      h.cfg.Seed,
		FOVRadius: h.cfg.Player.FOVRadius,
		Catalog:   h.catalog,
		Logger:    logger,
		Stats:     h.store,
	})
	if err != nil {
		logger.Error("session setup failed", "err", err)
		return
	}

	logger.Info("player connected", "seed", sess.Seed())
	sess.Run(s.Context(), screen)
	floor, _ := sess.Location()
	logger.Info("player disconnected", "floor", floor, "turns", sess.Sim().Turn(), "kills", sess.Kills())
}

// sanitizeName drops non-printable runes from an SSH user name and truncates
// the result to maxNameBytes without splitting a rune.
func sanitizeName(name string) string {
	out := make([]byte, 0, maxNameBytes)
	for _, r := range name {
		if r == utf8.RuneError || !unicode.IsPrint(r) {
			continue
		}
		if len(out)+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		out = utf8.AppendRune(out, r)
	}
	return string(out)
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	logger.Info("generating new ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	pemBlock, err := xssh.MarshalPrivateKey(key, "rainbow-rogue server")
	if err != nil {
		return signer, nil
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
		logger.Warn("host key not persisted", "path", path, "err", err)
	}
	return signer, nil
}
