package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/santa-arcade/internal/applog"
	"github.com/vovakirdan/santa-arcade/internal/audio"
	"github.com/vovakirdan/santa-arcade/internal/core"
	"github.com/vovakirdan/santa-arcade/internal/games/jingle"
	"github.com/vovakirdan/santa-arcade/internal/games/sleigh"
	"github.com/vovakirdan/santa-arcade/internal/platform/spectate"
	"github.com/vovakirdan/santa-arcade/internal/platform/tui"
	"github.com/vovakirdan/santa-arcade/internal/storage"
)

// session holds everything an interactive run shares between games.
type session struct {
	logger  *log.Logger
	closers []io.Closer
	opts    tui.RunOptions
}

// applyGameFlags passes --config and --difficulty to every game.
func applyGameFlags() {
	sleigh.SetConfigPath(flagConfig)
	sleigh.SetDifficultyPreset(flagDifficulty)
	jingle.SetConfigPath(flagConfig)
	jingle.SetDifficultyPreset(flagDifficulty)
}

// runtimeConfig sizes the screen from the controlling terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// openSession opens the log file, the score store, the audio device and
// the spectator stream. Every failure except a bad --highscore-file path
// degrades to running without that piece.
func openSession() (*session, error) {
	s := &session{}

	logger, closer, err := applog.OpenFile(applog.DefaultPath, "arcade")
	if err != nil {
		// The alt screen owns stderr once the game starts, so only
		// warnings printed before that are visible.
		logger = applog.Discard()
		os.Stderr.WriteString("Warning: " + err.Error() + "\n") //nolint:errcheck // Best-effort warning
	} else {
		s.closers = append(s.closers, closer)
	}
	s.logger = logger
	s.opts.Logger = logger

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	} else {
		s.opts.Store = store
		s.closers = append(s.closers, store)
	}

	if flagHighScoreFile != "" {
		file, fileErr := storage.NewFileHighScore(flagHighScoreFile)
		if fileErr != nil {
			s.Close()
			return nil, fileErr
		}
		s.opts.HighScores = file
	}

	player := audio.NewPlayer(logger)
	player.SetMuted(flagMute)
	if initErr := player.Init(); initErr != nil {
		logger.Warn("audio disabled", "error", initErr)
	}
	s.opts.Audio = player

	if flagSpectate != "" {
		hub, srv, spectErr := startSpectate(flagSpectate, logger)
		if spectErr != nil {
			logger.Warn("spectator stream disabled", "error", spectErr)
		} else {
			s.opts.Spectate = hub
			s.opts.Session = localSession()
			s.closers = append(s.closers, srv)
		}
	}

	return s, nil
}

// Close releases the session's resources.
func (s *session) Close() {
	if s.opts.Audio != nil {
		s.opts.Audio.Close()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		//nolint:errcheck // Best-effort cleanup
		s.closers[i].Close()
	}
}

// spectateServer adapts spectate.Server to io.Closer and stops the hub
// with it.
type spectateServer struct {
	srv    *spectate.Server
	cancel context.CancelFunc
}

func (s spectateServer) Close() error {
	defer s.cancel()
	return s.srv.Shutdown(context.Background())
}

// localSession labels frames from a terminal game.
func localSession() string {
	if u := os.Getenv("USER"); u != "" {
		return u + "@local"
	}
	return "local"
}

// startSpectate runs a hub and its HTTP listener.
func startSpectate(addr string, logger *log.Logger) (*spectate.Hub, io.Closer, error) {
	hub := spectate.NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv, err := spectate.Listen(addr, hub)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return hub, spectateServer{srv: srv, cancel: cancel}, nil
}
