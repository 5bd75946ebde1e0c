package cli

import (
	"LocalBoard/internal/board"
	"LocalBoard/internal/config"
	"LocalBoard/internal/session"
	"LocalBoard/internal/state"
	"LocalBoard/internal/tools"

	"github.com/charmbracelet/log"
)

// newSession builds an offline board session configured from cfg.
func newSession(cfg config.Config, logger *log.Logger) *session.Session {
	c := board.New("")
	m := tools.NewDefaultManager(c, logger.WithPrefix("tools"),
		tools.WithUpdateRate(cfg.UpdateRate),
		tools.WithLiveUpdates(cfg.LiveUpdates),
	)
	m.SetOptions(tools.Options{LineWidth: cfg.Brush.Width, Color: cfg.Brush.Color})

	store := state.NewStore("", logger.WithPrefix("store"))
	return session.New(c, store, m, logger)
}
