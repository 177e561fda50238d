package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerit/examterm/internal/api"
	"github.com/careerit/examterm/internal/config"
	"github.com/careerit/examterm/internal/logger"
	"github.com/careerit/examterm/internal/portal"
	"github.com/careerit/examterm/internal/tui"
	"github.com/careerit/examterm/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// Ctrl-C tears down the active screen; countdown goroutines and
	// in-flight requests hang off this context.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := api.NewClient(cfg, nil, log)
	p := tui.Stdio()

	p.Say("Student Exam Portal")

	cred, err := tui.Login(ctx, client, p, log)
	if err != nil {
		p.Say("%v", err)
		os.Exit(1)
	}

	if cred.IsAdmin() {
		p.Say("This is an administrator account. Use adminctl for admin tasks.")
		os.Exit(1)
	}

	dashboard := tui.NewDashboard(client, portal.NewService(client, log), cfg, p, log)
	if err := dashboard.Run(ctx); err != nil {
		log.Error().Err(err).Msg("dashboard exited with error")
		p.Say("%v", err)
		cred.Clear()
		os.Exit(1)
	}

	cred.Clear()
	p.Say("Logged out. Goodbye.")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
