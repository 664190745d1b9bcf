package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tarefa/internal/commands"
	"github.com/sandeepkv93/tarefa/internal/scheduler"
	"github.com/sandeepkv93/tarefa/internal/storage"
	"github.com/sandeepkv93/tarefa/internal/tasks"
	"github.com/sandeepkv93/tarefa/internal/update"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "tarefa failed: %v\n", err)
		os.Exit(1)
	}
}

// run starts the TUI, or executes a single command when args are given
// (for example `tarefa add Buy milk`).
func run(args []string) error {
	if err := update.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	logger, logCloser, err := update.OpenLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	repo, err := storage.Open(cfg.OpenOptions())
	if err != nil {
		return err
	}
	defer repo.Close()
	logger.Info("storage opened", "backend", cfg.Store, "path", cfg.ResolvedDataPath())

	ctx := context.Background()
	initial, err := tasks.Load(ctx, repo)
	switch {
	case errors.Is(err, tasks.ErrCorruptState):
		logger.Warn("stored tasks unreadable, starting empty", "err", err)
	case err != nil:
		return err
	}
	store := tasks.NewStore(initial, repo, tasks.WithLogger(logger))

	if len(args) > 0 {
		cmd, err := commands.Parse(strings.Join(args, " "))
		if err != nil {
			return err
		}
		res, err := update.RunCommand(ctx, store, cmd, time.Now())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return nil
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	program := tea.NewProgram(update.NewModelWithConfig(store, engine, notifier, logger, cfg))
	if _, err := program.Run(); err != nil {
		return err
	}
	logger.Debug("tarefa exited")
	return nil
}
