package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/nhle/tasktracker/internal/app"
	"github.com/nhle/tasktracker/internal/logging"
	"github.com/nhle/tasktracker/internal/model"
	"github.com/nhle/tasktracker/internal/persist"
	"github.com/nhle/tasktracker/internal/store"
	"github.com/nhle/tasktracker/internal/tasks"
	"github.com/nhle/tasktracker/internal/view"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tasktracker:", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("tasktracker", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", model.DefaultConfigPath(), "path to config file")
	flags.StringP("backend", "b", "", "storage backend: sqlite, redis or memory")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("filter", "", "initial priority filter: all, high, medium or low")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := seedConfig(*configPath); err != nil {
		return err
	}

	v := model.NewViper(*configPath)
	for flag, k := range map[string]string{
		"backend":   "storage.backend",
		"log-level": "log.level",
		"filter":    "display.default_filter",
	} {
		if f := flags.Lookup(flag); f.Changed {
			if err := v.BindPFlag(k, f); err != nil {
				return fmt.Errorf("binding --%s: %w", flag, err)
			}
		}
	}

	cfg, err := model.LoadConfigFrom(v)
	if err != nil {
		return err
	}

	log, logFile, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx := context.Background()
	kv, err := store.Open(ctx, cfg.Storage, log)
	if err != nil {
		log.WithError(err).Error("opening store")
		return err
	}
	defer kv.Close()

	repo := tasks.Open(ctx,
		persist.New(kv, cfg.Storage.Key, log),
		tasks.WithLogger(log),
	)

	filter, err := view.ParseFilter(cfg.Display.DefaultFilter)
	if err != nil {
		return err
	}

	p := tea.NewProgram(app.New(ctx, repo, filter, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	log.Info("exiting")
	return nil
}

// seedConfig writes the default configuration on first run.
func seedConfig(path string) error {
	if _, err := os.Stat(path); err == nil || !errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return model.SaveConfig(path, model.DefaultAppConfig())
}
