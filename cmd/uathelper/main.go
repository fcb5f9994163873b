package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/joeycumines/uat-helper/internal/appsettings"
	"github.com/joeycumines/uat-helper/internal/command"
	"github.com/joeycumines/uat-helper/internal/config"
	"github.com/joeycumines/uat-helper/internal/logging"
	"github.com/joeycumines/uat-helper/internal/storage"
)

const version = "0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	// .env overrides apply to the UATHELPER_* variables read below.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintf(stderr, "Warning: failed to load .env: %v\n", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	cfg, err := config.LoadFromPath(configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: %v\n", err)
		cfg = config.NewConfig()
	}

	global := flag.NewFlagSet("uathelper", flag.ContinueOnError)
	global.SetOutput(stderr)
	logLevel := global.String("log-level", "", "Log level: debug, info, warn, error")
	logFile := global.String("log-file", "", "Append JSON logs to this file")
	global.Usage = func() {}
	helpRequested := false
	if err := global.Parse(args); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			return err
		}
		helpRequested = true
	}

	lc, err := logging.Resolve(*logLevel, *logFile, cfg)
	if err != nil {
		return err
	}
	logger, closer, err := logging.New(lc, stderr)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	schema := config.DefaultSchema()
	dir, err := storage.ResolveDirectory(schema.Resolve(cfg, config.KeyHome))
	if err != nil {
		return err
	}
	backendName := schema.Resolve(cfg, config.KeyStorageBackend)
	backend, err := storage.GetBackend(backendName, dir)
	if err != nil {
		return err
	}

	env := &command.Env{
		App: appsettings.NewManager(backend, func(dir string) (storage.Backend, error) {
			return storage.GetBackend(backendName, dir)
		}),
		Config:  cfg,
		Color:   schema.Resolve(cfg, config.KeyColor),
		Workers: schema.ResolveInt(cfg, config.KeyJobsWorkers),
	}
	registry := command.NewDefaultRegistry(env, cfg, configPath, version)

	rest := global.Args()
	if helpRequested || len(rest) == 0 {
		rest = []string{"help"}
	}
	if _, err := registry.Get(rest[0]); err != nil {
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", rest[0])
		_, _ = fmt.Fprintln(stderr, "Use 'uathelper help' to see available commands.")
		return err
	}
	slog.Debug("running command", "command", rest[0], "home", dir, "backend", backendName)
	if err := registry.Run(rest, stdout, stderr); err != nil && !errors.Is(err, flag.ErrHelp) {
		return err
	}
	return nil
}
