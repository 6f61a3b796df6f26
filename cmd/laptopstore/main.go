package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/laptopstore/internal/cli"
	"github.com/idilsaglam/laptopstore/internal/config"
	"github.com/idilsaglam/laptopstore/internal/logging"
	"github.com/idilsaglam/laptopstore/internal/ui"
)

func main() {
	cfg := config.Load(os.Getenv)

	// Root flags (apply to every subcommand) override the environment.
	baseURL := flag.String("url", cfg.BaseURL, "laptopstore API root")
	logFile := flag.String("log", cfg.LogFile, "diagnostic log file (empty disables)")
	debug := flag.Bool("debug", cfg.Debug, "log every request")
	theme := flag.String("theme", "classic", "classic | neon | mono")
	flag.Usage = func() { cli.PrintHelp(os.Stderr) }
	flag.Parse()

	cfg.BaseURL, cfg.LogFile, cfg.Debug = *baseURL, *logFile, *debug
	ui.SetTheme(*theme)

	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.Debug)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Hand the remaining args to the CLI runner.
	code := cli.Run(ctx, flag.Args(), cli.Options{
		Config: cfg,
		Logger: logger,
	})
	stop()
	_ = closeLog()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
