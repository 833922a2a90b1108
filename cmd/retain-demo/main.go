package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/mattn/go-isatty"

	"github.com/lixenwraith/retain/config"
	"github.com/lixenwraith/retain/injector"
)

var (
	configFlag   = flag.String("config", "retain.yaml", "Path to the YAML configuration")
	shellFlag    = flag.String("shell", "", "Shell override: terminal, headless, remote")
	maxTicksFlag = flag.Int("max-ticks", -1, "Headless tick limit override")
)

func main() {
	// Panic Recovery: print the stack after the terminal has been released
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nretain-demo crashed: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "retain-demo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *shellFlag != "" {
		cfg.Shell.Kind = *shellFlag
	}
	if *maxTicksFlag >= 0 {
		cfg.Shell.MaxTicks = *maxTicksFlag
	}
	cfg = resolveShell(cfg, isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
	if err := cfg.Validate(); err != nil {
		return err
	}

	app, cleanup, err := injector.InitializeApplication(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := app.Window(injector.WindowConfig(cfg), buildDemo); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.Run(ctx); err != nil {
		return err
	}
	return app.Errors()
}

// resolveShell falls back to a bounded headless run when the terminal shell has no terminal
func resolveShell(cfg config.Config, tty bool) config.Config {
	if cfg.Shell.Kind == config.ShellTerminal && !tty {
		cfg.Shell.Kind = config.ShellHeadless
		if cfg.Shell.MaxTicks == 0 {
			cfg.Shell.MaxTicks = cfg.Shell.FrameRate
		}
	}
	return cfg
}
