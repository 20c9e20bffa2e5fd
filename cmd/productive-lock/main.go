package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli"

	"productive-lock/internal/app"
	"productive-lock/internal/config"
	"productive-lock/internal/logger"
)

func main() {
	cliApp := cli.NewApp()
	cliApp.Name = "productive-lock"
	cliApp.Usage = "hold the button to unlock the currency page"
	cliApp.Version = app.AppVersion
	cliApp.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "env-file",
			Usage: "dotenv file with PRODUCTIVE_LOCK_* settings",
			Value: ".env",
		},
		cli.IntFlag{
			Name:  "hold-ms",
			Usage: "how long the button must be held, in milliseconds (0 = from config)",
		},
		cli.IntFlag{
			Name:  "celebration-ms",
			Usage: "pause between activation and navigation, in milliseconds (-1 = from config)",
			Value: -1,
		},
		cli.IntFlag{
			Name:  "counter-step",
			Usage: "amount the currency buttons add or remove (0 = from config)",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn, error or off",
		},
		cli.BoolFlag{
			Name:  "json-logs",
			Usage: "write logs as JSON lines",
		},
		cli.BoolFlag{
			Name:  "no-telemetry",
			Usage: "disable hold session tracking",
		},
	}
	cliApp.Action = run

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "productive-lock: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return err
	}
	applyFlags(c, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	log.Info("Main", "runtime", map[string]interface{}{
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
	})

	application, err := app.NewApplication(cfg, log)
	if err != nil {
		log.Error("Main", err, map[string]interface{}{"stage": "init"})
		return fmt.Errorf("application initialization failed: %w", err)
	}

	if err := application.Run(); err != nil {
		log.Error("Main", err, map[string]interface{}{"stage": "run"})
		return fmt.Errorf("application execution failed: %w", err)
	}

	log.Info("Main", "application terminated", nil)
	return nil
}

func applyFlags(c *cli.Context, cfg *config.Config) {
	if ms := c.Int("hold-ms"); ms > 0 {
		cfg.HoldDuration = msToDuration(ms)
	}
	if ms := c.Int("celebration-ms"); ms >= 0 {
		cfg.CelebrationDelay = msToDuration(ms)
	}
	if step := c.Int("counter-step"); step > 0 {
		cfg.CounterStep = step
	}
	if level := c.String("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if c.Bool("json-logs") {
		cfg.JSONLogs = true
	}
	if c.Bool("no-telemetry") {
		cfg.Telemetry = false
	}
}

func newLogger(cfg config.Config) (logger.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if level == zerolog.Disabled {
		return logger.Nop(), nil
	}
	if cfg.JSONLogs {
		return logger.NewJSONLogger(level), nil
	}
	return logger.NewConsoleLogger(level), nil
}

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
