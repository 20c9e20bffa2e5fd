package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "PRODUCTIVE_LOCK_"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds hold-button timing, counter and logging settings.
type Config struct {
	HoldDuration     time.Duration
	CelebrationDelay time.Duration
	CounterStep      int
	LogLevel         string
	JSONLogs         bool
	Telemetry        bool
}

// Default returns a one second hold, a 300ms celebration and a counter step of 1.
func Default() Config {
	return Config{
		HoldDuration:     time.Second,
		CelebrationDelay: 300 * time.Millisecond,
		CounterStep:      1,
		LogLevel:         "info",
		JSONLogs:         false,
		Telemetry:        true,
	}
}

// Load reads the optional .env files (missing files are fine), then applies
// PRODUCTIVE_LOCK_* variables on top of the defaults.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, starting from Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(envPrefix + "HOLD_MS"); ok {
		ms, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%sHOLD_MS=%q: %w", envPrefix, v, ErrInvalidConfig)
		}
		cfg.HoldDuration = time.Duration(ms) * time.Millisecond
	}
	if v, ok := lookup(envPrefix + "CELEBRATION_MS"); ok {
		ms, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%sCELEBRATION_MS=%q: %w", envPrefix, v, ErrInvalidConfig)
		}
		cfg.CelebrationDelay = time.Duration(ms) * time.Millisecond
	}
	if v, ok := lookup(envPrefix + "COUNTER_STEP"); ok {
		step, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%sCOUNTER_STEP=%q: %w", envPrefix, v, ErrInvalidConfig)
		}
		cfg.CounterStep = step
	}
	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := lookup(envPrefix + "JSON_LOGS"); ok {
		cfg.JSONLogs = v == "true" || v == "1"
	}
	if v, ok := lookup(envPrefix + "TELEMETRY"); ok {
		cfg.Telemetry = !(v == "false" || v == "0")
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.HoldDuration <= 0 {
		return fmt.Errorf("hold duration %v must be positive: %w", c.HoldDuration, ErrInvalidConfig)
	}
	if c.CelebrationDelay < 0 {
		return fmt.Errorf("celebration delay %v must not be negative: %w", c.CelebrationDelay, ErrInvalidConfig)
	}
	if c.CounterStep <= 0 {
		return fmt.Errorf("counter step %d must be positive: %w", c.CounterStep, ErrInvalidConfig)
	}
	return nil
}
