package logging

import "os"

type Config struct {
	Format string
	Level  string
	Output string
}

func DefaultConfig() Config {
	return Config{
		Format: "none",
		Level:  "info",
		Output: "stderr",
	}
}

// FromEnv reads PARADOXE_LOG_* overrides. Logging stays off unless a
// format is requested.
func FromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("PARADOXE_LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("PARADOXE_LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("PARADOXE_LOG_FILE"); v != "" {
		cfg.Output = v
	}
	return cfg
}

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

func levelPriority(level string) int {
	switch level {
	case LevelDebug:
		return 0
	case LevelInfo:
		return 1
	case LevelWarn:
		return 2
	case LevelError:
		return 3
	default:
		return 1 // default to info
	}
}
