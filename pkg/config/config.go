package config

import (
	"os"
	"strconv"
	"time"

	"hexsolver/pkg/constants"
)

// Config holds the environment-derived settings loaded by cmd/server. The
// hexsolver CLI does not read it; its subcommands take flags instead.
type Config struct {
	Port            string
	SolveTimeout    time.Duration
	BatchTimeout    time.Duration
	CacheDir        string
	PuzzleSourceURL string
}

// Load builds a Config from environment variables, falling back to the
// package defaults for anything unset.
func Load() (*Config, error) {
	solveTimeout, err := getDuration("HEXSOLVER_SOLVE_TIMEOUT_SECONDS", constants.DefaultSolveTimeout)
	if err != nil {
		return nil, err
	}
	batchTimeout, err := getDuration("HEXSOLVER_BATCH_TIMEOUT_SECONDS", constants.DefaultBatchTimeout)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:            getEnv("HEXSOLVER_PORT", constants.DefaultPort),
		SolveTimeout:    solveTimeout,
		BatchTimeout:    batchTimeout,
		CacheDir:        getEnv("HEXSOLVER_CACHE_DIR", constants.DefaultCacheDir),
		PuzzleSourceURL: getEnv("HEXSOLVER_PUZZLE_SOURCE_URL", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	seconds, err := strconv.Atoi(val)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}
