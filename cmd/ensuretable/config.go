package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nisimpson/ensuretable"
	"github.com/sirupsen/logrus"
)

// Environment variables read at startup. AWS_REGION and the rest of the AWS
// credential chain are handled by the SDK.
const (
	envEndpoint    = "DYNAMODB_ENDPOINT"
	envLogLevel    = "LOG_LEVEL"
	envInterval    = "ENSURETABLE_INTERVAL"
	envMaxAttempts = "ENSURETABLE_MAX_ATTEMPTS"
)

type settings struct {
	Endpoint    string
	LogLevel    logrus.Level
	Interval    time.Duration
	MaxAttempts int
}

func loadSettings(getenv func(string) string) (settings, error) {
	s := settings{
		Endpoint:    getenv(envEndpoint),
		LogLevel:    logrus.InfoLevel,
		Interval:    ensuretable.DefaultInterval,
		MaxAttempts: ensuretable.DefaultMaxAttempts,
	}

	if v := getenv(envLogLevel); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return s, fmt.Errorf("%s: %w", envLogLevel, err)
		}
		s.LogLevel = level
	}

	if v := getenv(envInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return s, fmt.Errorf("%s: invalid duration %q", envInterval, v)
		}
		s.Interval = d
	}

	if v := getenv(envMaxAttempts); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return s, fmt.Errorf("%s: invalid attempt count %q", envMaxAttempts, v)
		}
		s.MaxAttempts = n
	}

	return s, nil
}

func loadSettingsFromEnv() (settings, error) {
	return loadSettings(os.Getenv)
}
