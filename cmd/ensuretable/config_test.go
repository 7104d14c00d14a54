package main

import (
	"testing"
	"time"

	"github.com/nisimpson/ensuretable"
	"github.com/sirupsen/logrus"
)

func envFrom(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := loadSettings(envFrom(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Interval != ensuretable.DefaultInterval {
		t.Errorf("expected interval %s, got %s", ensuretable.DefaultInterval, s.Interval)
	}
	if s.MaxAttempts != ensuretable.DefaultMaxAttempts {
		t.Errorf("expected %d attempts, got %d", ensuretable.DefaultMaxAttempts, s.MaxAttempts)
	}
	if s.LogLevel != logrus.InfoLevel {
		t.Errorf("expected info level, got %s", s.LogLevel)
	}
	if s.Endpoint != "" {
		t.Errorf("expected no endpoint override, got %s", s.Endpoint)
	}
}

func TestLoadSettingsOverrides(t *testing.T) {
	s, err := loadSettings(envFrom(map[string]string{
		envEndpoint:    "http://localhost:8000",
		envLogLevel:    "debug",
		envInterval:    "250ms",
		envMaxAttempts: "3",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Endpoint != "http://localhost:8000" {
		t.Errorf("unexpected endpoint %s", s.Endpoint)
	}
	if s.LogLevel != logrus.DebugLevel {
		t.Errorf("expected debug level, got %s", s.LogLevel)
	}
	if s.Interval != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %s", s.Interval)
	}
	if s.MaxAttempts != 3 {
		t.Errorf("expected 3 attempts, got %d", s.MaxAttempts)
	}
}

func TestLoadSettingsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"log level", map[string]string{envLogLevel: "loud"}},
		{"interval", map[string]string{envInterval: "soon"}},
		{"negative interval", map[string]string{envInterval: "-1s"}},
		{"attempts", map[string]string{envMaxAttempts: "many"}},
		{"zero attempts", map[string]string{envMaxAttempts: "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadSettings(envFrom(tt.env)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
