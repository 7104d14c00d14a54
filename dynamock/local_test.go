package dynamock

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"
)

func TestNewLocalClient(t *testing.T) {
	client := NewLocalClient(8000)

	if client == nil {
		t.Fatal("NewLocalClient returned nil")
	}
}

func TestNewLocalDynamoDB(t *testing.T) {
	local := NewLocalDynamoDB(8000)

	if local == nil {
		t.Fatal("NewLocalDynamoDB returned nil")
	}

	if local.Client == nil {
		t.Error("Client is nil")
	}

	if local.Endpoint != "http://localhost:8000" {
		t.Errorf("expected endpoint http://localhost:8000, got %s", local.Endpoint)
	}

	if local.Port != 8000 {
		t.Errorf("expected port 8000, got %d", local.Port)
	}
}

func TestNewDefaultLocalDynamoDB(t *testing.T) {
	local := NewDefaultLocalDynamoDB()

	if local.Port != DefaultLocalPort {
		t.Errorf("expected port %d, got %d", DefaultLocalPort, local.Port)
	}
}

func TestNewTestTable(t *testing.T) {
	a := NewTestTable("orders")
	time.Sleep(time.Microsecond)
	b := NewTestTable("orders")

	if !strings.HasPrefix(a, "orders-") {
		t.Errorf("expected prefix orders-, got %s", a)
	}
	if a == b {
		t.Errorf("expected unique names, got %s twice", a)
	}
}

// unusedPort returns a local port nothing is listening on.
func unusedPort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("failed to reserve a port: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()
	return port
}

func TestLocalDynamoDB_WaitForAvailable(t *testing.T) {
	t.Run("nothing listening", func(t *testing.T) {
		local := NewLocalDynamoDB(unusedPort(t))

		err := local.WaitForAvailable(context.Background(), 0)
		if err == nil {
			t.Fatal("expected an error")
		}
		if !strings.Contains(err.Error(), local.Endpoint) {
			t.Errorf("expected error to name %s: %v", local.Endpoint, err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		local := NewLocalDynamoDB(unusedPort(t))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := local.WaitForAvailable(ctx, time.Minute)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestLocalDynamoDB_Integration(t *testing.T) {
	WithDefaultLocalDynamoDB(t, func(local *LocalDynamoDB) {
		ctx := context.Background()

		if _, err := local.ListTables(ctx); err != nil {
			t.Fatalf("Failed to list tables: %v", err)
		}

		// Deleting a table that was never created is not an error
		if err := local.DeleteTable(ctx, NewTestTable("never-created")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
