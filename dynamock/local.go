package dynamock

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	// DefaultLocalPort is the default port for DynamoDB Local.
	DefaultLocalPort = 8000
	// LocalStartupGrace is how long WithLocalDynamoDB waits for DynamoDB Local to answer.
	LocalStartupGrace = 2 * time.Second
)

// LocalDynamoDB represents a connection to a local DynamoDB instance. Tables passed to Track
// are deleted by Cleanup.
type LocalDynamoDB struct {
	Client   *dynamodb.Client
	Endpoint string
	Port     int

	tables []string
}

// LocalEndpoint returns the DynamoDB Local endpoint URL for port.
func LocalEndpoint(port int) string {
	return fmt.Sprintf("http://localhost:%d", port)
}

// NewLocalClient creates a DynamoDB client configured to connect to a local DynamoDB instance.
//
// Example usage:
//
//	client := dynamock.NewLocalClient(8000)
//	p := ensuretable.New(client)
func NewLocalClient(port int) *dynamodb.Client {
	return dynamodb.New(dynamodb.Options{
		Region:       "us-east-1", // DynamoDB Local doesn't care about region
		Credentials:  aws.AnonymousCredentials{},
		BaseEndpoint: aws.String(LocalEndpoint(port)),
	})
}

// NewLocalDynamoDB creates a LocalDynamoDB instance with the specified port.
func NewLocalDynamoDB(port int) *LocalDynamoDB {
	return &LocalDynamoDB{
		Client:   NewLocalClient(port),
		Endpoint: LocalEndpoint(port),
		Port:     port,
	}
}

// NewDefaultLocalDynamoDB creates a LocalDynamoDB instance using the default port (8000).
func NewDefaultLocalDynamoDB() *LocalDynamoDB {
	return NewLocalDynamoDB(DefaultLocalPort)
}

// IsAvailable checks if DynamoDB Local is running on the configured port.
func (l *LocalDynamoDB) IsAvailable(ctx context.Context) bool {
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("localhost:%d", l.Port), 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()

	// Make sure it's actually DynamoDB
	_, err = l.Client.ListTables(ctx, &dynamodb.ListTablesInput{})
	return err == nil
}

// WaitForAvailable polls until DynamoDB Local answers or timeout elapses. At least one
// check is always made.
func (l *LocalDynamoDB) WaitForAvailable(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for {
		if l.IsAvailable(ctx) {
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("DynamoDB Local not available at %s after %v", l.Endpoint, timeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}

// Track registers a table for deletion by Cleanup.
func (l *LocalDynamoDB) Track(tableName string) {
	l.tables = append(l.tables, tableName)
}

// DeleteTable deletes a table and waits for it to be fully deleted. A table that does not
// exist is not an error.
func (l *LocalDynamoDB) DeleteTable(ctx context.Context, tableName string) error {
	_, err := l.Client.DeleteTable(ctx, &dynamodb.DeleteTableInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		var notFoundErr *types.ResourceNotFoundException
		if errors.As(err, &notFoundErr) {
			return nil
		}
		return fmt.Errorf("failed to delete table %s: %w", tableName, err)
	}

	return l.WaitForTableDeleted(ctx, tableName, 30*time.Second)
}

// WaitForTableDeleted waits for a table to be fully deleted.
func (l *LocalDynamoDB) WaitForTableDeleted(ctx context.Context, tableName string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		_, err := l.Client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
			TableName: aws.String(tableName),
		})
		if err != nil {
			var notFoundErr *types.ResourceNotFoundException
			if errors.As(err, &notFoundErr) {
				return nil
			}
			return fmt.Errorf("error checking table deletion status: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(1 * time.Second):
		}
	}

	return fmt.Errorf("table %s was not deleted within %v", tableName, timeout)
}

// ListTables returns all table names in the local DynamoDB instance.
func (l *LocalDynamoDB) ListTables(ctx context.Context) ([]string, error) {
	output, err := l.Client.ListTables(ctx, &dynamodb.ListTablesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	return output.TableNames, nil
}

// Cleanup deletes every tracked table.
func (l *LocalDynamoDB) Cleanup(ctx context.Context) error {
	for _, tableName := range l.tables {
		if err := l.DeleteTable(ctx, tableName); err != nil {
			return fmt.Errorf("failed to delete table %s during cleanup: %w", tableName, err)
		}
	}

	l.tables = l.tables[:0]
	return nil
}

// WithLocalDynamoDB runs fn against a local DynamoDB instance, skipping the test in short
// mode or when DynamoDB Local is not reachable. Tracked tables are cleaned up afterwards.
func WithLocalDynamoDB(t *testing.T, port int, fn func(local *LocalDynamoDB)) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	local := NewLocalDynamoDB(port)
	ctx := context.Background()

	// Give a container that is still starting a short grace period
	if err := local.WaitForAvailable(ctx, LocalStartupGrace); err != nil {
		t.Skipf("DynamoDB Local not available on port %d: %v", port, err)
	}

	defer func() {
		if err := local.Cleanup(ctx); err != nil {
			t.Errorf("cleanup failed: %v", err)
		}
	}()

	fn(local)
}

// WithDefaultLocalDynamoDB runs fn with the local DynamoDB instance on port 8000.
func WithDefaultLocalDynamoDB(t *testing.T, fn func(local *LocalDynamoDB)) {
	WithLocalDynamoDB(t, DefaultLocalPort, fn)
}

// NewTestTable generates a unique table name for testing.
func NewTestTable(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
