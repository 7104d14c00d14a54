package ensuretable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultInterval is the pause between two status probes while waiting.
	DefaultInterval = 5 * time.Second
	// DefaultMaxAttempts is the number of reprobes before a wait gives up.
	DefaultMaxAttempts = 20
)

// DynamoDBAPI defines the DynamoDB control plane operations required by the Provisioner.
type DynamoDBAPI interface {
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// SleepFunc blocks for d. It returns early with an error when ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Options configures a Provisioner.
type Options struct {
	// Schema is used when the table does not exist yet.
	Schema TableSchema
	// Interval is the pause before each reprobe while waiting.
	Interval time.Duration
	// MaxAttempts is the number of reprobes a wait may spend.
	MaxAttempts int
	// Logger receives progress and failure entries.
	Logger logrus.FieldLogger
	// Sleep suspends the caller between probes.
	Sleep SleepFunc
}

func newOptions(opts []func(*Options)) Options {
	o := Options{
		Schema:      DefaultSchema(),
		Interval:    DefaultInterval,
		MaxAttempts: DefaultMaxAttempts,
		Logger:      logrus.StandardLogger(),
		Sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxAttempts < 1 {
		o.MaxAttempts = 1
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	if o.Sleep == nil {
		o.Sleep = sleepContext
	}
	return o
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Provisioner ensures tables exist and are active. It holds no per-invocation state and
// may be reused.
type Provisioner struct {
	client DynamoDBAPI
	opts   Options
}

// New creates a Provisioner that talks to DynamoDB through client.
func New(client DynamoDBAPI, opts ...func(*Options)) *Provisioner {
	return &Provisioner{
		client: client,
		opts:   newOptions(opts),
	}
}

func (p *Provisioner) logger(tableName string) logrus.FieldLogger {
	return p.opts.Logger.WithField("table", tableName)
}

// Status probes the current status of the table. A table the service reports as missing
// yields StatusDoesNotExist and a nil error; any other failure is a KindProbe error.
func (p *Provisioner) Status(ctx context.Context, tableName string) (TableStatus, error) {
	out, err := p.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		if isNotFound(err) {
			return StatusDoesNotExist, nil
		}
		return "", newError(KindProbe, tableName, "failed to describe table", err)
	}

	if out == nil || out.Table == nil {
		return "", newError(KindProbe, tableName, "describe table returned no table description", nil)
	}

	return TableStatus(out.Table.TableStatus), nil
}

func isNotFound(err error) bool {
	var notFoundErr *types.ResourceNotFoundException
	if errors.As(err, &notFoundErr) {
		return true
	}

	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceNotFoundException"
}

// Create issues a create table request with the configured schema. Creation is asynchronous:
// the table is not active when Create returns.
func (p *Provisioner) Create(ctx context.Context, tableName string) error {
	_, err := p.client.CreateTable(ctx, p.opts.Schema.CreateTableInput(tableName))
	if err != nil {
		return newError(KindCreate, tableName, "failed to create table", err)
	}

	p.logger(tableName).Info("table creation requested")
	return nil
}

// WaitForStatus reprobes the table until it reports desired. last is the most recently
// observed status and is only used for progress reporting.
//
// Each attempt sleeps for the configured interval before probing. A probe error is returned
// immediately and does not consume an attempt; a status mismatch does. When all attempts are
// spent a KindTimeout error wrapping a *TimeoutError is returned. If ctx is done while
// sleeping, the context error is returned wrapped but unclassified.
func (p *Provisioner) WaitForStatus(ctx context.Context, tableName string, desired, last TableStatus) error {
	log := p.logger(tableName)
	maxAttempts := p.opts.MaxAttempts

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		log.Infof("Status %s is not %s. Trying attempt %d of %d in %s...", last, desired, attempt, maxAttempts, p.opts.Interval)

		if err := p.opts.Sleep(ctx, p.opts.Interval); err != nil {
			return fmt.Errorf("wait on table %q interrupted: %w", tableName, err)
		}

		status, err := p.Status(ctx, tableName)
		if err != nil {
			return err
		}
		if status == desired {
			return nil
		}
		last = status
	}

	return newError(KindTimeout, tableName, "wait on desired status", &TimeoutError{
		TableName:   tableName,
		Desired:     desired,
		Last:        last,
		Attempts:    maxAttempts,
		MaxAttempts: maxAttempts,
	})
}

// Ensure drives the table toward ACTIVE. An active table is left untouched, a missing table
// is created and waited on, a creating table is waited on. Any other status fails with
// KindInaccessible.
func (p *Provisioner) Ensure(ctx context.Context, tableName string) error {
	log := p.logger(tableName)

	status, err := p.Status(ctx, tableName)
	if err != nil {
		log.WithError(err).Error("get table status error")
		return err
	}

	switch status {
	case StatusActive:
		log.Info("table already exists, success")
		return nil

	case StatusDoesNotExist:
		if err := p.Create(ctx, tableName); err != nil {
			log.WithError(err).Error("create table error")
			return err
		}
		return p.waitActive(ctx, tableName, StatusCreating)

	case StatusCreating:
		return p.waitActive(ctx, tableName, status)

	default:
		err := newError(KindInaccessible, tableName, "table is inaccessible in status "+string(status), nil)
		log.WithError(err).Error("table cannot be provisioned")
		return err
	}
}

func (p *Provisioner) waitActive(ctx context.Context, tableName string, last TableStatus) error {
	if err := p.WaitForStatus(ctx, tableName, StatusActive, last); err != nil {
		p.logger(tableName).WithError(err).Error("wait on desired status error")
		return err
	}
	return nil
}

// TableArn reads back the table's ARN. It fails with KindLookup when the describe call fails
// or when the response carries no ARN.
func (p *Provisioner) TableArn(ctx context.Context, tableName string) (string, error) {
	out, err := p.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		return "", newError(KindLookup, tableName, "failed to describe table", err)
	}

	if out == nil || out.Table == nil || aws.ToString(out.Table.TableArn) == "" {
		return "", newError(KindLookup, tableName, "describe table did not return a table ARN", nil)
	}

	return aws.ToString(out.Table.TableArn), nil
}
