// Package ensuretable provides an idempotent "ensure table" routine over the AWS SDK for
// Go v2 DynamoDB client.
//
// Given a table name, the Provisioner makes sure the table exists and is ACTIVE, creating
// it from a fixed schema when it is missing, and reports the table ARN. Invoking it again
// for a table that is active or still being created converges on the same outcome without
// a second create request.
//
// # Reconciliation
//
// The probed status decides the action:
//   - ACTIVE: nothing to do
//   - DOES_NOT_EXIST: create the table, then wait for ACTIVE
//   - CREATING: wait for ACTIVE
//   - anything else: fail with ErrInaccessible
//
// Waiting sleeps for Options.Interval (5s) before each reprobe, for at most
// Options.MaxAttempts (20) attempts. Probe errors end the wait immediately.
//
// # Basic Usage
//
//	client, err := ensuretable.NewClient(ctx)
//	if err != nil {
//	    return err
//	}
//	p := ensuretable.New(client)
//	out, err := p.Handle(ctx, ensuretable.Event{"tableName": "orders"})
//	// out["tableArn"] holds the table ARN
//
// # Errors
//
// Every failure is an *Error whose Kind matches one of the Err sentinels with errors.Is,
// so callers can tell a table that never became ready (ErrTimeout) apart from a ready
// table whose ARN could not be read (ErrLookup).
package ensuretable
