package ensuretable

import (
	"context"
	"maps"
)

const (
	// FieldTableName is the event field naming the table to provision.
	FieldTableName = "tableName"
	// FieldTableArn is the event field the table ARN is written to.
	FieldTableArn = "tableArn"
)

// Event is the open-ended payload passed to Handle.
type Event map[string]any

// TableName returns the event's table name. It fails with KindInvalidInput when the field
// is missing, not a string, or blank.
func (e Event) TableName() (string, error) {
	v, ok := e[FieldTableName]
	if !ok || v == nil {
		return "", newError(KindInvalidInput, "", "tableName not found in event or it was blank", nil)
	}

	name, ok := v.(string)
	if !ok {
		return "", newError(KindInvalidInput, "", "tableName in event is not a string", nil)
	}
	if name == "" {
		return "", newError(KindInvalidInput, "", "tableName not found in event or it was blank", nil)
	}

	return name, nil
}

// Handle ensures the table named by the event exists and is active, then returns a copy of
// the event with the table ARN set under FieldTableArn. The input event is not modified.
func (p *Provisioner) Handle(ctx context.Context, event Event) (Event, error) {
	tableName, err := event.TableName()
	if err != nil {
		p.opts.Logger.WithError(err).Error("invalid event")
		return nil, err
	}

	if err := p.Ensure(ctx, tableName); err != nil {
		return nil, err
	}

	arn, err := p.TableArn(ctx, tableName)
	if err != nil {
		p.logger(tableName).WithError(err).Error("table is ready, but failed to get its arn")
		return nil, err
	}

	updated := make(Event, len(event)+1)
	maps.Copy(updated, event)
	updated[FieldTableArn] = arn

	p.logger(tableName).WithField("event", map[string]any(updated)).Info("done")
	return updated, nil
}
