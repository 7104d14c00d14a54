// Command ensuretable ensures a DynamoDB table exists and is active.
//
// Deployed as an AWS Lambda function it handles events of the form
// {"tableName": "orders"} and returns them with "tableArn" added. Run locally with
// -table to provision a single table and print the resulting event.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nisimpson/ensuretable"
	"github.com/sirupsen/logrus"
)

func main() {
	tableName := flag.String("table", "", "provision this table once and exit instead of serving Lambda invocations")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	s, err := loadSettingsFromEnv()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(s.LogLevel)

	ctx := context.Background()
	client, err := ensuretable.NewClient(ctx, func(o *ensuretable.ClientOptions) {
		o.Endpoint = s.Endpoint
	})
	if err != nil {
		log.WithError(err).Fatal("failed to get dynamodb client")
	}

	p := ensuretable.New(client, func(o *ensuretable.Options) {
		o.Interval = s.Interval
		o.MaxAttempts = s.MaxAttempts
		o.Logger = log
	})

	if *tableName == "" {
		lambda.Start(p.Handle)
		return
	}

	out, err := p.Handle(ctx, ensuretable.Event{ensuretable.FieldTableName: *tableName})
	if err != nil {
		log.WithError(err).Fatal("failed to ensure table")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.WithError(err).Fatal("failed to write event")
	}
}
