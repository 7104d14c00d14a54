package ensuretable

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ClientOptions configures NewClient.
type ClientOptions struct {
	// Region overrides the region resolved from the environment.
	Region string
	// Endpoint overrides the service endpoint, e.g. http://localhost:8000 for DynamoDB Local.
	Endpoint string
	// Anonymous disables request signing. Only useful against DynamoDB Local.
	Anonymous bool
}

// NewClient loads the default AWS configuration and returns a DynamoDB client. Failures are
// reported as KindClient errors.
func NewClient(ctx context.Context, opts ...func(*ClientOptions)) (*dynamodb.Client, error) {
	var co ClientOptions
	for _, opt := range opts {
		opt(&co)
	}

	var loadOpts []func(*config.LoadOptions) error
	if co.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(co.Region))
	}
	if co.Anonymous {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(aws.AnonymousCredentials{}))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, newError(KindClient, "", "failed to load aws config", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if co.Endpoint != "" {
			o.BaseEndpoint = aws.String(co.Endpoint)
		}
	}), nil
}
