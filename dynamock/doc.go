// Package dynamock provides testing utilities for the ensuretable library.
//
// This package includes:
//   - An expectation-based mock of the DynamoDB control plane calls
//   - TableSim, a scripted in-memory control plane that steps table status
//   - Local DynamoDB integration utilities with automatic cleanup
//
// # Mock Client
//
// The MockClient fails the test on any call without an expectation:
//
//	mock := dynamock.NewMockClient(t)
//	mock.DescribeTableFunc = func(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
//		return nil, &types.ResourceNotFoundException{Message: aws.String("not found")}
//	}
//
// # Table Simulator
//
// TableSim keeps per-table status sequences. Every DescribeTable advances the table to its
// next status; the last one sticks. CreateTable registers the table with CreateStatuses:
//
//	sim := dynamock.NewTableSim()
//	sim.CreateStatuses = []types.TableStatus{types.TableStatusCreating, types.TableStatusActive}
//	p := ensuretable.New(sim)
//	// ...
//	if sim.CreateCalls("orders") != 1 { ... }
//
// # Local DynamoDB Integration
//
// For integration tests against DynamoDB Local:
//
//	dynamock.WithDefaultLocalDynamoDB(t, func(local *dynamock.LocalDynamoDB) {
//		tableName := dynamock.NewTestTable("orders")
//		local.Track(tableName)
//		defer local.Cleanup(ctx)
//		// ...
//	})
//
// Run DynamoDB Local with:
//
//	docker run -p 8000:8000 amazon/dynamodb-local
package dynamock
