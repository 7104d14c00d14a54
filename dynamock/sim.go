package dynamock

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	simRegion  = "us-east-1"
	simAccount = "000000000000"
)

// TableArn builds the ARN TableSim reports for a table by default.
func TableArn(tableName string) string {
	return "arn:aws:dynamodb:" + simRegion + ":" + simAccount + ":table/" + tableName
}

type simTable struct {
	statuses []types.TableStatus
	next     int
	arn      *string
}

// status returns the table's current status and advances to the next one.
func (t *simTable) status() types.TableStatus {
	s := t.statuses[t.next]
	if t.next < len(t.statuses)-1 {
		t.next++
	}
	return s
}

// TableSim is a scripted in-memory DynamoDB control plane.
type TableSim struct {
	// CreateStatuses is the status sequence a table created through CreateTable goes through.
	// Defaults to CREATING then ACTIVE.
	CreateStatuses []types.TableStatus
	// Arn computes the ARN of a table. Defaults to TableArn.
	Arn func(tableName string) string
	// DescribeErr, when set, is consulted before every DescribeTable. A non-nil result is
	// returned as the call's error. call counts from 1 per table.
	DescribeErr func(tableName string, call int) error
	// CreateErr, when set, is returned by every CreateTable.
	CreateErr error

	mu       sync.Mutex
	tables   map[string]*simTable
	describe map[string]int
	create   map[string]int
	inputs   []*dynamodb.CreateTableInput
}

// Ensure TableSim implements DynamoDBAPI
var _ DynamoDBAPI = (*TableSim)(nil)

// NewTableSim creates an empty simulator.
func NewTableSim() *TableSim {
	return &TableSim{
		CreateStatuses: []types.TableStatus{types.TableStatusCreating, types.TableStatusActive},
		Arn:            TableArn,
		tables:         make(map[string]*simTable),
		describe:       make(map[string]int),
		create:         make(map[string]int),
	}
}

// PutTable registers an existing table that reports statuses in order on each describe.
// The last status sticks.
func (s *TableSim) PutTable(tableName string, statuses ...types.TableStatus) {
	if len(statuses) == 0 {
		statuses = []types.TableStatus{types.TableStatusActive}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[tableName] = &simTable{statuses: statuses, arn: aws.String(s.Arn(tableName))}
}

// OmitArn makes describe responses for the table carry no ARN.
func (s *TableSim) OmitArn(tableName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tables[tableName]; ok {
		t.arn = nil
	}
}

// DescribeTable reports the table's next status or a ResourceNotFoundException.
func (s *TableSim) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := aws.ToString(params.TableName)
	s.describe[name]++

	if s.DescribeErr != nil {
		if err := s.DescribeErr(name, s.describe[name]); err != nil {
			return nil, err
		}
	}

	t, ok := s.tables[name]
	if !ok {
		return nil, &types.ResourceNotFoundException{
			Message: aws.String(fmt.Sprintf("Requested resource not found: Table: %s not found", name)),
		}
	}

	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName:   aws.String(name),
			TableArn:    t.arn,
			TableStatus: t.status(),
		},
	}, nil
}

// CreateTable registers the table with CreateStatuses. Creating an existing table fails
// with a ResourceInUseException.
func (s *TableSim) CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := aws.ToString(params.TableName)
	s.create[name]++
	s.inputs = append(s.inputs, params)

	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	if _, ok := s.tables[name]; ok {
		return nil, &types.ResourceInUseException{
			Message: aws.String(fmt.Sprintf("Table already exists: %s", name)),
		}
	}

	statuses := make([]types.TableStatus, len(s.CreateStatuses))
	copy(statuses, s.CreateStatuses)
	if len(statuses) == 0 {
		statuses = []types.TableStatus{types.TableStatusActive}
	}
	t := &simTable{statuses: statuses, arn: aws.String(s.Arn(name))}
	s.tables[name] = t

	return &dynamodb.CreateTableOutput{
		TableDescription: &types.TableDescription{
			TableName:   aws.String(name),
			TableArn:    t.arn,
			TableStatus: types.TableStatusCreating,
		},
	}, nil
}

// DescribeCalls returns the number of DescribeTable calls made for the table.
func (s *TableSim) DescribeCalls(tableName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.describe[tableName]
}

// CreateCalls returns the number of CreateTable calls made for the table.
func (s *TableSim) CreateCalls(tableName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create[tableName]
}

// CreateInputs returns every create request received, in order.
func (s *TableSim) CreateInputs() []*dynamodb.CreateTableInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	inputs := make([]*dynamodb.CreateTableInput, len(s.inputs))
	copy(inputs, s.inputs)
	return inputs
}
