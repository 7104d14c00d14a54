package ensuretable

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	// AttributeNameUUID is the partition key of the provisioned table.
	AttributeNameUUID = "uuid"
	// AttributeNameValue is the sort key of the provisioned table.
	AttributeNameValue = "value"
	// AttributeNameProfit is the second numeric attribute, indexed by profit-index.
	AttributeNameProfit = "profit"
	// AttributeNameType is the record type attribute, indexed by type-index.
	AttributeNameType = "type"

	IndexNameValue  = "value-index"
	IndexNameProfit = "profit-index"
	IndexNameType   = "type-index"

	// DefaultCapacityUnits is the read and write capacity applied to the table and each index.
	DefaultCapacityUnits = 10
)

// TableSchema is the static descriptor used when a table must be created.
type TableSchema struct {
	AttributeDefinitions   []types.AttributeDefinition
	KeySchema              []types.KeySchemaElement
	GlobalSecondaryIndexes []types.GlobalSecondaryIndex
	ProvisionedThroughput  *types.ProvisionedThroughput
}

// DefaultSchema returns the fixed table layout: a string uuid partition key, a numeric value
// sort key, and three global secondary indexes on value, profit and type.
func DefaultSchema() TableSchema {
	return TableSchema{
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(AttributeNameUUID), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(AttributeNameValue), AttributeType: types.ScalarAttributeTypeN},
			{AttributeName: aws.String(AttributeNameProfit), AttributeType: types.ScalarAttributeTypeN},
			{AttributeName: aws.String(AttributeNameType), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(AttributeNameUUID), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(AttributeNameValue), KeyType: types.KeyTypeRange},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			globalIndex(IndexNameValue, AttributeNameValue, AttributeNameProfit),
			globalIndex(IndexNameProfit, AttributeNameProfit, AttributeNameValue),
			globalIndex(IndexNameType, AttributeNameType, ""),
		},
		ProvisionedThroughput: throughput(DefaultCapacityUnits),
	}
}

func globalIndex(name, hash, sort string) types.GlobalSecondaryIndex {
	keys := []types.KeySchemaElement{
		{AttributeName: aws.String(hash), KeyType: types.KeyTypeHash},
	}
	if sort != "" {
		keys = append(keys, types.KeySchemaElement{AttributeName: aws.String(sort), KeyType: types.KeyTypeRange})
	}

	return types.GlobalSecondaryIndex{
		IndexName: aws.String(name),
		KeySchema: keys,
		Projection: &types.Projection{
			ProjectionType: types.ProjectionTypeAll,
		},
		ProvisionedThroughput: throughput(DefaultCapacityUnits),
	}
}

func throughput(units int64) *types.ProvisionedThroughput {
	return &types.ProvisionedThroughput{
		ReadCapacityUnits:  aws.Int64(units),
		WriteCapacityUnits: aws.Int64(units),
	}
}

// CreateTableInput marshals the schema into a create table request for the named table.
func (s TableSchema) CreateTableInput(tableName string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName:              aws.String(tableName),
		AttributeDefinitions:   s.AttributeDefinitions,
		KeySchema:              s.KeySchema,
		GlobalSecondaryIndexes: s.GlobalSecondaryIndexes,
		ProvisionedThroughput:  s.ProvisionedThroughput,
	}
}
