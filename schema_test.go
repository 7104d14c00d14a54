package ensuretable

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestDefaultSchema(t *testing.T) {
	input := DefaultSchema().CreateTableInput("orders")

	if aws.ToString(input.TableName) != "orders" {
		t.Errorf("expected table name orders, got %s", aws.ToString(input.TableName))
	}

	attrs := make(map[string]types.ScalarAttributeType)
	for _, def := range input.AttributeDefinitions {
		attrs[aws.ToString(def.AttributeName)] = def.AttributeType
	}
	wantAttrs := map[string]types.ScalarAttributeType{
		AttributeNameUUID:   types.ScalarAttributeTypeS,
		AttributeNameValue:  types.ScalarAttributeTypeN,
		AttributeNameProfit: types.ScalarAttributeTypeN,
		AttributeNameType:   types.ScalarAttributeTypeS,
	}
	if len(attrs) != len(wantAttrs) {
		t.Errorf("expected %d attributes, got %d", len(wantAttrs), len(attrs))
	}
	for name, typ := range wantAttrs {
		if attrs[name] != typ {
			t.Errorf("attribute %s: expected %s, got %s", name, typ, attrs[name])
		}
	}

	assertKeys(t, "table", input.KeySchema, AttributeNameUUID, AttributeNameValue)
	assertThroughput(t, "table", input.ProvisionedThroughput)

	wantIndexes := map[string][2]string{
		IndexNameValue:  {AttributeNameValue, AttributeNameProfit},
		IndexNameProfit: {AttributeNameProfit, AttributeNameValue},
		IndexNameType:   {AttributeNameType, ""},
	}
	if len(input.GlobalSecondaryIndexes) != len(wantIndexes) {
		t.Fatalf("expected %d indexes, got %d", len(wantIndexes), len(input.GlobalSecondaryIndexes))
	}
	for _, gsi := range input.GlobalSecondaryIndexes {
		name := aws.ToString(gsi.IndexName)
		keys, ok := wantIndexes[name]
		if !ok {
			t.Errorf("unexpected index %s", name)
			continue
		}
		assertKeys(t, name, gsi.KeySchema, keys[0], keys[1])
		assertThroughput(t, name, gsi.ProvisionedThroughput)
		if gsi.Projection == nil || gsi.Projection.ProjectionType != types.ProjectionTypeAll {
			t.Errorf("%s: expected ALL projection", name)
		}
	}
}

func assertKeys(t *testing.T, name string, keys []types.KeySchemaElement, hash, sort string) {
	t.Helper()

	want := 1
	if sort != "" {
		want = 2
	}
	if len(keys) != want {
		t.Fatalf("%s: expected %d key elements, got %d", name, want, len(keys))
	}
	if aws.ToString(keys[0].AttributeName) != hash || keys[0].KeyType != types.KeyTypeHash {
		t.Errorf("%s: expected hash key %s, got %s %s", name, hash, aws.ToString(keys[0].AttributeName), keys[0].KeyType)
	}
	if sort != "" && (aws.ToString(keys[1].AttributeName) != sort || keys[1].KeyType != types.KeyTypeRange) {
		t.Errorf("%s: expected range key %s, got %s %s", name, sort, aws.ToString(keys[1].AttributeName), keys[1].KeyType)
	}
}

func assertThroughput(t *testing.T, name string, pt *types.ProvisionedThroughput) {
	t.Helper()

	if pt == nil {
		t.Fatalf("%s: missing provisioned throughput", name)
	}
	if aws.ToInt64(pt.ReadCapacityUnits) != DefaultCapacityUnits || aws.ToInt64(pt.WriteCapacityUnits) != DefaultCapacityUnits {
		t.Errorf("%s: expected %d/%d capacity, got %d/%d", name, DefaultCapacityUnits, DefaultCapacityUnits,
			aws.ToInt64(pt.ReadCapacityUnits), aws.ToInt64(pt.WriteCapacityUnits))
	}
}
