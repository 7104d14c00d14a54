package ensuretable

import "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

// TableStatus is the status of a table as last probed. Values other than the
// constants below are passed through from the service unchanged.
type TableStatus string

const (
	// StatusDoesNotExist is reported when the service has no table by that name.
	StatusDoesNotExist TableStatus = "DOES_NOT_EXIST"
	// StatusCreating is reported while the service builds the table.
	StatusCreating TableStatus = TableStatus(types.TableStatusCreating)
	// StatusActive is the only status in which a table is ready.
	StatusActive TableStatus = TableStatus(types.TableStatusActive)
)
