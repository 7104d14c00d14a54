package ensuretable

import (
	"context"
	"fmt"
	"log"

	"github.com/nisimpson/ensuretable/dynamock"
	"github.com/sirupsen/logrus/hooks/test"
)

// Example shows a table being created on first use and left alone afterwards.
func Example() {
	sim := dynamock.NewTableSim()

	logger, _ := test.NewNullLogger()
	p := New(sim, func(o *Options) {
		o.Interval = 0
		o.Logger = logger
	})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		out, err := p.Handle(ctx, Event{"tableName": "asteroids"})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(out["tableArn"])
	}

	fmt.Printf("create calls: %d\n", sim.CreateCalls("asteroids"))

	// Output:
	// arn:aws:dynamodb:us-east-1:000000000000:table/asteroids
	// arn:aws:dynamodb:us-east-1:000000000000:table/asteroids
	// create calls: 1
}
