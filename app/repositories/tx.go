package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor runs a unit of work, inside a multi-document transaction when
// enabled. Transactions need a replica set or sharded cluster.
type Transactor struct {
	client  *mongo.Client
	enabled bool
}

func NewTransactor(client *mongo.Client, enabled bool) *Transactor {
	return &Transactor{client: client, enabled: enabled}
}

func (t *Transactor) Enabled() bool { return t.enabled }

// WithinTransaction runs fn. When transactions are enabled, fn may be
// retried on transient errors and its writes commit or abort together.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled {
		return fn(ctx)
	}

	sess, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
