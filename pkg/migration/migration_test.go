package migration

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type memLedger struct {
	records []Record
}

func (l *memLedger) Applied(context.Context) ([]Record, error) {
	return append([]Record(nil), l.records...), nil
}

func (l *memLedger) Add(_ context.Context, rec Record) error {
	l.records = append(l.records, rec)
	return nil
}

func (l *memLedger) Remove(_ context.Context, name string) error {
	for i, rec := range l.records {
		if rec.Name == name {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return nil
		}
	}
	return nil
}

type step struct {
	name string
	log  *[]string
	fail bool
}

func (s step) Up(context.Context, *mongo.Database) error {
	if s.fail {
		return errors.New("index build failed")
	}
	*s.log = append(*s.log, "up "+s.name)
	return nil
}

func (s step) Down(context.Context, *mongo.Database) error {
	*s.log = append(*s.log, "down "+s.name)
	return nil
}

func TestRunner_RunsPendingInNameOrder(t *testing.T) {
	var log []string
	ledger := &memLedger{}
	entries := []Entry{
		{Name: "0002_cart", Migration: step{name: "cart", log: &log}},
		{Name: "0001_users", Migration: step{name: "users", log: &log}},
	}
	out := &bytes.Buffer{}
	r := NewRunner(nil, ledger, entries, out)

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, []string{"up users", "up cart"}, log)
	require.Len(t, ledger.records, 2)
	assert.Equal(t, 1, ledger.records[0].Batch)

	require.NoError(t, r.Run(context.Background()))
	assert.Len(t, log, 2)
	assert.Contains(t, out.String(), "Nothing to migrate.")
}

func TestRunner_RollbackUndoesLastBatchOnly(t *testing.T) {
	var log []string
	ledger := &memLedger{}
	first := []Entry{{Name: "0001_users", Migration: step{name: "users", log: &log}}}
	require.NoError(t, NewRunner(nil, ledger, first, nil).Run(context.Background()))

	all := append(first,
		Entry{Name: "0002_cart", Migration: step{name: "cart", log: &log}},
		Entry{Name: "0003_payments", Migration: step{name: "payments", log: &log}},
	)
	r := NewRunner(nil, ledger, all, nil)
	require.NoError(t, r.Run(context.Background()))

	log = nil
	require.NoError(t, r.Rollback(context.Background()))
	assert.Equal(t, []string{"down payments", "down cart"}, log)
	require.Len(t, ledger.records, 1)
	assert.Equal(t, "0001_users", ledger.records[0].Name)
}

func TestRunner_StopsOnFailure(t *testing.T) {
	var log []string
	ledger := &memLedger{}
	r := NewRunner(nil, ledger, []Entry{
		{Name: "0001_ok", Migration: step{name: "ok", log: &log}},
		{Name: "0002_bad", Migration: step{name: "bad", log: &log, fail: true}},
	}, nil)

	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0002_bad")
	assert.Len(t, ledger.records, 1)
}

func TestRunner_Status(t *testing.T) {
	var log []string
	ledger := &memLedger{records: []Record{{Name: "0001_users", Batch: 1}}}
	out := &bytes.Buffer{}
	r := NewRunner(nil, ledger, []Entry{
		{Name: "0001_users", Migration: step{log: &log}},
		{Name: "0002_cart", Migration: step{log: &log}},
	}, out)

	require.NoError(t, r.Status(context.Background()))
	assert.Contains(t, out.String(), "Ran")
	assert.Contains(t, out.String(), "Pending")
}

func TestRunner_NoMigrations(t *testing.T) {
	err := NewRunner(nil, &memLedger{}, nil, nil).Run(context.Background())
	assert.ErrorIs(t, err, ErrNoMigrations)
}
