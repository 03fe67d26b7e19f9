package record

import (
	"context"
	"fmt"
)

// WriteResult is the per-record outcome of a batch write. Err is nil on
// success; Record carries the stored row (with its assigned identity) for
// creates.
type WriteResult struct {
	Record Record
	Err    error
}

// Store is the remote record-store port: generic CRUD over named tables.
// Implementations decide the error kind at this boundary (see errors.go); the
// backend's atomicity for batch writes is outside this contract, so partial
// results are surfaced per record, never rolled back.
type Store interface {
	FetchRecords(ctx context.Context, table string, q Query) ([]Record, error)
	GetRecordByID(ctx context.Context, table string, id int, fields []string) (Record, error)
	CreateRecords(ctx context.Context, table string, records []Record) ([]WriteResult, error)
	DeleteRecords(ctx context.Context, table string, ids []int) ([]WriteResult, error)
}

// AggregateWrites folds batch results into a single error: nil when every
// record succeeded, KindPartialFailure when outcomes are mixed,
// KindRemoteFailure when everything failed. The first underlying error is
// preserved for the message.
func AggregateWrites(op string, results []WriteResult) error {
	var firstErr error
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = res.Err
			}
		}
	}
	if failed == 0 {
		return nil
	}
	kind := KindRemoteFailure
	if failed < len(results) {
		kind = KindPartialFailure
	}
	return &Error{
		Kind: kind,
		Op:   op,
		Err:  fmt.Errorf("%d/%d records failed: %w", failed, len(results), firstErr),
	}
}
