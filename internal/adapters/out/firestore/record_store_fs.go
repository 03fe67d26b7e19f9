package firestore

import (
	"context"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"quickcart/internal/domain/record"
)

// counterCol holds one counter doc per table for integer identity allocation.
const counterCol = "_counters"

// RecordStore implements record.Store on Firestore.
//
// Collection design:
// - one collection per table, docId = strconv(Id)  (docId is the source of truth)
// - identities come from _counters/{table} via transaction, so every row gets
//   the backend-assigned positive integer the rest of the core relies on.
//
// Query evaluation: Contains and OR groups cannot be pushed down to Firestore,
// so reads fetch the collection and evaluate the query in memory via
// record.Apply (catalog-sized tables; same semantics as the test store).
type RecordStore struct {
	Client *firestore.Client
}

func NewRecordStore(client *firestore.Client) *RecordStore {
	return &RecordStore{Client: client}
}

func (s *RecordStore) col(table string) *firestore.CollectionRef {
	return s.Client.Collection(table)
}

func (s *RecordStore) FetchRecords(ctx context.Context, table string, q record.Query) ([]record.Record, error) {
	if s == nil || s.Client == nil {
		return nil, record.E(record.KindNotInitialized, "fetch "+table, "firestore client is nil")
	}

	it := s.col(table).Documents(ctx)
	defer it.Stop()

	recs := []record.Record{}
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, kinded("fetch "+table, err)
		}
		recs = append(recs, fromSnapshot(snap))
	}

	return record.Apply(recs, q), nil
}

func (s *RecordStore) GetRecordByID(ctx context.Context, table string, id int, _ []string) (record.Record, error) {
	if id <= 0 {
		return nil, record.E(record.KindInvalidInput, "get "+table, "id must be positive")
	}
	if s == nil || s.Client == nil {
		return nil, record.E(record.KindNotInitialized, "get "+table, "firestore client is nil")
	}

	snap, err := s.col(table).Doc(strconv.Itoa(id)).Get(ctx)
	if err != nil {
		return nil, kinded("get "+table, err)
	}
	if snap == nil || !snap.Exists() {
		return nil, record.E(record.KindNotFound, "get "+table, "no record")
	}
	return fromSnapshot(snap), nil
}

func (s *RecordStore) CreateRecords(ctx context.Context, table string, records []record.Record) ([]record.WriteResult, error) {
	if s == nil || s.Client == nil {
		return nil, record.E(record.KindNotInitialized, "create "+table, "firestore client is nil")
	}

	results := make([]record.WriteResult, 0, len(records))
	for _, rec := range records {
		id, err := s.nextID(ctx, table)
		if err != nil {
			results = append(results, record.WriteResult{Err: kinded("create "+table, err)})
			continue
		}

		cp := rec.Clone()
		cp[record.FieldID] = id
		if _, err := s.col(table).Doc(strconv.Itoa(id)).Set(ctx, map[string]any(cp)); err != nil {
			results = append(results, record.WriteResult{Err: kinded("create "+table, err)})
			continue
		}
		results = append(results, record.WriteResult{Record: cp})
	}
	return results, nil
}

func (s *RecordStore) DeleteRecords(ctx context.Context, table string, ids []int) ([]record.WriteResult, error) {
	if s == nil || s.Client == nil {
		return nil, record.E(record.KindNotInitialized, "delete "+table, "firestore client is nil")
	}

	// One request per id; the backend gives no batch atomicity either way, and
	// per-record outcomes are what the port surfaces.
	results := make([]record.WriteResult, 0, len(ids))
	for _, id := range ids {
		if _, err := s.col(table).Doc(strconv.Itoa(id)).Delete(ctx); err != nil {
			results = append(results, record.WriteResult{Err: kinded("delete "+table, err)})
			continue
		}
		results = append(results, record.WriteResult{})
	}
	return results, nil
}

// nextID allocates the next integer identity for table from its counter doc.
func (s *RecordStore) nextID(ctx context.Context, table string) (int, error) {
	ref := s.Client.Collection(counterCol).Doc(table)

	var next int64
	err := s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var cur int64
		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			cur = counterValue(snap)
		case status.Code(err) == codes.NotFound:
			cur = 0
		default:
			return err
		}
		next = cur + 1
		return tx.Set(ref, map[string]any{"value": next})
	})
	if err != nil {
		return 0, err
	}
	return int(next), nil
}

func counterValue(snap *firestore.DocumentSnapshot) int64 {
	if snap == nil || !snap.Exists() {
		return 0
	}
	switch v := snap.Data()["value"].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

// fromSnapshot builds a row from a doc; the docId is the identity source of
// truth even when the stored data carries its own Id field.
func fromSnapshot(snap *firestore.DocumentSnapshot) record.Record {
	rec := record.Record(snap.Data())
	if rec == nil {
		rec = record.Record{}
	}
	if id, err := strconv.Atoi(snap.Ref.ID); err == nil {
		rec[record.FieldID] = id
	}
	return rec
}

// kinded decides the error kind at this boundary from the gRPC status code, so
// no call site ever pattern-matches message text.
func kinded(op string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return record.Wrap(record.KindNotFound, op, err)
	case codes.Unauthenticated, codes.PermissionDenied:
		return record.Wrap(record.KindAuthRequired, op, err)
	}
	return record.Wrap(record.KindRemoteFailure, op, err)
}
