// Package recordtest provides an in-memory record.Store for tests.
package recordtest

import (
	"context"
	"sync"

	"quickcart/internal/domain/record"
)

// Store keeps rows per table and assigns sequential identities. Failure
// injection hooks let tests exercise the degraded paths: the coarse *Err
// fields fail a whole call, GetHook fails individual lookups, CreateHook
// fails individual records inside a batch.
type Store struct {
	mu      sync.Mutex
	tables  map[string][]record.Record
	lastID  int
	deleted int

	FetchErr  error
	GetErr    error
	CreateErr error
	DeleteErr error

	GetHook    func(table string, id int) error
	CreateHook func(table string, rec record.Record) error
}

func New() *Store {
	return &Store{tables: map[string][]record.Record{}}
}

// Seed inserts rows directly, assigning identities, and returns them.
func (s *Store) Seed(table string, recs ...record.Record) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(recs))
	for _, r := range recs {
		cp := r.Clone()
		s.lastID++
		cp[record.FieldID] = s.lastID
		s.tables[table] = append(s.tables[table], cp)
		ids = append(ids, s.lastID)
	}
	return ids
}

// Rows returns a copy of the table's current rows.
func (s *Store) Rows(table string) []record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]record.Record, 0, len(s.tables[table]))
	for _, r := range s.tables[table] {
		out = append(out, r.Clone())
	}
	return out
}

func (s *Store) FetchRecords(_ context.Context, table string, q record.Query) ([]record.Record, error) {
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	return record.Apply(s.Rows(table), q), nil
}

func (s *Store) GetRecordByID(_ context.Context, table string, id int, _ []string) (record.Record, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	if s.GetHook != nil {
		if err := s.GetHook(table, id); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.tables[table] {
		if r.ID() == id {
			return r.Clone(), nil
		}
	}
	return nil, record.E(record.KindNotFound, "get "+table, "no record")
}

func (s *Store) CreateRecords(_ context.Context, table string, records []record.Record) ([]record.WriteResult, error) {
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	results := make([]record.WriteResult, 0, len(records))
	for _, r := range records {
		if s.CreateHook != nil {
			if err := s.CreateHook(table, r); err != nil {
				results = append(results, record.WriteResult{Err: err})
				continue
			}
		}
		s.mu.Lock()
		cp := r.Clone()
		s.lastID++
		cp[record.FieldID] = s.lastID
		s.tables[table] = append(s.tables[table], cp)
		s.mu.Unlock()
		results = append(results, record.WriteResult{Record: cp.Clone()})
	}
	return results, nil
}

func (s *Store) DeleteRecords(_ context.Context, table string, ids []int) ([]record.WriteResult, error) {
	if s.DeleteErr != nil {
		return nil, s.DeleteErr
	}
	results := make([]record.WriteResult, 0, len(ids))
	for _, id := range ids {
		s.mu.Lock()
		rows := s.tables[table]
		found := false
		for i, r := range rows {
			if r.ID() == id {
				s.tables[table] = append(rows[:i], rows[i+1:]...)
				s.deleted++
				found = true
				break
			}
		}
		s.mu.Unlock()
		if found {
			results = append(results, record.WriteResult{})
		} else {
			results = append(results, record.WriteResult{
				Err: record.E(record.KindNotFound, "delete "+table, "no record"),
			})
		}
	}
	return results, nil
}
