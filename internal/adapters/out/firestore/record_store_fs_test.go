package firestore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"quickcart/internal/domain/record"
)

func TestKindedMapsStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want record.Kind
	}{
		{"not found", status.Error(codes.NotFound, "no document"), record.KindNotFound},
		{"unauthenticated", status.Error(codes.Unauthenticated, "token expired"), record.KindAuthRequired},
		{"permission denied", status.Error(codes.PermissionDenied, "policy rejected"), record.KindAuthRequired},
		{"unavailable", status.Error(codes.Unavailable, "backend down"), record.KindRemoteFailure},
		{"plain transport error", errors.New("connection reset"), record.KindRemoteFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, record.KindOf(kinded("get products_c", tc.err)))
		})
	}
}

func TestKindedKeepsAlreadyKindedErrors(t *testing.T) {
	inner := record.E(record.KindNotFound, "get products_c", "no record")
	assert.Equal(t, record.KindNotFound, record.KindOf(kinded("fetch products_c", inner)))
}

func TestNilClientIsNotInitialized(t *testing.T) {
	ctx := context.Background()
	var s *RecordStore

	_, err := s.FetchRecords(ctx, "products_c", record.Query{})
	assert.Equal(t, record.KindNotInitialized, record.KindOf(err))

	_, err = s.GetRecordByID(ctx, "products_c", 1, nil)
	assert.Equal(t, record.KindNotInitialized, record.KindOf(err))

	_, err = s.CreateRecords(ctx, "products_c", []record.Record{{}})
	assert.Equal(t, record.KindNotInitialized, record.KindOf(err))

	_, err = s.DeleteRecords(ctx, "products_c", []int{1})
	assert.Equal(t, record.KindNotInitialized, record.KindOf(err))
}

func TestGetRecordByIDRejectsNonPositiveID(t *testing.T) {
	s := NewRecordStore(nil)

	_, err := s.GetRecordByID(context.Background(), "products_c", 0, nil)
	assert.Equal(t, record.KindInvalidInput, record.KindOf(err))

	_, err = s.GetRecordByID(context.Background(), "products_c", -3, nil)
	assert.Equal(t, record.KindInvalidInput, record.KindOf(err))
}
