package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := E(KindNotFound, "get products_c", "no record")

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindRemoteFailure))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestWrapKeepsExistingKind(t *testing.T) {
	inner := E(KindAuthRequired, "fetch", "denied")
	wrapped := Wrap(KindRemoteFailure, "wishlist add", inner)

	assert.Equal(t, KindAuthRequired, KindOf(wrapped))
	assert.Nil(t, Wrap(KindRemoteFailure, "noop", nil))
}

func TestAggregateWrites(t *testing.T) {
	ok := WriteResult{}
	bad := WriteResult{Err: E(KindRemoteFailure, "create", "boom")}

	assert.NoError(t, AggregateWrites("op", []WriteResult{ok, ok}))

	err := AggregateWrites("op", []WriteResult{ok, bad})
	assert.Equal(t, KindPartialFailure, KindOf(err))

	err = AggregateWrites("op", []WriteResult{bad, bad})
	assert.Equal(t, KindRemoteFailure, KindOf(err))
}
