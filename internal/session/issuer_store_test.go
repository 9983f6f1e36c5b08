package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssuerStoreWithoutBackend(t *testing.T) {
	store := NewIssuerStore(nil, time.Minute)

	// Reads degrade to "no selection" so checkout keeps working
	issuer, err := store.Get(context.Background(), "sess-1", 1)
	assert.NoError(t, err)
	assert.Equal(t, "", issuer)

	// Writes must surface the missing backend
	err = store.Set(context.Background(), "sess-1", 1, "0721")
	assert.Error(t, err)
}
