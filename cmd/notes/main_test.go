package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promisemux/integration/database/pg"
	"github.com/dmitrymomot/promisemux/internal/notes"
	"github.com/dmitrymomot/promisemux/pkg/ratelimiter"
)

func TestOpenStore(t *testing.T) {
	t.Parallel()

	be, err := openStore(t.Context(), Config{Store: "memory"}, nil)
	require.NoError(t, err)
	defer be.close()

	assert.IsType(t, &notes.MemoryStore{}, be.store)
	assert.IsType(t, &ratelimiter.MemoryStore{}, be.limits)
	assert.NotNil(t, be.cleanup)
	assert.Empty(t, be.checks)

	_, err = openStore(t.Context(), Config{Store: "sqlite"}, nil)
	assert.ErrorIs(t, err, errUnknownStore)

	_, err = openStore(t.Context(), Config{Store: "postgres"}, nil)
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)
}
