package ports

import (
	"context"
	"testing"
	"time"

	"github.com/seplab/spmeplan/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCompoundStoreContract runs a suite of tests to verify that a
// CompoundStore implementation adheres to the defined interface contract.
func RunCompoundStoreContract(t *testing.T, store CompoundStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	ethanol, err := domain.NewCompound("ethanol", 78.37, -0.31, 46.07)
	require.NoError(t, err)
	phenol, err := domain.NewCompound("phenol", 181.7, 1.46, 94.11)
	require.NoError(t, err)

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, sessionID, []domain.Compound{ethanol, phenol})
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		require.Len(t, loaded, 2)
		assert.Equal(t, ethanol, loaded[0])
		assert.Equal(t, phenol, loaded[1])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		err := store.Save(ctx, sessionID, []domain.Compound{phenol})
		require.NoError(t, err)

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, phenol, loaded[0])
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, []domain.Compound{ethanol})
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, []domain.Compound{ethanol})
		_ = store.Save(ctx, id2, []domain.Compound{phenol})

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
