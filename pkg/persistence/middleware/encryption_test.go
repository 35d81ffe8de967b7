package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/seplab/spmeplan/pkg/adapters/memory"
	"github.com/seplab/spmeplan/pkg/domain"
	"github.com/seplab/spmeplan/pkg/persistence/middleware"
	"github.com/seplab/spmeplan/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

func testCompounds(t *testing.T) []domain.Compound {
	t.Helper()
	ethanol, err := domain.NewCompound("ethanol", 78.37, -0.31, 46.07)
	require.NoError(t, err)
	return []domain.Compound{ethanol}
}

func newEncrypted(t *testing.T, cfg middleware.EncryptionConfig) (ports.CompoundStore, *memory.Store) {
	t.Helper()
	backing := memory.NewStore()
	return middleware.NewEncryptionMiddleware(cfg)(backing), backing
}

func TestEncryption_RoundTrip(t *testing.T) {
	store, backing := newEncrypted(t, middleware.EncryptionConfig{ActiveKey: testKey(1)})
	ctx := context.Background()
	compounds := testCompounds(t)

	require.NoError(t, store.Save(ctx, "sess-1", compounds))

	got, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, compounds, got)

	// The backing store must only ever see the opaque envelope.
	raw, err := backing.Load(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.NotContains(t, raw[0].Name, "ethanol")
	stored, _ := json.Marshal(raw)
	assert.NotContains(t, string(stored), "78.37")
}

func TestEncryption_SatisfiesContract(t *testing.T) {
	store, _ := newEncrypted(t, middleware.EncryptionConfig{ActiveKey: testKey(1)})
	ports.RunCompoundStoreContract(t, store)
}

func TestEncryption_KeyRotation(t *testing.T) {
	oldKey, newKey := testKey(1), testKey(2)
	ctx := context.Background()
	backing := memory.NewStore()
	compounds := testCompounds(t)

	oldStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(backing)
	require.NoError(t, oldStore.Save(ctx, "sess-1", compounds))

	// New active key, old key demoted to fallback: existing data stays readable.
	rotated := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(backing)

	got, err := rotated.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, compounds, got)
}

func TestEncryption_WrongKey(t *testing.T) {
	ctx := context.Background()
	backing := memory.NewStore()
	compounds := testCompounds(t)

	writer := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: testKey(1)})(backing)
	require.NoError(t, writer.Save(ctx, "sess-1", compounds))

	reader := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: testKey(9)})(backing)
	_, err := reader.Load(ctx, "sess-1")
	assert.Error(t, err)
}

func TestEncryption_PlainRecordRejected(t *testing.T) {
	ctx := context.Background()
	backing := memory.NewStore()
	require.NoError(t, backing.Save(ctx, "sess-1", testCompounds(t)))

	store := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: testKey(1)})(backing)
	_, err := store.Load(ctx, "sess-1")
	assert.ErrorContains(t, err, "envelope")
}

func TestEncryption_ShortKeyPanics(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	})
}
