package securekv

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-client/storage/kv"
	inmemkv "github.com/trezcool/masomo-client/storage/kv/inmem"
)

func TestWrap_EncryptsValues(t *testing.T) {
	ctx := context.Background()
	raw := inmemkv.Open()

	store, err := Wrap(ctx, raw, "s3cr3t")
	require.NoError(t, err)
	require.NoError(t, store.SetString(ctx, kv.TokenKey, "my.jwt.token"))

	stored, err := raw.GetString(ctx, kv.TokenKey)
	require.NoError(t, err)
	assert.False(t, strings.Contains(stored, "my.jwt.token"), "value stored in clear")

	got, err := store.GetString(ctx, kv.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "my.jwt.token", got)

	// same secret, same salt: still readable after reopening
	reopened, err := Wrap(ctx, raw, "s3cr3t")
	require.NoError(t, err)
	got, err = reopened.GetString(ctx, kv.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "my.jwt.token", got)
}

func TestWrap_WrongSecret(t *testing.T) {
	ctx := context.Background()
	raw := inmemkv.Open()

	store, err := Wrap(ctx, raw, "s3cr3t")
	require.NoError(t, err)
	require.NoError(t, store.SetString(ctx, kv.TokenKey, "tok"))

	other, err := Wrap(ctx, raw, "guess")
	require.NoError(t, err)
	_, err = other.GetString(ctx, kv.TokenKey)
	assert.Equal(t, ErrCorrupted, err)
}

func TestWrap_Corrupted(t *testing.T) {
	ctx := context.Background()
	raw := inmemkv.Open()
	store, err := Wrap(ctx, raw, "s3cr3t")
	require.NoError(t, err)

	for _, v := range []string{"not base64!", "c2hvcnQ="} {
		require.NoError(t, raw.SetString(ctx, kv.TokenKey, v))
		if _, err := store.GetString(ctx, kv.TokenKey); err != ErrCorrupted {
			t.Errorf("GetString(%q) error = %v, wantErr %v", v, err, ErrCorrupted)
		}
	}
}

func TestWrap_EmptySecret(t *testing.T) {
	if _, err := Wrap(context.Background(), inmemkv.Open(), ""); err == nil {
		t.Error("Wrap() error = nil, wantErr true")
	}
}
