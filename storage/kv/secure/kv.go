package securekv

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/trezcool/masomo-client/storage/kv"
)

// saltKey stores the random salt the encryption key is derived with.
const saltKey = "securekv.salt"

var ErrCorrupted = errors.New("stored value cannot be decrypted")

// mockable
var randReader io.Reader = rand.Reader

type store struct {
	kv.Store
	key [32]byte
}

var _ kv.Store = (*store)(nil)

// Wrap returns a store encrypting values with a key derived from secret before writing them to next.
// Keys are stored in clear.
func Wrap(ctx context.Context, next kv.Store, secret string) (kv.Store, error) {
	if secret == "" {
		return nil, errors.New("empty secret")
	}
	salt, err := loadSalt(ctx, next)
	if err != nil {
		return nil, err
	}
	s := &store{Store: next}
	copy(s.key[:], argon2.IDKey([]byte(secret), salt, 1, 64*1024, 4, 32))
	return s, nil
}

func loadSalt(ctx context.Context, next kv.Store) ([]byte, error) {
	encoded, err := next.GetString(ctx, saltKey)
	if err == nil {
		salt, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, errors.Wrap(err, "decoding salt")
		}
		return salt, nil
	}
	if errors.Cause(err) != kv.ErrNotFound {
		return nil, errors.Wrap(err, "loading salt")
	}

	salt := make([]byte, 16)
	if _, err = io.ReadFull(randReader, salt); err != nil {
		return nil, errors.Wrap(err, "generating salt")
	}
	if err = next.SetString(ctx, saltKey, base64.StdEncoding.EncodeToString(salt)); err != nil {
		return nil, errors.Wrap(err, "saving salt")
	}
	return salt, nil
}

func (s *store) GetString(ctx context.Context, key string) (string, error) {
	encoded, err := s.Store.GetString(ctx, key)
	if err != nil {
		return "", err
	}
	box, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(box) < 24 {
		return "", ErrCorrupted
	}

	var nonce [24]byte
	copy(nonce[:], box[:24])
	plain, ok := secretbox.Open(nil, box[24:], &nonce, &s.key)
	if !ok {
		return "", ErrCorrupted
	}
	return string(plain), nil
}

func (s *store) SetString(ctx context.Context, key, value string) error {
	var nonce [24]byte
	if _, err := io.ReadFull(randReader, nonce[:]); err != nil {
		return errors.Wrap(err, "generating nonce")
	}
	box := secretbox.Seal(nonce[:], []byte(value), &nonce, &s.key)
	return s.Store.SetString(ctx, key, base64.StdEncoding.EncodeToString(box))
}
