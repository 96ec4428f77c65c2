package sessionsvc

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-client/core"
	"github.com/trezcool/masomo-client/core/auth"
	"github.com/trezcool/masomo-client/core/classroom"
	"github.com/trezcool/masomo-client/core/store"
	"github.com/trezcool/masomo-client/storage/kv"
)

// NowFunc decides token expiry. mockable
var NowFunc = time.Now

// AuthAPI is the part of the remote API handling tokens.
type AuthAPI interface {
	Login(ctx context.Context, creds classroom.Credentials) (string, error)
	CheckToken(ctx context.Context, token string) (classroom.Profile, error)
}

// Session keeps the auth token of the store and the persisted one in sync.
type Session struct {
	kv       kv.Store
	api      AuthAPI
	store    *store.Store
	validate *validator.Validate
	log      core.Logger
}

func New(kvs kv.Store, api AuthAPI, st *store.Store, validate *validator.Validate, log core.Logger) *Session {
	if log == nil {
		log = core.NopLogger{}
	}
	return &Session{
		kv:       kvs,
		api:      api,
		store:    st,
		validate: validate,
		log:      log,
	}
}

// Restore loads the persisted token into the store. It reports whether the user is logged in.
//
// Expired or malformed tokens are dropped without calling the API; a token rejected by the API
// (401) is dropped too. When the API cannot be reached, the token is kept and the profile is
// taken from its claims.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	token, err := s.kv.GetString(ctx, kv.TokenKey)
	if errors.Cause(err) == kv.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "reading token")
	}

	claims, err := auth.ParseClaims(token)
	if err != nil || claims.Expired(NowFunc()) {
		return false, s.Logout(ctx)
	}

	profile, err := s.api.CheckToken(ctx, token)
	switch {
	case core.IsUnauthorized(err):
		return false, s.Logout(ctx)
	case err != nil:
		s.log.Warn("checking token, using its claims", err)
		profile = claims.Profile()
	}

	s.store.Dispatch(store.SetToken(token))
	s.store.Dispatch(store.SetProfile(profile))
	return true, nil
}

// Login validates creds, exchanges them for a token and persists it.
func (s *Session) Login(ctx context.Context, creds classroom.Credentials) (classroom.Profile, error) {
	if err := creds.Validate(s.validate); err != nil {
		return classroom.Profile{}, core.NewValidationError(err)
	}

	token, err := s.api.Login(ctx, creds)
	if err != nil {
		return classroom.Profile{}, errors.Wrap(err, "logging in")
	}
	claims, err := auth.ParseClaims(token)
	if err != nil {
		return classroom.Profile{}, errors.Wrap(err, "reading token claims")
	}
	if err = s.kv.SetString(ctx, kv.TokenKey, token); err != nil {
		return classroom.Profile{}, errors.Wrap(err, "saving token")
	}

	profile := claims.Profile()
	s.store.Dispatch(store.SetToken(token))
	s.store.Dispatch(store.SetProfile(profile))
	s.log.Info("logged in", profile)
	return profile, nil
}

// Logout forgets the token, persisted and in the store.
func (s *Session) Logout(ctx context.Context) error {
	s.store.Dispatch(store.RemoveToken())
	if err := s.kv.Remove(ctx, kv.TokenKey); err != nil {
		return errors.Wrap(err, "removing token")
	}
	return nil
}

// HandleError logs the user out when err is an API rejection of the token.
// It reports whether it did.
func (s *Session) HandleError(ctx context.Context, err error) bool {
	if !core.IsUnauthorized(err) {
		return false
	}
	if lErr := s.Logout(ctx); lErr != nil {
		s.log.Error("logging out", lErr)
	}
	return true
}
