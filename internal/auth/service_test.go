package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/crucial707/league-api/internal/models"
	"github.com/crucial707/league-api/internal/repo"
	"github.com/crucial707/league-api/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeStore struct {
	users map[string]*models.User
	err   error
	calls int
}

func (f *fakeStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type failingIssuer struct{}

func (failingIssuer) Issue(token.Subject) (string, time.Time, error) {
	return "", time.Time{}, errors.New("boom")
}

func newTestService(t *testing.T) (*Service, *fakeStore, *token.Codec) {
	t.Helper()
	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)

	store := &fakeStore{users: map[string]*models.User{
		"alice": {ID: 7, Username: "alice", PasswordHash: hash, Email: "alice@example.com", Role: models.RoleCoach},
	}}
	codec, err := token.NewCodec([]byte("test-secret"))
	require.NoError(t, err)
	return NewService(store, hasher, token.NewIssuer(codec, time.Hour)), store, codec
}

func TestLogin_Success(t *testing.T) {
	svc, _, codec := newTestService(t)

	res, err := svc.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, 7, res.User.ID)
	assert.Empty(t, res.User.PasswordHash)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, 5*time.Second)

	claims, err := codec.Decode(res.Token)
	require.NoError(t, err)
	assert.Equal(t, token.Subject{UserID: 7, Username: "alice", Role: "coach"}, claims.Identity())

	body, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")
	assert.NotContains(t, string(body), "$2a$")
}

func TestLogin_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, wrongPw := svc.Login(context.Background(), "alice", "wrong")
	_, unknown := svc.Login(context.Background(), "bob", "secret123")

	assert.ErrorIs(t, wrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.Equal(t, wrongPw.Error(), unknown.Error())
}

func TestLogin_UsernameIsCaseSensitive(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "Alice", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_EmptyInputNeverHitsStore(t *testing.T) {
	svc, store, _ := newTestService(t)

	for _, in := range [][2]string{{"", "x"}, {"alice", ""}, {"", ""}} {
		_, err := svc.Login(context.Background(), in[0], in[1])
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Zero(t, store.calls)
}

func TestLogin_StoreFailure(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.err = errors.New("connection refused")

	_, err := svc.Login(context.Background(), "alice", "secret123")
	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "lookup", depErr.Op)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, store.calls)
}

func TestLogin_IssueFailure(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.Tokens = failingIssuer{}

	_, err := svc.Login(context.Background(), "alice", "secret123")
	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "issue token", depErr.Op)
}
