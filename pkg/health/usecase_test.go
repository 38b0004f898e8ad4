package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name  string
	err   error
	calls int
}

func (s *stubChecker) Name() string { return s.name }

func (s *stubChecker) Check(context.Context) error {
	s.calls++
	return s.err
}

func TestReady_AllHealthy(t *testing.T) {
	a, b := &stubChecker{name: "a"}, &stubChecker{name: "b"}
	require.NoError(t, NewService(a, b).Ready(context.Background()))
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

func TestReady_StopsAtFirstFailure(t *testing.T) {
	down := errors.New("connection refused")
	a, b := &stubChecker{name: "postgres", err: down}, &stubChecker{name: "redis"}

	err := NewService(a, b).Ready(context.Background())
	require.ErrorIs(t, err, down)
	assert.EqualError(t, err, "postgres: connection refused")
	assert.Zero(t, b.calls)
}

func TestReady_NoCheckers(t *testing.T) {
	require.NoError(t, NewService().Ready(context.Background()))
}
