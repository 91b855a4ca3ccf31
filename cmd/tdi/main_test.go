package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tdi-leaderboards/external/infinitode"
	"github.com/riskibarqy/tdi-leaderboards/internal/platform/logging"
)

func offlineEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "dev")
	t.Setenv("TDI_API_URL", "http://127.0.0.1:1/")
	t.Setenv("TDI_XDX_URL", "http://127.0.0.1:1/xdx/index.php")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("UPTRACE_ENABLED", "false")
}

func TestRun_FailedCommandStillClosesClient(t *testing.T) {
	offlineEnv(t)

	var out, errOut bytes.Buffer
	s := &session{out: &out, errOut: &errOut, logger: logging.NewNop()}
	ctx := context.Background()

	err := run(ctx, s, []string{"leaderboard", "9.9"})
	require.ErrorIs(t, err, infinitode.ErrBadArgument)
	require.NotNil(t, s.app)
	assert.Empty(t, out.String())

	_, err = s.app.Client.Leaderboards(ctx, infinitode.LeaderboardQuery{MapName: "5.1"})
	require.ErrorIs(t, err, infinitode.ErrAPI)
	assert.Contains(t, err.Error(), "client is closed")

	require.NoError(t, s.close())
}

func TestRun_ConfigErrorIsPrinted(t *testing.T) {
	offlineEnv(t)
	t.Setenv("APP_ENV", "nowhere")

	var out, errOut bytes.Buffer
	s := &session{out: &out, errOut: &errOut}

	err := run(context.Background(), s, []string{"seasonal"})
	require.Error(t, err)
	assert.Nil(t, s.app)
	assert.Contains(t, errOut.String(), "invalid APP_ENV")
}

func TestRun_ArgumentErrorBeforeOpen(t *testing.T) {
	offlineEnv(t)

	var out, errOut bytes.Buffer
	s := &session{out: &out, errOut: &errOut}

	err := run(context.Background(), s, []string{"rank", "5.1"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, infinitode.ErrAPI))
	assert.Nil(t, s.app)
	assert.Contains(t, errOut.String(), "Error:")
}
