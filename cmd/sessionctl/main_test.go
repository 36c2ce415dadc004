package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/exam-session-api/internal/pkg/lock"
	apperrors "github.com/yourusername/exam-session-api/internal/pkg/errors"
	"github.com/yourusername/exam-session-api/internal/repository/jsonfile"
	"github.com/yourusername/exam-session-api/internal/service"
)

func init() {
	color.NoColor = true
}

func newCLITestService(t *testing.T) *service.TestSessionService {
	t.Helper()
	dir := t.TempDir()
	userRepo, err := jsonfile.NewUserRepo(dir)
	require.NoError(t, err)
	resultRepo, err := jsonfile.NewTestResultRepo(dir)
	require.NoError(t, err)
	return service.NewTestSessionService(userRepo, resultRepo, lock.NewKeyedMutex(), "secret")
}

func TestRun_UsersHidesPasswords(t *testing.T) {
	svc := newCLITestService(t)
	ctx := context.Background()
	_, err := svc.Authenticate(ctx, "bob", "hunter2")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(ctx, svc, &out, []string{"users"}))

	assert.Contains(t, out.String(), "bob")
	assert.NotContains(t, out.String(), "hunter2")
	assert.Contains(t, out.String(), "Total users: 1, total tests: 0")
}

func TestRun_ResetAndStatus(t *testing.T) {
	svc := newCLITestService(t)
	ctx := context.Background()
	_, err := svc.Authenticate(ctx, "bob", "pw")
	require.NoError(t, err)
	require.NoError(t, svc.SubmitTest(ctx, service.SubmitInput{
		StudentName:   "bob",
		Score:         json.RawMessage(`3`),
		PDFDownloaded: true,
	}))

	var out bytes.Buffer
	require.NoError(t, run(ctx, svc, &out, []string{"results", "bob"}))
	assert.Contains(t, out.String(), "Yes")

	out.Reset()
	require.NoError(t, run(ctx, svc, &out, []string{"status", "bob"}))
	assert.Contains(t, out.String(), "canRetake=false hasCompleted=true")

	out.Reset()
	require.NoError(t, run(ctx, svc, &out, []string{"reset", "BOB"}))

	out.Reset()
	require.NoError(t, run(ctx, svc, &out, []string{"status", "bob"}))
	assert.Contains(t, out.String(), "canRetake=true hasCompleted=false")
}

func TestRun_Errors(t *testing.T) {
	svc := newCLITestService(t)
	ctx := context.Background()
	var out bytes.Buffer

	assert.Error(t, run(ctx, svc, &out, []string{"frobnicate"}))
	assert.Error(t, run(ctx, svc, &out, []string{"reset"}))
	assert.ErrorIs(t, run(ctx, svc, &out, []string{"reset", "ghost"}), apperrors.ErrNotFound)
}
