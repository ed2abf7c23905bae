package app

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"service-parcel/internal/logx"
	testlog "service-parcel/internal/testutil"
)

func hasMsg(entries []testlog.Entry, msg string) bool {
	for _, e := range entries {
		if e.Msg == msg {
			return true
		}
	}
	return false
}

func recorderContainer(t *testing.T, rec *testlog.Recorder) *dig.Container {
	t.Helper()

	c := dig.New()
	require.NoError(t, c.Provide(func() logx.Logger { return rec.Logger() }))
	return c
}

func TestGracefulShutdown_DoesNotPanic(t *testing.T) {
	t.Parallel()

	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}

	require.NotPanics(t, func() {
		gracefulShutdown(srv, logx.Nop(), 100*time.Millisecond)
	})
}

func TestRunner_MustRun_ShutdownRequested(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	r := &Runner{runFn: func(*dig.Container) error { return context.Canceled }}

	r.MustRun(recorderContainer(t, rec))
	require.True(t, hasMsg(rec.Entries(), "shutdown requested, exiting"))
}

func TestRunner_MustRun_StartupTimeout(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	r := &Runner{runFn: func(*dig.Container) error { return context.DeadlineExceeded }}

	r.MustRun(recorderContainer(t, rec))
	require.True(t, hasMsg(rec.Entries(), "startup aborted: startup timeout exceeded"))
}

func TestRunner_MustRun_OtherErrorExits(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	code := -1
	r := &Runner{
		runFn: func(*dig.Container) error { return errors.New("listen: address in use") },
		exit:  func(c int) { code = c },
	}

	r.MustRun(recorderContainer(t, rec))
	require.Equal(t, 1, code)
	e, ok := rec.Find("error", "run error")
	require.True(t, ok)
	v, _ := e.Field("err")
	require.Equal(t, "listen: address in use", v)
}

func TestNewRunner_DefaultFields(t *testing.T) {
	t.Parallel()

	r := NewRunner()
	require.NotNil(t, r.runFn)
	require.NotNil(t, r.exit)
}

func TestRun_ReturnsCanceledAfterShutdown(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := testlog.New()
	c := recorderContainer(t, rec)
	require.NoError(t, c.Provide(func() context.Context { return ctx }))
	require.NoError(t, c.Provide(func() *http.Server {
		return &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	}))

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := run(c)
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, hasMsg(rec.Entries(), "shutting down service-parcel"))
}

func TestAppRun_ListenErrorStopsRun(t *testing.T) {
	t.Parallel()

	err := appRun(runIn{
		Ctx:    context.Background(),
		Logger: logx.Nop(),
		Server: &http.Server{Addr: "127.0.0.1:-1", Handler: http.NewServeMux()},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "service-parcel listen")
}

func TestRun_MissingDependencyIsReported(t *testing.T) {
	t.Parallel()

	err := run(dig.New())
	require.Error(t, err)
}
