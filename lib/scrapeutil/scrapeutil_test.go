package scrapeutil

import (
	"context"
	"interview-harvest/lib/telemetry"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewClientSendsUserAgent(t *testing.T) {
	var seen atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.Header.Get("user-agent"))
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient("test", Config{UserAgent: "harvest-test"}, &telemetry.Recorder{})
	res, err := client.R().Get(server.URL)
	require.NoError(t, err)
	require.Equal(t, "ok", res.String())
	require.Equal(t, "harvest-test", seen.Load())
}

func TestNewClientDumpsTranscripts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("transcribed"))
	}))
	defer server.Close()

	dir := t.TempDir()
	client := NewClient("gfg", Config{DumpDir: dir}, &telemetry.Recorder{})
	_, err := client.R().Get(server.URL)
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, "gfg", "gfg-1.txt"))
	require.NoError(t, err)
	require.Contains(t, string(contents), "transcribed")
}

func TestNewClientRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient("test", Config{Retries: 3}, &telemetry.Recorder{})
	client.SetRetryWaitTime(time.Millisecond)
	client.SetRetryMaxWaitTime(5 * time.Millisecond)

	res, err := client.R().Get(server.URL)
	require.NoError(t, err)
	require.Equal(t, "ok", res.String())
	require.Equal(t, int32(3), calls.Load())
}

func TestConfigDefaults(t *testing.T) {
	require.Equal(t, 30*time.Second, Config{}.Timeout())
	require.Equal(t, 5*time.Second, Config{TimeoutSeconds: 5}.Timeout())
	require.Equal(t, time.Duration(0), Config{DelayMillis: -1}.Delay())
	require.Equal(t, 2*time.Second, Config{DelayMillis: 2000}.Delay())
}

func TestPause(t *testing.T) {
	require.NoError(t, Pause(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, Pause(ctx, time.Hour), context.Canceled)
	require.ErrorIs(t, Pause(ctx, 0), context.Canceled)
}
