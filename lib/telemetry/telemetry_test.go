package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := &Recorder{}
	scoped := NewScopedAPI("reddit", NewScopedAPI("collect", rec))
	scoped.ReportWarning("extract.company", "post title")
	scoped.ReportCount("records", 12)

	warnings := rec.Filter(KindWarning)
	require.Len(t, warnings, 1)
	require.Equal(t, "collect:reddit:extract.company", warnings[0].ID)
	require.Equal(t, []any{"post title"}, warnings[0].Params)

	counts := rec.Filter(KindCount)
	require.Len(t, counts, 1)
	require.Equal(t, int64(12), counts[0].Count)
}

func TestInstrumentRestyReportsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	rec := &Recorder{}
	client := resty.New()
	InstrumentResty(client, "test", rec)

	_, err := client.R().Get(server.URL + "/found")
	require.NoError(t, err)
	require.Empty(t, rec.Filter(KindWarning))

	_, err = client.R().Get(server.URL + "/missing")
	require.NoError(t, err)
	warnings := rec.Filter(KindWarning)
	require.Len(t, warnings, 1)
	require.Equal(t, report_http_status, warnings[0].ID)
	require.Equal(t, http.StatusNotFound, warnings[0].Params[0])
	require.Len(t, rec.Filter(KindDebug), 4)
}

func TestInstrumentRestyReportsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	rec := &Recorder{}
	client := resty.New()
	InstrumentResty(client, "test", rec)

	_, err := client.R().Get(url)
	require.Error(t, err)
	broken := rec.Filter(KindBroken)
	require.Len(t, broken, 1)
	require.Equal(t, report_http_response, broken[0].ID)
}

func TestSetupWithoutEndpoints(t *testing.T) {
	tel, err := Setup(context.Background(), "harvest-test", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestEndpointProtocol(t *testing.T) {
	require.False(t, Endpoint{}.enabled())

	e := Endpoint{Http: "http://localhost:4318/v1/traces"}
	require.True(t, e.enabled())
	require.Equal(t, "http", e.protocol())
	require.Equal(t, e.Http, e.url())

	e.Grpc = "http://localhost:4317"
	require.Equal(t, "grpc", e.protocol())
	require.Equal(t, e.Grpc, e.url())
}

func TestSamplePerfStats(t *testing.T) {
	sample := samplePerfStats(context.Background())
	require.Greater(t, sample.Goroutines, int64(0))
	sample.record(context.Background())
}
