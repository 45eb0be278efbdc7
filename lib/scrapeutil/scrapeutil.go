// Package scrapeutil builds the HTTP client shared by collectors.
package scrapeutil

import (
	"context"
	"interview-harvest/lib/restyutil"
	"interview-harvest/lib/telemetry"
	"path/filepath"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const report_transcript_dir = "scrapeutil.transcript-dir"

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Config struct {
	UserAgent string `json:"user_agent"`
	// per request timeout, defaults to 30 seconds
	TimeoutSeconds int `json:"timeout_seconds"`
	// pause between consecutive requests to the same site
	DelayMillis int `json:"delay_ms"`
	// retries on transport errors and 5xx responses
	Retries int `json:"retries"`
	// when set, transcripts of every response are written to
	// <dump_dir>/<collector>/
	DumpDir string `json:"dump_dir"`
}

func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) Delay() time.Duration {
	if c.DelayMillis < 0 {
		return 0
	}
	return time.Duration(c.DelayMillis) * time.Millisecond
}

// NewClient returns a resty client with the configured user agent,
// timeout and retry policy, instrumented under name.
func NewClient(name string, config Config, tel telemetry.API) *resty.Client {
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(config.Timeout())
	if config.Retries > 0 {
		client.SetRetryCount(config.Retries)
		client.SetRetryWaitTime(time.Second)
		client.AddRetryCondition(func(res *resty.Response, err error) bool {
			return err != nil || res.StatusCode() >= 500
		})
	}

	telemetry.InstrumentResty(client, "interview-harvest/collectors/"+name, tel)

	if config.DumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(filepath.Join(config.DumpDir, name))
		if err != nil {
			tel.ReportBroken(report_transcript_dir, err, config.DumpDir)
		} else {
			restyutil.DumpTranscripts(client, name, output)
		}
	}
	return client
}

// Pause waits for d or until ctx is done.
func Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
