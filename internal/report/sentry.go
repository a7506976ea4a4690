package report

import (
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

// SetupSentry initializes the global Sentry client from SENTRY_DSN.
// An empty DSN disables transport, so local development works without
// any Sentry configuration.
func SetupSentry() {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              os.Getenv("SENTRY_DSN"),
		EnableTracing:    true,
		TracesSampleRate: 1.0,
	}); err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	sentry.CaptureMessage("Wayfinder started")
}

func FlushSentry() {
	sentry.Flush(2 * time.Second)
}
