package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/finsight/finsight/internal/cli/finsightctl"
)

func main() {
	timeout := parseDurationWithDefault(strings.TrimSpace(os.Getenv("FINSIGHT_CLI_TIMEOUT")), 2*time.Minute)
	options := finsightctl.Options{
		BaseURL: envOr("FINSIGHT_API_URL", "http://localhost:8080"),
		Timeout: timeout,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}

	code := finsightctl.Run(context.Background(), os.Args[1:], options)
	os.Exit(code)
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func parseDurationWithDefault(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid FINSIGHT_CLI_TIMEOUT %q; using %s\n", raw, fallback)
		return fallback
	}
	return parsed
}
