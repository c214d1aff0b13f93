package cmd

import (
	"os"
	"strconv"
	"time"

	"github.com/kyrosle/xdiff/packages/errdef"
)

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

// parseTimeout accepts a Go duration or a bare number of milliseconds.
func parseTimeout(s string) (time.Duration, error) {
	var d time.Duration
	if ms, err := strconv.Atoi(s); err == nil {
		d = time.Duration(ms) * time.Millisecond
	} else if d, err = time.ParseDuration(s); err != nil {
		return 0, errdef.New(errdef.CodeUsage, "invalid timeout value %q (use format like 30s, 1m, 500ms)", s)
	}
	if d < 0 {
		return 0, errdef.New(errdef.CodeUsage, "invalid timeout value %q", s)
	}
	return d, nil
}
