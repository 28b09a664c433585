package assistant

import (
	"regexp"
	"strings"
)

// RefusalMessage replaces any reply that looks like it carries internal error detail.
const RefusalMessage = "Unable to process your request. Please try again later."

var leakageMarkers = []string{
	"exception",
	"stack trace",
	"stacktrace",
	"traceback",
	"panic:",
}

// Matches JVM-style "at pkg.Type.method(File.java:12)" frames, Go goroutine
// headers and indented "file.go:12 +0x1f" frames.
var stackFramePattern = regexp.MustCompile(
	`(?m)^\s*at\s+[\w$.<>]+\([^)]*\)\s*$|goroutine \d+ \[[^\]]+\]:|^\s+\S+\.go:\d+ \+0x[0-9a-f]+$`,
)

// ContainsLeakage reports whether text looks like it exposes an internal
// failure.
func ContainsLeakage(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range leakageMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return stackFramePattern.MatchString(text)
}
