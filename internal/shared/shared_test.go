package shared

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLogger(t *testing.T) {
	t.Run("Writes To Provided Writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "test")
		logger.Info("hello")

		if !strings.Contains(buf.String(), "component=test") {
			t.Errorf("expected component key in output, got %q", buf.String())
		}
	})

	t.Run("ParseLogLevel", func(t *testing.T) {
		tc := []struct {
			name string
			in   string
			want log.Level
		}{
			{name: "empty", in: "", want: log.InfoLevel},
			{name: "debug", in: "debug", want: log.DebugLevel},
			{name: "warn", in: "warn", want: log.WarnLevel},
			{name: "garbage", in: "loud", want: log.InfoLevel},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if got := ParseLogLevel(tt.in); got != tt.want {
					t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
				}
			})
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique ids")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid string length 36, got %d", len(a))
	}
}

func TestOpenBrowser(t *testing.T) {
	original := openURL
	t.Cleanup(func() { openURL = original })

	t.Run("Success", func(t *testing.T) {
		var opened string
		openURL = func(u string) error { opened = u; return nil }

		if err := OpenBrowser("https://accounts.spotify.com/authorize"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if opened != "https://accounts.spotify.com/authorize" {
			t.Errorf("unexpected url %s", opened)
		}
	})

	t.Run("Failure Is Wrapped", func(t *testing.T) {
		openURL = func(string) error { return errors.New("no display") }

		err := OpenBrowser("https://example.com")
		if err == nil || !strings.Contains(err.Error(), "failed to open browser") {
			t.Errorf("expected wrapped error, got %v", err)
		}
	})
}
