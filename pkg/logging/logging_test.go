package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrefixWriter(t *testing.T) {
	tests := []struct {
		name   string
		writes []string
		flush  bool
		want   string
	}{
		{
			name:   "single line",
			writes: []string{"hello\n"},
			want:   "> hello\n",
		},
		{
			name:   "line split across writes",
			writes: []string{"hel", "lo\nwor", "ld\n"},
			want:   "> hello\n> world\n",
		},
		{
			name:   "partial line held until flush",
			writes: []string{"pending"},
			flush:  true,
			want:   "> pending",
		},
		{
			name:   "partial line without flush",
			writes: []string{"pending"},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			pw := NewPrefixWriter("> ", &out)
			for _, w := range tt.writes {
				n, err := pw.Write([]byte(w))
				if err != nil {
					t.Fatalf("Write: %v", err)
				}
				if n != len(w) {
					t.Errorf("Write returned %d, want %d", n, len(w))
				}
			}
			if tt.flush {
				if err := pw.Flush(); err != nil {
					t.Fatalf("Flush: %v", err)
				}
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestNewLoggerPrefixesTextOutput(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger("stgy-test", "debug", false, &out)
	logger.Debug("located block", "block", "Coord")

	got := out.String()
	if !strings.HasPrefix(got, LinePrefix) {
		t.Errorf("expected %q prefix, got %q", LinePrefix, got)
	}
	if !strings.Contains(got, "block=Coord") {
		t.Errorf("expected key/value pair in output, got %q", got)
	}
}

func TestNewLoggerJSONHasNoPrefix(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger("stgy-test", "info", true, &out)
	logger.Info("decoded")

	if strings.HasPrefix(out.String(), LinePrefix) {
		t.Errorf("JSON output must not be prefixed: %q", out.String())
	}
	if !strings.Contains(out.String(), `"@message":"decoded"`) {
		t.Errorf("expected JSON message field, got %q", out.String())
	}
}

func TestOrNull(t *testing.T) {
	if OrNull(nil) == nil {
		t.Fatal("OrNull(nil) returned nil")
	}
}
