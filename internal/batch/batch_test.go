package batch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tetherlab/tether-go/internal/topics"
)

func TestParse_ValidEntries(t *testing.T) {
	data := []byte(`[
		{"plug": "colours", "payload": {"r": 255}, "delay_ms": 100},
		{"topic": "lidar/front/scans", "payload": [1, 2, 3]}
	]`)

	entries, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Parse() returned %d entries, want 2", len(entries))
	}
	if entries[0].Plug != "colours" {
		t.Errorf("Plug = %q, want %q", entries[0].Plug, "colours")
	}
	if entries[0].Delay() != 100*time.Millisecond {
		t.Errorf("Delay() = %v, want 100ms", entries[0].Delay())
	}
	if entries[1].Topic != "lidar/front/scans" {
		t.Errorf("Topic = %q, want %q", entries[1].Topic, "lidar/front/scans")
	}
	if entries[1].Delay() != 0 {
		t.Errorf("Delay() = %v, want 0", entries[1].Delay())
	}
	if string(entries[1].Payload) != "[1, 2, 3]" {
		t.Errorf("Payload = %s, want raw JSON preserved", entries[1].Payload)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "empty array",
			data:    `[]`,
			wantErr: ErrEmptyBatch,
		},
		{
			name:    "no destination",
			data:    `[{"payload": 1}]`,
			wantErr: ErrNoDestination,
		},
		{
			name:    "both plug and topic",
			data:    `[{"plug": "a", "topic": "x/y/z"}]`,
			wantErr: ErrAmbiguousDestination,
		},
		{
			name:    "malformed topic",
			data:    `[{"topic": "only/two"}]`,
			wantErr: topics.ErrMalformedTopic,
		},
		{
			name:    "wildcard in topic",
			data:    `[{"topic": "+/front/scans"}]`,
			wantErr: topics.ErrWildcardSegment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_NotJSON(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Error("Parse() expected error for invalid JSON")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	content := `[{"plug": "colours", "payload": 42}]`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing batch file: %v", err)
	}

	entries, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Plug != "colours" {
		t.Errorf("Load() = %+v, want single colours entry", entries)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}
