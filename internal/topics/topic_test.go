package topics

import (
	"errors"
	"testing"
)

func TestParsePattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr error
		want    string // round-tripped form when no error
	}{
		{name: "fully concrete", pattern: "sensor/kitchen/temperature", want: "sensor/kitchen/temperature"},
		{name: "wildcard agent", pattern: "+/kitchen/temperature", want: "+/kitchen/temperature"},
		{name: "wildcard group", pattern: "sensor/+/temperature", want: "sensor/+/temperature"},
		{name: "both wildcards", pattern: "+/+/temperature", want: "+/+/temperature"},
		{name: "wildcard plug name", pattern: "+/+/+", wantErr: ErrInvalidPattern},
		{name: "two segments", pattern: "sensor/temperature", wantErr: ErrMalformedTopic},
		{name: "four segments", pattern: "a/b/c/d", wantErr: ErrMalformedTopic},
		{name: "empty segment", pattern: "sensor//temperature", wantErr: ErrMalformedTopic},
		{name: "empty string", pattern: "", wantErr: ErrMalformedTopic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePattern(tt.pattern)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParsePattern(%q) error = %v, want %v", tt.pattern, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePattern(%q) error = %v", tt.pattern, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParsePattern(%q).String() = %q, want %q", tt.pattern, got.String(), tt.want)
			}
		})
	}
}

func TestParseConcrete(t *testing.T) {
	got, err := ParseConcrete("lidar/front/scans")
	if err != nil {
		t.Fatalf("ParseConcrete() error = %v", err)
	}
	if got.AgentType().Value() != "lidar" || got.GroupOrID().Value() != "front" || got.PlugName() != "scans" {
		t.Errorf("ParseConcrete() = %v, want lidar/front/scans", got)
	}
	if got.IsPattern() {
		t.Error("IsPattern() = true for a concrete topic")
	}

	for _, bad := range []string{"+/front/scans", "lidar/+/scans", "lidar/front/+"} {
		if _, err := ParseConcrete(bad); !errors.Is(err, ErrWildcardSegment) {
			t.Errorf("ParseConcrete(%q) error = %v, want ErrWildcardSegment", bad, err)
		}
	}
	for _, bad := range []string{"lidar/front", "a/b/c/d", ""} {
		if _, err := ParseConcrete(bad); !errors.Is(err, ErrMalformedTopic) {
			t.Errorf("ParseConcrete(%q) error = %v, want ErrMalformedTopic", bad, err)
		}
	}
}

func TestNewForPublish(t *testing.T) {
	got, err := NewForPublish("lidar", "front", "scans")
	if err != nil {
		t.Fatalf("NewForPublish() error = %v", err)
	}
	if got.String() != "lidar/front/scans" {
		t.Errorf("String() = %q, want %q", got.String(), "lidar/front/scans")
	}

	if _, err := NewForPublish("lidar", "front", "+"); err == nil {
		t.Error("NewForPublish() with wildcard plug name: expected error")
	}
	if _, err := NewForPublish("", "front", "scans"); !errors.Is(err, ErrMalformedTopic) {
		t.Errorf("NewForPublish() with empty role: error = %v, want ErrMalformedTopic", err)
	}
	if _, err := NewForPublish("li/dar", "front", "scans"); !errors.Is(err, ErrMalformedTopic) {
		t.Errorf("NewForPublish() with separator in segment: error = %v, want ErrMalformedTopic", err)
	}
}

func TestNewForSubscribe(t *testing.T) {
	tests := []struct {
		name string
		role string
		id   string
		plug string
		want string
	}{
		{"defaults to double wildcard", "", "", "scans", "+/+/scans"},
		{"explicit role", "lidar", "", "scans", "lidar/+/scans"},
		{"explicit role and id", "lidar", "front", "scans", "lidar/front/scans"},
		{"explicit wildcard tokens", "+", "+", "scans", "+/+/scans"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewForSubscribe(tt.role, tt.id, tt.plug)
			if err != nil {
				t.Fatalf("NewForSubscribe() error = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
		})
	}

	if _, err := NewForSubscribe("", "", "+"); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("NewForSubscribe() with wildcard plug: error = %v, want ErrInvalidPattern", err)
	}
	if _, err := NewForSubscribe("", "", ""); !errors.Is(err, ErrMalformedTopic) {
		t.Errorf("NewForSubscribe() with empty plug: error = %v, want ErrMalformedTopic", err)
	}
}

func TestDefaultSubscribePattern(t *testing.T) {
	if got := DefaultSubscribePattern("scans"); got != "+/+/scans" {
		t.Errorf("DefaultSubscribePattern() = %q, want %q", got, "+/+/scans")
	}
}

func TestSegmentExtraction(t *testing.T) {
	tests := []struct {
		topic    string
		agent    string
		agentOK  bool
		group    string
		groupOK  bool
		plug     string
		plugOK   bool
	}{
		{"lidar/front/scans", "lidar", true, "front", true, "scans", true},
		{"lidar/front", "lidar", true, "front", true, "", false},
		{"lidar", "lidar", true, "", false, "", false},
		// Extraction is index-based, not count-validated: diagnostics
		// still get the third segment of overlong topics.
		{"a/b/c/d", "a", true, "b", true, "c", true},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			if got, ok := AgentTypeFromTopic(tt.topic); got != tt.agent || ok != tt.agentOK {
				t.Errorf("AgentTypeFromTopic() = %q, %v; want %q, %v", got, ok, tt.agent, tt.agentOK)
			}
			if got, ok := GroupOrIDFromTopic(tt.topic); got != tt.group || ok != tt.groupOK {
				t.Errorf("GroupOrIDFromTopic() = %q, %v; want %q, %v", got, ok, tt.group, tt.groupOK)
			}
			if got, ok := PlugNameFromTopic(tt.topic); got != tt.plug || ok != tt.plugOK {
				t.Errorf("PlugNameFromTopic() = %q, %v; want %q, %v", got, ok, tt.plug, tt.plugOK)
			}
		})
	}
}

func TestSegment(t *testing.T) {
	if !Any().IsWildcard() {
		t.Error("Any().IsWildcard() = false")
	}
	if Any().String() != "+" {
		t.Errorf("Any().String() = %q, want %q", Any().String(), "+")
	}
	if Any().Value() != "" {
		t.Errorf("Any().Value() = %q, want empty", Any().Value())
	}

	s := Exact("kitchen")
	if s.IsWildcard() {
		t.Error("Exact().IsWildcard() = true")
	}
	if s.Value() != "kitchen" || s.String() != "kitchen" {
		t.Errorf("Exact(kitchen) = %q/%q, want kitchen", s.Value(), s.String())
	}
}
