package plugs

import (
	"errors"
	"testing"

	"github.com/tetherlab/tether-go/internal/topics"
)

func TestBuild_InputDefaults(t *testing.T) {
	def, err := NewInput("scans").Build("lidar", "front")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if def.Topic != "+/+/scans" {
		t.Errorf("Topic = %q, want %q", def.Topic, "+/+/scans")
	}
	if def.Direction != Input {
		t.Errorf("Direction = %v, want Input", def.Direction)
	}
	if def.QoS != 1 {
		t.Errorf("QoS = %d, want default 1", def.QoS)
	}
	if def.Custom() {
		t.Error("Custom() = true for a conventional plug")
	}
}

func TestBuild_InputOverrides(t *testing.T) {
	def, err := NewInput("scans").Role("lidar").ID("rear").QoS(2).Build("ignored", "ignored")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if def.Topic != "lidar/rear/scans" {
		t.Errorf("Topic = %q, want %q", def.Topic, "lidar/rear/scans")
	}
	if def.QoS != 2 {
		t.Errorf("QoS = %d, want 2", def.QoS)
	}
}

func TestBuild_OutputUsesAgentIdentity(t *testing.T) {
	def, err := NewOutput("scans").Build("lidar", "front")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if def.Topic != "lidar/front/scans" {
		t.Errorf("Topic = %q, want %q", def.Topic, "lidar/front/scans")
	}
	if def.Direction != Output {
		t.Errorf("Direction = %v, want Output", def.Direction)
	}
	if def.Retain {
		t.Error("Retain = true, want false by default")
	}
}

func TestBuild_OutputRoleIDOverrides(t *testing.T) {
	def, err := NewOutput("scans").Role("camera").ID("rear").Retain(true).Build("lidar", "front")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if def.Topic != "camera/rear/scans" {
		t.Errorf("Topic = %q, want %q", def.Topic, "camera/rear/scans")
	}
	if !def.Retain {
		t.Error("Retain = false, want true")
	}
}

func TestBuild_RetainOnInput(t *testing.T) {
	_, err := NewInput("scans").Retain(true).Build("lidar", "front")
	if !errors.Is(err, ErrRetainOnInput) {
		t.Errorf("Build() error = %v, want ErrRetainOnInput", err)
	}
}

func TestBuild_WildcardPlugName(t *testing.T) {
	if _, err := NewInput("+").Build("lidar", "front"); !errors.Is(err, topics.ErrInvalidPattern) {
		t.Errorf("input Build() error = %v, want topics.ErrInvalidPattern", err)
	}
	if _, err := NewOutput("+").Build("lidar", "front"); err == nil {
		t.Error("output Build() with wildcard name: expected error")
	}
}

func TestBuild_InvalidQoS(t *testing.T) {
	for _, qos := range []int{3, -1, -2} {
		_, err := NewOutput("scans").QoS(qos).Build("lidar", "front")
		if !errors.Is(err, ErrInvalidQoS) {
			t.Errorf("Build() with qos %d: error = %v, want ErrInvalidQoS", qos, err)
		}
	}
}

func TestBuild_CustomTopicOverride(t *testing.T) {
	// Conforming override keeps its parsed three-part form.
	def, err := NewInput("all").Topic("lidar/+/scans").Build("", "")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if def.Custom() {
		t.Error("Custom() = true for a conforming override")
	}
	if def.Tether.PlugName() != "scans" {
		t.Errorf("Tether.PlugName() = %q, want %q", def.Tether.PlugName(), "scans")
	}

	// Broker-grammar override is accepted but loses the parsed form.
	def, err = NewInput("all").Topic("#").Build("", "")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !def.Custom() {
		t.Error("Custom() = false for a non-conforming override")
	}
	if def.Topic != "#" {
		t.Errorf("Topic = %q, want %q", def.Topic, "#")
	}
}

func TestBuild_EmptyName(t *testing.T) {
	if _, err := NewInput("").Build("lidar", "front"); err == nil {
		t.Error("Build() with empty name: expected error")
	}
}
