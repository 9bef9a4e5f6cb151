package agent

import (
	"errors"
	"testing"

	"github.com/tetherlab/tether-go/internal/codec"
	"github.com/tetherlab/tether-go/internal/infrastructure/config"
	"github.com/tetherlab/tether-go/internal/infrastructure/logging"
	"github.com/tetherlab/tether-go/internal/infrastructure/mqtt"
	"github.com/tetherlab/tether-go/internal/plugs"
)

func testAgent() *Agent {
	return New(
		config.AgentConfig{Role: "lidar", ID: "front"},
		&mqtt.Client{},
		logging.Default(),
	)
}

func TestResolveOutput(t *testing.T) {
	a := testAgent()

	def, err := a.ResolveOutput(plugs.NewOutput("scans"))
	if err != nil {
		t.Fatalf("ResolveOutput() error = %v", err)
	}
	if def.Topic != "lidar/front/scans" {
		t.Errorf("Topic = %q, want %q", def.Topic, "lidar/front/scans")
	}
}

func TestResolveOutput_RejectsInputBuilder(t *testing.T) {
	a := testAgent()

	if _, err := a.ResolveOutput(plugs.NewInput("scans")); err == nil {
		t.Error("ResolveOutput() with input builder: expected error")
	}
}

func TestPublish_InputPlug(t *testing.T) {
	a := testAgent()

	def, err := plugs.NewInput("scans").Build("lidar", "front")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if err := a.Publish(def, []byte("payload")); !errors.Is(err, ErrPublishOnInput) {
		t.Errorf("Publish() error = %v, want ErrPublishOnInput", err)
	}
}

func TestPublish_Disconnected(t *testing.T) {
	a := testAgent()

	def, err := a.ResolveOutput(plugs.NewOutput("scans"))
	if err != nil {
		t.Fatalf("ResolveOutput() error = %v", err)
	}

	if err := a.Publish(def, []byte("payload")); !errors.Is(err, mqtt.ErrNotConnected) {
		t.Errorf("Publish() error = %v, want mqtt.ErrNotConnected", err)
	}
}

func TestRegisterInput_RejectsOutputBuilder(t *testing.T) {
	a := testAgent()

	handler := func(topic string, payload []byte) error { return nil }
	if _, err := a.RegisterInput(plugs.NewOutput("scans"), handler); err == nil {
		t.Error("RegisterInput() with output builder: expected error")
	}
}

func TestRegisterInput_Disconnected(t *testing.T) {
	a := testAgent()

	handler := func(topic string, payload []byte) error { return nil }
	_, err := a.RegisterInput(plugs.NewInput("scans"), handler)
	if !errors.Is(err, mqtt.ErrNotConnected) {
		t.Errorf("RegisterInput() error = %v, want mqtt.ErrNotConnected", err)
	}
}

func TestRegisterInput_InvalidBuilder(t *testing.T) {
	a := testAgent()

	handler := func(topic string, payload []byte) error { return nil }
	_, err := a.RegisterInput(plugs.NewInput("scans").Retain(true), handler)
	if !errors.Is(err, plugs.ErrRetainOnInput) {
		t.Errorf("RegisterInput() error = %v, want plugs.ErrRetainOnInput", err)
	}
}

func TestEncodeAndPublish_Disconnected(t *testing.T) {
	a := testAgent()

	def, err := a.ResolveOutput(plugs.NewOutput("scans"))
	if err != nil {
		t.Fatalf("ResolveOutput() error = %v", err)
	}

	// Encoding succeeds; the publish itself fails on the dead client.
	err = a.EncodeAndPublish(def, map[string]any{"r": 255})
	if !errors.Is(err, mqtt.ErrNotConnected) {
		t.Errorf("EncodeAndPublish() error = %v, want mqtt.ErrNotConnected", err)
	}
}

func TestEncodeAndPublish_UnencodableValue(t *testing.T) {
	a := testAgent()

	def, err := a.ResolveOutput(plugs.NewOutput("scans"))
	if err != nil {
		t.Fatalf("ResolveOutput() error = %v", err)
	}

	if err := a.EncodeAndPublish(def, make(chan int)); !errors.Is(err, codec.ErrEncode) {
		t.Errorf("EncodeAndPublish() error = %v, want codec.ErrEncode", err)
	}
}

func TestEncodeAndPublish_InputPlug(t *testing.T) {
	a := testAgent()

	def, err := plugs.NewInput("scans").Build("lidar", "front")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if err := a.EncodeAndPublish(def, 42); !errors.Is(err, ErrPublishOnInput) {
		t.Errorf("EncodeAndPublish() error = %v, want ErrPublishOnInput", err)
	}
}

func TestIdentity(t *testing.T) {
	a := testAgent()
	if a.Role() != "lidar" || a.ID() != "front" {
		t.Errorf("identity = %s/%s, want lidar/front", a.Role(), a.ID())
	}
}

func TestClient_ReturnsUnderlyingConnection(t *testing.T) {
	client := &mqtt.Client{}
	a := New(config.AgentConfig{Role: "lidar", ID: "front"}, client, logging.Default())

	if a.Client() != client {
		t.Error("Client() did not return the wrapped connection")
	}
}
