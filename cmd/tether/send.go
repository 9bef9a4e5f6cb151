package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tetherlab/tether-go/internal/agent"
	"github.com/tetherlab/tether-go/internal/batch"
	"github.com/tetherlab/tether-go/internal/codec"
	"github.com/tetherlab/tether-go/internal/infrastructure/logging"
	"github.com/tetherlab/tether-go/internal/plugs"
)

type sendFlags struct {
	plug     string
	message  string
	topic    string
	qos      int
	retain   bool
	raw      bool
	file     string
	interval time.Duration
	count    int
}

func newSendCommand(root *rootFlags) *cobra.Command {
	flags := &sendFlags{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Publish messages on an output plug",
		Long: `Publish one or more messages.

By default the message is a JSON value encoded to MessagePack and
published on the plug's conventional topic role/id/plug. A full topic
override bypasses the convention entirely; --raw skips the MessagePack
encoding and sends the message bytes as-is.

A batch file (--file) is a JSON array of entries, each naming a plug
or a full topic, a payload and an optional per-entry delay:

  tether send --file demo.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd.Context(), root, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.plug, "plug", "testMessages", "output plug name")
	f.StringVar(&flags.message, "message", "{}", "message payload as JSON")
	f.StringVar(&flags.topic, "topic", "", "full topic override, bypassing the convention")
	f.IntVar(&flags.qos, "qos", -1, "QoS for this plug (0, 1 or 2; default from config)")
	f.BoolVar(&flags.retain, "retain", false, "publish with the retain flag set")
	f.BoolVar(&flags.raw, "raw", false, "send the message bytes without MessagePack encoding")
	f.StringVar(&flags.file, "file", "", "JSON batch file to replay instead of a single message")
	f.DurationVar(&flags.interval, "interval", 0, "repeat the message at this interval")
	f.IntVar(&flags.count, "count", 1, "number of messages to send (0 = until interrupted)")

	return cmd
}

func runSend(ctx context.Context, root *rootFlags, flags *sendFlags) error {
	cfg, log, err := loadConfig(root)
	if err != nil {
		return err
	}

	ag, err := connectAgent(cfg, log)
	if err != nil {
		return err
	}
	defer ag.Client().Close()

	if flags.file != "" {
		entries, err := batch.Load(flags.file)
		if err != nil {
			return err
		}
		return sendBatch(ctx, ag, entries, log)
	}

	builder := plugs.NewOutput(flags.plug).Retain(flags.retain)
	if flags.qos >= 0 {
		builder = builder.QoS(flags.qos)
	} else {
		builder = builder.QoS(cfg.MQTT.QoS)
	}
	if flags.topic != "" {
		builder = builder.Topic(flags.topic)
	}

	def, err := ag.ResolveOutput(builder)
	if err != nil {
		return err
	}

	publish := func() error { return ag.Publish(def, []byte(flags.message)) }
	if !flags.raw {
		var value any
		if err := json.Unmarshal([]byte(flags.message), &value); err != nil {
			return fmt.Errorf("parsing message JSON: %w", err)
		}
		publish = func() error { return ag.EncodeAndPublish(def, value) }
	}

	sent := 0
	for {
		if err := publish(); err != nil {
			return err
		}
		sent++
		log.Info("message sent", "topic", def.Topic, "count", sent)

		if flags.count > 0 && sent >= flags.count {
			return nil
		}
		interval := flags.interval
		if interval <= 0 {
			// Repeating without an interval would flood the broker.
			interval = time.Second
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

// sendBatch replays batch entries in file order, honouring per-entry
// delays. Plug entries resolve against the sending agent; topic entries
// publish directly at the configured default QoS.
func sendBatch(ctx context.Context, ag *agent.Agent, entries []batch.Entry, log *logging.Logger) error {
	for i, entry := range entries {
		if delay := entry.Delay(); delay > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}
		}

		if entry.Plug != "" {
			def, err := ag.ResolveOutput(plugs.NewOutput(entry.Plug))
			if err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
			if err := publishEntry(ag, def, entry.Payload); err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
			log.Info("batch entry sent", "entry", i, "topic", def.Topic)
			continue
		}

		payload, err := codec.EncodeJSON(entry.Payload)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if err := ag.Client().PublishDefault(entry.Topic, payload); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		log.Info("batch entry sent", "entry", i, "topic", entry.Topic)
	}
	return nil
}

// publishEntry sends one plug-addressed batch payload. Absent payloads
// go out as empty messages.
func publishEntry(ag *agent.Agent, def *plugs.Definition, raw json.RawMessage) error {
	if len(raw) == 0 {
		return ag.Publish(def, nil)
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("parsing payload JSON: %w", err)
	}
	return ag.EncodeAndPublish(def, value)
}
