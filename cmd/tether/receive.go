package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tetherlab/tether-go/internal/codec"
	"github.com/tetherlab/tether-go/internal/plugs"
	"github.com/tetherlab/tether-go/internal/topics"
)

type receiveFlags struct {
	topic string
	role  string
	id    string
	plug  string
}

func newReceiveCommand(root *rootFlags) *cobra.Command {
	flags := &receiveFlags{}

	cmd := &cobra.Command{
		Use:   "receive",
		Short: "Subscribe and print decoded messages",
		Long: `Subscribe to the bus and print every received message to stdout,
one line per message, with MessagePack payloads decoded to JSON.

By default everything ("#") is received. A plug name narrows the
subscription to the conventional pattern +/+/plug; --plug.role and
--plug.id pin the first two segments. A full --topic overrides all
of this with a raw MQTT filter.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReceive(cmd.Context(), root, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.topic, "topic", "", "raw subscription topic (default \"#\")")
	f.StringVar(&flags.role, "plug.role", "", "pin the AgentType segment instead of the wildcard")
	f.StringVar(&flags.id, "plug.id", "", "pin the GroupOrId segment instead of the wildcard")
	f.StringVar(&flags.plug, "plug.name", "", "subscribe to a single plug name")

	return cmd
}

func runReceive(ctx context.Context, root *rootFlags, flags *receiveFlags) error {
	cfg, log, err := loadConfig(root)
	if err != nil {
		return err
	}

	ag, err := connectAgent(cfg, log)
	if err != nil {
		return err
	}
	defer ag.Client().Close()

	if flags.plug != "" && flags.topic == "" {
		// A named plug becomes a conventional input plug; dispatch goes
		// through the pattern matcher.
		pattern, err := topics.NewForSubscribe(flags.role, flags.id, flags.plug)
		if err != nil {
			return err
		}
		patternTopic := pattern.String()

		builder := plugs.NewInput(flags.plug).
			Role(flags.role).
			ID(flags.id).
			QoS(cfg.MQTT.QoS)

		def, err := ag.RegisterInput(builder, func(topic string, payload []byte) error {
			ok, err := topics.Match(patternTopic, topic)
			if err != nil {
				return err
			}
			if ok {
				printMessage(topic, payload)
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Info("subscribed", "topic", def.Topic)

		<-ctx.Done()
		return nil
	}

	subscription := flags.topic
	if subscription == "" {
		subscription = "#"
	}

	// Role and id pins without a plug name are filtered client side:
	// the convention has no pattern with a wildcard plug name.
	handler := func(topic string, payload []byte) error {
		if segmentsMatch(flags, topic) {
			printMessage(topic, payload)
		}
		return nil
	}
	if err := ag.Client().Subscribe(subscription, byte(cfg.MQTT.QoS), handler); err != nil {
		return err
	}
	log.Info("subscribed", "topic", subscription)

	<-ctx.Done()
	return nil
}

// segmentsMatch applies role and id pins to traffic received from a
// catch-all subscription.
func segmentsMatch(flags *receiveFlags, topic string) bool {
	if flags.role != "" {
		if v, ok := topics.AgentTypeFromTopic(topic); !ok || v != flags.role {
			return false
		}
	}
	if flags.id != "" {
		if v, ok := topics.GroupOrIDFromTopic(topic); !ok || v != flags.id {
			return false
		}
	}
	return true
}

// printMessage writes one received message to stdout. MessagePack
// payloads are decoded to JSON; anything else is printed as text.
func printMessage(topic string, payload []byte) {
	if len(payload) == 0 {
		fmt.Printf("%s (empty)\n", topic)
		return
	}
	if json, err := codec.DecodeToJSON(payload); err == nil {
		fmt.Printf("%s %s\n", topic, json)
		return
	}
	fmt.Printf("%s %s\n", topic, payload)
}
