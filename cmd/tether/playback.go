package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tetherlab/tether-go/internal/infrastructure/database"
	"github.com/tetherlab/tether-go/internal/recorder"
)

type playbackFlags struct {
	session string
	path    string
	speed   float64
	loop    bool
}

func newPlaybackCommand(root *rootFlags) *cobra.Command {
	flags := &playbackFlags{}

	cmd := &cobra.Command{
		Use:   "playback",
		Short: "Republish a recorded session",
		Long: `Replay a recorded session onto the bus, preserving each message's
original topic, payload and relative timing.

Without --session the most useful session to replay is ambiguous, so
the available sessions are listed instead. --speed scales the gaps
between messages (2 = twice as fast); --loop restarts the session
until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayback(cmd.Context(), root, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.session, "session", "", "session name to replay")
	f.StringVar(&flags.path, "path", "", "database file (default from config)")
	f.Float64Var(&flags.speed, "speed", 1.0, "timing multiplier")
	f.BoolVar(&flags.loop, "loop", false, "replay the session until interrupted")

	return cmd
}

func runPlayback(ctx context.Context, root *rootFlags, flags *playbackFlags) error {
	cfg, log, err := loadConfig(root)
	if err != nil {
		return err
	}
	if flags.speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", flags.speed)
	}

	path := flags.path
	if path == "" {
		path = cfg.Record.Path
	}
	db, err := database.Open(database.Config{
		Path:        path,
		WALMode:     cfg.Record.WALMode,
		BusyTimeout: cfg.Record.BusyTimeout,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := recorder.NewStore(ctx, db)
	if err != nil {
		return err
	}

	if flags.session == "" {
		return listSessions(ctx, store)
	}

	messages, err := store.Session(ctx, flags.session)
	if err != nil {
		return err
	}

	ag, err := connectAgent(cfg, log)
	if err != nil {
		return err
	}
	defer ag.Client().Close()

	log.Info("replaying session",
		"session", flags.session,
		"messages", len(messages),
		"speed", flags.speed,
	)

	for {
		if err := replayOnce(ctx, messages, flags.speed, ag.PublishRaw, byte(cfg.MQTT.QoS)); err != nil {
			return err
		}
		if !flags.loop || ctx.Err() != nil {
			return nil
		}
	}
}

// replayOnce publishes the session messages in capture order, scaling
// the recorded gaps by the speed multiplier.
func replayOnce(
	ctx context.Context,
	messages []recorder.Message,
	speed float64,
	publish func(topic string, payload []byte, qos byte, retained bool) error,
	qos byte,
) error {
	for i, msg := range messages {
		if i > 0 {
			gap := msg.CapturedAt.Sub(messages[i-1].CapturedAt)
			if gap > 0 {
				scaled := time.Duration(float64(gap) / speed)
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(scaled):
				}
			}
		}
		if err := publish(msg.Topic, msg.Payload, qos, false); err != nil {
			return fmt.Errorf("replaying message %d: %w", i, err)
		}
	}
	return nil
}

// listSessions prints the recorded sessions oldest first with their
// message counts.
func listSessions(ctx context.Context, store *recorder.Store) error {
	sessions, err := store.Sessions(ctx)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return errors.New("no recorded sessions")
	}
	for _, info := range sessions {
		fmt.Printf("%s\t%d messages\n", info.Name, info.Messages)
	}
	return nil
}
