package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/tetherlab/tether-go/internal/infrastructure/database"
	"github.com/tetherlab/tether-go/internal/recorder"
)

type recordFlags struct {
	session string
	topic   string
	path    string
}

func newRecordCommand(root *rootFlags) *cobra.Command {
	flags := &recordFlags{}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Capture bus traffic into a SQLite session",
		Long: `Subscribe and persist every received message into the record store,
tagged with a session name for later playback.

Messages keep their raw payload and topic plus the parsed convention
segments, so recorded sessions can be inspected with plain SQL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(cmd.Context(), root, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.session, "session", "", "session name (default derived from the current time)")
	f.StringVar(&flags.topic, "topic", "#", "subscription topic to capture")
	f.StringVar(&flags.path, "path", "", "database file (default from config)")

	return cmd
}

func runRecord(ctx context.Context, root *rootFlags, flags *recordFlags) error {
	cfg, log, err := loadConfig(root)
	if err != nil {
		return err
	}

	session := flags.session
	if session == "" {
		session = "session-" + time.Now().Format("20060102-150405")
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

	ag, err := connectAgent(cfg, log)
	if err != nil {
		return err
	}
	defer ag.Client().Close()

	// Inserts use a fresh context so captures racing shutdown still land.
	handler := func(topic string, payload []byte) error {
		return store.Insert(context.Background(), recorder.Capture(session, topic, payload))
	}
	if err := ag.Client().Subscribe(flags.topic, byte(cfg.MQTT.QoS), handler); err != nil {
		return err
	}
	log.Info("recording", "session", session, "topic", flags.topic, "path", path)

	<-ctx.Done()

	// The subscription handler has stopped delivering by now; report
	// what the session holds.
	messages, err := store.Session(context.Background(), session)
	if err != nil {
		log.Warn("session is empty", "session", session)
		return nil
	}
	log.Info("recording stopped", "session", session, "messages", len(messages))
	return nil
}
