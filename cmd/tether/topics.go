package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tetherlab/tether-go/internal/infrastructure/config"
	"github.com/tetherlab/tether-go/internal/infrastructure/influxdb"
	"github.com/tetherlab/tether-go/internal/infrastructure/logging"
	"github.com/tetherlab/tether-go/internal/insights"
	"github.com/tetherlab/tether-go/internal/topics"
)

type topicsFlags struct {
	duration time.Duration
	flush    bool
}

func newTopicsCommand(root *rootFlags) *cobra.Command {
	flags := &topicsFlags{}

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Observe traffic and summarize topics",
		Long: `Subscribe to everything for an observation window and report the
agent types, groups/ids and plug names seen on the bus, with message
counts and rates per topic.

With --flush and an enabled influxdb config section, per-topic rates
are also written to InfluxDB at the end of the window.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTopics(cmd.Context(), root, flags)
		},
	}

	f := cmd.Flags()
	f.DurationVar(&flags.duration, "duration", 10*time.Second, "observation window (0 = until interrupted)")
	f.BoolVar(&flags.flush, "flush", false, "write per-topic rates to InfluxDB")

	return cmd
}

func runTopics(ctx context.Context, root *rootFlags, flags *topicsFlags) error {
	cfg, log, err := loadConfig(root)
	if err != nil {
		return err
	}

	ag, err := connectAgent(cfg, log)
	if err != nil {
		return err
	}
	defer ag.Client().Close()

	tracker := insights.NewTracker()
	handler := func(topic string, payload []byte) error {
		tracker.Observe(topic)
		return nil
	}
	if err := ag.Client().Subscribe("#", byte(cfg.MQTT.QoS), handler); err != nil {
		return err
	}
	log.Info("observing traffic", "duration", flags.duration)

	if flags.duration > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(flags.duration):
		}
	} else {
		<-ctx.Done()
	}

	snap := tracker.Snapshot()
	printSummary(snap)

	if flags.flush {
		return flushInsights(cfg, snap, log)
	}
	return nil
}

// printSummary writes the observation summary to stdout.
func printSummary(snap insights.Snapshot) {
	fmt.Printf("observed %d messages over %s\n\n", snap.Total, snap.Window.Round(time.Millisecond))
	fmt.Printf("agent types:  %s\n", joinOrNone(snap.AgentTypes))
	fmt.Printf("groups/ids:   %s\n", joinOrNone(snap.GroupOrIDs))
	fmt.Printf("plug names:   %s\n\n", joinOrNone(snap.PlugNames))

	for _, topic := range snap.SortedTopics() {
		stats := snap.Topics[topic]
		fmt.Printf("%-48s %6d msgs  %8.2f msg/s\n", topic, stats.Count, stats.Rate)
	}
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}

// flushInsights writes per-topic rates to InfluxDB.
func flushInsights(cfg *config.Config, snap insights.Snapshot, log *logging.Logger) error {
	sink, err := influxdb.Connect(cfg.InfluxDB)
	if err != nil {
		return fmt.Errorf("connecting to influxdb: %w", err)
	}
	defer sink.Close()

	sink.SetOnError(func(err error) {
		log.Warn("influxdb write failed", "error", err)
	})

	for topic, stats := range snap.Topics {
		agentType, _ := topics.AgentTypeFromTopic(topic)
		groupOrID, _ := topics.GroupOrIDFromTopic(topic)
		plugName, _ := topics.PlugNameFromTopic(topic)
		sink.WriteMessageRate(topic, agentType, groupOrID, plugName, stats.Count, stats.Rate)
	}
	sink.WritePoint("tether_window", nil, map[string]interface{}{
		"total":          snap.Total,
		"topics":         len(snap.Topics),
		"window_seconds": snap.Window.Seconds(),
	})
	sink.Flush()
	log.Info("insights flushed", "topics", len(snap.Topics))
	return nil
}
