package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tetherlab/tether-go/internal/agent"
	"github.com/tetherlab/tether-go/internal/infrastructure/config"
	"github.com/tetherlab/tether-go/internal/infrastructure/logging"
	"github.com/tetherlab/tether-go/internal/infrastructure/mqtt"
)

// Default configuration file path, overridable via TETHER_CONFIG.
const defaultConfigPath = "configs/tether.yaml"

// rootFlags holds the persistent flags shared by every subcommand.
// Flag values override both the config file and environment variables.
type rootFlags struct {
	configPath string
	host       string
	port       int
	username   string
	password   string
	role       string
	id         string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "tether",
		Short: "Utilities for the three-part MQTT topic convention",
		Long: `Tether command-line utilities.

Publish, receive, record and replay messages on an MQTT bus that
follows the AgentType/GroupOrId/PlugName topic convention. Payloads
are MessagePack on the wire and JSON at the terminal.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to config file (default \"configs/tether.yaml\")")
	pf.StringVar(&flags.host, "host", "", "MQTT broker host")
	pf.IntVar(&flags.port, "port", 0, "MQTT broker port")
	pf.StringVar(&flags.username, "username", "", "MQTT username")
	pf.StringVar(&flags.password, "password", "", "MQTT password")
	pf.StringVar(&flags.role, "role", "", "agent role (AgentType segment)")
	pf.StringVar(&flags.id, "id", "", "agent id (GroupOrId segment)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSendCommand(flags),
		newReceiveCommand(flags),
		newRecordCommand(flags),
		newPlaybackCommand(flags),
		newTopicsCommand(flags),
	)

	return cmd
}

// loadConfig resolves the effective configuration: defaults, then file,
// then environment, then command-line flags.
func loadConfig(flags *rootFlags) (*config.Config, *logging.Logger, error) {
	path := flags.configPath
	if path == "" {
		path = os.Getenv("TETHER_CONFIG")
	}
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if flags.host != "" {
		cfg.MQTT.Broker.Host = flags.host
	}
	if flags.port != 0 {
		cfg.MQTT.Broker.Port = flags.port
	}
	if flags.username != "" {
		cfg.MQTT.Auth.Username = flags.username
	}
	if flags.password != "" {
		cfg.MQTT.Auth.Password = flags.password
	}
	if flags.role != "" {
		cfg.Agent.Role = flags.role
	}
	if flags.id != "" {
		cfg.Agent.ID = flags.id
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("validating config: %w", err)
	}

	log := logging.New(cfg.Logging, version)
	return cfg, log, nil
}

// connectAgent connects to the broker and wraps the connection in an
// agent identified by the configured role and id. The caller owns the
// connection and must Close the agent's client.
func connectAgent(cfg *config.Config, log *logging.Logger) (*agent.Agent, error) {
	client, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return nil, fmt.Errorf("connecting to broker: %w", err)
	}
	client.SetLogger(log.With("component", "mqtt"))
	client.SetOnDisconnect(func(err error) {
		log.Warn("broker connection lost", "error", err)
	})
	client.SetOnConnect(func() {
		log.Debug("broker connection established")
	})

	ag := agent.New(cfg.Agent, client, log)
	log.Info("connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"role", ag.Role(),
		"id", ag.ID(),
	)
	return ag, nil
}
