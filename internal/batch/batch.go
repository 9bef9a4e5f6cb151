package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tetherlab/tether-go/internal/topics"
)

// Domain errors for the batch package.
var (
	// ErrEmptyBatch is returned when a batch file contains no entries.
	ErrEmptyBatch = errors.New("batch: file contains no entries")

	// ErrNoDestination is returned when an entry names neither a plug
	// nor a topic.
	ErrNoDestination = errors.New("batch: entry needs a plug or a topic")

	// ErrAmbiguousDestination is returned when an entry names both a
	// plug and a topic.
	ErrAmbiguousDestination = errors.New("batch: entry cannot set both plug and topic")
)

// Entry is one message in a batch file.
type Entry struct {
	// Plug is the output plug name to publish on. Mutually exclusive
	// with Topic.
	Plug string `json:"plug,omitempty"`

	// Topic is a full publish topic, bypassing plug resolution.
	// Mutually exclusive with Plug.
	Topic string `json:"topic,omitempty"`

	// Payload is the message body as raw JSON, encoded to MessagePack
	// at send time.
	Payload json.RawMessage `json:"payload,omitempty"`

	// DelayMS is how long to wait before sending this entry,
	// in milliseconds.
	DelayMS int `json:"delay_ms,omitempty"`
}

// Delay returns the entry's pre-send delay as a duration.
func (e Entry) Delay() time.Duration {
	if e.DelayMS <= 0 {
		return 0
	}
	return time.Duration(e.DelayMS) * time.Millisecond
}

// Load reads and validates a batch file.
//
// Every entry must name exactly one destination. Entries carrying a
// full topic are validated against the three-part convention; plug
// entries are resolved later by the sender.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates batch entries from raw JSON.
func Parse(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyBatch
	}

	for i, entry := range entries {
		if err := entry.validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return entries, nil
}

func (e Entry) validate() error {
	switch {
	case e.Plug == "" && e.Topic == "":
		return ErrNoDestination
	case e.Plug != "" && e.Topic != "":
		return ErrAmbiguousDestination
	case e.Topic != "":
		if _, err := topics.ParseConcrete(e.Topic); err != nil {
			return fmt.Errorf("validating topic %q: %w", e.Topic, err)
		}
	}
	return nil
}
