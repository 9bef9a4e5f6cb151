package insights

import (
	"sort"
	"sync"
	"time"

	"github.com/tetherlab/tether-go/internal/topics"
)

// Tracker accumulates per-topic observations. Safe for concurrent use
// from message handler goroutines.
type Tracker struct {
	mu         sync.Mutex
	started    time.Time
	total      int
	byTopic    map[string]int
	agentTypes map[string]struct{}
	groupOrIDs map[string]struct{}
	plugNames  map[string]struct{}
}

// NewTracker returns an empty tracker. The observation window starts now.
func NewTracker() *Tracker {
	return &Tracker{
		started:    time.Now(),
		byTopic:    make(map[string]int),
		agentTypes: make(map[string]struct{}),
		groupOrIDs: make(map[string]struct{}),
		plugNames:  make(map[string]struct{}),
	}
}

// Observe records one received message. Topics outside the three-part
// convention still count toward the total and per-topic figures; only
// the segments that exist contribute to the segment sets.
func (t *Tracker) Observe(topic string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	t.byTopic[topic]++

	if v, ok := topics.AgentTypeFromTopic(topic); ok {
		t.agentTypes[v] = struct{}{}
	}
	if v, ok := topics.GroupOrIDFromTopic(topic); ok {
		t.groupOrIDs[v] = struct{}{}
	}
	if v, ok := topics.PlugNameFromTopic(topic); ok {
		t.plugNames[v] = struct{}{}
	}
}

// TopicStats holds the per-topic figures of a snapshot.
type TopicStats struct {
	Count int
	Rate  float64 // messages per second over the observation window
}

// Snapshot is a point-in-time summary of observed traffic.
type Snapshot struct {
	Started    time.Time
	Window     time.Duration
	Total      int
	Topics     map[string]TopicStats
	AgentTypes []string
	GroupOrIDs []string
	PlugNames  []string
}

// Snapshot returns the current summary. Segment lists are sorted.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	window := time.Since(t.started)
	snap := Snapshot{
		Started:    t.started,
		Window:     window,
		Total:      t.total,
		Topics:     make(map[string]TopicStats, len(t.byTopic)),
		AgentTypes: sortedKeys(t.agentTypes),
		GroupOrIDs: sortedKeys(t.groupOrIDs),
		PlugNames:  sortedKeys(t.plugNames),
	}
	for topic, count := range t.byTopic {
		stats := TopicStats{Count: count}
		if secs := window.Seconds(); secs > 0 {
			stats.Rate = float64(count) / secs
		}
		snap.Topics[topic] = stats
	}
	return snap
}

// SortedTopics returns the snapshot's topic names in lexical order.
func (s Snapshot) SortedTopics() []string {
	names := make([]string, 0, len(s.Topics))
	for name := range s.Topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
