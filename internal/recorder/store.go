package recorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tetherlab/tether-go/internal/infrastructure/database"
	"github.com/tetherlab/tether-go/internal/topics"
)

// Domain errors for the recorder package.
var (
	// ErrSessionNotFound is returned when a session name has no messages.
	ErrSessionNotFound = errors.New("recorder: session not found")
)

// schema is the capture table. The topic is stored verbatim alongside its
// split segments; segments are empty strings for traffic outside the
// three-part convention.
const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session     TEXT NOT NULL,
	topic       TEXT NOT NULL,
	agent_type  TEXT NOT NULL DEFAULT '',
	group_or_id TEXT NOT NULL DEFAULT '',
	plug_name   TEXT NOT NULL DEFAULT '',
	payload     BLOB,
	captured_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session, captured_at);
`

// Message is one captured bus message.
type Message struct {
	ID         int64
	Session    string
	Topic      string
	AgentType  string
	GroupOrID  string
	PlugName   string
	Payload    []byte
	CapturedAt time.Time
}

// Capture builds a Message from a received topic and payload, splitting the
// topic into convention segments where possible.
func Capture(session, topic string, payload []byte) Message {
	msg := Message{
		Session:    session,
		Topic:      topic,
		Payload:    payload,
		CapturedAt: time.Now().UTC(),
	}
	if v, ok := topics.AgentTypeFromTopic(topic); ok {
		msg.AgentType = v
	}
	if v, ok := topics.GroupOrIDFromTopic(topic); ok {
		msg.GroupOrID = v
	}
	if v, ok := topics.PlugNameFromTopic(topic); ok {
		msg.PlugName = v
	}
	return msg
}

// Store reads and writes captured messages.
type Store struct {
	db *database.DB
}

// NewStore prepares the capture schema and returns a store over the
// given database.
func NewStore(ctx context.Context, db *database.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("preparing capture schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Insert appends one captured message to its session.
func (s *Store) Insert(ctx context.Context, msg Message) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (session, topic, agent_type, group_or_id, plug_name, payload, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.Session,
		msg.Topic,
		msg.AgentType,
		msg.GroupOrID,
		msg.PlugName,
		msg.Payload,
		msg.CapturedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

// Session returns all messages of a session in capture order.
func (s *Store) Session(ctx context.Context, session string) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session, topic, agent_type, group_or_id, plug_name, payload, captured_at
		FROM messages
		WHERE session = ?
		ORDER BY captured_at, id`,
		session,
	)
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var msg Message
		var capturedAt string
		if err := rows.Scan(
			&msg.ID, &msg.Session, &msg.Topic,
			&msg.AgentType, &msg.GroupOrID, &msg.PlugName,
			&msg.Payload, &capturedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		msg.CapturedAt, _ = time.Parse(time.RFC3339Nano, capturedAt) //nolint:errcheck // Format is controlled
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session: %w", err)
	}

	if len(messages) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, session)
	}
	return messages, nil
}

// SessionInfo is one entry in the session listing.
type SessionInfo struct {
	Name     string
	Messages int
}

// Sessions lists all recorded sessions with their message counts,
// oldest first.
func (s *Store) Sessions(ctx context.Context) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session, COUNT(*)
		FROM messages
		GROUP BY session
		ORDER BY MIN(captured_at)`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.Name, &info.Messages); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		sessions = append(sessions, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}
