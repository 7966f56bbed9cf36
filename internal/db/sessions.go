package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session id does not exist.
var ErrSessionNotFound = errors.New("session not found")

// Session is a chat conversation.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is one question/answer exchange within a session.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Query     string    `json:"query"`
	Answer    string    `json:"answer"`
	Sources   []string  `json:"sources"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore provides CRUD operations for chat sessions and messages.
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a SessionStore backed by the given database.
func NewSessionStore(database *DB) *SessionStore {
	return &SessionStore{db: database}
}

// Create inserts a new session and returns it.
func (s *SessionStore) Create(ctx context.Context) (*Session, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, `INSERT INTO chat_sessions (id) VALUES (?)`, id)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}
	return s.Get(ctx, id)
}

// Get retrieves a session by id.
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, updated_at FROM chat_sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.CreatedAt, &sess.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return &sess, nil
}

// Delete removes a session and its messages.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chat_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// AppendMessage records a question/answer exchange in a session.
func (s *SessionStore) AppendMessage(ctx context.Context, sessionID, query, answer string, sources []string) (*Message, error) {
	if _, err := s.Get(ctx, sessionID); err != nil {
		return nil, err
	}

	if sources == nil {
		sources = []string{}
	}
	encoded, err := json.Marshal(sources)
	if err != nil {
		return nil, fmt.Errorf("marshalling sources: %w", err)
	}

	msg := &Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Query:     query,
		Answer:    answer,
		Sources:   sources,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, session_id, query, answer, sources, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.SessionID, msg.Query, msg.Answer, string(encoded), msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE chat_sessions SET updated_at = datetime('now') WHERE id = ?`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("touching session: %w", err)
	}
	return msg, nil
}

// History returns a session's messages in chronological order.
func (s *SessionStore) History(ctx context.Context, sessionID string) ([]Message, error) {
	if _, err := s.Get(ctx, sessionID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, query, answer, sources, created_at
		FROM chat_messages WHERE session_id = ? ORDER BY created_at, id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var msg Message
		var encoded string
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Query, &msg.Answer, &encoded, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		if err := json.Unmarshal([]byte(encoded), &msg.Sources); err != nil {
			return nil, fmt.Errorf("decoding sources: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
