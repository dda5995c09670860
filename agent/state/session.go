package state

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// maxTurns bounds how much history a session keeps; older turns are
	// dropped so the rendered transcript stays prompt-sized.
	maxTurns = 20
)

var (
	ErrInvalidSession = errors.New("session id is empty")
	ErrInvalidTurn    = errors.New("invalid conversation turn")
)

// Turn is a single conversation entry, either the customer's message or the
// reply synthesized for it.
type Turn struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// SessionState is the persistent conversation context for one session id.
// The orchestrator loads it before classification, renders it into the
// specialist input, and saves it back after synthesis.
type SessionState struct {
	SessionID string    `json:"session_id"`
	Turns     []Turn    `json:"turns,omitempty"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSessionState(sessionID string, now time.Time) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		Version:   1,
		UpdatedAt: now.UTC(),
	}
}

func (s *SessionState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// AddTurn appends a conversation turn and trims history beyond maxTurns.
func (s *SessionState) AddTurn(role, text string, now time.Time) error {
	if s == nil {
		return errors.New("nil session state")
	}
	if role != RoleUser && role != RoleAssistant {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidTurn, role)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidTurn)
	}
	s.Turns = append(s.Turns, Turn{Role: role, Text: text, At: now.UTC()})
	if len(s.Turns) > maxTurns {
		s.Turns = append([]Turn(nil), s.Turns[len(s.Turns)-maxTurns:]...)
	}
	s.Touch(now)
	return nil
}

func (s *SessionState) AddUserTurn(text string, now time.Time) error {
	return s.AddTurn(RoleUser, text, now)
}

func (s *SessionState) AddAssistantTurn(text string, now time.Time) error {
	return s.AddTurn(RoleAssistant, text, now)
}

// Render formats the history as a plain transcript for prompt context.
// Empty sessions render to "".
func (s *SessionState) Render() string {
	if s == nil || len(s.Turns) == 0 {
		return ""
	}
	var b strings.Builder
	for i, turn := range s.Turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch turn.Role {
		case RoleAssistant:
			b.WriteString("Assistant: ")
		default:
			b.WriteString("User: ")
		}
		b.WriteString(turn.Text)
	}
	return b.String()
}

func (s *SessionState) Validate() error {
	if strings.TrimSpace(s.SessionID) == "" {
		return ErrInvalidSession
	}
	for i, turn := range s.Turns {
		if turn.Role != RoleUser && turn.Role != RoleAssistant {
			return fmt.Errorf("%w: turn %d has role %q", ErrInvalidTurn, i, turn.Role)
		}
	}
	return nil
}
