package amqp

import (
	"encoding/json"
	"time"
)

// LedgerSyncedMessage notifies the mirror worker that a user's collection
// changed in the primary store. It carries only the key and count; the
// worker reads the full collection from the primary store itself.
type LedgerSyncedMessage struct {
	UserKey     string    `json:"user_key"`
	RecordCount int       `json:"record_count"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewLedgerSyncedMessage creates a sync notification for a user key.
func NewLedgerSyncedMessage(userKey string, recordCount int) *LedgerSyncedMessage {
	return &LedgerSyncedMessage{
		UserKey:     userKey,
		RecordCount: recordCount,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerSyncedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerSyncedMessageFromJSON creates a message from JSON bytes
func LedgerSyncedMessageFromJSON(data []byte) (*LedgerSyncedMessage, error) {
	var msg LedgerSyncedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
