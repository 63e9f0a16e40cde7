package amqp

import (
	"testing"
	"time"
)

func TestLedgerSyncedMessageRoundTrip(t *testing.T) {
	msg := NewLedgerSyncedMessage("user@example.com", 42)
	if msg.Timestamp.IsZero() {
		t.Fatal("Timestamp not set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := LedgerSyncedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.UserKey != "user@example.com" || got.RecordCount != 42 {
		t.Fatalf("round trip = %+v", got)
	}
	if !got.Timestamp.Equal(msg.Timestamp.Truncate(time.Nanosecond)) {
		t.Fatalf("timestamp = %v, want %v", got.Timestamp, msg.Timestamp)
	}
}

func TestLedgerSyncedMessageFromInvalidJSON(t *testing.T) {
	if _, err := LedgerSyncedMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("FromJSON returned nil error for malformed payload")
	}
}
