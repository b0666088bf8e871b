package amqp

import (
	"testing"
	"time"
)

func TestContributionSyncMessageRoundTrip(t *testing.T) {
	msg := NewContributionSyncMessage(42)
	if msg.ID != 42 {
		t.Fatalf("ID = %d, want 42", msg.ID)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("expected a non-zero timestamp")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	decoded, err := ContributionSyncMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if decoded.ID != msg.ID {
		t.Fatalf("decoded ID = %d, want %d", decoded.ID, msg.ID)
	}
	if !decoded.Timestamp.Equal(msg.Timestamp.Truncate(time.Nanosecond)) {
		t.Fatalf("decoded timestamp = %v, want %v", decoded.Timestamp, msg.Timestamp)
	}
}

func TestContributionSyncMessageFromJSONMalformed(t *testing.T) {
	if _, err := ContributionSyncMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
