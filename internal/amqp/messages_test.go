package amqp

import "testing"

func TestMenuSavedMessageRoundTrip(t *testing.T) {
	msg := NewMenuSavedMessage("abc123def0")
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := MenuSavedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.MenuID != "abc123def0" {
		t.Fatalf("menu id: %s", got.MenuID)
	}
	if got.SavedAt.IsZero() {
		t.Fatalf("saved_at lost")
	}
}

func TestMenuSavedMessageFromBadJSON(t *testing.T) {
	if _, err := MenuSavedMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected error")
	}
}
