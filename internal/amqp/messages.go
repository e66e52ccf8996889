package amqp

import (
	"encoding/json"
	"time"
)

// MenuSavedMessage tells the export worker that a bundle was saved. It
// carries only the identifier; the worker re-reads the record from storage
// so the payload can never go stale.
type MenuSavedMessage struct {
	MenuID  string    `json:"menu_id"`
	SavedAt time.Time `json:"saved_at"`
}

func NewMenuSavedMessage(menuID string) *MenuSavedMessage {
	return &MenuSavedMessage{MenuID: menuID, SavedAt: time.Now().UTC()}
}

func (m *MenuSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MenuSavedMessageFromJSON(data []byte) (*MenuSavedMessage, error) {
	var msg MenuSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
