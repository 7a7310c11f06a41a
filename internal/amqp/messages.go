package amqp

import (
	"encoding/json"
	"time"
)

// StateChangedMessage announces that the committee snapshot was replaced.
// It carries only the revision and the session year that changed; the worker
// reloads the full snapshot from the store before exporting.
type StateChangedMessage struct {
	Revision  int64     `json:"revision"`
	Year      int       `json:"year"`
	Timestamp time.Time `json:"timestamp"`
}

func NewStateChangedMessage(revision int64, year int) *StateChangedMessage {
	return &StateChangedMessage{
		Revision:  revision,
		Year:      year,
		Timestamp: time.Now(),
	}
}

func (m *StateChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func StateChangedMessageFromJSON(data []byte) (*StateChangedMessage, error) {
	var msg StateChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
