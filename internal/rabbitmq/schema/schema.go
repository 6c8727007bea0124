package schema

import (
	"encoding/json"
)

// Email is the body of a message in the e-mail delivery queue.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html,omitempty"`
	Text    string `json:"text,omitempty"`
}

func (m *Email) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *Email) Unmarshal(data []byte) error {
	return json.Unmarshal(data, m)
}
