package amqp

import (
	"encoding/json"
	"time"
)

// TransactionsChangedMessage announces that the transaction store changed.
// It carries no records; consumers reload from their source.
type TransactionsChangedMessage struct {
	Source    string    `json:"source"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionsChangedMessage creates a change notice for count records
// written to source
func NewTransactionsChangedMessage(source string, count int) *TransactionsChangedMessage {
	return &TransactionsChangedMessage{
		Source:    source,
		Count:     count,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionsChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionsChangedMessageFromJSON creates a message from JSON bytes
func TransactionsChangedMessageFromJSON(data []byte) (*TransactionsChangedMessage, error) {
	var msg TransactionsChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
