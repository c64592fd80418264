package amqp

import (
	"encoding/json"
	"time"

	"moneytracker/internal/core"
)

// TransactionCreatedMessage announces a record that was just persisted. It
// carries the full record so consumers never have to read it back.
type TransactionCreatedMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     *float64  `json:"price"`
	DateTime  string    `json:"dateTime"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionCreatedMessage builds the event for a stored transaction.
func NewTransactionCreatedMessage(t core.Transaction) *TransactionCreatedMessage {
	return &TransactionCreatedMessage{
		ID:        t.ID,
		Name:      t.Name,
		Price:     t.Price,
		DateTime:  t.DateTime,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionCreatedMessageFromJSON creates a message from JSON bytes
func TransactionCreatedMessageFromJSON(data []byte) (*TransactionCreatedMessage, error) {
	var msg TransactionCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
