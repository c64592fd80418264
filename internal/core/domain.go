package core

import (
	"errors"
	"strings"
)

type (
	// Transaction is one persisted financial record. ID is assigned by the
	// store on creation and never changes afterwards.
	Transaction struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		DateTime    string   `json:"dateTime"`
		Price       *float64 `json:"price"`
	}

	// NewTransaction is the create payload, a Transaction without its ID.
	NewTransaction struct {
		Price       *float64 `json:"price"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		DateTime    string   `json:"dateTime"`
	}
)

var (
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyDateTime    = errors.New("empty date and time")
)

// WithID returns the stored form of the payload.
func (n NewTransaction) WithID(id string) Transaction {
	return Transaction{
		ID:          id,
		Name:        n.Name,
		Description: n.Description,
		DateTime:    n.DateTime,
		Price:       n.Price,
	}
}

// ValidateRequired mirrors the entry form's required inputs. It is the only
// validation in the system: the API accepts whatever it is sent.
func ValidateRequired(rawName, description, dateTime string) error {
	if strings.TrimSpace(rawName) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(dateTime) == "" {
		return ErrEmptyDateTime
	}
	return nil
}

// HasPrice reports whether the price parsed to a number.
func (t Transaction) HasPrice() bool {
	return t.Price != nil
}

// PriceValue returns the price, treating a non-numeric price as zero.
func (t Transaction) PriceValue() float64 {
	if t.Price == nil {
		return 0
	}
	return *t.Price
}

// Float returns a pointer to v, for building prices in literals.
func Float(v float64) *float64 {
	return &v
}
