// Package ui renders the transaction page and owns its view state.
package ui

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"moneytracker/internal/core"
)

// Form field names, as posted by the entry form.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldDateTime    = "dateTime"
)

var ErrUnknownField = errors.New("unknown field")

// ViewState is the page state: the three editable form fields and the
// fetched list. It changes only through its transition methods.
type ViewState struct {
	name         string
	description  string
	dateTime     string
	transactions []core.Transaction
}

func NewViewState() *ViewState {
	return &ViewState{transactions: []core.Transaction{}}
}

// SetField updates one editable field.
func (v *ViewState) SetField(field, value string) error {
	switch field {
	case FieldName:
		v.name = value
	case FieldDescription:
		v.description = value
	case FieldDateTime:
		v.dateTime = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// LoadComplete replaces the in-memory list with a fetched one.
func (v *ViewState) LoadComplete(list []core.Transaction) {
	v.transactions = append(make([]core.Transaction, 0, len(list)), list...)
}

// Submission checks the required fields and builds the create payload by
// splitting the combined name field into price and label. Nothing is sent
// when the check fails.
func (v *ViewState) Submission() (core.NewTransaction, error) {
	if err := core.ValidateRequired(v.name, v.description, v.dateTime); err != nil {
		return core.NewTransaction{}, err
	}
	price, label := core.ParseEntry(v.name)
	return core.NewTransaction{
		Price:       price,
		Name:        label,
		Description: v.description,
		DateTime:    v.dateTime,
	}, nil
}

// SubmitComplete clears the editable fields once the API answered. The
// created record is not added to the list; it shows up on the next load.
func (v *ViewState) SubmitComplete(core.Transaction) {
	v.name = ""
	v.description = ""
	v.dateTime = ""
}

func (v *ViewState) Name() string        { return v.name }
func (v *ViewState) Description() string { return v.description }
func (v *ViewState) DateTime() string    { return v.dateTime }

// Transactions returns a copy of the loaded list.
func (v *ViewState) Transactions() []core.Transaction {
	return append([]core.Transaction(nil), v.transactions...)
}

// Balance is the formatted sum of every loaded price.
func (v *ViewState) Balance() core.Amount {
	return core.FormatBalance(core.Balance(v.transactions))
}

// BalanceNegative reports whether the balance gets the negative style.
func (v *ViewState) BalanceNegative() bool {
	return v.Balance().Negative
}

// Row is one rendered list entry.
type Row struct {
	Name        string
	Description string
	Price       string
	Negative    bool
	Date        string
}

// Rows renders the loaded list in stored order.
func (v *ViewState) Rows() []Row {
	rows := make([]Row, 0, len(v.transactions))
	for _, t := range v.transactions {
		rows = append(rows, Row{
			Name:        t.Name,
			Description: t.Description,
			Price:       core.FormatPrice(t.Price),
			Negative:    t.HasPrice() && core.IsNegative(decimal.NewFromFloat(t.PriceValue())),
			Date:        FormatDate(t.DateTime),
		})
	}
	return rows
}
