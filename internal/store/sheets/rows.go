package sheets

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"moneytracker/internal/core"
)

// toRow lays a transaction out as ID | Name | Description | DateTime | Price.
// A non-numeric price is written as an empty cell.
func toRow(t core.Transaction) []any {
	var price any = ""
	if t.Price != nil {
		price = *t.Price
	}
	return []any{t.ID, t.Name, t.Description, t.DateTime, price}
}

// parseRows converts a values matrix (as returned by the Sheets API, header
// excluded) into transactions. Rows without an ID are skipped.
func parseRows(values [][]any) []core.Transaction {
	out := make([]core.Transaction, 0, len(values))
	for _, row := range values {
		id := strings.TrimSpace(cell(row, 0))
		if id == "" {
			continue
		}
		t := core.Transaction{
			ID:          id,
			Name:        cell(row, 1),
			Description: cell(row, 2),
			DateTime:    cell(row, 3),
		}
		if len(row) > 4 {
			t.Price = parsePrice(row[4])
		}
		out = append(out, t)
	}
	return out
}

func cell(row []any, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	if s, ok := row[idx].(string); ok {
		return s
	}
	return fmt.Sprint(row[idx])
}

func parsePrice(v any) *float64 {
	switch p := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil
		}
		return core.Float(p)
	case int:
		return core.Float(float64(p))
	case int64:
		return core.Float(float64(p))
	case string:
		s := strings.TrimSpace(p)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return core.Float(f)
	default:
		return parsePrice(fmt.Sprint(p))
	}
}
