package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"moneytracker/internal/core"
)

var errInvalidPrice = errors.New("price must be a number, a numeric string or null")

// createTransactionRequest is the POST /api/transaction body. Price is kept
// raw so that numeric strings can be cast the way a document schema would.
type createTransactionRequest struct {
	Price       json.RawMessage `json:"price"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	DateTime    string          `json:"dateTime"`
}

// parseCreateTransaction decodes the request body. The four fields are taken
// verbatim; only their JSON types are checked.
func parseCreateTransaction(r *http.Request, maxBytes int64) (core.NewTransaction, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return core.NewTransaction{}, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > maxBytes {
		return core.NewTransaction{}, fmt.Errorf("body exceeds %d bytes", maxBytes)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return core.NewTransaction{}, errors.New("empty body")
	}

	var req createTransactionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return core.NewTransaction{}, fmt.Errorf("decode body: %w", err)
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return core.NewTransaction{}, err
	}

	return core.NewTransaction{
		Price:       price,
		Name:        req.Name,
		Description: req.Description,
		DateTime:    req.DateTime,
	}, nil
}

// parsePrice accepts a JSON number, null, an absent field, or a string that
// holds a finite number. A blank string is null.
func parsePrice(raw json.RawMessage) (*float64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, errInvalidPrice
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, errInvalidPrice
		}
		return &v, nil
	default:
		var v float64
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil, errInvalidPrice
		}
		return &v, nil
	}
}
