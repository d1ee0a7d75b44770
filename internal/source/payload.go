package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"statistik/internal/core"
)

var ErrEmptyPayload = errors.New("empty transaction payload")

// envelope is the response body of the transaction store.
type envelope struct {
	Transactions []core.Transaction `json:"transactions"`
}

// DecodeTransactions reads either {"transactions":[...]} or a bare array. A
// missing or null list decodes to an empty slice.
func DecodeTransactions(r io.Reader) ([]core.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}

	if data[0] == '[' {
		var txs []core.Transaction
		if err := json.Unmarshal(data, &txs); err != nil {
			return nil, fmt.Errorf("decode transactions: %w", err)
		}
		return nonNil(txs), nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return nonNil(env.Transactions), nil
}

// EncodeTransactions writes txs in the envelope shape.
func EncodeTransactions(w io.Writer, txs []core.Transaction) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(envelope{Transactions: nonNil(txs)})
}

func nonNil(txs []core.Transaction) []core.Transaction {
	if txs == nil {
		return []core.Transaction{}
	}
	return txs
}
