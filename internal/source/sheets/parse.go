package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"statistik/internal/core"
)

const (
	colID       = "id"
	colAmount   = "amount"
	colType     = "type"
	colCategory = "category_id"
	colDate     = "transaction_date"
	colCreated  = "created_at"
)

// parseRows converts a values matrix into transactions. The first row is the
// header; columns may appear in any order and header names are matched
// without regard to case. Only amount and type are required.
func parseRows(values [][]interface{}) ([]core.Transaction, error) {
	if len(values) == 0 {
		return []core.Transaction{}, nil
	}
	headers := toStrings(values[0])
	idx := map[string]int{}
	for _, name := range []string{colID, colAmount, colType, colCategory, colDate, colCreated} {
		idx[name] = indexOf(headers, name)
	}

	var missing []string
	for _, name := range []string{colAmount, colType} {
		if idx[name] == -1 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unexpected header: missing %s; got headers=%v", strings.Join(missing, ","), headers)
	}

	out := make([]core.Transaction, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := toStrings(raw)
		if isBlank(row) {
			continue
		}
		amount, _ := core.ParseAmount(safeGet(row, idx[colAmount]))
		out = append(out, core.Transaction{
			ID:              safeGet(row, idx[colID]),
			Amount:          amount,
			Type:            core.TxType(strings.ToLower(safeGet(row, idx[colType]))),
			CategoryID:      categoryCell(safeGet(row, idx[colCategory])),
			TransactionDate: safeGet(row, idx[colDate]),
			CreatedAt:       safeGet(row, idx[colCreated]),
		})
	}
	return out, nil
}

// toStrings renders cells as text. Numbers keep their shortest exact form so
// 100 stays "100" rather than "100.000000".
func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		switch x := v.(type) {
		case nil:
			out[i] = ""
		case string:
			out[i] = strings.TrimSpace(x)
		case float64:
			out[i] = strconv.FormatFloat(x, 'f', -1, 64)
		case bool:
			out[i] = ""
		default:
			out[i] = strings.TrimSpace(fmt.Sprint(x))
		}
	}
	return out
}

// categoryCell treats a numeric zero as no category. Sheets cannot tell a
// typed "0" from the number, so both are absent here.
func categoryCell(s string) string {
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == 0 {
		return ""
	}
	return s
}

func isBlank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

func indexOf(arr []string, target string) int {
	for i, v := range arr {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(target)) {
			return i
		}
	}
	return -1
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
