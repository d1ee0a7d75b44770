package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

func fakeService(t *testing.T, handler http.HandlerFunc) *gsheet.Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := gsheet.NewService(context.Background(),
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestListTransactions(t *testing.T) {
	svc := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/v4/spreadsheets/sheet-123/values/") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("valueRenderOption") != "UNFORMATTED_VALUE" {
			t.Errorf("unexpected render option: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"range": "Transactions!A1:F3",
			"majorDimension": "ROWS",
			"values": [
				["id", "amount", "type", "category_id", "transaction_date"],
				["1", 100, "expense", 1, "2024-03-05"],
				["2", 500, "income", "", "2024-03-01"]
			]
		}`))
	})

	c := NewWithService(svc, "sheet-123", "", nil)
	txs, err := c.ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[0].CategoryID != "1" || !txs[1].IsIncome() {
		t.Fatalf("unexpected transactions: %+v", txs)
	}
}

func TestListTransactions_APIError(t *testing.T) {
	svc := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"denied"}}`))
	})

	_, err := NewWithService(svc, "sheet-123", "Data", nil).ListTransactions(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "read Data!A:Z") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_MissingConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"no spreadsheet", Config{}, "missing spreadsheet id"},
		{"no credentials", Config{SpreadsheetID: "x"}, "missing service account credentials"},
		{"missing file", Config{SpreadsheetID: "x", ServiceAccountFile: "/non/existent.json"}, "read service account file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), tt.cfg, nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestListTransactions_NilService(t *testing.T) {
	c := &Client{}
	if _, err := c.ListTransactions(context.Background()); err == nil {
		t.Fatal("expected error for nil service")
	}
}
