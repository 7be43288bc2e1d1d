package database

import (
	"strings"
	"testing"
	"time"
)

const sampleCSV = `Transaction ID,Customer ID,Category,Item,Price Per Unit,Quantity,Total Spent,Payment Method,Location,Date,Discount
TXN_001,CUST_01,Food,Item_10_FOOD,12.5,2,25.0,Credit Card,Online,2024-01-15,True
TXN_002,CUST_02,Furniture,Item_3_FUR,40.0,,40.0,Cash,In-store,2024-02-01,False
`

func TestParseCSV(t *testing.T) {
	txs, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}

	first := txs[0]
	if first.TransactionID != "TXN_001" || first.CustomerID != "CUST_01" {
		t.Fatalf("ids: %+v", first)
	}
	if first.PricePerUnit != 12.5 || first.Quantity != 2 || first.TotalSpent != 25.0 {
		t.Fatalf("amounts: %+v", first)
	}
	if !first.Discount {
		t.Fatal("discount should be true")
	}
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !first.Date.Equal(want) {
		t.Fatalf("date: got %v, want %v", first.Date, want)
	}

	// quantité absente → 1 par défaut
	if txs[1].Quantity != 1 {
		t.Fatalf("default quantity: got %d, want 1", txs[1].Quantity)
	}
	if txs[1].Discount {
		t.Fatal("discount should be false")
	}
}

func TestParseCSV_UnknownColumnsSkipped(t *testing.T) {
	in := "customer_id,date,total_spent,comment\nc1,2024-03-01,9.99,hello\n"
	txs, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txs[0].CustomerID != "c1" || txs[0].TotalSpent != 9.99 {
		t.Fatalf("unexpected row: %+v", txs[0])
	}
}

func TestParseCSV_BadDate(t *testing.T) {
	in := "customer_id,date\nc1,15/01/2024\n"
	if _, err := ParseCSV(strings.NewReader(in)); err == nil {
		t.Fatal("expected error for unsupported date format, got nil")
	}
}

func TestParseCSV_EmptyBody(t *testing.T) {
	txs, err := ParseCSV(strings.NewReader("customer_id,date\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("got %d transactions, want 0", len(txs))
	}
}
