package database

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"customer-insights/pkg/models"
)

// LoadCSV charge un fichier CSV d'achats (mêmes colonnes que la table SQL,
// repérées par leur en-tête, insensible à la casse).
func LoadCSV(path string) ([]models.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV convertit des lignes CSV en transactions. Les colonnes inconnues
// sont ignorées silencieusement ; les dates acceptent 2006-01-02 ou RFC3339.
func ParseCSV(r io.Reader) ([]models.Transaction, error) {
	reader := csv.NewReader(r)

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("lecture en-tête CSV: %w", err)
	}
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[normalizeHeader(h)] = i
	}

	var txs []models.Transaction
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ligne %d: %w", line+1, err)
		}
		line++

		get := func(key string) string {
			i, ok := idx[key]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		tx := models.Transaction{
			TransactionID: get("transaction_id"),
			CustomerID:    get("customer_id"),
			Category:      get("category"),
			Item:          get("item"),
			PaymentMethod: get("payment_method"),
			Location:      get("location"),
			Quantity:      1,
		}
		tx.PricePerUnit, _ = strconv.ParseFloat(get("price_per_unit"), 64)
		tx.TotalSpent, _ = strconv.ParseFloat(get("total_spent"), 64)
		if q, err := strconv.Atoi(get("quantity")); err == nil && q > 0 {
			tx.Quantity = q
		}
		if d := get("date"); d != "" {
			t, err := parseDate(d)
			if err != nil {
				return nil, fmt.Errorf("ligne %d: date %q: %w", line, d, err)
			}
			tx.Date = t
		}
		if b, err := strconv.ParseBool(strings.ToLower(get("discount"))); err == nil {
			tx.Discount = b
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// normalizeHeader : "Price Per Unit" → "price_per_unit".
func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.ToLower(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("format attendu 2006-01-02 ou RFC3339")
}
