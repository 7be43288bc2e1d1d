package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"customer-insights/pkg/models"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Open DSN mariadb://, mysql:// ou postgres:// → connexion prête à l'emploi.
// Les URLs MariaDB/MySQL sont converties au format du driver MySQL ; les URLs
// Postgres passent telles quelles au driver pq, avec un ping de contrôle.
func Open(ctx context.Context, dsn string) (*sql.DB, string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, "", err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			db.Close()
			return nil, "", fmt.Errorf("ping postgres: %w", err)
		}
		tunePool(db)
		return db, dsn, nil
	}

	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, "", err
	}
	tunePool(db)
	return db, mysqlDSN, nil
}

func tunePool(db *sql.DB) {
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
}

func toMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		user := ""
		pass := ""
		if u.User != nil {
			user = u.User.Username()
			pw, _ := u.User.Password()
			pass = pw
		}
		host := u.Host
		db := strings.TrimPrefix(u.Path, "/")
		if user == "" || host == "" || db == "" {
			return "", fmt.Errorf("dsn incomplet (user/host/db)")
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
			user, pass, host, db), nil
	}
	return dsn, nil
}

// LoadTransactions lit l'intégralité de la table d'achats en mémoire.
// Scan tolérant aux NULL : quantité absente → 1, les autres champs restent à
// leur valeur zéro — le contrôle d'intégrité (customer_id, date) appartient à
// l'agrégateur, pas au chargeur.
func LoadTransactions(ctx context.Context, db *sql.DB, tableName string) ([]models.Transaction, error) {
	if !tableNameRe.MatchString(tableName) {
		return nil, fmt.Errorf("table invalide")
	}

	q := fmt.Sprintf(`
		SELECT transaction_id, customer_id, category, item,
		       price_per_unit, quantity, total_spent,
		       payment_method, location, date, discount
		FROM %s
	`, tableName)

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var (
			txID, custID, category, item sql.NullString
			payment, location            sql.NullString
			unitPrice, total             sql.NullFloat64
			qty                          sql.NullInt64
			date                         sql.NullTime
			discount                     sql.NullBool
		)
		if err := rows.Scan(&txID, &custID, &category, &item,
			&unitPrice, &qty, &total, &payment, &location, &date, &discount); err != nil {
			return nil, err
		}

		tx := models.Transaction{
			TransactionID: txID.String,
			CustomerID:    custID.String,
			Category:      category.String,
			Item:          item.String,
			PricePerUnit:  unitPrice.Float64,
			Quantity:      1,
			TotalSpent:    total.Float64,
			PaymentMethod: payment.String,
			Location:      location.String,
			Discount:      discount.Bool,
		}
		if qty.Valid && qty.Int64 > 0 {
			tx.Quantity = int(qty.Int64)
		}
		if date.Valid {
			tx.Date = date.Time.UTC()
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return txs, nil
}
