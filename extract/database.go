// Package extract pulls order records out of the configured upstream sources
// and normalizes them into the analytics input contract. Everything past this
// boundary treats the records as validated plumbing-free input.
package extract

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"orderpulse-backend/analytics"
	"orderpulse-backend/config"
)

const defaultColumns = "customer_id, product_id, order_date, order_value, quantity, discount, status"

// sourceQuery builds the extraction query: an explicit query from config wins,
// otherwise a full table scan with an optional incremental date filter.
func sourceQuery(src config.SourceConfig, since *time.Time) (string, []any) {
	if src.Query != "" {
		return src.Query, nil
	}
	q := fmt.Sprintf("SELECT %s FROM %s", defaultColumns, src.Table)
	if since != nil && src.DateColumn != "" {
		return q + fmt.Sprintf(" WHERE %s > ?", src.DateColumn), []any{*since}
	}
	return q, nil
}

// FromPostgres extracts order records from a PostgreSQL source.
func FromPostgres(src config.SourceConfig, since *time.Time, logger *zap.Logger) ([]analytics.OrderRecord, error) {
	db, err := gorm.Open(postgres.Open(src.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres source %s: %w", src.Name, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres source %s: %w", src.Name, err)
	}
	defer sqlDB.Close()

	query, args := sourceQuery(src, since)
	rows, err := db.Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("query postgres source %s: %w", src.Name, err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, fmt.Errorf("scan postgres source %s: %w", src.Name, err)
	}
	logger.Info("extracted records from postgres",
		zap.String("source", src.Name), zap.Int("records", len(orders)))
	return orders, nil
}

// FromMySQL extracts order records from a MySQL/MariaDB source.
func FromMySQL(ctx context.Context, src config.SourceConfig, since *time.Time, logger *zap.Logger) ([]analytics.OrderRecord, error) {
	dsn, err := toMySQLDSN(src.DSN)
	if err != nil {
		return nil, fmt.Errorf("mysql source %s: %w", src.Name, err)
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect mysql source %s: %w", src.Name, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	query, args := sourceQuery(src, since)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mysql source %s: %w", src.Name, err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, fmt.Errorf("scan mysql source %s: %w", src.Name, err)
	}
	logger.Info("extracted records from mysql",
		zap.String("source", src.Name), zap.Int("records", len(orders)))
	return orders, nil
}

// toMySQLDSN accepts mysql:// or mariadb:// URLs and rewrites them into the
// driver's user:pass@tcp(host)/db form; native DSNs pass through untouched.
func toMySQLDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, "mysql://") && !strings.HasPrefix(dsn, "mariadb://") {
		return dsn, nil
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	user := ""
	pass := ""
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	dbName := strings.TrimPrefix(u.Path, "/")
	if user == "" || u.Host == "" || dbName == "" {
		return "", fmt.Errorf("incomplete dsn: user, host and database are required")
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC", user, pass, u.Host, dbName), nil
}

// scanOrders walks a row set in the default column order and converts each
// row into an OrderRecord. Money columns arrive as driver strings and go
// straight into decimals, never through float64.
func scanOrders(rows *sql.Rows) ([]analytics.OrderRecord, error) {
	var orders []analytics.OrderRecord
	for rows.Next() {
		var (
			customerID, productID string
			orderDate             time.Time
			orderValue, discount  sql.NullString
			quantity              sql.NullInt64
			status                sql.NullString
		)
		if err := rows.Scan(&customerID, &productID, &orderDate, &orderValue, &quantity, &discount, &status); err != nil {
			return nil, err
		}
		o := analytics.OrderRecord{
			CustomerID: customerID,
			ProductID:  productID,
			OrderDate:  orderDate,
			Status:     analytics.OrderStatus(strings.ToLower(status.String)),
		}
		if quantity.Valid {
			o.Quantity = int(quantity.Int64)
		}
		if orderValue.Valid {
			v, err := decimal.NewFromString(orderValue.String)
			if err != nil {
				return nil, fmt.Errorf("order_value %q: %w", orderValue.String, err)
			}
			o.OrderValue = v
		}
		if discount.Valid {
			d, err := decimal.NewFromString(discount.String)
			if err != nil {
				return nil, fmt.Errorf("discount %q: %w", discount.String, err)
			}
			o.Discount = d
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
