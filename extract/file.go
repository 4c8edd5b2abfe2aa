package extract

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"orderpulse-backend/analytics"
	"orderpulse-backend/config"
)

// csv column order: customer_id,product_id,order_date,order_value,quantity,discount,status
const csvColumns = 7

// FromFile extracts order records from a CSV or JSON file, selected by
// extension.
func FromFile(src config.SourceConfig, logger *zap.Logger) ([]analytics.OrderRecord, error) {
	var (
		orders []analytics.OrderRecord
		err    error
	)
	switch strings.ToLower(filepath.Ext(src.Path)) {
	case ".csv":
		orders, err = fromCSV(src.Path)
	case ".json":
		orders, err = fromJSON(src.Path)
	default:
		return nil, fmt.Errorf("file source %s: unsupported extension %q", src.Name, filepath.Ext(src.Path))
	}
	if err != nil {
		return nil, fmt.Errorf("file source %s: %w", src.Name, err)
	}
	logger.Info("extracted records from file",
		zap.String("source", src.Name), zap.String("path", src.Path), zap.Int("records", len(orders)))
	return orders, nil
}

func fromCSV(path string) ([]analytics.OrderRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) < csvColumns {
		return nil, fmt.Errorf("expected %d columns, got %d", csvColumns, len(header))
	}

	bar := progressbar.Default(-1, "parsing orders")
	defer bar.Close()

	var orders []analytics.OrderRecord
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		o, err := parseCSVRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		orders = append(orders, o)
		bar.Add(1)
	}
	return orders, nil
}

func parseCSVRecord(record []string) (analytics.OrderRecord, error) {
	var o analytics.OrderRecord
	if len(record) < csvColumns {
		return o, fmt.Errorf("expected %d fields, got %d", csvColumns, len(record))
	}
	date, err := parseDate(record[2])
	if err != nil {
		return o, fmt.Errorf("order_date: %w", err)
	}
	value, err := decimal.NewFromString(record[3])
	if err != nil {
		return o, fmt.Errorf("order_value: %w", err)
	}
	qty, err := strconv.Atoi(record[4])
	if err != nil {
		return o, fmt.Errorf("quantity: %w", err)
	}
	disc := decimal.Zero
	if record[5] != "" {
		if disc, err = decimal.NewFromString(record[5]); err != nil {
			return o, fmt.Errorf("discount: %w", err)
		}
	}
	return analytics.OrderRecord{
		CustomerID: record[0],
		ProductID:  record[1],
		OrderDate:  date,
		OrderValue: value,
		Quantity:   qty,
		Discount:   disc,
		Status:     analytics.OrderStatus(strings.ToLower(strings.TrimSpace(record[6]))),
	}, nil
}

// wireOrder is the JSON shape shared by the file and API extractors.
type wireOrder struct {
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id"`
	OrderDate  string `json:"order_date"`
	OrderValue string `json:"order_value"`
	Quantity   int    `json:"quantity"`
	Discount   string `json:"discount"`
	Status     string `json:"status"`
}

func (w wireOrder) toRecord() (analytics.OrderRecord, error) {
	var o analytics.OrderRecord
	date, err := parseDate(w.OrderDate)
	if err != nil {
		return o, fmt.Errorf("order_date: %w", err)
	}
	value, err := decimal.NewFromString(w.OrderValue)
	if err != nil {
		return o, fmt.Errorf("order_value: %w", err)
	}
	disc := decimal.Zero
	if w.Discount != "" {
		if disc, err = decimal.NewFromString(w.Discount); err != nil {
			return o, fmt.Errorf("discount: %w", err)
		}
	}
	return analytics.OrderRecord{
		CustomerID: w.CustomerID,
		ProductID:  w.ProductID,
		OrderDate:  date,
		OrderValue: value,
		Quantity:   w.Quantity,
		Discount:   disc,
		Status:     analytics.OrderStatus(strings.ToLower(w.Status)),
	}, nil
}

func fromJSON(path string) ([]analytics.OrderRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wire []wireOrder
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	orders := make([]analytics.OrderRecord, 0, len(wire))
	for i, w := range wire {
		o, err := w.toRecord()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
