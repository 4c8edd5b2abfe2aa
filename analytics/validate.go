package analytics

import (
	"fmt"

	"go.uber.org/zap"
)

// ErrMalformedRecord wraps a single-record validation failure. Under the
// default skip-and-log policy the record is dropped and the batch continues;
// with FailFast the whole run aborts on the first one.
type ErrMalformedRecord struct {
	Index  int
	Reason string
}

func (e *ErrMalformedRecord) Error() string {
	return fmt.Sprintf("malformed order record at index %d: %s", e.Index, e.Reason)
}

func validateOrder(o OrderRecord) string {
	switch {
	case o.CustomerID == "":
		return "empty customer_id"
	case o.OrderDate.IsZero():
		return "zero order_date"
	case o.OrderValue.IsNegative():
		return "negative order_value"
	case o.Quantity < 0:
		return "negative quantity"
	case o.Discount.IsNegative():
		return "negative discount"
	case o.OrderValue.LessThan(o.Discount):
		return "order_value less than discount"
	case o.Status != StatusCompleted && o.Status != StatusPending && o.Status != StatusCancelled:
		return fmt.Sprintf("unknown status %q", o.Status)
	}
	return ""
}

// ValidateOrders filters out malformed records. It returns the clean slice and
// the number skipped, or an error when cfg.FailFast is set and a bad record is
// found.
func ValidateOrders(orders []OrderRecord, cfg Config, logger *zap.Logger) ([]OrderRecord, int, error) {
	valid := make([]OrderRecord, 0, len(orders))
	skipped := 0
	for i, o := range orders {
		reason := validateOrder(o)
		if reason == "" {
			valid = append(valid, o)
			continue
		}
		if cfg.FailFast {
			return nil, 0, &ErrMalformedRecord{Index: i, Reason: reason}
		}
		skipped++
		logger.Warn("skipping malformed order record",
			zap.Int("index", i),
			zap.String("customer_id", o.CustomerID),
			zap.String("product_id", o.ProductID),
			zap.String("reason", reason))
	}
	return valid, skipped, nil
}
