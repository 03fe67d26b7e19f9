package order

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"quickcart/internal/domain/record"
)

// Table and application fields of the order store. Orders are created exactly
// once per checkout and immutable from this side afterwards.
const Table = "orders_c"

const (
	FieldOrderDate   = "order_date_c"
	FieldStatus      = "status_c"
	FieldTotalAmount = "total_amount_c"
	FieldItems       = "items_c"
	FieldOwner       = "owner_c"
)

// StatusConfirmed is the only status this layer produces.
const StatusConfirmed = "confirmed"

// LineItem is one ordered position, serialized into the items blob.
type LineItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
}

// Order is the decoded order view model. Number is the human order number held
// in the system Name field.
type Order struct {
	ID          int             `json:"Id"`
	Number      string          `json:"orderNumber"`
	OrderDate   time.Time       `json:"orderDate"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Items       []LineItem      `json:"items"`
}

// NewNumber builds a human order number: QC + unix millis + 3-digit suffix.
// Uniqueness is probabilistic, not guaranteed.
func NewNumber(now time.Time, suffix int) string {
	if suffix < 0 {
		suffix = -suffix
	}
	return fmt.Sprintf("QC%d%03d", now.UnixMilli(), suffix%1000)
}

// Total sums price x quantity over items.
func Total(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

// EncodeItems serializes line items into the opaque blob stored in FieldItems.
func EncodeItems(items []LineItem) (string, error) {
	if items == nil {
		items = []LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("order: encode items: %w", err)
	}
	return string(b), nil
}

// DecodeItems parses the items blob. A corrupt blob degrades to an empty list
// rather than failing the read.
func DecodeItems(blob string) []LineItem {
	if blob == "" {
		return []LineItem{}
	}
	var items []LineItem
	if err := json.Unmarshal([]byte(blob), &items); err != nil || items == nil {
		return []LineItem{}
	}
	return items
}

// Decode reads one raw order row. Status defaults to confirmed when absent.
func Decode(rec record.Record) Order {
	status := rec.String(FieldStatus)
	if status == "" {
		status = StatusConfirmed
	}
	return Order{
		ID:          rec.ID(),
		Number:      rec.String(record.FieldName),
		OrderDate:   rec.Time(FieldOrderDate),
		Status:      status,
		TotalAmount: rec.Decimal(FieldTotalAmount),
		Items:       DecodeItems(rec.String(FieldItems)),
	}
}
