package models

import "time"

const ItemStatusDone = "done"

// KitchenItem adalah satu baris pesanan di layar dapur/gudang.
type KitchenItem struct {
	ID          int64        `json:"id"`
	Quantity    int          `json:"quantity"`
	Status      string       `json:"status"`
	Note        string       `json:"note,omitempty"`
	Product     *ProductName `json:"product,omitempty"`
	ProductName string       `json:"product_name,omitempty"`
}

func (i KitchenItem) DisplayName() string {
	if i.Product != nil && i.Product.Name != "" {
		return i.Product.Name
	}
	return i.ProductName
}

func (i KitchenItem) Done() bool {
	return i.Status == ItemStatusDone
}

type KitchenOrder struct {
	ID           int64         `json:"id"`
	CustomerName string        `json:"customer_name"`
	CreatedAt    string        `json:"created_at"`
	TableNumber  string        `json:"table_number,omitempty"`
	Status       string        `json:"status"`
	Items        []KitchenItem `json:"items"`
}

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000000Z",
	"2006-01-02 15:04:05",
}

// CreatedTime parses the backend timestamp; ok=false when the format is unknown.
func (o KitchenOrder) CreatedTime() (time.Time, bool) {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, o.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
