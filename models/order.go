package models

import "strings"

// Status order seperti yang dikirim backend
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusReady     = "ready"
	OrderStatusCancelled = "cancelled"
)

type OrderLine struct {
	ID          int64        `json:"id"`
	ProductName string       `json:"product_name,omitempty"`
	Product     *ProductName `json:"product,omitempty"`
	Quantity    int          `json:"quantity"`
	Price       Amount       `json:"price"`
}

type ProductName struct {
	Name string `json:"name"`
}

func (l OrderLine) DisplayName() string {
	if l.Product != nil && l.Product.Name != "" {
		return l.Product.Name
	}
	return l.ProductName
}

// OrderSummary is one row of the order history (reports.latest_orders).
type OrderSummary struct {
	ID            int64       `json:"id"`
	InvoiceNumber string      `json:"invoice_number,omitempty"`
	CustomerName  string      `json:"customer_name,omitempty"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"payment_method,omitempty"`
	TotalPrice    Amount      `json:"total_price"`
	CreatedAt     string      `json:"created_at"`
	Items         []OrderLine `json:"items,omitempty"`
}

func (o OrderSummary) Cancelled() bool {
	return strings.EqualFold(o.Status, OrderStatusCancelled)
}

// PaymentLabel defaults to CASH when the backend leaves the method empty.
func (o OrderSummary) PaymentLabel() string {
	if o.PaymentMethod == "" {
		return "CASH"
	}
	return strings.ToUpper(o.PaymentMethod)
}
