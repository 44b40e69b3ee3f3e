package models

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentQRIS PaymentMethod = "qris"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentQRIS
}

const WalkInCustomer = "Pelanggan Umum"

// CheckoutItem mengikuti field yang diterima backend: id, qty, price.
type CheckoutItem struct {
	ProductID int64 `json:"id"`
	Quantity  int   `json:"qty"`
	UnitPrice int64 `json:"price"`
}

// CheckoutPayload is the body of POST /pos/{slug}/checkout.
type CheckoutPayload struct {
	CustomerName  string         `json:"customer_name"`
	PaymentMethod PaymentMethod  `json:"payment_method"`
	MoneyReceived int64          `json:"money_received"`
	Change        int64          `json:"change"`
	Items         []CheckoutItem `json:"items"`
}

// Total recomputes the sale total from the payload items.
func (p CheckoutPayload) Total() int64 {
	var total int64
	for _, it := range p.Items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}
