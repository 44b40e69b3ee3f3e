package models

// CartLine is one product in the in-progress sale. Quantity is always >= 1.
type CartLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

type CartTotals struct {
	TotalItems int   `json:"total_items"`
	TotalPrice int64 `json:"total_price"`
}
