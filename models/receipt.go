package models

// CheckoutReceipt is returned to the UI after the backend confirmed the order.
type CheckoutReceipt struct {
	InvoiceNumber string        `json:"invoice_number"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Total         int64         `json:"total"`
	MoneyReceived int64         `json:"money_received"`
	Change        int64         `json:"change"`
	Lines         []CartLine    `json:"lines"`
}
