package models

// ClosingReport adalah agregat shift/hari ini dari backend (read-only).
type ClosingReport struct {
	TotalOrders     int    `json:"total_orders"`
	CancelledOrders int    `json:"cancelled_orders"`
	CashTotal       Amount `json:"cash_total"`
	QrisTotal       Amount `json:"qris_total"`
	GrandTotal      Amount `json:"grand_total"`
	Date            string `json:"date"`
}

type Classification string

const (
	Balanced Classification = "balanced"
	Short    Classification = "short"
	Over     Classification = "over"
)

// Reconciliation is derived at close time and never persisted.
type Reconciliation struct {
	StartCash      int64          `json:"start_cash"`
	CashTotal      int64          `json:"cash_total"`
	CountedCash    int64          `json:"counted_cash"`
	SystemCash     int64          `json:"system_cash"`
	Difference     int64          `json:"difference"`
	Classification Classification `json:"classification"`
}

// ClosingSummary is what the closing screen shows before any cash is counted.
type ClosingSummary struct {
	Report     ClosingReport `json:"report"`
	StartCash  int64         `json:"start_cash"`
	SystemCash int64         `json:"system_cash"`
}
