package models

type TopProduct struct {
	ProductName string `json:"product_name"`
	TotalQty    int    `json:"total_qty"`
}

// Report is the payload of GET /pos/{slug}/reports.
type Report struct {
	DailyRevenue   Amount         `json:"daily_revenue"`
	TotalOrdersDay int            `json:"total_orders_day"`
	WeeklyRevenue  Amount         `json:"weekly_revenue"`
	TopProducts    []TopProduct   `json:"top_products"`
	ChartLabels    []string       `json:"chart_labels"`
	ChartValues    []Amount       `json:"chart_values"`
	LatestOrders   []OrderSummary `json:"latest_orders"`
	// beberapa versi backend memakai "orders"
	Orders []OrderSummary `json:"orders,omitempty"`
}

// History returns latest_orders, falling back to orders.
func (r Report) History() []OrderSummary {
	if len(r.LatestOrders) > 0 {
		return r.LatestOrders
	}
	return r.Orders
}

// Dashboard is the home screen summary.
type Dashboard struct {
	StoreName     string `json:"store_name"`
	UserName      string `json:"user_name"`
	IsOpen        bool   `json:"is_open"`
	DailyRevenue  int64  `json:"daily_revenue"`
	Transactions  int    `json:"transactions"`
	PendingOrders int    `json:"pending_orders"`
}
