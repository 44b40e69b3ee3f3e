package services

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/yeremiapane/pos-till/models"
	"github.com/yeremiapane/pos-till/utils"
)

type ReportBackend interface {
	Reports(ctx context.Context) (models.Report, error)
	Kitchen(ctx context.Context) ([]models.KitchenOrder, error)
}

var defaultChartLabels = []string{"Mon", "Tue", "Wed"}

type ReportService struct {
	backend  ReportBackend
	sessions SessionSource
	shift    *ShiftGuard
}

func NewReportService(backend ReportBackend, sessions SessionSource, shift *ShiftGuard) *ReportService {
	return &ReportService{backend: backend, sessions: sessions, shift: shift}
}

func (s *ReportService) Reports(ctx context.Context) (models.Report, error) {
	return s.backend.Reports(ctx)
}

// Dashboard builds the home screen. Kitchen and reports are only fetched while
// the store is open; a failed background fetch leaves the figures at zero.
func (s *ReportService) Dashboard(ctx context.Context) (models.Dashboard, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return models.Dashboard{}, err
	}
	st, err := s.shift.StatusOrAssumeOpen(ctx)
	if err != nil {
		return models.Dashboard{}, err
	}

	d := models.Dashboard{
		StoreName: sess.DisplayStoreName(),
		UserName:  sess.UserName,
		IsOpen:    st.IsOpen,
	}
	if !st.IsOpen {
		return d, nil
	}

	if r, err := s.backend.Reports(ctx); err != nil {
		utils.ErrorLogger.Warnf("dashboard reports: %v", err)
	} else {
		d.DailyRevenue = r.DailyRevenue.Int64()
		d.Transactions = r.TotalOrdersDay
	}
	if orders, err := s.backend.Kitchen(ctx); err != nil {
		utils.ErrorLogger.Warnf("dashboard kitchen: %v", err)
	} else {
		d.PendingOrders = len(orders)
	}
	return d, nil
}

// chartSeries pairs labels with values, falling back to Mon/Tue/Wed at zero.
func chartSeries(r models.Report) ([]string, []int64) {
	if len(r.ChartLabels) == 0 {
		return defaultChartLabels, make([]int64, len(defaultChartLabels))
	}
	values := make([]int64, len(r.ChartLabels))
	for i := range r.ChartLabels {
		if i < len(r.ChartValues) {
			values[i] = r.ChartValues[i].Int64()
		}
	}
	return r.ChartLabels, values
}

// RevenueChartPNG renders the weekly revenue bars.
func RevenueChartPNG(r models.Report) ([]byte, error) {
	labels, values := chartSeries(r)

	bars := make([]chart.Value, len(labels))
	var top float64
	for i, l := range labels {
		v := float64(values[i])
		bars[i] = chart.Value{Label: l, Value: v}
		top = math.Max(top, v)
	}
	if top == 0 {
		top = 1
	}

	graph := chart.BarChart{
		Title:    "Pendapatan Mingguan",
		Height:   400,
		Width:    800,
		BarWidth: 50,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return utils.FormatCurrencyIDR(int64(f))
				}
				return ""
			},
		},
		Bars: bars,
	}

	buf := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("render revenue chart: %w", err)
	}
	return buf.Bytes(), nil
}
