package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/pos-till/models"
	"github.com/yeremiapane/pos-till/utils"
)

type ClosingBackend interface {
	Closing(ctx context.Context) (models.ClosingReport, error)
	CloseStore(ctx context.Context, endCash int64) error
}

// ComputeReconciliation is the pure end-of-shift arithmetic.
//
//	systemCash = startCash + cashTotal
//	difference = countedCash - systemCash
func ComputeReconciliation(startCash, cashTotal, countedCash int64) models.Reconciliation {
	system := startCash + cashTotal
	diff := countedCash - system
	class := models.Balanced
	switch {
	case diff < 0:
		class = models.Short
	case diff > 0:
		class = models.Over
	}
	return models.Reconciliation{
		StartCash:      startCash,
		CashTotal:      cashTotal,
		CountedCash:    countedCash,
		SystemCash:     system,
		Difference:     diff,
		Classification: class,
	}
}

// ClosingPreview is the confirmation step shown before the shift is closed.
type ClosingPreview struct {
	Summary        models.ClosingSummary `json:"summary"`
	Reconciliation models.Reconciliation `json:"reconciliation"`
	ConfirmToken   string                `json:"confirm_token"`
	ExpiresAt      time.Time             `json:"expires_at"`
}

type ClosingReconciler struct {
	backend  ClosingBackend
	shift    *ShiftGuard
	cart     *CartBuilder
	sessions *SessionManager
	confirms *ConfirmationBook
}

func NewClosingReconciler(backend ClosingBackend, shift *ShiftGuard, cart *CartBuilder, sessions *SessionManager, confirms *ConfirmationBook) *ClosingReconciler {
	return &ClosingReconciler{backend: backend, shift: shift, cart: cart, sessions: sessions, confirms: confirms}
}

// FetchClosingReport always asks the backend; totals may still change until
// the shift is closed.
func (r *ClosingReconciler) FetchClosingReport(ctx context.Context) (models.ClosingReport, error) {
	return r.backend.Closing(ctx)
}

func (r *ClosingReconciler) Summary(ctx context.Context) (models.ClosingSummary, error) {
	report, err := r.FetchClosingReport(ctx)
	if err != nil {
		return models.ClosingSummary{}, err
	}
	st, err := r.shift.StatusOrAssumeOpen(ctx)
	if err != nil {
		return models.ClosingSummary{}, err
	}
	return models.ClosingSummary{
		Report:     report,
		StartCash:  st.StartCash,
		SystemCash: st.StartCash + report.CashTotal.Int64(),
	}, nil
}

func parseCountedCash(raw string) (int64, error) {
	v, err := utils.ParseAmount(raw)
	if err != nil {
		return 0, amountError("counted_cash", err)
	}
	return v, nil
}

// Reconcile computes the variance for a counted amount without side effects.
func (r *ClosingReconciler) Reconcile(ctx context.Context, raw string) (models.ClosingSummary, models.Reconciliation, error) {
	counted, err := parseCountedCash(raw)
	if err != nil {
		return models.ClosingSummary{}, models.Reconciliation{}, err
	}
	sum, err := r.Summary(ctx)
	if err != nil {
		return models.ClosingSummary{}, models.Reconciliation{}, err
	}
	return sum, ComputeReconciliation(sum.StartCash, sum.Report.CashTotal.Int64(), counted), nil
}

// Preview reconciles and issues the token CloseShift needs.
func (r *ClosingReconciler) Preview(ctx context.Context, raw string) (ClosingPreview, error) {
	if err := r.shift.RequireOpen(ctx); err != nil {
		return ClosingPreview{}, err
	}
	sum, rec, err := r.Reconcile(ctx, raw)
	if err != nil {
		return ClosingPreview{}, err
	}
	token, exp := r.confirms.Issue(closeShiftAction(rec.CountedCash))
	return ClosingPreview{Summary: sum, Reconciliation: rec, ConfirmToken: token, ExpiresAt: exp}, nil
}

// CloseShift submits the counted cash. After the backend confirmed, the shift
// is closed, the cart cleared and the cashier logged out. On failure the
// shift stays open and nothing local changes. The closing report must load
// first; the confirmation token is only spent once it has.
func (r *ClosingReconciler) CloseShift(ctx context.Context, raw, confirmToken string) (models.Reconciliation, error) {
	counted, err := parseCountedCash(raw)
	if err != nil {
		return models.Reconciliation{}, err
	}
	// tanpa laporan tidak ada selisih yang bisa dicatat, jadi shift tidak ditutup
	sum, err := r.Summary(ctx)
	if err != nil {
		utils.ErrorLogger.Errorf("closing report sebelum tutup shift: %v", err)
		return models.Reconciliation{}, err
	}
	if err := r.confirms.Consume(confirmToken, closeShiftAction(counted)); err != nil {
		return models.Reconciliation{}, err
	}
	rec := ComputeReconciliation(sum.StartCash, sum.Report.CashTotal.Int64(), counted)

	if err := r.backend.CloseStore(ctx, counted); err != nil {
		utils.ErrorLogger.Errorf("Tutup shift ditolak, shift tetap buka: %v", err)
		return models.Reconciliation{}, err
	}

	r.shift.MarkClosed()
	r.cart.Clear()
	if err := r.sessions.Logout(); err != nil {
		utils.ErrorLogger.Errorf("logout setelah tutup shift: %v", err)
	}
	utils.InfoLogger.Infof("Shift ditutup: uang fisik %s, selisih %s (%s)",
		utils.FormatCurrencyIDR(counted), utils.FormatCurrencyIDR(rec.Difference), rec.Classification)
	return rec, nil
}

func classificationLabel(c models.Classification) string {
	switch c {
	case models.Short:
		return "KURANG"
	case models.Over:
		return "LEBIH"
	default:
		return "PAS"
	}
}

// ClosingPDF renders the shift closing report.
func ClosingPDF(storeName string, sum models.ClosingSummary, rec models.Reconciliation) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Laporan Tutup Shift", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, strings.ToUpper(storeName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	date := sum.Report.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	pdf.CellFormat(0, 7, "Laporan Tutup Shift - "+date, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 11)
		pdf.CellFormat(100, 8, label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(80, 8, value, "B", 1, "R", false, 0, "")
	}

	row("Total Pesanan", fmt.Sprintf("%d", sum.Report.TotalOrders), false)
	row("Pesanan Dibatalkan", fmt.Sprintf("%d", sum.Report.CancelledOrders), false)
	row("Penjualan Tunai", utils.FormatCurrencyIDR(sum.Report.CashTotal.Int64()), false)
	row("Penjualan QRIS", utils.FormatCurrencyIDR(sum.Report.QrisTotal.Int64()), false)
	row("Grand Total", utils.FormatCurrencyIDR(sum.Report.GrandTotal.Int64()), true)
	pdf.Ln(4)
	row("Modal Awal", utils.FormatCurrencyIDR(rec.StartCash), false)
	row("Uang di Sistem", utils.FormatCurrencyIDR(rec.SystemCash), false)
	row("Uang Fisik", utils.FormatCurrencyIDR(rec.CountedCash), false)
	row("Selisih ("+classificationLabel(rec.Classification)+")", utils.FormatCurrencyIDR(rec.Difference), true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render closing pdf: %w", err)
	}
	return buf.Bytes(), nil
}
