package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yeremiapane/pos-till/models"
	"github.com/yeremiapane/pos-till/utils"
)

// SessionSource gives the client the store, base URL and token for each call.
type SessionSource interface {
	Current() (models.Session, error)
}

// PosClient talks to the remote POS backend. The backend is the authority for
// orders, stock, shift state and reports; the client only moves JSON.
type PosClient struct {
	sessions   SessionSource
	httpClient *http.Client

	// OnUnauthorized dipanggil setiap kali backend menjawab 401.
	OnUnauthorized func()
}

func NewPosClient(sessions SessionSource, timeout time.Duration) *PosClient {
	return &PosClient{
		sessions:   sessions,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type statusResponse struct {
	IsOpen bool `json:"is_open"`
	Data   struct {
		IsOpen    *bool         `json:"is_open"`
		StartCash models.Amount `json:"start_cash"`
	} `json:"data"`
}

func (c *PosClient) Status(ctx context.Context) (models.ShiftState, error) {
	var out statusResponse
	if err := c.storeCall(ctx, "status", http.MethodGet, "status", nil, &out); err != nil {
		return models.ShiftState{}, err
	}
	open := out.IsOpen
	if out.Data.IsOpen != nil {
		open = open || *out.Data.IsOpen
	}
	return models.ShiftState{IsOpen: open, StartCash: out.Data.StartCash.Int64()}, nil
}

func (c *PosClient) OpenStore(ctx context.Context, startCash int64) error {
	body := map[string]int64{"start_cash": startCash}
	return c.storeCall(ctx, "open-store", http.MethodPost, "open-store", body, nil)
}

func (c *PosClient) Reports(ctx context.Context) (models.Report, error) {
	var out struct {
		Data models.Report `json:"data"`
	}
	if err := c.storeCall(ctx, "reports", http.MethodGet, "reports", nil, &out); err != nil {
		return models.Report{}, err
	}
	return out.Data, nil
}

func (c *PosClient) Closing(ctx context.Context) (models.ClosingReport, error) {
	var out struct {
		Data models.ClosingReport `json:"data"`
	}
	if err := c.storeCall(ctx, "closing", http.MethodGet, "closing", nil, &out); err != nil {
		return models.ClosingReport{}, err
	}
	return out.Data, nil
}

func (c *PosClient) CloseStore(ctx context.Context, endCash int64) error {
	body := map[string]int64{"end_cash": endCash}
	return c.storeCall(ctx, "close-store", http.MethodPost, "close-store", body, nil)
}

func (c *PosClient) Menu(ctx context.Context) ([]models.Product, error) {
	var raw json.RawMessage
	if err := c.storeCall(ctx, "menu", http.MethodGet, "menu", nil, &raw); err != nil {
		return nil, err
	}
	var products []models.Product
	if err := decodeList(raw, &products, "products", "data"); err != nil {
		return nil, fmt.Errorf("menu: %w", err)
	}
	return products, nil
}

func (c *PosClient) Kitchen(ctx context.Context) ([]models.KitchenOrder, error) {
	return c.kitchenList(ctx, "kitchen")
}

// KitchenOrders is the warehouse variant of the kitchen queue.
func (c *PosClient) KitchenOrders(ctx context.Context) ([]models.KitchenOrder, error) {
	return c.kitchenList(ctx, "kitchen-orders")
}

func (c *PosClient) kitchenList(ctx context.Context, path string) ([]models.KitchenOrder, error) {
	var raw json.RawMessage
	if err := c.storeCall(ctx, path, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	var orders []models.KitchenOrder
	if err := decodeList(raw, &orders, "data", "orders"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return orders, nil
}

func (c *PosClient) MarkItemReady(ctx context.Context, itemID int64) error {
	s, err := c.sessions.Current()
	if err != nil {
		return err
	}
	path := "/order-items/" + strconv.FormatInt(itemID, 10) + "/ready"
	return c.do(ctx, s, "order-item ready", http.MethodPost, path, true, struct{}{}, nil)
}

type checkoutResponse struct {
	Order struct {
		InvoiceNumber string `json:"invoice_number"`
	} `json:"order"`
	Data struct {
		InvoiceNumber string `json:"invoice_number"`
	} `json:"data"`
}

// Checkout submits the sale and returns the invoice number given by the backend.
func (c *PosClient) Checkout(ctx context.Context, payload models.CheckoutPayload) (string, error) {
	var out checkoutResponse
	if err := c.storeCall(ctx, "checkout", http.MethodPost, "checkout", payload, &out); err != nil {
		return "", err
	}
	if out.Order.InvoiceNumber != "" {
		return out.Order.InvoiceNumber, nil
	}
	return out.Data.InvoiceNumber, nil
}

// CancelOrder succeeds only when the backend answers status "success".
func (c *PosClient) CancelOrder(ctx context.Context, orderID int64) error {
	var out struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	path := "orders/" + strconv.FormatInt(orderID, 10) + "/cancel"
	if err := c.storeCall(ctx, "cancel order", http.MethodPost, path, struct{}{}, &out); err != nil {
		return err
	}
	if out.Status != "success" {
		return &ServerRejection{StatusCode: http.StatusOK, Message: out.Message}
	}
	return nil
}

func (c *PosClient) Employees(ctx context.Context) ([]models.Employee, error) {
	s, err := c.sessions.Current()
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	path := "/pos/" + url.PathEscape(s.StoreSlug) + "/employees"
	if err := c.do(ctx, s, "employees", http.MethodGet, path, false, nil, &raw); err != nil {
		return nil, err
	}
	var employees []models.Employee
	if err := decodeList(raw, &employees, "data", "employees"); err != nil {
		return nil, fmt.Errorf("employees: %w", err)
	}
	return employees, nil
}

type verifyPINResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// VerifyPIN returns the session token for the employee.
func (c *PosClient) VerifyPIN(ctx context.Context, userID int64, pin string) (string, error) {
	s, err := c.sessions.Current()
	if err != nil {
		return "", err
	}
	body := map[string]interface{}{"user_id": userID, "pin": pin}
	var out verifyPINResponse
	if err := c.do(ctx, s, "verify-pin", http.MethodPost, "/pos/verify-pin", false, body, &out); err != nil {
		return "", err
	}
	if !out.Success || out.Token == "" {
		return "", &ServerRejection{StatusCode: http.StatusOK, Message: out.Message}
	}
	return out.Token, nil
}

// storeCall sends an authenticated request under /pos/{slug}/.
func (c *PosClient) storeCall(ctx context.Context, op, method, path string, body, out interface{}) error {
	s, err := c.sessions.Current()
	if err != nil {
		return err
	}
	full := "/pos/" + url.PathEscape(s.StoreSlug) + "/" + path
	return c.do(ctx, s, op, method, full, true, body, out)
}

func (c *PosClient) do(ctx context.Context, s models.Session, op, method, path string, auth bool, body, out interface{}) error {
	if s.APIURL == "" {
		return ErrSetupIncomplete
	}

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: error marshaling request: %w", op, err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.APIURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: error creating request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth && s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	utils.InfoLogger.Debugf("-> %s %s", method, req.URL.String())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	utils.InfoLogger.Debugf("<- %s %s (%d)", method, req.URL.Path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rejection := &ServerRejection{StatusCode: resp.StatusCode, Message: serverMessage(respBody)}
		if resp.StatusCode == http.StatusUnauthorized && c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		return rejection
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s: error unmarshaling response: %w", op, err)
	}
	return nil
}

// serverMessage pulls "message" or "error" out of an error body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	var s string
	if err := json.Unmarshal(payload.Error, &s); err == nil {
		return s
	}
	return ""
}

var errUnexpectedShape = errors.New("unexpected response shape")

// decodeList accepts either a bare JSON array or an object holding the array
// under one of keys.
func decodeList(raw json.RawMessage, dst interface{}, keys ...string) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '[' {
		return json.Unmarshal(raw, dst)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return err
	}
	for _, k := range keys {
		v, ok := obj[k]
		if !ok {
			continue
		}
		v = bytes.TrimSpace(v)
		if len(v) > 0 && v[0] == '{' {
			// Laravel paginator: {"data": {"data": [...]}}
			return decodeList(v, dst, "data")
		}
		return json.Unmarshal(v, dst)
	}
	return errUnexpectedShape
}
