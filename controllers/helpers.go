package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/pos-till/services"
	"github.com/yeremiapane/pos-till/utils"
)

// respondServiceError converts a service error into the JSON envelope.
// Server-side failures are attached to the context for LoggerMiddleware;
// errors the cashier can fix are not.
func respondServiceError(c *gin.Context, err error) {
	he := services.ToHTTPError(err)
	if he.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	var data interface{}
	if he.Prompt != "" {
		data = gin.H{"prompt": he.Prompt}
	}
	utils.RespondFailure(c, he.Status, he.Message, data)
}

func respondBindError(c *gin.Context, err error) {
	utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("request tidak valid: %w", err))
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("%s tidak valid", name))
		return 0, false
	}
	return id, true
}

var errFractionalAmount = errors.New("nominal harus bilangan bulat")

// amountInput accepts money typed by the cashier either as a JSON string
// ("Rp 150.000") or as a JSON number (150000). The value is parsed later by
// the services so both forms get the same validation.
type amountInput string

func (a *amountInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*a = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = amountInput(s)
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return err
	}
	if !d.IsInteger() {
		return errFractionalAmount
	}
	*a = amountInput(d.String())
	return nil
}
