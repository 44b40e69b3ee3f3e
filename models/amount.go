package models

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a whole-rupiah money value. The backend sends money either as a
// JSON number or as a decimal string ("150000.00"); both decode here.
type Amount int64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	s := string(bytes.Trim(b, `"`))
	if s == "" {
		*a = 0
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	*a = Amount(d.Round(0).IntPart())
	return nil
}

func (a Amount) Int64() int64 {
	return int64(a)
}
