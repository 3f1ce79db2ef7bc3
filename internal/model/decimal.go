package model

import (
	"bytes"
	"strconv"
)

// Decimal is a backend monetary/volume value. The backend serializes
// Python Decimals either as JSON numbers or as quoted strings.
type Decimal float64

func (d *Decimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*d = 0
		return nil
	}
	if b[0] == '"' {
		b = bytes.Trim(b, `"`)
		if len(b) == 0 {
			*d = 0
			return nil
		}
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*d = Decimal(f)
	return nil
}

func (d Decimal) Float() float64 { return float64(d) }
