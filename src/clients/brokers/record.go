package brokers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// VendorRecord is a holding in the broker's own JSON shape.
type VendorRecord map[string]interface{}

// String returns the first non-empty value among keys, rendered as text.
func (r VendorRecord) String(keys ...string) string {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		var s string
		switch val := v.(type) {
		case string:
			s = val
		case json.Number:
			s = val.String()
		case float64:
			s = decimal.NewFromFloat(val).String()
		case bool:
			if val {
				s = "true"
			}
		default:
			s = fmt.Sprint(val)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// Decimal returns the first parseable number among keys, or zero.
func (r VendorRecord) Decimal(keys ...string) decimal.Decimal {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case json.Number:
			if d, err := decimal.NewFromString(val.String()); err == nil {
				return d
			}
		case float64:
			return decimal.NewFromFloat(val)
		case int:
			return decimal.NewFromInt(int64(val))
		case int64:
			return decimal.NewFromInt(val)
		case string:
			cleaned := strings.ReplaceAll(strings.TrimSpace(val), ",", "")
			if d, err := decimal.NewFromString(cleaned); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}

// Has reports whether any of keys holds a non-empty value.
func (r VendorRecord) Has(keys ...string) bool {
	return r.String(keys...) != ""
}

// Flag reports whether key holds a truthy indicator (Y, yes, true, 1).
func (r VendorRecord) Flag(key string) bool {
	switch strings.ToLower(r.String(key)) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}

// DecodeRecords parses a JSON array of objects keeping numbers exact.
func DecodeRecords(data []byte) ([]VendorRecord, error) {
	var records []VendorRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

// ToRecords converts generic decoded JSON into records, skipping non-objects.
func ToRecords(items []interface{}) []VendorRecord {
	records := make([]VendorRecord, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			records = append(records, VendorRecord(m))
		}
	}
	return records
}
