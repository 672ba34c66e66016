package schemas

import (
	"fmt"
	"strings"
	"time"

	"famwealth/src/utils"
)

// Date represents a date in YYYY-MM-DD format
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date.
func NewDate(t time.Time) Date {
	return Date{Time: utils.TruncateToDate(t)}
}

// ToTime returns the underlying time.Time value
func (d Date) ToTime() time.Time {
	return d.Time
}

// UnmarshalJSON accepts "YYYY-MM-DD"; null and "" leave the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	if str == "" || str == "null" {
		d.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(utils.ShortDashDateLayout, str)
	if err != nil {
		return fmt.Errorf("invalid date format, expected YYYY-MM-DD: %v", err)
	}

	d.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler interface
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf(`"%s"`, d.Format(utils.ShortDashDateLayout))), nil
}
