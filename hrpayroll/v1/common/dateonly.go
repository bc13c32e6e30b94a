package common

import (
	"encoding/json"
	"fmt"
	"time"
)

type DateOnly struct {
	time.Time
}

const DateLayout = "2006-01-02" // yyyy-MM-dd

func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date format: %v", err)
	}
	return DateOnly{Time: t}, nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	// b is a quoted string like `"2025-10-29"`
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	parsed, err := ParseDateOnly(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d DateOnly) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}
