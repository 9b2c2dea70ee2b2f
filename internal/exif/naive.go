package exif

import (
	"encoding/json"
	"fmt"
	"time"
)

const naiveLayout = "2006-01-02T15:04:05.999999999"

// NaiveTime is a wall-clock timestamp without a zone, as recorded by the
// camera. The embedded time is always in UTC and carries no offset meaning.
type NaiveTime struct {
	time.Time
}

// NewNaiveTime builds a NaiveTime from calendar fields.
func NewNaiveTime(year int, month time.Month, day, hour, minute, sec int) NaiveTime {
	return NaiveTime{time.Date(year, month, day, hour, minute, sec, 0, time.UTC)}
}

func (t NaiveTime) String() string {
	return t.Time.Format(naiveLayout)
}

func (t NaiveTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *NaiveTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := time.Parse(naiveLayout, raw)
	if err != nil {
		return fmt.Errorf("parse naive time %q: %w", raw, err)
	}
	t.Time = parsed
	return nil
}
