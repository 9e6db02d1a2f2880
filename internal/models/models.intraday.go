// FilePath: internal/models/models.intraday.go
package models

import (
	"bytes"
	"encoding/json"
)

// IntradayEntry is one raw {time-of-day, value} pair as returned by the
// device-data source. Both fields are kept as text and validated during
// the transform step of the ingestion job.
type IntradayEntry struct {
	Time  string `json:"time"`
	Value string `json:"value"`
}

// UnmarshalJSON accepts the value field as either a JSON number or a JSON
// string. The provider emits numbers; synthetic fixtures and older exports
// use strings.
func (e *IntradayEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Time  string          `json:"time"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Time = raw.Time
	e.Value = string(bytes.Trim(raw.Value, `"`))
	return nil
}

// IntradayDay is one day of raw intraday samples: the day's date label
// ("2024-01-15") and the per-minute dataset recorded for it.
type IntradayDay struct {
	Date    string          `json:"dateTime"`
	Dataset []IntradayEntry `json:"dataset"`
}
