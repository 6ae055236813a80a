package models

import (
	"bytes"
	"encoding/json"
	"slices"
)

// DailyForecast is one day of the cached weather annex.
type DailyForecast struct {
	Date      string  `json:"date"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Condition string  `json:"condition"`
	Icon      string  `json:"icon"`
}

type forecastState uint8

const (
	forecastUnknown forecastState = iota
	forecastAbsent
	forecastPresent
)

// Forecast distinguishes "not loaded" (Unknown) from "known to be empty"
// (Absent) and a loaded forecast (Present). The zero value is Unknown.
//
// On the wire null or a missing field decodes to Unknown, [] to Absent and a
// non-empty array to Present.
type Forecast struct {
	state forecastState
	days  []DailyForecast
}

// UnknownForecast returns the zero Forecast.
func UnknownForecast() Forecast { return Forecast{} }

// AbsentForecast returns a Forecast known to carry no days.
func AbsentForecast() Forecast { return Forecast{state: forecastAbsent} }

// PresentForecast wraps days. An empty slice yields an Absent forecast.
func PresentForecast(days []DailyForecast) Forecast {
	if len(days) == 0 {
		return AbsentForecast()
	}
	return Forecast{state: forecastPresent, days: slices.Clone(days)}
}

func (f Forecast) IsUnknown() bool { return f.state == forecastUnknown }
func (f Forecast) IsAbsent() bool  { return f.state == forecastAbsent }
func (f Forecast) IsPresent() bool { return f.state == forecastPresent }

// Days returns the forecast days; nil unless Present.
func (f Forecast) Days() []DailyForecast { return slices.Clone(f.days) }

// Or returns f when it is Present. Otherwise it returns fallback if fallback
// is known (Present or Absent), and f itself when both are unknown.
func (f Forecast) Or(fallback Forecast) Forecast {
	if f.IsPresent() {
		return f
	}
	if !fallback.IsUnknown() {
		return fallback
	}
	return f
}

// Clone returns a copy that shares no memory with f.
func (f Forecast) Clone() Forecast {
	return Forecast{state: f.state, days: slices.Clone(f.days)}
}

// Equal reports whether both forecasts are in the same state with equal days.
func (f Forecast) Equal(o Forecast) bool {
	return f.state == o.state && slices.Equal(f.days, o.days)
}

func (f Forecast) MarshalJSON() ([]byte, error) {
	switch f.state {
	case forecastPresent:
		return json.Marshal(f.days)
	case forecastAbsent:
		return []byte("[]"), nil
	default:
		return []byte("null"), nil
	}
}

func (f *Forecast) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Forecast{}
		return nil
	}
	var days []DailyForecast
	if err := json.Unmarshal(data, &days); err != nil {
		return err
	}
	*f = PresentForecast(days)
	return nil
}
