package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecast_DecodeStates(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		unknown bool
		absent  bool
		present bool
	}{
		{name: "missing field", payload: `{}`, unknown: true},
		{name: "null", payload: `{"daily_forecast":null}`, unknown: true},
		{name: "empty", payload: `{"daily_forecast":[]}`, absent: true},
		{name: "days", payload: `{"daily_forecast":[{"date":"2025-06-01"}]}`, present: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Checklist
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &c))
			assert.Equal(t, tt.unknown, c.DailyForecast.IsUnknown())
			assert.Equal(t, tt.absent, c.DailyForecast.IsAbsent())
			assert.Equal(t, tt.present, c.DailyForecast.IsPresent())
		})
	}
}

func TestForecast_EncodeStates(t *testing.T) {
	b, err := json.Marshal(UnknownForecast())
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = json.Marshal(AbsentForecast())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	b, err = json.Marshal(PresentForecast([]DailyForecast{{Date: "2025-06-01", Icon: "01d"}}))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"date":"2025-06-01","temp_min":0,"temp_max":0,"condition":"","icon":"01d"}]`, string(b))
}

func TestForecast_Or(t *testing.T) {
	local := PresentForecast([]DailyForecast{{Date: "local"}})
	server := PresentForecast([]DailyForecast{{Date: "server"}})

	assert.True(t, server.Or(local).Equal(server), "present server value wins")
	assert.True(t, UnknownForecast().Or(local).Equal(local), "unknown falls back to local")
	assert.True(t, AbsentForecast().Or(local).Equal(local), "absent falls back to known local")
	assert.True(t, UnknownForecast().Or(AbsentForecast()).IsAbsent())
	assert.True(t, UnknownForecast().Or(UnknownForecast()).IsUnknown())
}

func TestPresentForecast_EmptyIsAbsent(t *testing.T) {
	assert.True(t, PresentForecast(nil).IsAbsent())
	assert.Nil(t, AbsentForecast().Days())
}
