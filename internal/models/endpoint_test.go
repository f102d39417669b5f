package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointFromInt(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		asSource bool
		want     Endpoint
	}{
		{name: "sentinel source is bar", n: SentinelPoint, asSource: true, want: Bar},
		{name: "sentinel destination is off", n: SentinelPoint, asSource: false, want: Off},
		{name: "point source", n: 0, asSource: true, want: Point(0)},
		{name: "point destination", n: 23, asSource: false, want: Point(23)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EndpointFromInt(tt.n, tt.asSource)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}

	assert.False(t, EndpointFromInt(24, true).Valid())
	assert.Equal(t, SentinelPoint, Bar.Index())
	assert.Equal(t, SentinelPoint, Off.Index())
}

func TestEndpoint_Text(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Endpoint
		wantErr error
		invalid bool
	}{
		{name: "bar", text: "bar", want: Bar},
		{name: "off", text: "off", want: Off},
		{name: "first point", text: "0", want: Point(0)},
		{name: "last point", text: "23", want: Point(23)},
		{name: "past the board", text: "24", wantErr: ErrInvalidPoint},
		{name: "negative", text: "-1", wantErr: ErrInvalidPoint},
		{name: "not a number", text: "x", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Endpoint
			err := e.UnmarshalText([]byte(tt.text))
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				return
			case tt.invalid:
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e)

			text, err := e.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, tt.text, string(text))
		})
	}
}

func TestEndpoint_JSONInMove(t *testing.T) {
	move := Move{From: Bar, To: Point(20)}

	data, err := json.Marshal(move)
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"bar","to":"20"}`, string(data))

	var decoded Move
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, move, decoded)

	err = json.Unmarshal([]byte(`{"from":"5","to":"24"}`), &decoded)
	assert.ErrorIs(t, err, ErrInvalidPoint)
}
