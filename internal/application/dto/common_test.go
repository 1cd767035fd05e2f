package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-app/internal/application/dto"
)

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{`{"stock": 42}`, 42},
		{`{"stock": "17"}`, 17},
		{`{"stock": " 8 "}`, 8},
		{`{"stock": "mucho"}`, 0},
		{`{"stock": null}`, 0},
		{`{"stock": -3}`, -3},
		{`{}`, 0},
	}
	for _, tc := range cases {
		var in dto.ProductRequest
		require.NoError(t, json.Unmarshal([]byte(tc.in), &in), tc.in)
		assert.Equal(t, tc.want, int(in.Stock), tc.in)
	}
}

func TestFlexInt_UnmarshalText(t *testing.T) {
	var v dto.FlexInt
	require.NoError(t, v.UnmarshalText([]byte("25")))
	assert.Equal(t, 25, int(v))

	require.NoError(t, v.UnmarshalText([]byte("no-numérico")))
	assert.Equal(t, 0, int(v))
}

func TestCaller_IsAdmin(t *testing.T) {
	assert.True(t, dto.Caller{Role: "admin"}.IsAdmin())
	assert.False(t, dto.Caller{Role: "user"}.IsAdmin())
	assert.False(t, dto.Caller{}.IsAdmin())
}
