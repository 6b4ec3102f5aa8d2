package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1,500,000 ₫", FormatMoney(decimal.NewFromInt(1500000)))
	assert.Equal(t, "-45,000 ₫", FormatMoney(decimal.NewFromInt(-45000)))
	assert.Equal(t, "0 ₫", FormatMoney(decimal.Zero))
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "1500000", want: 1500000},
		{in: "1.500.000", want: 1500000},
		{in: "1,500,000", want: 1500000},
		{in: " 1 500 000 ₫", want: 1500000},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMoney(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got))
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseDate("05/03/2025")
	assert.Error(t, err)

	assert.Equal(t, "", FormatDate(time.Time{}))
}

func TestParseRate(t *testing.T) {
	got, err := ParseRate("7,5%")
	require.NoError(t, err)
	assert.Equal(t, "7.5", got.String())

	got, err = ParseRate("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseRate("x")
	assert.Error(t, err)
}
