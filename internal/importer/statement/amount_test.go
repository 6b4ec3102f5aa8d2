package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVNDAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1.234.567", want: "1234567"},
		{in: "-50,000", want: "-50000"},
		{in: "(20.000)", want: "-20000"},
		{in: "1,234,567.00 VND", want: "1234567"},
		{in: "+300.000đ", want: "300000"},
		{in: "1.234.567,5", want: "1234567.5"},
		{in: "12,5", want: "12.5"},
		{in: "1 500 000 ₫", want: "1500000"},
		{in: "1 500 000", want: "1500000"},
		{in: "45000", want: "45000"},
		{in: "", wantErr: true},
		{in: "VND", wantErr: true},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseVNDAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseStatementDate(t *testing.T) {
	want := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in     string
		wantOK bool
	}{
		{in: "05/03/2025", wantOK: true},
		{in: "05-03-2025", wantOK: true},
		{in: "2025-03-05", wantOK: true},
		{in: "05/03/2025 14:22:10", wantOK: true},
		{in: "05/03/2025 14:22", wantOK: true},
		{in: "5/3/2025", wantOK: true},
		{in: "Tổng cộng"},
		{in: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseStatementDate(tt.in)
			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, want, got)
			}
		})
	}
}
