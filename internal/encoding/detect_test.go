package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finman/internal/encoding"
)

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "account_id,name,balance,type\n1,Ví MoMo,5000,Ví điện tử\n2,Tiền mặt,100,Tiền mặt\n"

	r, err := encoding.NewUTF8Reader(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, input, readAll(t, r))
}

func TestNewUTF8Reader_Latin1(t *testing.T) {
	// Windows-1252: ç = 0xE7, ã = 0xE3
	latin1Bytes := []byte{
		'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';',
		'V', 'a', 'l', 'o', 'r', '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)
	assert.Equal(t, "Descrição;Valor\n", readAll(t, r))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Ngày,Số tiền\n")...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Ngày,Số tiền\n", readAll(t, r))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// "Hi\n" in UTF-16 LE with BOM.
	input := []byte{0xFF, 0xFE, 'H', 0x00, 'i', 0x00, '\n', 0x00}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Hi\n", readAll(t, r))
}

func TestNewUTF8Reader_ComposesDecomposedText(t *testing.T) {
	// "Số" written as o + circumflex + acute combining marks.
	decomposed := "So\u0302\u0301"

	r, err := encoding.NewUTF8Reader(strings.NewReader(decomposed))
	require.NoError(t, err)
	assert.Equal(t, "Số", readAll(t, r))
}

func TestNewReader(t *testing.T) {
	type testCase struct {
		name    string
		charset string
		input   []byte
		want    string
		wantErr bool
	}

	tests := []testCase{
		{
			name:    "Windows-1258 with combining tone",
			charset: "windows-1258",
			// ô = 0xF4, combining acute = 0xEC
			input: []byte{'S', 0xF4, 0xEC},
			want:  "Số",
		},
		{
			name:    "Auto detection",
			charset: encoding.CharsetAuto,
			input:   []byte("Tiền mặt"),
			want:    "Tiền mặt",
		},
		{
			name:    "Empty name detects",
			charset: "",
			input:   []byte("Chi tiêu"),
			want:    "Chi tiêu",
		},
		{
			name:    "Unknown charset",
			charset: "klingon-1",
			input:   []byte("x"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := encoding.NewReader(bytes.NewReader(tt.input), tt.charset)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, readAll(t, r))
		})
	}
}
