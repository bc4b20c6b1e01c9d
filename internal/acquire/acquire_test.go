// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		max     int64
		want    string
		wantErr error
	}{
		{
			name: "plain text",
			data: []byte("This agreement is between Acme Corporation and Beta Services LLC."),
			want: "This agreement is between Acme Corporation and Beta Services LLC.",
		},
		{
			name: "byte order mark stripped",
			data: append([]byte{0xEF, 0xBB, 0xBF}, []byte("Payment of $100.")...),
			want: "Payment of $100.",
		},
		{
			name: "utf-8 text",
			data: []byte("Vertrag zwischen Müller GmbH und Öl AG."),
			want: "Vertrag zwischen Müller GmbH und Öl AG.",
		},
		{
			name:    "empty",
			data:    []byte{},
			wantErr: ErrEmpty,
		},
		{
			name:    "too large",
			data:    []byte(strings.Repeat("a", 64)),
			max:     32,
			wantErr: ErrTooLarge,
		},
		{
			name:    "pdf recognized but not extracted",
			data:    []byte("%PDF-1.7\n1 0 obj\n<< /Type /Catalog >>\nendobj\n"),
			wantErr: ErrUnsupportedDocument,
		},
		{
			name:    "binary rejected",
			data:    []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'},
			wantErr: ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(Document{Filename: "contract", Data: tt.data}, tt.max)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckDeclaredType(t *testing.T) {
	for _, ct := range []string{TypeText, "text/plain; charset=utf-8", TypePDF, TypeDOCX} {
		assert.NoError(t, CheckDeclaredType(ct), ct)
	}
	for _, ct := range []string{"image/png", "application/msword", "", "not a type"} {
		assert.ErrorIs(t, CheckDeclaredType(ct), ErrUnsupportedType, ct)
	}
}

func TestCheckSizeDefaultLimit(t *testing.T) {
	assert.NoError(t, CheckSize(10*1024*1024, 0))
	assert.ErrorIs(t, CheckSize(10*1024*1024+1, 0), ErrTooLarge)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contract.txt")
	require.NoError(t, os.WriteFile(path, []byte("Termination: at will."), 0o644))

	got, err := ReadFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "Termination: at will.", got)

	_, err = ReadFile(filepath.Join(dir, "missing.txt"), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading contract file")

	_, err = ReadFile(path, 4)
	assert.ErrorIs(t, err, ErrTooLarge)
}
