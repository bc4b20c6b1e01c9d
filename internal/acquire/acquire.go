// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire turns uploaded or on-disk contract files into UTF-8 text
// for analysis. Only text formats are read; PDF and DOCX files are
// recognized and accepted for storage but rejected for text extraction.
package acquire

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"os"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/pdiddy/agreemint/pkg/types"
)

// Content types accepted at the upload boundary.
const (
	TypeText = "text/plain"
	TypePDF  = "application/pdf"
	TypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// AllowedUploadTypes lists the declared content types an upload may carry.
var AllowedUploadTypes = []string{TypePDF, TypeDOCX, TypeText}

var (
	// ErrEmpty is returned for a file with no content.
	ErrEmpty = errors.New("contract file is empty")

	// ErrTooLarge is returned for a file above the size limit.
	ErrTooLarge = errors.New("file size too large")

	// ErrUnsupportedType is returned for content that is neither text nor a known document format.
	ErrUnsupportedType = errors.New("file type not supported")

	// ErrUnsupportedDocument is returned for PDF and DOCX content, which is
	// accepted for storage but not converted to text.
	ErrUnsupportedDocument = errors.New("text extraction not available for document format")

	// ErrInvalidEncoding is returned for text that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("text is not valid UTF-8")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is a contract file as received.
type Document struct {
	Filename string
	Data     []byte
}

// CheckDeclaredType verifies that a client-declared content type is one of
// AllowedUploadTypes. Media type parameters such as charset are ignored.
func CheckDeclaredType(contentType string) error {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
	for _, t := range AllowedUploadTypes {
		if mediaType == t {
			return nil
		}
	}
	return fmt.Errorf("%w: %s (allowed: PDF, DOCX, TXT)", ErrUnsupportedType, mediaType)
}

// CheckSize reports ErrTooLarge when size exceeds maxBytes. A non-positive
// maxBytes selects types.DefaultMaxUploadBytes.
func CheckSize(size, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = types.DefaultMaxUploadBytes
	}
	if size > maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrTooLarge, size, maxBytes)
	}
	return nil
}

// Text returns the document content as a string after checking its size and
// sniffing its type. Any text/* content is accepted; a leading UTF-8 byte
// order mark is removed.
func Text(doc Document, maxBytes int64) (string, error) {
	if err := CheckSize(int64(len(doc.Data)), maxBytes); err != nil {
		return "", err
	}
	if len(doc.Data) == 0 {
		return "", ErrEmpty
	}

	kind := mimetype.Detect(doc.Data)
	switch {
	case isText(kind):
		data := bytes.TrimPrefix(doc.Data, utf8BOM)
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%s: %w", doc.Filename, ErrInvalidEncoding)
		}
		return string(data), nil
	case kind.Is(TypePDF), kind.Is(TypeDOCX):
		return "", fmt.Errorf("%s (%s): %w", doc.Filename, kind.Extension(), ErrUnsupportedDocument)
	default:
		return "", fmt.Errorf("%s: %w: %s", doc.Filename, ErrUnsupportedType, kind.String())
	}
}

// ReadFile reads the file at path and returns its text.
func ReadFile(path string, maxBytes int64) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading contract file: %w", err)
	}
	if err := CheckSize(info.Size(), maxBytes); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading contract file: %w", err)
	}
	return Text(Document{Filename: path, Data: data}, maxBytes)
}

// isText reports whether the detected type or any of its parents is text/plain.
func isText(kind *mimetype.MIME) bool {
	for m := kind; m != nil; m = m.Parent() {
		if m.Is(TypeText) {
			return true
		}
	}
	return false
}
