// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/agreemint/internal/acquire"
	"github.com/pdiddy/agreemint/internal/analyze"
	"github.com/pdiddy/agreemint/internal/records"
	"github.com/pdiddy/agreemint/internal/report"
	"github.com/pdiddy/agreemint/pkg/types"
)

const contractText = "This agreement is between Acme Corporation and Beta Services LLC. " +
	"A penalty of 5% per month applies to late payment."

func testService(t *testing.T) (*Service, string) {
	t.Helper()
	tmp := t.TempDir()

	store, err := records.NewStore(types.StoreConfig{DataDir: filepath.Join(tmp, "data")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	uploadDir := filepath.Join(tmp, "uploads")
	svc := New(store, analyze.Default(), types.UploadConfig{Dir: uploadDir, MaxBytes: 1024}, nil)

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc, uploadDir
}

func TestSubmitText(t *testing.T) {
	svc, uploadDir := testService(t)
	ctx := context.Background()

	rec, err := svc.Submit(ctx, Upload{Filename: "nda.txt", Data: []byte(contractText)})
	require.NoError(t, err)

	assert.Equal(t, "id-1", rec.ID)
	assert.Equal(t, "nda.txt", rec.Filename)
	assert.Equal(t, types.RecordCompleted, rec.Status)
	require.NotNil(t, rec.Results)
	assert.Equal(t, analyze.Default().Analyze(contractText), *rec.Results)
	require.NotNil(t, rec.AnalysisTime)
	assert.True(t, rec.AnalysisTime.After(rec.UploadTime))

	stored, err := os.ReadFile(filepath.Join(uploadDir, "id-1_nda.txt"))
	require.NoError(t, err)
	assert.Equal(t, contractText, string(stored))
}

func TestSubmitPDFRecordsFailure(t *testing.T) {
	svc, uploadDir := testService(t)

	rec, err := svc.Submit(context.Background(), Upload{Filename: "msa.pdf", Data: []byte("%PDF-1.4\n%binary\n")})
	require.NoError(t, err)

	assert.Equal(t, types.RecordFailed, rec.Status)
	assert.Nil(t, rec.Results)
	assert.Contains(t, rec.ErrorMessage, acquire.ErrUnsupportedDocument.Error())
	assert.FileExists(t, filepath.Join(uploadDir, "id-1_msa.pdf"))
}

func TestSubmitTooLarge(t *testing.T) {
	svc, uploadDir := testService(t)

	_, err := svc.Submit(context.Background(), Upload{Filename: "big.txt", Data: []byte(strings.Repeat("a", 2048))})
	assert.ErrorIs(t, err, acquire.ErrTooLarge)
	assert.NoDirExists(t, uploadDir)
}

func TestSubmitStripsDirectories(t *testing.T) {
	svc, uploadDir := testService(t)

	rec, err := svc.Submit(context.Background(), Upload{Filename: "../../etc/passwd", Data: []byte(contractText)})
	require.NoError(t, err)
	assert.Equal(t, "passwd", rec.Filename)
	assert.FileExists(t, filepath.Join(uploadDir, "id-1_passwd"))
}

func TestReport(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	ok, err := svc.Submit(ctx, Upload{Filename: "a.txt", Data: []byte(contractText)})
	require.NoError(t, err)
	failed, err := svc.Submit(ctx, Upload{Filename: "b.pdf", Data: []byte("%PDF-1.4\n")})
	require.NoError(t, err)

	text, err := svc.Report(ctx, ok.ID, report.FormatText)
	require.NoError(t, err)
	assert.Contains(t, text, "Identified Parties:\n  1. Acme Corporation\n  2. Beta Services LLC\n")

	text, err = svc.Report(ctx, failed.ID, report.FormatText)
	require.NoError(t, err)
	assert.Equal(t, report.NoResultsMessage, text)

	_, err = svc.Report(ctx, ok.ID, "xml")
	assert.ErrorIs(t, err, report.ErrInvalidFormat)

	_, err = svc.Report(ctx, "missing", report.FormatJSON)
	assert.ErrorIs(t, err, records.ErrNotFound)
}

func TestListAndDelete(t *testing.T) {
	svc, uploadDir := testService(t)
	ctx := context.Background()

	for _, name := range []string{"a.txt", "b.txt"} {
		_, err := svc.Submit(ctx, Upload{Filename: name, Data: []byte(contractText)})
		require.NoError(t, err)
	}

	recs, err := svc.List(ctx, records.ListOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	require.NoError(t, svc.Delete(ctx, "id-1"))
	assert.NoFileExists(t, filepath.Join(uploadDir, "id-1_a.txt"))

	_, err = svc.Get(ctx, "id-1")
	assert.ErrorIs(t, err, records.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "id-1"), records.ErrNotFound)

	recs, err = svc.List(ctx, records.ListOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "id-2", recs[0].ID)
}
