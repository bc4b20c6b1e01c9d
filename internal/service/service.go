// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package service runs contract uploads through storage, text acquisition,
// and analysis, tracking each upload as an AnalysisRecord.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/agreemint/internal/acquire"
	"github.com/pdiddy/agreemint/internal/analyze"
	"github.com/pdiddy/agreemint/internal/records"
	"github.com/pdiddy/agreemint/internal/report"
	"github.com/pdiddy/agreemint/pkg/types"
)

const defaultUploadDir = "uploads"

// Upload is a contract file received from a client.
type Upload struct {
	Filename string
	Data     []byte
}

// Service owns one record store and one analyzer. Each submission gets its
// own AnalysisResult; nothing is shared between requests except the store.
type Service struct {
	store     *records.Store
	analyzer  *analyze.Analyzer
	uploadDir string
	maxBytes  int64
	logger    *slog.Logger

	// now is replaced in tests.
	now func() time.Time
	// newID is replaced in tests.
	newID func() string
}

// New returns a Service. A nil logger discards log output.
func New(store *records.Store, analyzer *analyze.Analyzer, cfg types.UploadConfig, logger *slog.Logger) *Service {
	dir := cfg.Dir
	if dir == "" {
		dir = defaultUploadDir
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = types.DefaultMaxUploadBytes
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		store:     store,
		analyzer:  analyzer,
		uploadDir: dir,
		maxBytes:  maxBytes,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// MaxBytes returns the upload size limit.
func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}

// Submit stores the upload, records it as pending, and analyzes it. When
// the file cannot be turned into text the record is marked failed and
// returned without error; only size and storage problems are returned.
func (s *Service) Submit(ctx context.Context, up Upload) (types.AnalysisRecord, error) {
	if err := acquire.CheckSize(int64(len(up.Data)), s.maxBytes); err != nil {
		return types.AnalysisRecord{}, err
	}

	id := s.newID()
	filename := cleanFilename(up.Filename)

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return types.AnalysisRecord{}, fmt.Errorf("creating upload directory: %w", err)
	}
	if err := os.WriteFile(s.storedPath(id, filename), up.Data, 0o644); err != nil {
		return types.AnalysisRecord{}, fmt.Errorf("failed to save file: %w", err)
	}

	if _, err := s.store.Create(ctx, id, filename, s.now()); err != nil {
		return types.AnalysisRecord{}, err
	}
	s.logger.Info("contract uploaded", "id", id, "filename", filename, "bytes", len(up.Data))

	text, err := acquire.Text(acquire.Document{Filename: filename, Data: up.Data}, s.maxBytes)
	if err != nil {
		s.logger.Warn("analysis failed", "id", id, "error", err)
		if ferr := s.store.Fail(ctx, id, err.Error(), s.now()); ferr != nil {
			return types.AnalysisRecord{}, ferr
		}
		return s.store.Get(ctx, id)
	}

	result := s.analyzer.Analyze(text)
	if err := s.store.Complete(ctx, id, result, s.now()); err != nil {
		return types.AnalysisRecord{}, err
	}
	s.logger.Info("analysis completed", "id", id, "risks", len(result.IdentifiedRisks))
	return s.store.Get(ctx, id)
}

// Get returns the record with the given ID.
func (s *Service) Get(ctx context.Context, id string) (types.AnalysisRecord, error) {
	return s.store.Get(ctx, id)
}

// List returns records matching opts.
func (s *Service) List(ctx context.Context, opts records.ListOptions) ([]types.AnalysisRecord, error) {
	return s.store.List(ctx, opts)
}

// Report renders the result of record id. Records without a result
// (pending or failed) render as report.NoResultsMessage.
func (s *Service) Report(ctx context.Context, id string, format report.Format) (string, error) {
	if _, err := report.ParseFormat(string(format)); err != nil {
		return "", err
	}
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return report.Export(rec.Results, format)
}

// Delete removes record id and its stored file.
func (s *Service) Delete(ctx context.Context, id string) error {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	path := s.storedPath(rec.ID, rec.Filename)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing stored file: %w", err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("analysis deleted", "id", id)
	return nil
}

// storedPath is where the upload for id is kept: <upload dir>/<id>_<filename>.
func (s *Service) storedPath(id, filename string) string {
	return filepath.Join(s.uploadDir, id+"_"+filename)
}

// cleanFilename strips directories from a client-supplied name.
func cleanFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return "contract"
	}
	return name
}
