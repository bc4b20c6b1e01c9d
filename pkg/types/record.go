// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RecordStatus tracks where an uploaded contract is in its analysis.
type RecordStatus string

const (
	RecordPending   RecordStatus = "pending"
	RecordCompleted RecordStatus = "completed"
	RecordFailed    RecordStatus = "failed"
)

// Valid reports whether s is one of the known record statuses.
func (s RecordStatus) Valid() bool {
	switch s {
	case RecordPending, RecordCompleted, RecordFailed:
		return true
	}
	return false
}

// AnalysisRecord tracks one uploaded contract and the outcome of its analysis.
type AnalysisRecord struct {
	// ID is a UUID assigned at upload.
	ID string `json:"id" yaml:"id"`

	// Filename is the client-supplied file name.
	Filename string `json:"filename" yaml:"filename"`

	// Status is pending until analysis completes or fails.
	Status RecordStatus `json:"status" yaml:"status"`

	// UploadTime is when the record was created.
	UploadTime time.Time `json:"upload_time" yaml:"upload_time"`

	// AnalysisTime is when the record left the pending state.
	AnalysisTime *time.Time `json:"analysis_time,omitempty" yaml:"analysis_time,omitempty"`

	// Results holds the analysis for completed records.
	Results *AnalysisResult `json:"results,omitempty" yaml:"results,omitempty"`

	// ErrorMessage explains why a failed record failed.
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}
