package analysis

import (
	"UWellGolang/pkg/posture"
)

const APIVersion = "1.0.0"

const (
	TypeAnalysis = "analysis"
	TypeError    = "error"
)

// AnalyzeRequest carries the optional multipart fields next to the image.
// Unknown language codes are not rejected here, they fall back to English.
type AnalyzeRequest struct {
	Lang      string `json:"lang" validate:"omitempty,max=16"`
	SessionID string `json:"session_id" validate:"omitempty,max=128"`
}

// LiveFrameRequest is one text message on the live socket. Image carries
// base64 frame bytes, optionally wrapped as a browser data URL. Lang and
// SessionID override the connection defaults for this frame only.
type LiveFrameRequest struct {
	Image     string `json:"image"`
	Lang      string `json:"lang"`
	SessionID string `json:"session_id"`
}

type ImageInfo struct {
	Filename    string `json:"filename"`
	SizeBytes   int64  `json:"size_bytes"`
	ContentType string `json:"content_type"`
}

// AnalysisResponse is the success envelope. The verdict fields sit at the
// top level next to the request metadata, so clients read one flat object.
type AnalysisResponse struct {
	Type string `json:"type"`
	posture.Verdict
	Timestamp      string     `json:"timestamp"`
	SessionID      string     `json:"session_id"`
	ProcessingTime float64    `json:"processing_time"`
	APIVersion     string     `json:"api_version"`
	ImageInfo      *ImageInfo `json:"image_info,omitempty"`
}

// ErrorResponse mirrors the success envelope shape so clients can branch on
// type and error_code instead of the HTTP status alone.
type ErrorResponse struct {
	Type            string                   `json:"type"`
	ErrorCode       string                   `json:"error_code"`
	Timestamp       string                   `json:"timestamp"`
	Summary         string                   `json:"summary"`
	Recommendations []posture.Recommendation `json:"recommendations"`
	Notes           string                   `json:"notes"`
	DebugInfo       map[string]interface{}   `json:"debug_info,omitempty"`
}

