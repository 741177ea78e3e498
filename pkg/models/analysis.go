package models

// Status values for the top-level response envelope.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// AnalysisResponse is the top-level envelope returned for every request.
// Field names and nesting are part of the public API contract.
type AnalysisResponse struct {
	Description    string     `json:"description"`
	Metadata       *Metadata  `json:"metadata,omitempty"`
	ModelInfo      *ModelInfo `json:"model_info,omitempty"`
	ProcessingTime float64    `json:"processing_time"`
	Status         string     `json:"status"`
	ErrorMessage   string     `json:"error_message,omitempty"`
}

// Metadata carries the extracted image properties.
type Metadata struct {
	Dimensions  Dimensions `json:"dimensions"`
	Colors      []Color    `json:"colors"`
	TotalPixels int        `json:"total_pixels"`
}

// Dimensions describes the full-resolution image size.
type Dimensions struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
}

// Color is one dominant color with its share of sampled pixels.
type Color struct {
	Hex        string  `json:"hex"`
	RGB        RGB     `json:"rgb"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// RGB holds 8-bit channel values.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ModelInfo describes which description model produced the result.
type ModelInfo struct {
	ModelUsed      string `json:"model_used"`
	ModelType      string `json:"model_type"`
	LocalMode      bool   `json:"local_mode"`
	FallbackReason string `json:"fallback_reason,omitempty"`
}
