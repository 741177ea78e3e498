package transport

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"go-image-describer/internal/analyzer"
	"go-image-describer/internal/config"
	"go-image-describer/internal/describe"
	"go-image-describer/internal/observer"
	"go-image-describer/internal/service"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Host:           "127.0.0.1",
		Port:           "8080",
		RequestTimeout: 30 * time.Second,
		MaxUploadSize:  10 * 1024 * 1024,
		UseLocalLLM:    true,
		TopColors:      5,
		OpenAIModel:    "gpt-3.5-turbo",
		RemoteTimeout:  20 * time.Second,
	}
}

func newTestHandler(cfg *config.Config) http.Handler {
	extractor := analyzer.NewMetadataExtractor(cfg.TopColors)
	local := describe.NewHeuristicDescriber()
	svc := service.NewImageDescriptionService(cfg, extractor, local, local, observer.NewEventBus())
	return NewHandler(svc, cfg)
}

func pngUpload(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

// multipartBody builds a form upload with an explicit part content type
func multipartBody(t *testing.T, fieldName, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("Failed to create form part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("Failed to write form part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close form writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestDescribeEndpoint_Success(t *testing.T) {
	handler := newTestHandler(testConfig())
	body, contentType := multipartBody(t, "image", "test.png", "image/png", pngUpload(t, 200, 100))

	req := httptest.NewRequest(http.MethodPost, "/describe", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp["status"] != "success" {
		t.Errorf("Expected success status, got %v", resp["status"])
	}
	if resp["description"] == "" || resp["description"] == nil {
		t.Error("Expected non-empty description")
	}
	if _, ok := resp["processing_time"].(float64); !ok {
		t.Error("Expected numeric processing_time")
	}

	metadata, ok := resp["metadata"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected metadata object in response")
	}
	dimensions, ok := metadata["dimensions"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected dimensions object in metadata")
	}
	if dimensions["width"].(float64) != 200 || dimensions["height"].(float64) != 100 {
		t.Errorf("Expected 200x100, got %vx%v", dimensions["width"], dimensions["height"])
	}
	if dimensions["aspect_ratio"].(float64) != 2.0 {
		t.Errorf("Expected aspect_ratio 2.0, got %v", dimensions["aspect_ratio"])
	}
	if metadata["total_pixels"].(float64) != 20000 {
		t.Errorf("Expected total_pixels 20000, got %v", metadata["total_pixels"])
	}

	colors, ok := metadata["colors"].([]interface{})
	if !ok || len(colors) == 0 {
		t.Fatal("Expected colors array in metadata")
	}
	topColor := colors[0].(map[string]interface{})
	for _, key := range []string{"hex", "rgb", "name", "percentage"} {
		if _, present := topColor[key]; !present {
			t.Errorf("Expected color field %q in response", key)
		}
	}
	rgb := topColor["rgb"].(map[string]interface{})
	for _, key := range []string{"r", "g", "b"} {
		if _, present := rgb[key]; !present {
			t.Errorf("Expected rgb field %q in response", key)
		}
	}

	modelInfo, ok := resp["model_info"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected model_info object in response")
	}
	if modelInfo["model_used"] != "heuristic_visual_analyzer" {
		t.Errorf("Expected heuristic model, got %v", modelInfo["model_used"])
	}
	if modelInfo["model_type"] != "local" {
		t.Errorf("Expected local model type, got %v", modelInfo["model_type"])
	}
	if modelInfo["local_mode"] != true {
		t.Errorf("Expected local_mode true, got %v", modelInfo["local_mode"])
	}
}

func TestDescribeEndpoint_MissingFile(t *testing.T) {
	handler := newTestHandler(testConfig())

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("note", "no image here")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/describe", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp["status"] != "error" {
		t.Errorf("Expected error status, got %v", resp["status"])
	}
	if resp["error_message"] == nil {
		t.Error("Expected error message in response")
	}
}

func TestDescribeEndpoint_UnsupportedContentType(t *testing.T) {
	handler := newTestHandler(testConfig())
	body, contentType := multipartBody(t, "image", "doc.pdf", "application/pdf", []byte("%PDF-1.4"))

	req := httptest.NewRequest(http.MethodPost, "/describe", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDescribeEndpoint_CorruptImage(t *testing.T) {
	handler := newTestHandler(testConfig())

	data := pngUpload(t, 64, 64)
	body, contentType := multipartBody(t, "image", "broken.png", "image/png", data[:len(data)/2])

	req := httptest.NewRequest(http.MethodPost, "/describe", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		useLocal bool
		apiKey   string
		llmMode  string
	}{
		{"Local mode", true, "", "local"},
		{"Remote mode without credentials reports local", false, "", "local"},
		{"Remote mode with credentials", false, "sk-test", "remote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.UseLocalLLM = tt.useLocal
			cfg.OpenAIAPIKey = tt.apiKey
			handler := newTestHandler(cfg)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", rec.Code)
			}

			var resp map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to parse response: %v", err)
			}
			if resp["status"] != "available" {
				t.Errorf("Expected available status, got %v", resp["status"])
			}
			if resp["service"] != "image-description-api" {
				t.Errorf("Expected image-description-api, got %v", resp["service"])
			}
			if resp["llm_mode"] != tt.llmMode {
				t.Errorf("Expected llm_mode %s, got %v", tt.llmMode, resp["llm_mode"])
			}
		})
	}
}
