package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ytdl-ng/ytdl-web/internal/domain"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{Field: "url", Message: "is required"}
	if err.Error() != "url: is required" {
		t.Errorf("Error() = %q, want %q", err.Error(), "url: is required")
	}
}

func TestToResponse(t *testing.T) {
	errs := []ValidationError{
		{Field: "url", Message: "is required"},
		{Field: "url", Message: "invalid URL format"},
	}
	resp := ToResponse(errs)
	expected := "url: is required; url: invalid URL format"
	if resp != expected {
		t.Errorf("ToResponse() = %q, want %q", resp, expected)
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url      *string
		name     string
		wantErrs int
	}{
		{nil, "nil url", 0},
		{strPtr(""), "empty url", 0},
		{strPtr("https://example.com/a"), "valid url", 0},
		{strPtr("https://music.youtube.com/watch?v=abc"), "valid url with query", 0},
		{strPtr("http://[::1"), "unclosed host", 1},
		{strPtr("https://example.com/%zz"), "bad escape", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateURL(tt.url)
			if len(errs) != tt.wantErrs {
				t.Errorf("validateURL() returned %d errors, want %d", len(errs), tt.wantErrs)
			}
		})
	}
}

func TestDownloadRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		req      DownloadRequest
		wantErrs int
	}{
		{"valid", DownloadRequest{URL: "https://example.com/a"}, 0},
		{"missing url", DownloadRequest{}, 1},
		{"blank url", DownloadRequest{URL: "   "}, 1},
		{"unparseable url", DownloadRequest{URL: "http://[::1"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if errs := tt.req.Validate(); len(errs) != tt.wantErrs {
				t.Errorf("Validate() returned %d errors, want %d", len(errs), tt.wantErrs)
			}
		})
	}
}

func TestDownloadRequest_ProfileName(t *testing.T) {
	var req DownloadRequest
	if req.ProfileName() != "" {
		t.Errorf("ProfileName() = %q, want empty", req.ProfileName())
	}
	req.Profile = strPtr("music-hq")
	if req.ProfileName() != "music-hq" {
		t.Errorf("ProfileName() = %q, want music-hq", req.ProfileName())
	}
}

func TestBatchRequest_Validate(t *testing.T) {
	if errs := (&BatchRequest{}).Validate(); len(errs) != 1 {
		t.Errorf("Validate() returned %d errors, want 1", len(errs))
	}
	if errs := (&BatchRequest{URLs: []string{"https://example.com/a"}}).Validate(); len(errs) != 0 {
		t.Errorf("Validate() returned %d errors, want 0", len(errs))
	}
}

func TestNewJobResponse(t *testing.T) {
	created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("X", 7200))
	job := domain.NewJob("id-1", "https://example.com/a", "default", created)
	job.Logs = nil

	resp := NewJobResponse(job)
	if resp.CreatedAt != "2026-03-04T03:06:07Z" {
		t.Errorf("CreatedAt = %q, want UTC RFC3339", resp.CreatedAt)
	}
	if resp.Status != "pending" {
		t.Errorf("Status = %q, want pending", resp.Status)
	}

	data, _ := json.Marshal(resp)
	var raw map[string]any
	_ = json.Unmarshal(data, &raw)
	if logs, ok := raw["logs"].([]any); !ok || len(logs) != 0 {
		t.Errorf("logs = %v, want []", raw["logs"])
	}
}

func TestEnvelope(t *testing.T) {
	data, _ := json.Marshal(Fail("Job not found"))
	if string(data) != `{"data":null,"error":"Job not found","success":false}` {
		t.Errorf("Fail envelope = %s", data)
	}

	data, _ = json.Marshal(OK("OK"))
	if string(data) != `{"data":"OK","error":null,"success":true}` {
		t.Errorf("OK envelope = %s", data)
	}
}

func strPtr(s string) *string {
	return &s
}
