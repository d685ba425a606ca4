package constants

import (
	"testing"
	"time"
)

func TestDefaultValues(t *testing.T) {
	if DefaultPort != "8080" {
		t.Errorf("Expected DefaultPort to be '8080', got '%s'", DefaultPort)
	}

	if DefaultProfile != "gytmdl" {
		t.Errorf("Expected DefaultProfile to be 'gytmdl', got '%s'", DefaultProfile)
	}

	if DefaultWorkDir != "/app" {
		t.Errorf("Expected DefaultWorkDir to be '/app', got '%s'", DefaultWorkDir)
	}

	if DefaultTokenServerURL != "http://127.0.0.1:4416" {
		t.Errorf("Expected DefaultTokenServerURL to be 'http://127.0.0.1:4416', got '%s'", DefaultTokenServerURL)
	}
}

func TestSubcommands(t *testing.T) {
	commands := []string{
		SubcommandDownload,
		SubcommandProfiles,
		ProfileFlag,
	}

	for _, c := range commands {
		if c == "" {
			t.Error("Subcommand constant should not be empty")
		}
	}
}

func TestFailureLogLimits(t *testing.T) {
	if MaxFailureStderrLines != 10 {
		t.Errorf("Expected MaxFailureStderrLines to be 10, got %d", MaxFailureStderrLines)
	}
	if MaxFailureStdoutLines != 5 {
		t.Errorf("Expected MaxFailureStdoutLines to be 5, got %d", MaxFailureStdoutLines)
	}
	if ExitCodeUnknown != -1 {
		t.Errorf("Expected ExitCodeUnknown to be -1, got %d", ExitCodeUnknown)
	}
}

func TestTimeouts(t *testing.T) {
	if DefaultBroadcastInterval != time.Second {
		t.Errorf("Expected DefaultBroadcastInterval to be 1 second, got %v", DefaultBroadcastInterval)
	}

	if DefaultShutdownTimeout != 5*time.Second {
		t.Errorf("Expected DefaultShutdownTimeout to be 5 seconds, got %v", DefaultShutdownTimeout)
	}
}

func TestHTTPStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"OK", StatusOK, 200},
		{"BadRequest", StatusBadRequest, 400},
		{"NotFound", StatusNotFound, 404},
		{"InternalError", StatusInternalError, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("Expected %s to be %d, got %d", tt.name, tt.expected, tt.code)
			}
		})
	}
}
