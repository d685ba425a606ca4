// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort              = "8080"
	DefaultDBPath            = "ytdl-web.db"
	DefaultTool              = "python"
	DefaultToolArgs          = "ytdl.py"
	DefaultWorkDir           = "/app"
	DefaultProfile           = "gytmdl"
	DefaultTokenServerCmd    = "node"
	DefaultTokenServerScript = "bgutil-pot-provider/server/build/main.js"
	DefaultTokenServerURL    = "http://127.0.0.1:4416"
	DefaultProfileCacheTTL   = 5 * time.Minute
	DefaultBroadcastInterval = 1 * time.Second
	DefaultShutdownTimeout   = 5 * time.Second
	DefaultProbeDelay        = 2 * time.Second
	DefaultProbeTimeout      = 1 * time.Second
	DefaultRetryCount        = 3
	DefaultRetryBase         = 1 * time.Second
)

// Download tool subcommands
const (
	SubcommandDownload = "download"
	SubcommandProfiles = "profiles"
	ProfileFlag        = "-p"
)

// Job log limits for failed downloads
const (
	MaxFailureStderrLines = 10
	MaxFailureStdoutLines = 5
)

// ExitCodeUnknown is reported when the tool's exit status carries no code.
const ExitCodeUnknown = -1

// ProfileMarker prefixes every profile line printed by the tool.
const ProfileMarker = "✓"

// Cache keys
const (
	CacheKeyProfiles = "profiles"
)

// HTTP Status Codes
const (
	StatusOK            = 200
	StatusBadRequest    = 400
	StatusNotFound      = 404
	StatusInternalError = 500
)

// Executables reported by the dependency check
var CheckedDependencies = []string{"node", "ffmpeg", "aria2c"}
