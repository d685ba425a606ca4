// Package catalog lists the download profiles the external tool knows about.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/ytdl-ng/ytdl-web/internal/constants"
	"github.com/ytdl-ng/ytdl-web/internal/runner"
)

var ErrProfilesUnavailable = errors.New("failed to get profiles")

type Provider interface {
	ListProfiles(ctx context.Context) ([]string, error)
}

// ToolProvider asks the download tool for its profiles on every call.
type ToolProvider struct {
	runner runner.Runner
	tool   runner.Tool
}

func NewToolProvider(r runner.Runner, tool runner.Tool) *ToolProvider {
	return &ToolProvider{runner: r, tool: tool}
}

func (p *ToolProvider) ListProfiles(ctx context.Context) ([]string, error) {
	outcome := p.runner.Run(ctx, p.tool.ProfilesCommand())
	if outcome.Kind != runner.OutcomeSucceeded {
		return nil, fmt.Errorf("%w: %v", ErrProfilesUnavailable, outcome.Err)
	}
	return ParseProfiles(outcome.Stdout), nil
}

// ParseProfiles extracts profile names from the tool's listing. Only lines
// carrying the profile marker count; terminal styling is stripped first.
func ParseProfiles(lines []string) []string {
	profiles := []string{}
	for _, line := range lines {
		if !strings.Contains(line, constants.ProfileMarker) {
			continue
		}
		name := ansi.Strip(line)
		name = strings.ReplaceAll(name, constants.ProfileMarker, "")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		profiles = append(profiles, name)
	}
	return profiles
}
