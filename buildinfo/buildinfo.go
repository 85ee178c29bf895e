package buildinfo

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Values set with -ldflags at build time.
var (
	GitCommit  = "n/a"
	GitBranch  = "n/a"
	GitState   = "n/a"
	GitSummary = "n/a"
	BuildDate  = "n/a"
	Version    = "n/a"
)

// Summary is the build information of the binary.
type Summary struct {
	GitCommit  string `json:"git_commit"`
	GitBranch  string `json:"git_branch"`
	GitState   string `json:"git_state"`
	GitSummary string `json:"git_summary"`
	BuildDate  string `json:"build_date"`
	Version    string `json:"version"`
}

// GetSummary returns the build information of the binary.
func GetSummary() Summary {
	return Summary{
		GitCommit:  GitCommit,
		GitBranch:  GitBranch,
		GitState:   GitState,
		GitSummary: GitSummary,
		BuildDate:  BuildDate,
		Version:    Version,
	}
}

// Dirty reports whether the binary was built from a tree with uncommitted changes.
func (s Summary) Dirty() bool {
	return s.GitState == "dirty"
}

// String returns a one line description.
func (s Summary) String() string {
	return fmt.Sprintf("%s (commit %s, branch %s, built %s)", s.Version, s.GitCommit, s.GitBranch, s.BuildDate)
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (s Summary) MarshalZerologObject(e *zerolog.Event) {
	e.Str("version", s.Version).
		Str("git_commit", s.GitCommit).
		Str("git_branch", s.GitBranch).
		Str("git_state", s.GitState).
		Str("build_date", s.BuildDate)
}
