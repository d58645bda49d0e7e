// Package version provides build version information and runtime metadata.
package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

// AppName is the binary and notification name.
const AppName = "bikeshare"

var (
	// These are set via ldflags at build time
	Version = ""
	Commit  = ""
	Date    = ""

	once sync.Once

	execCommand = exec.CommandContext
)

const gitTimeout = 2 * time.Second

func ensureInitialized() {
	once.Do(func() {
		if Date == "" {
			Date = time.Now().Format("2006-01-02")
		}
		if Commit == "" {
			Commit = gitCommit()
		}
		if Version == "" {
			Version = gitVersion()
		}
	})
}

// Reset clears the resolved values so they are looked up again.
func Reset() {
	Version, Commit, Date = "", "", ""
	once = sync.Once{}
}

func git(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), gitTimeout)
	defer cancel()

	cmd := execCommand(ctx, "git", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}

func gitCommit() string {
	commit, err := git("describe", "--always", "--dirty")
	if err != nil || commit == "" {
		return "unknown"
	}
	return commit
}

func gitVersion() string {
	v, err := git("describe", "--tags", "--abbrev=0")
	if err != nil || v == "" {
		return "dev"
	}
	return strings.TrimPrefix(v, "v")
}

// GetVersion returns the release version, "dev" outside a tagged checkout.
func GetVersion() string {
	ensureInitialized()
	return Version
}

// GetCommit returns the commit the binary was built from.
func GetCommit() string {
	ensureInitialized()
	return Commit
}

// GetDate returns the build date.
func GetDate() string {
	ensureInitialized()
	return Date
}

func Info() string {
	ensureInitialized()
	return fmt.Sprintf("bikeshare-dashboard-tui %s (commit: %s, built: %s, %s/%s)",
		Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}
