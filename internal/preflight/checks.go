package preflight

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

const versionTimeout = 5 * time.Second

// CheckDirectoryAccess requires path to be a directory the current user can
// list, read and write.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fail(name, path+": does not exist")
	case err != nil:
		return fail(name, path+": "+err.Error())
	case !info.IsDir():
		return fail(name, path+": not a directory")
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return fail(name, path+": access denied ("+err.Error()+")")
	}
	return pass(name, path+" (read/write ok)")
}

// CheckFFmpegVersion runs "<binary> -version" and reports the version it
// prints.
func CheckFFmpegVersion(ctx context.Context, name, binary string) Result {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, binary, "-version").Output() //nolint:gosec
	if err != nil {
		return fail(name, "version check failed: "+err.Error())
	}
	if version := ParseVersion(string(out)); version != "" {
		return pass(name, binary+" ("+version+")")
	}
	return fail(name, "unrecognized -version output")
}

// ParseVersion returns the word after "version" on the first banner line,
// e.g. "6.1.1" or a git describe string.
func ParseVersion(output string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	_, rest, found := strings.Cut(" "+line+" ", " version ")
	if !found {
		return ""
	}
	version, _, _ := strings.Cut(strings.TrimSpace(rest), " ")
	return version
}
