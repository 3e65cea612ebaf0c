package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveFFprobe returns the ffprobe next to ffmpegCommand when one exists
// there, else the bare name for a PATH lookup.
func ResolveFFprobe(ffmpegCommand string) string {
	ffprobeName := withExe("ffprobe")
	ffmpegCommand = strings.TrimSpace(ffmpegCommand)
	if ffmpegCommand == "" {
		return ffprobeName
	}
	if resolved, err := exec.LookPath(ffmpegCommand); err == nil {
		ffmpegCommand = resolved
	}
	if !strings.ContainsRune(ffmpegCommand, filepath.Separator) {
		return ffprobeName
	}
	sibling := filepath.Join(filepath.Dir(ffmpegCommand), ffprobeName)
	if runnable(sibling) {
		return sibling
	}
	return ffprobeName
}

func withExe(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func runnable(path string) bool {
	info, err := os.Stat(path)
	switch {
	case err != nil, info.IsDir():
		return false
	case runtime.GOOS == "windows":
		return true
	default:
		return info.Mode().Perm()&0o111 != 0
	}
}
