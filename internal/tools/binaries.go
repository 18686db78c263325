package tools

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
)

// external programs the pipeline shells out to
type Tool string

const (
	YTDLP   Tool = "yt-dlp"
	FFmpeg  Tool = "ffmpeg"
	FFprobe Tool = "ffprobe"
	Whisper Tool = "whisper"
)

// environment overrides, checked before PATH
var envOverrides = map[Tool]string{
	YTDLP:   "YTSCRIPT_YTDLP_PATH",
	FFmpeg:  "YTSCRIPT_FFMPEG_PATH",
	FFprobe: "YTSCRIPT_FFPROBE_PATH",
	Whisper: "YTSCRIPT_WHISPER_PATH",
}

var ErrNotFound = errors.New("executable not found")

// Paths resolves tool locations. Explicit entries (from config) win over
// environment overrides, which win over PATH lookup.
type Paths struct {
	mu       sync.Mutex
	explicit map[Tool]string
	resolved map[Tool]string
	lookPath func(string) (string, error)
	getenv   func(string) string
}

func NewPaths(explicit map[Tool]string) *Paths {
	p := &Paths{
		explicit: make(map[Tool]string, len(explicit)),
		resolved: make(map[Tool]string),
		lookPath: exec.LookPath,
		getenv:   os.Getenv,
	}
	for tool, path := range explicit {
		if path != "" {
			p.explicit[tool] = path
		}
	}
	return p
}

// Path returns the executable for tool, caching the answer.
func (p *Paths) Path(tool Tool) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if path, ok := p.resolved[tool]; ok {
		return path, nil
	}

	path, err := p.resolve(tool)
	if err != nil {
		return "", err
	}
	p.resolved[tool] = path
	return path, nil
}

func (p *Paths) resolve(tool Tool) (string, error) {
	if path := p.explicit[tool]; path != "" {
		if !binaryExists(path) {
			return "", fmt.Errorf("%w: configured %s path %s", ErrNotFound, tool, path)
		}
		return path, nil
	}

	if env, ok := envOverrides[tool]; ok {
		if path := p.getenv(env); path != "" {
			if !binaryExists(path) {
				return "", fmt.Errorf("%w: %s=%s", ErrNotFound, env, path)
			}
			return path, nil
		}
	}

	found, err := p.lookPath(string(tool) + executableSuffix())
	if err != nil {
		return "", fmt.Errorf("%w: %s is not on PATH (install it or set %s)", ErrNotFound, tool, envOverrides[tool])
	}
	return found, nil
}

func binaryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func executableSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
