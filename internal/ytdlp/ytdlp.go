// Package ytdlp drives the yt-dlp downloader for video metadata, provider
// captions and audio.
package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/mgpai22/ytscript/internal/executor"
	"github.com/mgpai22/ytscript/internal/logging"
	"github.com/mgpai22/ytscript/internal/tools"
)

const (
	captionTemplate = "transcript"
	audioFileName   = "audio.wav"
	maxTitleLength  = 100
	unknown         = "unknown"
)

// ErrNoSubtitles is returned when yt-dlp succeeds but writes no caption file.
var ErrNoSubtitles = errors.New("no subtitles written")

var (
	videoIDRegex     = regexp.MustCompile(`[?&]v=([a-zA-Z0-9_-]{11})`)
	unsafeTitleRegex = regexp.MustCompile(`[<>:"/\\|?*]`)
)

// title and id as reported by yt-dlp
type VideoInfo struct {
	Title string
	ID    string
}

// default output base name
func (v VideoInfo) BaseName() string {
	return v.Title + "_" + v.ID
}

type Client struct {
	exec   executor.Executor
	paths  *tools.Paths
	logger *logging.Logger
}

func New(exec executor.Executor, paths *tools.Paths, logger *logging.Logger) *Client {
	if exec == nil {
		exec = executor.New()
	}
	if paths == nil {
		paths = tools.NewPaths(nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{exec: exec, paths: paths, logger: logger}
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	bin, err := c.paths.Path(tools.YTDLP)
	if err != nil {
		return "", err
	}
	c.logger.Debugw("Running yt-dlp", "args", args)
	out, err := c.exec.Execute(ctx, bin, args...)
	if err != nil {
		return out, executor.Wrap(string(tools.YTDLP), err)
	}
	return out, nil
}

// VideoInfo never fails: when yt-dlp cannot answer, the id comes from the
// URL and the title is "unknown".
func (c *Client) VideoInfo(ctx context.Context, url string) VideoInfo {
	out, err := c.run(ctx, "--get-title", "--get-id", url)
	if err != nil {
		c.logger.Debugw("Could not read video info", "error", err)
		out = ""
	}
	return parseVideoInfo(out, url)
}

func parseVideoInfo(out, url string) VideoInfo {
	info := VideoInfo{Title: unknown, ID: unknown}

	out = strings.TrimSpace(out)
	if out == "" {
		info.ID = ExtractVideoID(url)
		return info
	}

	lines := strings.Split(out, "\n")
	info.Title = strings.TrimSpace(lines[0])
	if len(lines) >= 2 {
		info.ID = strings.TrimSpace(lines[1])
	} else {
		info.ID = ExtractVideoID(url)
	}
	info.Title = SanitizeTitle(info.Title)

	return info
}

// ExtractVideoID pulls the 11 character id from a watch URL.
func ExtractVideoID(url string) string {
	if m := videoIDRegex.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return unknown
}

// SanitizeTitle makes title safe as a file name.
func SanitizeTitle(title string) string {
	title = unsafeTitleRegex.ReplaceAllString(title, "_")
	if r := []rune(title); len(r) > maxTitleLength {
		title = string(r[:maxTitleLength])
	}
	return title
}

// FetchCaptions downloads uploaded captions in lang and returns the document.
func (c *Client) FetchCaptions(ctx context.Context, url, lang, dir string) (string, error) {
	args := []string{
		"--write-subs",
		"--sub-format", "vtt",
		"--skip-download",
		"--sub-lang", lang,
		"-o", filepath.Join(dir, captionTemplate),
		url,
	}
	return c.fetchCaptions(ctx, dir, args)
}

// FetchAutoCaptions downloads captions in any language, auto-generated ones
// included.
func (c *Client) FetchAutoCaptions(ctx context.Context, url, dir string) (string, error) {
	args := []string{
		"--write-auto-subs",
		"--sub-format", "vtt",
		"--skip-download",
		"-o", filepath.Join(dir, captionTemplate),
		url,
	}
	return c.fetchCaptions(ctx, dir, args)
}

func (c *Client) fetchCaptions(ctx context.Context, dir string, args []string) (string, error) {
	if _, err := c.run(ctx, args...); err != nil {
		return "", err
	}

	path, ok := firstMatch(dir, "*.vtt")
	if !ok {
		return "", ErrNoSubtitles
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read captions: %w", err)
	}

	c.logger.Debugw("Fetched captions", "path", path, "bytes", len(data))
	return string(data), nil
}

// FetchAudio extracts the audio track as wav into dir and returns its path.
func (c *Client) FetchAudio(ctx context.Context, url, dir string) (string, error) {
	requested := filepath.Join(dir, audioFileName)
	args := []string{
		"-x",
		"--audio-format", "wav",
		"-o", requested,
		url,
	}
	if _, err := c.run(ctx, args...); err != nil {
		return "", err
	}

	// yt-dlp may append its own extension
	if path, ok := firstMatch(dir, "*.wav"); ok {
		return path, nil
	}
	return requested, nil
}

func firstMatch(dir, pattern string) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[0], true
}
