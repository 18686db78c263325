// Package acquire obtains a transcript for a video: provider captions when
// they exist, local transcription of the audio otherwise.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mgpai22/ytscript/internal/executor"
	"github.com/mgpai22/ytscript/internal/logging"
	"github.com/mgpai22/ytscript/internal/subtitle"
	"github.com/mgpai22/ytscript/internal/transcribe"
)

const (
	DefaultLanguage  = "en"
	DefaultMinLength = 10
)

var (
	// ErrNoCaptionsAvailable marks a caption attempt that produced no usable
	// document. Handled inside Run.
	ErrNoCaptionsAvailable = errors.New("no captions available")
	// ErrEmptyAfterParse marks a caption document with no cues. Handled
	// inside Run.
	ErrEmptyAfterParse = errors.New("caption document has no segments")
	// ErrNoSpeech is returned when transcription yields nothing to write.
	ErrNoSpeech = errors.New("transcription produced no segments")
)

var timestampRegex = regexp.MustCompile(`\d{2}:\d{2}:\d{2}`)

// downloader side of caption acquisition
type CaptionFetcher interface {
	FetchCaptions(ctx context.Context, url, lang, dir string) (string, error)
	FetchAutoCaptions(ctx context.Context, url, dir string) (string, error)
}

type AudioFetcher interface {
	FetchAudio(ctx context.Context, url, dir string) (string, error)
}

// where the segments came from
type Source string

const (
	SourceCaptions      Source = "captions"
	SourceAutoCaptions  Source = "auto-captions"
	SourceTranscription Source = "transcription"
)

type Config struct {
	Language  string // restricted caption language
	MinLength int    // documents must be longer than this after trimming
	TempDir   string // parent of the per-run scratch directory, "" for os.TempDir
}

type Result struct {
	Segments []subtitle.Segment
	Source   Source
	// states visited, Done last
	Trace []State
}

type Orchestrator struct {
	captions CaptionFetcher
	audio    AudioFetcher
	engine   transcribe.Transcriber
	cfg      Config
	logger   *logging.Logger
}

func New(
	captions CaptionFetcher,
	audio AudioFetcher,
	engine transcribe.Transcriber,
	cfg Config,
	logger *logging.Logger,
) *Orchestrator {
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultMinLength
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		captions: captions,
		audio:    audio,
		engine:   engine,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run walks the fallback chain for url. Everything fetched lives in one
// scratch directory that is removed before Run returns.
func (o *Orchestrator) Run(ctx context.Context, url string) (*Result, error) {
	dir, err := os.MkdirTemp(o.cfg.TempDir, "ytscript-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(dir)

	result := &Result{}
	state := StateTryRestrictedCaptions
	for state != StateDone {
		result.Trace = append(result.Trace, state)

		segments, err := o.attempt(ctx, state, url, dir)
		outcome, err := classify(err, segments)
		if err != nil {
			return nil, err
		}

		o.logger.Debugw("Acquisition step", "state", state.String(), "outcome", outcome.String())

		if outcome == OutcomeSegments {
			result.Segments = segments
			result.Source = sourceOf(state)
		}
		state = Next(state, outcome)
	}
	result.Trace = append(result.Trace, StateDone)

	return result, nil
}

func (o *Orchestrator) attempt(
	ctx context.Context,
	state State,
	url, dir string,
) ([]subtitle.Segment, error) {
	switch state {
	case StateTryRestrictedCaptions:
		o.logger.Infow("Checking for captions", "language", o.cfg.Language)
		return o.tryCaptions(ctx, filepath.Join(dir, "restricted"), func(sub string) (string, error) {
			return o.captions.FetchCaptions(ctx, url, o.cfg.Language, sub)
		})
	case StateTryUnrestrictedCaptions:
		o.logger.Infow("Checking for auto-generated captions")
		return o.tryCaptions(ctx, filepath.Join(dir, "unrestricted"), func(sub string) (string, error) {
			return o.captions.FetchAutoCaptions(ctx, url, sub)
		})
	case StateTranscribe:
		o.logger.Infow("No usable captions, transcribing audio")
		return o.transcribe(ctx, url, dir)
	default:
		return nil, fmt.Errorf("no attempt for state %s", state)
	}
}

// each attempt writes into its own directory so a rejected document from one
// attempt is never picked up by the next
func (o *Orchestrator) tryCaptions(
	ctx context.Context,
	dir string,
	fetch func(dir string) (string, error),
) ([]subtitle.Segment, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	doc, err := fetch(dir)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		o.logger.Debugw("Caption fetch failed", "exit_code", executor.ExitCode(err), "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNoCaptionsAvailable, err)
	}

	if !ValidDocument(doc, o.cfg.MinLength) {
		o.logger.Debugw("Caption document rejected", "bytes", len(doc))
		return nil, ErrNoCaptionsAvailable
	}

	segments, err := subtitle.Parse(doc, subtitle.FormatVTT)
	if err != nil {
		o.logger.Warnw("Caption document did not parse", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNoCaptionsAvailable, err)
	}

	segments = subtitle.Normalize(segments)
	if len(segments) == 0 {
		return nil, ErrEmptyAfterParse
	}

	o.logger.Infow("Found captions", "segments", len(segments))
	return segments, nil
}

func (o *Orchestrator) transcribe(ctx context.Context, url, dir string) ([]subtitle.Segment, error) {
	audioPath, err := o.audio.FetchAudio(ctx, url, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to download audio: %w", executor.Wrap("yt-dlp", err))
	}

	result, err := o.engine.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", executor.Wrap("transcription", err))
	}

	// engine seconds go through the VTT timecode like parsed captions do
	segments := subtitle.Normalize(result.Segments)
	if len(segments) == 0 {
		return nil, ErrNoSpeech
	}

	o.logger.Infow("Transcribed audio", "segments", len(segments))
	return segments, nil
}

// ValidDocument reports whether doc is worth parsing: longer than minLength
// once trimmed and carrying at least one HH:MM:SS timestamp.
func ValidDocument(doc string, minLength int) bool {
	doc = strings.TrimSpace(doc)
	return len(doc) > minLength && timestampRegex.MatchString(doc)
}

// recoverable errors become outcomes; anything else is returned as fatal
func classify(err error, segments []subtitle.Segment) (Outcome, error) {
	switch {
	case err == nil && len(segments) > 0:
		return OutcomeSegments, nil
	case err == nil, errors.Is(err, ErrEmptyAfterParse):
		return OutcomeEmptyAfterParse, nil
	case errors.Is(err, ErrNoCaptionsAvailable):
		return OutcomeNoCaptions, nil
	default:
		return 0, err
	}
}

func sourceOf(s State) Source {
	switch s {
	case StateTryRestrictedCaptions:
		return SourceCaptions
	case StateTryUnrestrictedCaptions:
		return SourceAutoCaptions
	default:
		return SourceTranscription
	}
}
