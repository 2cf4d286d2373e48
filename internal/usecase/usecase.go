// Package usecase sequences the pipeline stages against the ports
// interfaces. Every stage is keyed by a derived artifact path and skipped
// outright when that artifact already exists.
package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mpetrun5/subburn/internal/artifact"
	"github.com/mpetrun5/subburn/internal/domain/srt"
	"github.com/mpetrun5/subburn/internal/paths"
	"github.com/mpetrun5/subburn/internal/ports"
)

type Deps struct {
	Video ports.VideoTool
	ASR   ports.Transcriber
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	Video      string
	Model      ports.ModelSize
	AudioDir   string
	CaptionDir string
	OutputDir  string
	Logf       func(format string, args ...any)
}

func (in Input) logf() func(string, ...any) {
	if in.Logf == nil {
		return func(string, ...any) {}
	}
	return in.Logf
}

// ExtractAudio ensures the 16 kHz mono wav artifact for in.Video exists and
// returns its path. A source with no audio stream fails with
// ports.ErrNoAudioTrack (wrapped in the stage error) before anything is
// written.
func (u Usecase) ExtractAudio(ctx context.Context, in Input) (string, error) {
	logf := in.logf()
	wav, err := paths.Derive(in.Video, in.AudioDir, ".wav")
	if err != nil {
		return "", err
	}
	computed, err := artifact.New(logf).RunIfAbsent(ctx, wav, "extract-audio", func(ctx context.Context) error {
		ok, err := u.d.Video.HasAudioStream(ctx, in.Video)
		if err != nil {
			return err
		}
		if !ok {
			return ports.ErrNoAudioTrack
		}
		return u.d.Video.ExtractAudioMono16k(ctx, in.Video, wav)
	})
	if err != nil {
		return "", err
	}
	if computed {
		logf("extract-audio: wrote %s", wav)
	}
	return wav, nil
}

// GenerateSRT produces the caption artifact for in.Video and returns its
// path. When the caption already exists the whole upstream chain short
// circuits: no audio probe, no extraction, no transcription.
func (u Usecase) GenerateSRT(ctx context.Context, in Input) (string, error) {
	logf := in.logf()
	srtPath, err := paths.Derive(in.Video, in.CaptionDir, ".srt")
	if err != nil {
		return "", err
	}
	computed, err := artifact.New(logf).RunIfAbsent(ctx, srtPath, "generate-srt", func(ctx context.Context) error {
		wav, err := u.ExtractAudio(ctx, in)
		if err != nil {
			return err
		}
		tr, err := u.d.ASR.Transcribe(ctx, wav, in.Model)
		if err != nil {
			return err
		}
		return os.WriteFile(srtPath, []byte(srt.Encode(tr.Segments)), 0o644)
	})
	if err != nil {
		return "", err
	}
	if computed {
		logf("generate-srt: wrote %s", srtPath)
	}
	return srtPath, nil
}

// Burn composites the caption into the video pixels and returns the burned
// output path. The caption is generated first if absent; earlier-stage
// artifacts are left in place whether or not the encoder succeeds.
func (u Usecase) Burn(ctx context.Context, in Input) (string, error) {
	logf := in.logf()
	outPath, err := paths.Derive(in.Video, in.OutputDir, "_burned.mp4")
	if err != nil {
		return "", err
	}
	srtPath, err := u.GenerateSRT(ctx, in)
	if err != nil {
		return "", err
	}
	computed, err := artifact.New(logf).RunIfAbsent(ctx, outPath, "burn-subtitles", func(ctx context.Context) error {
		// The subtitles filter resolves relative paths against the encoder's
		// working directory, so hand it absolute paths.
		absVideo, err := filepath.Abs(in.Video)
		if err != nil {
			return err
		}
		absSRT, err := filepath.Abs(srtPath)
		if err != nil {
			return err
		}
		absOut, err := filepath.Abs(outPath)
		if err != nil {
			return err
		}
		return u.d.Video.BurnSubtitles(ctx, absVideo, absSRT, absOut)
	})
	if err != nil {
		return "", err
	}
	if computed {
		logf("burn-subtitles: wrote %s", outPath)
	}
	return outPath, nil
}
