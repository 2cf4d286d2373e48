package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mpetrun5/subburn/internal/executil"
	"github.com/mpetrun5/subburn/internal/ports"
	"github.com/mpetrun5/subburn/internal/ports/adapters/ffmpeg"
	"github.com/mpetrun5/subburn/internal/ports/adapters/whispercpp"
	"github.com/mpetrun5/subburn/internal/usecase"
)

// Config is the explicit orchestrator configuration: external tool paths,
// artifact folders and the model selection. There are no package-level
// defaults; the CLI builds one of these per invocation.
type Config struct {
	AudioDir   string
	CaptionDir string
	OutputDir  string

	FFmpegPath  string
	FFprobePath string

	WhisperBin string
	ModelDir   string
	ModelSize  ports.ModelSize
	Translate  bool

	Logf func(format string, args ...any)

	// Runner overrides the external-process runner; nil means os/exec.
	Runner executil.Runner
}

func (c Config) Validate() error {
	if c.AudioDir == "" {
		return errors.New("audio dir is empty")
	}
	if c.CaptionDir == "" {
		return errors.New("caption dir is empty")
	}
	if c.OutputDir == "" {
		return errors.New("output dir is empty")
	}
	if c.WhisperBin == "" {
		return errors.New("whisper binary path is required")
	}
	if c.ModelDir == "" {
		return errors.New("whisper model dir is required")
	}
	if _, err := ports.ParseModelSize(string(c.ModelSize)); err != nil {
		return err
	}
	return nil
}

// Pipeline runs the extract → transcribe → caption → burn stages for one
// video at a time. Stages execute sequentially and block until their
// external tool finishes.
type Pipeline struct {
	cfg Config
	uc  usecase.Usecase
}

func New(cfg Config) *Pipeline {
	v := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath, cfg.Runner)
	asr := whispercpp.New(cfg.WhisperBin, cfg.ModelDir, cfg.Translate, cfg.Runner)
	return &Pipeline{
		cfg: cfg,
		uc:  usecase.New(usecase.Deps{Video: v, ASR: asr}),
	}
}

// ExtractAudio runs only the audio-extraction stage.
func (p *Pipeline) ExtractAudio(ctx context.Context, video string) (string, error) {
	in, err := p.input(video)
	if err != nil {
		return "", err
	}
	return p.uc.ExtractAudio(ctx, in)
}

// GenerateSRT runs the pipeline up to the caption artifact.
func (p *Pipeline) GenerateSRT(ctx context.Context, video string) (string, error) {
	in, err := p.input(video)
	if err != nil {
		return "", err
	}
	return p.uc.GenerateSRT(ctx, in)
}

// Burn runs the full pipeline including subtitle burn-in.
func (p *Pipeline) Burn(ctx context.Context, video string) (string, error) {
	in, err := p.input(video)
	if err != nil {
		return "", err
	}
	return p.uc.Burn(ctx, in)
}

func (p *Pipeline) input(video string) (usecase.Input, error) {
	if video == "" {
		return usecase.Input{}, errors.New("input video path is empty")
	}
	if _, err := os.Stat(video); err != nil {
		return usecase.Input{}, fmt.Errorf("stat input: %w", err)
	}
	return usecase.Input{
		Video:      video,
		Model:      p.cfg.ModelSize,
		AudioDir:   p.cfg.AudioDir,
		CaptionDir: p.cfg.CaptionDir,
		OutputDir:  p.cfg.OutputDir,
		Logf:       p.cfg.Logf,
	}, nil
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.Transcriber = (*whispercpp.Adapter)(nil)
