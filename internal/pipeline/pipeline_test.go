package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mpetrun5/subburn/internal/ports"
)

func validConfig(tmp string) Config {
	return Config{
		AudioDir:   filepath.Join(tmp, "audio"),
		CaptionDir: filepath.Join(tmp, "caption"),
		OutputDir:  filepath.Join(tmp, "output"),
		WhisperBin: "whisper-cli",
		ModelDir:   "models",
		ModelSize:  ports.ModelBase,
		Translate:  true,
	}
}

func TestConfigValidate(t *testing.T) {
	tmp := t.TempDir()

	if err := validConfig(tmp).Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{name: "missing audio dir", mutate: func(c *Config) { c.AudioDir = "" }, wantSub: "audio dir"},
		{name: "missing caption dir", mutate: func(c *Config) { c.CaptionDir = "" }, wantSub: "caption dir"},
		{name: "missing output dir", mutate: func(c *Config) { c.OutputDir = "" }, wantSub: "output dir"},
		{name: "missing whisper bin", mutate: func(c *Config) { c.WhisperBin = "" }, wantSub: "whisper binary"},
		{name: "missing model dir", mutate: func(c *Config) { c.ModelDir = "" }, wantSub: "model dir"},
		{name: "bad model size", mutate: func(c *Config) { c.ModelSize = "gigantic" }, wantSub: "unknown model size"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(tmp)
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("err = %v, want containing %q", err, tc.wantSub)
			}
		})
	}
}

func TestPipeline_RejectsMissingInput(t *testing.T) {
	tmp := t.TempDir()
	p := New(validConfig(tmp))
	if _, err := p.GenerateSRT(context.Background(), filepath.Join(tmp, "nope.mp4")); err == nil {
		t.Fatalf("expected stat error for missing input")
	}
	if _, err := p.ExtractAudio(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty input path")
	}
}

func TestPipeline_ShortCircuitNeedsNoTools(t *testing.T) {
	// With the caption already on disk, GenerateSRT must finish without
	// touching ffmpeg or whisper at all, so unresolvable tool paths are fine.
	tmp := t.TempDir()
	cfg := validConfig(tmp)
	cfg.FFmpegPath = filepath.Join(tmp, "missing-ffmpeg")
	cfg.WhisperBin = filepath.Join(tmp, "missing-whisper")

	video := filepath.Join(tmp, "clip.mp4")
	if err := os.WriteFile(video, []byte("v"), 0o644); err != nil {
		t.Fatalf("seed video: %v", err)
	}
	if err := os.MkdirAll(cfg.CaptionDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	caption := filepath.Join(cfg.CaptionDir, "clip.srt")
	if err := os.WriteFile(caption, []byte("1\n"), 0o644); err != nil {
		t.Fatalf("seed caption: %v", err)
	}

	got, err := New(cfg).GenerateSRT(context.Background(), video)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != caption {
		t.Fatalf("path = %q, want %q", got, caption)
	}
}
