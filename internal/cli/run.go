package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mpetrun5/subburn/internal/config"
	"github.com/mpetrun5/subburn/internal/pipeline"
	"github.com/mpetrun5/subburn/internal/ports"
	"github.com/mpetrun5/subburn/internal/watcher"
	"github.com/spf13/cobra"
)

func runExtract(cmd *cobra.Command, video string) error {
	p, err := buildPipeline(cmd)
	if err != nil {
		return err
	}
	wav, err := p.ExtractAudio(cmd.Context(), video)
	if err != nil {
		return describeNoAudio(video, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "audio: %s\n", wav)
	return nil
}

func runSrt(cmd *cobra.Command, video string) error {
	p, err := buildPipeline(cmd)
	if err != nil {
		return err
	}
	srtPath, err := p.GenerateSRT(cmd.Context(), video)
	if err != nil {
		return describeNoAudio(video, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "caption: %s\n", srtPath)
	return nil
}

func runBurn(cmd *cobra.Command, video string) error {
	p, err := buildPipeline(cmd)
	if err != nil {
		return err
	}
	outPath, err := p.Burn(cmd.Context(), video)
	if err != nil {
		return describeNoAudio(video, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "burned: %s\n", outPath)
	return nil
}

func runWatch(cmd *cobra.Command, dir string) error {
	cfg, fileCfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	p := pipeline.New(cfg)
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if fileCfg != nil && !cmd.Flags().Changed("concurrency") && fileCfg.Watch.MaxConcurrent > 0 {
		concurrency = fileCfg.Watch.MaxConcurrent
	}

	w, err := watcher.New(dir, concurrency, func(ctx context.Context, video string) error {
		_, err := p.Burn(ctx, video)
		if errors.Is(err, ports.ErrNoAudioTrack) {
			// Silent videos are skipped, not treated as pipeline failures.
			cfg.Logf("%s: no audio track, skipping", video)
			return nil
		}
		return err
	}, cfg.Logf)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = w.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func buildPipeline(cmd *cobra.Command) (*pipeline.Pipeline, error) {
	cfg, _, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	return pipeline.New(cfg), nil
}

// buildConfig assembles the pipeline configuration with the documented
// precedence: flags over config file over environment over built-in
// defaults. The loaded file config is returned as well for command-specific
// settings.
func buildConfig(cmd *cobra.Command) (pipeline.Config, *config.Config, error) {
	cfg := pipeline.Config{
		AudioDir:    "audio",
		CaptionDir:  "caption",
		OutputDir:   "output",
		FFmpegPath:  getenvDefault("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: getenvDefault("FFPROBE_PATH", "ffprobe"),
		WhisperBin:  getenvDefault("WHISPER_BIN", "whisper-cli"),
		ModelDir:    getenvDefault("WHISPER_MODEL_DIR", "models"),
		ModelSize:   ports.ModelBase,
		Translate:   true,
		Logf:        log.New(cmd.ErrOrStderr(), "subburn: ", log.LstdFlags).Printf,
	}

	var fileCfg *config.Config
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if fileCfg, err = config.Load(path); err != nil {
			return pipeline.Config{}, nil, err
		}
		applyFileConfig(&cfg, fileCfg)
	}

	flags := cmd.Flags()
	if flags.Changed("audio-dir") {
		cfg.AudioDir, _ = flags.GetString("audio-dir")
	}
	if flags.Changed("caption-dir") {
		cfg.CaptionDir, _ = flags.GetString("caption-dir")
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("model") {
		raw, _ := flags.GetString("model")
		model, err := ports.ParseModelSize(raw)
		if err != nil {
			return pipeline.Config{}, nil, err
		}
		cfg.ModelSize = model
	}
	if flags.Changed("translate") {
		cfg.Translate, _ = flags.GetBool("translate")
	}

	if err := cfg.Validate(); err != nil {
		return pipeline.Config{}, nil, fmt.Errorf("config: %w", err)
	}
	return cfg, fileCfg, nil
}

func applyFileConfig(cfg *pipeline.Config, file *config.Config) {
	if file.Tools.FFmpeg != "" {
		cfg.FFmpegPath = file.Tools.FFmpeg
	}
	if file.Tools.FFprobe != "" {
		cfg.FFprobePath = file.Tools.FFprobe
	}
	if file.Paths.Audio != "" {
		cfg.AudioDir = file.Paths.Audio
	}
	if file.Paths.Caption != "" {
		cfg.CaptionDir = file.Paths.Caption
	}
	if file.Paths.Output != "" {
		cfg.OutputDir = file.Paths.Output
	}
	if file.Whisper.Binary != "" {
		cfg.WhisperBin = file.Whisper.Binary
	}
	if file.Whisper.ModelDir != "" {
		cfg.ModelDir = file.Whisper.ModelDir
	}
	if file.Whisper.Model != "" {
		cfg.ModelSize = ports.ModelSize(file.Whisper.Model)
	}
	if file.Whisper.Translate != nil {
		cfg.Translate = *file.Whisper.Translate
	}
}

// describeNoAudio turns the silent-video case into a plain operator-facing
// message instead of a wrapped stage error.
func describeNoAudio(video string, err error) error {
	if errors.Is(err, ports.ErrNoAudioTrack) {
		return fmt.Errorf("%s: no audio track found, nothing to transcribe", video)
	}
	return err
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
