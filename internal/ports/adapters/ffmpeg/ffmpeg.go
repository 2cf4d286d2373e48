package ffmpeg

import (
	"context"
	"fmt"
	"strings"

	"github.com/mpetrun5/subburn/internal/executil"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
	runner  executil.Runner
}

func New(ffmpegPath, ffprobePath string, runner executil.Runner) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	if runner == nil {
		runner = executil.NewRunner()
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath, runner: runner}
}

// HasAudioStream reports whether the container carries at least one audio
// stream.
func (a *Adapter) HasAudioStream(ctx context.Context, inVideo string) (bool, error) {
	out, err := a.runner.Run(ctx, executil.Command{Program: a.ffprobe, Args: []string{
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=codec_type",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inVideo,
	}})
	if err != nil {
		return false, fmt.Errorf("ffprobe audio streams: %w", err)
	}
	return strings.TrimSpace(out) != "", nil
}

// ExtractAudioMono16k decodes the audio track to 16 kHz mono signed 16-bit
// PCM, the input format the speech model expects.
func (a *Adapter) ExtractAudioMono16k(ctx context.Context, inVideo, outWav string) error {
	_, err := a.runner.Run(ctx, executil.Command{Program: a.ffmpeg, Args: []string{
		"-y",
		"-i", inVideo,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		outWav,
	}})
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w", err)
	}
	return nil
}

// BurnSubtitles re-encodes the video with the subtitles filter compositing
// srtPath into the pixels. The audio stream is copied unchanged.
func (a *Adapter) BurnSubtitles(ctx context.Context, inVideo, srtPath, outVideo string) error {
	_, err := a.runner.Run(ctx, executil.Command{Program: a.ffmpeg, Args: []string{
		"-y",
		"-i", inVideo,
		"-vf", "subtitles=" + escapeFilterPath(srtPath),
		"-c:a", "copy",
		outVideo,
	}})
	if err != nil {
		return fmt.Errorf("ffmpeg burn subtitles: %w", err)
	}
	return nil
}

// escapeFilterPath escapes a path for use inside an ffmpeg filter argument,
// where backslash and colon are syntax characters (Windows drive letters
// break the filter otherwise).
func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	return p
}
