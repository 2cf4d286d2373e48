package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mpetrun5/subburn/internal/executil"
	"github.com/mpetrun5/subburn/internal/ports"
	"github.com/mpetrun5/subburn/internal/types"
)

type Adapter struct {
	bin       string
	modelDir  string
	translate bool
	runner    executil.Runner
}

// New builds a whisper.cpp adapter. modelDir holds the ggml model files,
// one per size (ggml-base.bin and friends). When translate is set the model
// runs in translate-to-English mode instead of verbatim transcription.
func New(binPath, modelDir string, translate bool, runner executil.Runner) *Adapter {
	if runner == nil {
		runner = executil.NewRunner()
	}
	return &Adapter{bin: binPath, modelDir: modelDir, translate: translate, runner: runner}
}

func (a *Adapter) Transcribe(ctx context.Context, wavPath string, model ports.ModelSize) (types.Transcript, error) {
	outPrefix := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))
	args := []string{
		"-m", a.ModelPath(model),
		"-f", wavPath,
		"-oj",
		"-of", outPrefix,
	}
	if a.translate {
		args = append(args, "-tr")
	}
	if _, err := a.runner.Run(ctx, executil.Command{Program: a.bin, Args: args}); err != nil {
		return types.Transcript{}, fmt.Errorf("whisper.cpp failed: %w", err)
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return types.Transcript{}, fmt.Errorf("read whisper output: %w", err)
	}
	return decodeOutput(jb)
}

// whisperOutput is the shape whisper.cpp writes with -oj: one
// "transcription" entry per segment, with offsets in integer milliseconds.
type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func decodeOutput(jb []byte) (types.Transcript, error) {
	var out whisperOutput
	if err := json.Unmarshal(jb, &out); err != nil {
		return types.Transcript{}, fmt.Errorf("decode whisper output: %w", err)
	}
	if out.Transcription == nil {
		return types.Transcript{}, fmt.Errorf("decode whisper output: no transcription key")
	}
	tr := types.Transcript{}
	for _, seg := range out.Transcription {
		tr.Segments = append(tr.Segments, types.Segment{
			Start: float64(seg.Offsets.From) / 1000,
			End:   float64(seg.Offsets.To) / 1000,
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	return tr, nil
}

// ModelPath resolves a model size to its ggml file under the model dir.
func (a *Adapter) ModelPath(model ports.ModelSize) string {
	return filepath.Join(a.modelDir, "ggml-"+string(model)+".bin")
}
