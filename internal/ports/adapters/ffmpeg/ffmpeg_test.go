package ffmpeg

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mpetrun5/subburn/internal/executil"
)

type fakeRunner struct {
	cmds []executil.Command
	out  string
	err  error
}

func (f *fakeRunner) Run(_ context.Context, cmd executil.Command) (string, error) {
	f.cmds = append(f.cmds, cmd)
	return f.out, f.err
}

func TestExtractAudioMono16k_Command(t *testing.T) {
	r := &fakeRunner{}
	a := New("/opt/ffmpeg", "", r)
	if err := a.ExtractAudioMono16k(context.Background(), "in.mp4", "audio/in.wav"); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(r.cmds) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(r.cmds))
	}
	cmd := r.cmds[0]
	if cmd.Program != "/opt/ffmpeg" {
		t.Fatalf("program = %q", cmd.Program)
	}
	line := cmd.String()
	for _, want := range []string{"-vn", "-ac 1", "-ar 16000", "-c:a pcm_s16le", "audio/in.wav"} {
		if !strings.Contains(line, want) {
			t.Fatalf("command missing %q: %s", want, line)
		}
	}
}

func TestBurnSubtitles_Command(t *testing.T) {
	r := &fakeRunner{}
	a := New("", "", r)
	if err := a.BurnSubtitles(context.Background(), "in.mp4", `C:\caption\in.srt`, "output/in_burned.mp4"); err != nil {
		t.Fatalf("burn: %v", err)
	}
	line := r.cmds[0].String()
	if !strings.Contains(line, `subtitles=C\:\\caption\\in.srt`) {
		t.Fatalf("subtitle filter not escaped: %s", line)
	}
	if !strings.Contains(line, "-c:a copy") {
		t.Fatalf("audio stream must be copied unchanged: %s", line)
	}
	if !strings.Contains(line, "output/in_burned.mp4") {
		t.Fatalf("missing output path: %s", line)
	}
}

func TestBurnSubtitles_Failure(t *testing.T) {
	cause := errors.New("exit status 1")
	a := New("", "", &fakeRunner{err: cause})
	err := a.BurnSubtitles(context.Background(), "in.mp4", "in.srt", "out.mp4")
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want wrapped cause", err)
	}
}

func TestHasAudioStream(t *testing.T) {
	cases := []struct {
		name string
		out  string
		want bool
	}{
		{name: "audio present", out: "audio\n", want: true},
		{name: "no streams", out: "   \n", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &fakeRunner{out: tc.out}
			a := New("", "/opt/ffprobe", r)
			got, err := a.HasAudioStream(context.Background(), "in.mp4")
			if err != nil {
				t.Fatalf("probe: %v", err)
			}
			if got != tc.want {
				t.Fatalf("HasAudioStream = %v, want %v", got, tc.want)
			}
			if r.cmds[0].Program != "/opt/ffprobe" {
				t.Fatalf("program = %q", r.cmds[0].Program)
			}
			if !strings.Contains(r.cmds[0].String(), "-select_streams a") {
				t.Fatalf("probe must select audio streams: %s", r.cmds[0])
			}
		})
	}
}

func TestEscapeFilterPath(t *testing.T) {
	tests := map[string]string{
		`C:\videos\clip.srt`: `C\:\\videos\\clip.srt`,
		"/tmp/clip.srt":      "/tmp/clip.srt",
		"a:b":                `a\:b`,
	}
	for in, want := range tests {
		if got := escapeFilterPath(in); got != want {
			t.Fatalf("escapeFilterPath(%q) = %q, want %q", in, got, want)
		}
	}
}
