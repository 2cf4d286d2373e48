package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mpetrun5/subburn/internal/pipeline"
	"github.com/mpetrun5/subburn/internal/ports"
	"github.com/spf13/cobra"
)

// configProbe runs the flag machinery of a real subcommand and captures the
// config it would hand to the pipeline.
func configProbe(t *testing.T, args ...string) (pipeline.Config, error) {
	t.Helper()
	var got pipeline.Config
	var buildErr error
	root := newRootCmd()
	root.AddCommand(&cobra.Command{
		Use:  "probe",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			got, _, buildErr = buildConfig(cmd)
			return nil
		},
	})
	root.SetArgs(append([]string{"probe"}, args...))
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	return got, buildErr
}

func TestBuildConfig_Defaults(t *testing.T) {
	cfg, err := configProbe(t)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if cfg.AudioDir != "audio" || cfg.CaptionDir != "caption" || cfg.OutputDir != "output" {
		t.Fatalf("default folders = %q %q %q", cfg.AudioDir, cfg.CaptionDir, cfg.OutputDir)
	}
	if cfg.ModelSize != ports.ModelBase {
		t.Fatalf("default model = %q", cfg.ModelSize)
	}
	if !cfg.Translate {
		t.Fatalf("translate should default to true")
	}
}

func TestBuildConfig_FlagsOverrideFile(t *testing.T) {
	tmp := t.TempDir()
	cfgFile := filepath.Join(tmp, "subburn.yaml")
	body := "paths:\n  caption: from-file\n  output: file-out\nwhisper:\n  model: small\n"
	if err := os.WriteFile(cfgFile, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := configProbe(t, "--config", cfgFile, "--caption-dir", "from-flag", "--model", "large")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if cfg.CaptionDir != "from-flag" {
		t.Fatalf("flag must win over file: caption dir = %q", cfg.CaptionDir)
	}
	if cfg.OutputDir != "file-out" {
		t.Fatalf("file value lost: output dir = %q", cfg.OutputDir)
	}
	if cfg.ModelSize != ports.ModelLarge {
		t.Fatalf("model = %q, want large", cfg.ModelSize)
	}
}

func TestBuildConfig_BadModel(t *testing.T) {
	_, err := configProbe(t, "--model", "gigantic")
	if err == nil || !strings.Contains(err.Error(), "unknown model size") {
		t.Fatalf("err = %v, want unknown model size", err)
	}
}

func TestBuildConfig_MissingConfigFile(t *testing.T) {
	_, err := configProbe(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatalf("expected error for unreadable config file")
	}
}
