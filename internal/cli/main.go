package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRootCmd()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "subburn",
		Short:         "Generate subtitles for local videos and burn them in",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "YAML config file")
	root.PersistentFlags().String("audio-dir", "audio", "Audio artifacts folder")
	root.PersistentFlags().String("caption-dir", "caption", "Caption (.srt) folder")
	root.PersistentFlags().String("output-dir", "output", "Burned video folder")
	root.PersistentFlags().String("model", "base", "Speech model size (tiny|base|small|medium|large)")
	root.PersistentFlags().Bool("translate", true, "Translate speech to English instead of transcribing verbatim")

	root.AddCommand(newExtractCmd(), newSrtCmd(), newBurnCmd(), newWatchCmd())
	return root
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <video>",
		Short: "Extract the audio track to a 16 kHz mono wav",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0])
		},
	}
}

func newSrtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "srt <video>",
		Short: "Generate the SRT caption file (extracting audio first if needed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSrt(cmd, args[0])
		},
	}
}

func newBurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "burn <video>",
		Short: "Generate the caption and burn it into the video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBurn(cmd, args[0])
		},
	}
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Watch a folder and burn subtitles into every new video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0])
		},
	}
	cmd.Flags().Int("concurrency", 1, "Videos processed in parallel")
	return cmd
}
