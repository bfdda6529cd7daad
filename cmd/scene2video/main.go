package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ivlev/scene2video/internal/captions"
	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/engine"
	"github.com/ivlev/scene2video/internal/storyboard"
	"github.com/ivlev/scene2video/internal/system"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "scene2video",
	Short: "scene2video - animated scene and caption rendering engine",
	Long:  "Renders storyboard scenes into camera-animated clips with word-synchronized captions and assembles them into a finished video.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging(verbose)
		system.InitResourceLimits()
	},
}

var renderCmd = &cobra.Command{
	Use:   "render <storyboard.yaml>",
	Short: "Render a storyboard into a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		boardPath := args[0]
		board, err := storyboard.Read(boardPath)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			base := strings.TrimSuffix(filepath.Base(boardPath), filepath.Ext(boardPath))
			timestamp := time.Now().Format("2006-01-02_15-04-05")
			output = fmt.Sprintf("%s_%s.mp4", base, timestamp)
		}
		if stats, _ := cmd.Flags().GetBool("stats"); stats {
			cfg.ShowStats = true
		}

		project := engine.NewProject(cfg, board, filepath.Dir(boardPath), log.Logger)
		if err := project.Run(cmd.Context(), output); err != nil {
			return err
		}

		log.Info().Str("output", output).Msg("story rendered")
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init <storyboard.yaml>",
	Short: "Write a starter storyboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		style := captions.DefaultStyle()
		board := &storyboard.Storyboard{
			Version:  "1.0",
			Title:    "My story",
			Width:    1080,
			Height:   1920,
			FPS:      30,
			Captions: &style,
			Scenes: []storyboard.Scene{
				{
					ID:            1,
					Image:         "scene_1.png",
					Duration:      4.0,
					Effect:        "zoom_in",
					NarrationText: "The first scene.",
				},
				{
					ID:        2,
					Image:     "scene_2.png",
					Effect:    "auto",
					WordsFile: "scene_2.words.json",
				},
			},
		}
		if err := storyboard.Write(board, args[0]); err != nil {
			return err
		}
		log.Info().Str("path", args[0]).Msg("storyboard written")
		return nil
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check the local encoding environment",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := system.GetBestH264Encoder()
		fmt.Printf("encoder: %s\n", encoder)
		for _, filter := range []string{"ass", "overlay", "volume"} {
			status := "missing"
			if system.CheckFilterSupport(filter) {
				status = "ok"
			}
			fmt.Printf("filter %s: %s\n", filter, status)
		}
	},
}

func initLogging(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).With().Timestamp().Logger()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	renderCmd.Flags().StringP("output", "o", "", "output video path (default: derived from the storyboard name)")
	renderCmd.Flags().Bool("stats", false, "log a performance report")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(probeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
