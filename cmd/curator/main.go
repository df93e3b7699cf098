package main

import (
	"context"
	"fmt"
	"os"

	"jokebox/internal/config"
	"jokebox/internal/curator"
	"jokebox/internal/dataset"
	"jokebox/internal/models"
	"jokebox/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "curator",
		Short: "Joke dataset curation pipeline",
	}

	rootCmd.AddCommand(curateCmd())
	rootCmd.AddCommand(verifyCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.App.LogLevel, nil)
	return cfg, nil
}

func curateCmd() *cobra.Command {
	var langs []string
	var out string

	cmd := &cobra.Command{
		Use:   "curate",
		Short: "Download, filter, and write the dataset files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(langs) > 0 {
				cfg.Curator.Languages = langs
			}
			if out != "" {
				cfg.Curator.OutputDir = out
			}

			c := curator.New(cfg.Curator)
			return c.Run(context.Background())
		},
	}

	cmd.Flags().StringSliceVar(&langs, "lang", nil, "languages to curate (default: all configured)")
	cmd.Flags().StringVar(&out, "out", "", "output directory (default: configured output_dir)")
	return cmd
}

func verifyCmd() *cobra.Command {
	var langs []string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Re-read the produced files and check the line invariant",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(langs) == 0 {
				langs = cfg.Curator.Languages
			}

			source := dataset.FileSource{Dir: cfg.Curator.OutputDir}
			failed := false
			for _, raw := range langs {
				lang := models.Language(raw)
				records, err := source.Load(cmd.Context(), lang)
				if err != nil {
					fmt.Printf("%s: INVALID (%v)\n", lang, err)
					failed = true
					continue
				}
				fmt.Printf("%s: OK (%d records)\n", lang, len(records))
			}
			if failed {
				return fmt.Errorf("verification failed")
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&langs, "lang", nil, "languages to verify (default: all configured)")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print per-language record counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			source := dataset.FileSource{Dir: cfg.Curator.OutputDir}
			for _, raw := range cfg.Curator.Languages {
				lang := models.Language(raw)
				records, err := source.Load(cmd.Context(), lang)
				if err != nil {
					fmt.Printf("%s: -\n", lang)
					continue
				}
				fmt.Printf("%s: %d\n", lang, len(records))
			}
			return nil
		},
	}
}
