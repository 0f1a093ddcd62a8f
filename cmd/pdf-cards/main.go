// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-cards CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-cards/internal/logging"
	"github.com/pdiddy/pdf-cards/internal/pipeline"
	"github.com/pdiddy/pdf-cards/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "PDF_CARDS"

// newRootCmd builds the command tree around v, which merges flags, the
// config file, and PDF_CARDS_* environment variables.
func newRootCmd(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pdf-cards",
		Short: "Turn a PDF or markdown file into flashcard pages",
		Long: `pdf-cards splits a document into cards and writes them as a PDF with a
title page followed by a content page for every card.

A line matching --title_pattern starts a new card. Lines matching
--header_pattern while a card is open are appended to its title. Every
line of the card, title included, goes on the content page. Text before
the first title is dropped.

With --markdown the text is read from a file and no PDF is converted.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, v)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf-cards.yaml or ~/.config/pdf-cards/config.yaml)")
	rootCmd.PersistentFlags().String("log_level", "info", "log level: debug, info, warn, or error")

	formats := make([]string, len(types.PageFormats))
	for i, f := range types.PageFormats {
		formats[i] = string(f)
	}
	formatHelp := strings.Join(formats, ", ")

	f := rootCmd.Flags()
	f.String("input", "", "path to the source PDF (required unless --markdown is given)")
	f.String("markdown", "", "pre-extracted markdown file; skips PDF conversion")
	f.String("output", "", "path of the generated cards PDF")
	f.String("title_pattern", types.DefaultTitlePattern, "regular expression for lines that start a card")
	f.String("header_pattern", types.DefaultHeaderPattern, "regular expression for lines appended to the card title")
	f.String("title_page_format", string(types.DefaultTitlePageFormat), "page format of title pages: "+formatHelp)
	f.String("content_page_format", string(types.DefaultContentPageFormat), "page format of content pages: "+formatHelp)
	f.String("page_range", "", "PDF pages to convert, e.g. '0,5-10,20' (zero-based)")
	f.String("backend", string(types.DefaultBackend), "PDF conversion backend: text or marker")
	f.String("marker_image", types.DefaultMarkerImage, "container image used by the marker backend")
	f.String("export", "", "also write the cards to this YAML (or .json) file")
	f.String("deck_db", "", "record the deck in this SQLite database")

	_ = v.BindPFlags(f)
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log_level"))

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newDeckCmd(v))
	return rootCmd
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pdf-cards")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pdf-cards"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	return nil
}

// optionsFromConfig resolves every run setting from v.
func optionsFromConfig(v *viper.Viper) types.Options {
	return types.Options{
		ExtractionConfig: types.ExtractionConfig{
			Backend:     types.ExtractionBackend(v.GetString("backend")),
			MarkerImage: v.GetString("marker_image"),
			PageRange:   v.GetString("page_range"),
		},
		Input:             v.GetString("input"),
		Markdown:          v.GetString("markdown"),
		Output:            v.GetString("output"),
		TitlePattern:      v.GetString("title_pattern"),
		HeaderPattern:     v.GetString("header_pattern"),
		TitlePageFormat:   types.PageFormat(v.GetString("title_page_format")),
		ContentPageFormat: types.PageFormat(v.GetString("content_page_format")),
		ExportPath:        v.GetString("export"),
		DeckDB:            v.GetString("deck_db"),
	}
}

func runGenerate(cmd *cobra.Command, v *viper.Viper) error {
	log, err := logging.New(cmd.ErrOrStderr(), v.GetString("log_level"))
	if err != nil {
		return err
	}

	opts := optionsFromConfig(v)
	res, err := pipeline.Run(cmd.Context(), opts, pipeline.Deps{}, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.Cards == 0 {
		fmt.Fprintln(out, "No cards found; nothing written.")
		return nil
	}
	fmt.Fprintf(out, "Wrote %d cards (%d pages) to %s\n", res.Cards, res.Pages, opts.Output)
	if res.DeckID != "" {
		fmt.Fprintf(out, "Deck ID: %s\n", res.DeckID)
	}
	return nil
}

func main() {
	if err := newRootCmd(viper.GetViper()).Execute(); err != nil {
		os.Exit(1)
	}
}
