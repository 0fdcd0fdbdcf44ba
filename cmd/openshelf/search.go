// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/openshelf/internal/openlibrary"
	"github.com/pdiddy/openshelf/internal/search"
	"github.com/pdiddy/openshelf/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search the Open Library catalog",
	Long: `Search queries the Open Library catalog and renders one page of results.
The --field flag selects which part of the record the text matches: any
(q), title, author, subject, or isbn. Results can be restricted to works
with full text (--ebooks) or to a language (--language), re-sorted in
memory (--sort), and paged through (--page).

A search can be written to a YAML file with --save-query and re-rendered
later with --from-file, without another network call.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	// Replay a stored search without touching the network.
	if fromFile, _ := cmd.Flags().GetString("from-file"); fromFile != "" {
		qf, err := search.ReadQueryFile(fromFile)
		if err != nil {
			return err
		}
		return renderSearch(qf.Output(), jsonOutput)
	}

	text := strings.Join(args, " ")
	if text == "" {
		return fmt.Errorf("query is empty: provide search text")
	}

	cfg := searchConfig(cmd)
	field, _ := cmd.Flags().GetString("field")
	page, _ := cmd.Flags().GetInt("page")

	query := openlibrary.Query{
		Text:      text,
		Field:     field,
		EbookOnly: cfg.EbookOnly,
		Language:  cfg.Language,
		Page:      page,
	}

	client := openlibrary.New(cfg.HTTPConfig)
	out, err := search.Run(context.Background(), client, query, cfg)
	if err != nil {
		return err
	}

	if saveQuery, _ := cmd.Flags().GetString("save-query"); saveQuery != "" {
		if err := search.WriteQueryFile(saveQuery, query, cfg, out); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Saved query to", saveQuery)
	}

	return renderSearch(out, jsonOutput)
}

func renderSearch(out search.Output, jsonOutput bool) error {
	if jsonOutput {
		return search.FormatJSON(out, os.Stdout)
	}
	search.FormatTable(out, os.Stdout)
	return nil
}

// searchConfig merges config-file values with flag overrides. Flags win
// when set.
func searchConfig(cmd *cobra.Command) types.SearchConfig {
	cfg := types.SearchConfig{
		HTTPConfig: httpConfig(),
		Limit:      viper.GetInt("search.limit"),
		Language:   viper.GetString("search.language"),
		EbookOnly:  viper.GetBool("search.ebook_only"),
		Sort:       viper.GetString("search.sort"),
	}

	if cmd.Flags().Changed("limit") {
		cfg.Limit, _ = cmd.Flags().GetInt("limit")
	}
	if cmd.Flags().Changed("language") {
		cfg.Language, _ = cmd.Flags().GetString("language")
	}
	if cmd.Flags().Changed("ebooks") {
		cfg.EbookOnly, _ = cmd.Flags().GetBool("ebooks")
	}
	if cmd.Flags().Changed("sort") {
		cfg.Sort, _ = cmd.Flags().GetString("sort")
	}
	return cfg
}

func init() {
	searchCmd.Flags().String("field", "q", "field to match: "+strings.Join(openlibrary.FieldNames(), ", "))
	searchCmd.Flags().Bool("ebooks", false, "only works with full text available")
	searchCmd.Flags().String("language", "", "restrict to a 3-letter MARC language code (e.g. eng)")
	searchCmd.Flags().Int("page", 1, "result page (1-based)")
	searchCmd.Flags().Int("limit", 20, "results per page (max 100)")
	searchCmd.Flags().String("sort", "", "result order: "+strings.Join(search.SortModes(), ", "))
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save-query", "", "write the query and results to a YAML file")
	searchCmd.Flags().String("from-file", "", "render a previously saved query file instead of searching")

	rootCmd.AddCommand(searchCmd)
}
