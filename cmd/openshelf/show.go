// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/openshelf/internal/openlibrary"
	"github.com/pdiddy/openshelf/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show <work-key>",
	Short: "Show the details of one work",
	Long: `Show fetches one work record from Open Library and renders its details:
description, authors, subjects, first publication date, ratings, and
cover URL. The work key is the stable identifier from search results,
either "/works/OL45883W" or the bare "OL45883W".`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := httpConfig()
	client := openlibrary.New(cfg)

	detail, err := client.FetchWork(context.Background(), args[0], cfg)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(detail)
	}

	printDetail(detail)
	return nil
}

const maxShownSubjects = 10

func printDetail(d types.WorkDetail) {
	fmt.Println(d.Title)
	fmt.Println(strings.Repeat("=", len(d.Title)))

	if len(d.Authors) > 0 {
		fmt.Println("by", strings.Join(d.Authors, ", "))
	}
	if d.FirstPublishDate != "" {
		fmt.Println("First published:", d.FirstPublishDate)
	}
	if d.RatingsCount > 0 {
		fmt.Printf("Rating: %.2f (%d ratings)\n", d.RatingsAverage, d.RatingsCount)
	}
	if url := d.CoverURL(); url != "" {
		fmt.Println("Cover:", url)
	}
	if len(d.Subjects) > 0 {
		subjects := d.Subjects
		if len(subjects) > maxShownSubjects {
			subjects = subjects[:maxShownSubjects]
		}
		fmt.Println("Subjects:", strings.Join(subjects, "; "))
	}
	if d.Description != "" {
		fmt.Println()
		fmt.Println(d.Description)
	}
	fmt.Println()
	fmt.Println("Key:", d.Key)
}

func init() {
	showCmd.Flags().Bool("json", false, "output the work record as JSON")

	rootCmd.AddCommand(showCmd)
}
