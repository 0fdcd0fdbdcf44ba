// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/openshelf/internal/openlibrary"
	"github.com/pdiddy/openshelf/internal/saved"
	"github.com/pdiddy/openshelf/pkg/types"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage the saved reading list",
	Long: `Saved manages a local reading list of works, keyed by work key and kept
in one JSON file. Toggling a key adds the work when absent and removes it
when present. Adding a key fetches the work's metadata from Open Library.`,
}

// --- list subcommand ---

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the saved works in the order they were added",
	RunE:  runSavedList,
}

func runSavedList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	books := store.List()

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(books)
	}

	if len(books) == 0 {
		fmt.Println("Saved list is empty.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-48s  %-20s  %-4s  %-10s  %s\n",
		"#", "Title", "Authors", "Year", "Saved", "Key")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 112))

	for i, b := range books {
		title := b.Title
		if len(title) > 48 {
			title = title[:45] + "..."
		}
		authors := ""
		if len(b.Authors) > 0 {
			authors = b.Authors[0]
			if len(authors) > 20 {
				authors = authors[:17] + "..."
			}
		}
		year := ""
		if b.FirstPublishYear > 0 {
			year = fmt.Sprintf("%d", b.FirstPublishYear)
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-48s  %-20s  %-4s  %-10s  %s\n",
			i+1, title, authors, year, b.SavedAt.Format("2006-01-02"), b.Key)
	}

	fmt.Fprintf(os.Stdout, "\n%d saved\n", len(books))
	return nil
}

// --- toggle subcommand ---

var savedToggleCmd = &cobra.Command{
	Use:   "toggle <work-key>",
	Short: "Save a work, or unsave it if already saved",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedToggle,
}

func runSavedToggle(cmd *cobra.Command, args []string) error {
	key, err := openlibrary.NormalizeWorkKey(args[0])
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	// Removal needs no network; adding fetches the work metadata.
	if store.Contains(key) {
		if _, err := store.Remove(key); err != nil {
			return err
		}
		fmt.Println("Removed", key)
		return nil
	}

	book, err := fetchBook(key)
	if err != nil {
		return err
	}
	if _, err := store.Add(book); err != nil {
		return err
	}
	fmt.Printf("Saved %s (%s)\n", book.Title, key)
	return nil
}

// --- add / remove subcommands ---

var savedAddCmd = &cobra.Command{
	Use:   "add <work-key>",
	Short: "Save a work by key",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedAdd,
}

func runSavedAdd(cmd *cobra.Command, args []string) error {
	key, err := openlibrary.NormalizeWorkKey(args[0])
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	if store.Contains(key) {
		fmt.Println(key, "is already saved.")
		return nil
	}

	book, err := fetchBook(key)
	if err != nil {
		return err
	}
	if _, err := store.Add(book); err != nil {
		return err
	}
	fmt.Printf("Saved %s (%s)\n", book.Title, key)
	return nil
}

var savedRemoveCmd = &cobra.Command{
	Use:   "remove <work-key>",
	Short: "Remove a work from the saved list",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedRemove,
}

func runSavedRemove(cmd *cobra.Command, args []string) error {
	key, err := openlibrary.NormalizeWorkKey(args[0])
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	removed, err := store.Remove(key)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%s is not in the saved list", key)
	}
	fmt.Println("Removed", key)
	return nil
}

// --- clear subcommand ---

var savedClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the saved list",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		n := store.Len()
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Printf("Removed %d saved work(s).\n", n)
		return nil
	},
}

// --- export subcommand ---

var savedExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the saved list to YAML or JSON",
	RunE:  runSavedExport,
}

func runSavedExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	switch format {
	case "yaml", "":
		if out == "" {
			out = "saved-export.yaml"
		}
		if err := store.ExportYAML(out); err != nil {
			return err
		}
	case "json":
		if out == "" {
			out = "saved-export.json"
		}
		if err := store.ExportJSON(out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Println("Exported to", out)
	return nil
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*saved.Store, error) {
	path, _ := cmd.Flags().GetString("saved-file")
	if path == "" {
		path = viper.GetString("saved.path")
	}
	return saved.Open(types.SavedConfig{Path: path})
}

func fetchBook(key string) (types.Book, error) {
	cfg := httpConfig()
	client := openlibrary.New(cfg)
	detail, err := client.FetchWork(context.Background(), key, cfg)
	if err != nil {
		return types.Book{}, err
	}
	return openlibrary.BookFromDetail(detail), nil
}

func init() {
	// Shared flag on the parent command, inherited by subcommands.
	savedCmd.PersistentFlags().String("saved-file", "", "saved list file (default from config, saved.json)")

	savedListCmd.Flags().Bool("json", false, "output the saved list as JSON")

	savedExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	savedExportCmd.Flags().String("out", "", "output path (default saved-export.yaml or .json)")

	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedToggleCmd)
	savedCmd.AddCommand(savedAddCmd)
	savedCmd.AddCommand(savedRemoveCmd)
	savedCmd.AddCommand(savedClearCmd)
	savedCmd.AddCommand(savedExportCmd)

	rootCmd.AddCommand(savedCmd)
}
