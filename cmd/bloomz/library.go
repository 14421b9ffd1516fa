// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bloomz/internal/ingest"
	"github.com/pdiddy/bloomz/internal/library"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the reference compound store (import, query, export)",
	Long: `Library manages a local SQLite store of reference compounds. Use
subcommands to import a normalized compound CSV, query the mass gate
directly, inspect counts, or export the store.`,
}

// --- import subcommand ---

var libraryImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a compound CSV into the SQLite store",
	Long: `Import normalizes a reference compound CSV (header-inferred name,
exact mass, and chemical class columns) and loads it into the store.
Rows without a parseable exact mass are dropped. With --replace the
existing store contents are cleared first.`,
	RunE: runLibraryImport,
}

func runLibraryImport(cmd *cobra.Command, args []string) error {
	csvPath, _ := cmd.Flags().GetString("csv")
	if csvPath == "" {
		return fmt.Errorf("--csv is required")
	}

	entries, dropped, err := ingest.LoadLibraryFile(csvPath)
	if err != nil {
		return err
	}
	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "warning: dropped %d row(s) without a parseable exact mass\n", dropped)
	}

	store, err := openLibraryStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if replace, _ := cmd.Flags().GetBool("replace"); replace {
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("clearing store: %w", err)
		}
	}

	inserted, err := store.Import(ctx, entries)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d compound(s)\n", inserted)
	return nil
}

// --- query subcommand ---

var libraryQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run the mass gate against the store for a single mass",
	Long: `Query returns every compound whose exact mass lies within the
tolerance window around --mass, the same closed-interval gate the
scoring engine applies per peak.`,
	RunE: runLibraryQuery,
}

func runLibraryQuery(cmd *cobra.Command, args []string) error {
	mass, _ := cmd.Flags().GetFloat64("mass")
	if mass <= 0 {
		return fmt.Errorf("--mass is required and must be positive")
	}
	tol, _ := cmd.Flags().GetFloat64("tolerance")
	if tol <= 0 {
		tol = scoringConfig().MassTolerance
	}

	store, err := openLibraryStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	hits, err := store.CandidatesInRange(context.Background(), mass-tol, mass+tol)
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		fmt.Printf("No compounds within ±%g of %g\n", tol, mass)
		return nil
	}
	for _, h := range hits {
		fmt.Printf("%-30s  %12.4f  %s\n", h.Name, h.ExactMass, h.Class)
	}
	fmt.Printf("\n%d compound(s) within ±%g of %g\n", len(hits), tol, mass)
	return nil
}

// --- stats subcommand ---

var libraryStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print compound counts for the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLibraryStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Count(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%d compound(s)\n", n)
		return nil
	},
}

// --- example subcommand ---

var libraryExampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Seed the store with the built-in example library",
	Long: `Example loads a small natural-products reference library (common
GC-MS volatiles with monoisotopic masses) into the store, for demos and
for trying the annotate command without a curated library.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLibraryStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		inserted, err := store.Import(context.Background(), library.ExampleLibrary())
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d example compound(s)\n", inserted)
		return nil
	},
}

// --- export subcommand ---

var libraryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the store as a compound CSV",
	Long: `Export writes the full store, in insertion order, as a normalized
compound CSV (name, exact_mass, chemical_class) to stdout or --out. The
output re-imports cleanly.`,
	RunE: runLibraryExport,
}

func runLibraryExport(cmd *cobra.Command, args []string) error {
	store, err := openLibraryStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.All(context.Background())
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "exact_mass", "chemical_class"}); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{e.Name, strconv.FormatFloat(e.ExactMass, 'f', 4, 64), e.Class}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row for %q: %w", e.Name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Exported %d compound(s)\n", len(entries))
	return nil
}

// --- shared helpers ---

func openLibraryStore(cmd *cobra.Command) (*library.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = "data/library.db"
	}
	return library.NewStore(dbPath)
}

func init() {
	libraryCmd.PersistentFlags().String("db", "data/library.db", "SQLite store path")

	libraryImportCmd.Flags().String("csv", "", "compound CSV to import")
	libraryImportCmd.Flags().Bool("replace", false, "clear the store before importing")

	libraryQueryCmd.Flags().Float64("mass", 0, "observed mass to gate on")
	libraryQueryCmd.Flags().Float64("tolerance", 0, "gate tolerance (default: scoring config)")

	libraryExportCmd.Flags().String("out", "", "write the CSV to a file instead of stdout")

	libraryCmd.AddCommand(libraryImportCmd)
	libraryCmd.AddCommand(libraryQueryCmd)
	libraryCmd.AddCommand(libraryStatsCmd)
	libraryCmd.AddCommand(libraryExampleCmd)
	libraryCmd.AddCommand(libraryExportCmd)

	rootCmd.AddCommand(libraryCmd)
}
