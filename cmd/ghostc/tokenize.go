package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ghostc/internal/diag"
	"ghostc/internal/diagfmt"
	"ghostc/internal/driver"
	"ghostc/internal/source"
	"ghostc/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.gh|directory>",
	Short: "Tokenize a ghost source file or every file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	opts, err := driverOptions(cmd, nil)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		fs, res, err := driver.Tokenize(path, opts.MaxDiagnostics)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		printDiagnostics(cmd, res.Bag, fs)
		return writeTokens(cmd, format, res.Tokens, fs)
	}

	fs, results, err := driver.TokenizeDir(cmd.Context(), path, opts.MaxDiagnostics, opts.Jobs)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	for _, res := range results {
		bag.Merge(res.Bag)
		if format == "pretty" {
			fmt.Fprintf(cmd.OutOrStdout(), "== %s\n", res.Path)
		}
		if err := writeTokens(cmd, format, res.Tokens, fs); err != nil {
			return err
		}
	}
	bag.Sort()
	printDiagnostics(cmd, bag, fs)
	return nil
}

func writeTokens(cmd *cobra.Command, format string, toks []token.Token, fs *source.FileSet) error {
	if format == "json" {
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), toks, fs)
	}
	return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), toks, fs)
}
