package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/spell-cards/internal/clients/srd"
	"github.com/KirkDiggler/spell-cards/internal/entities/spellcard"
	"github.com/KirkDiggler/spell-cards/internal/errors"
	"github.com/KirkDiggler/spell-cards/internal/render"
	"github.com/KirkDiggler/spell-cards/internal/services/spellbook"
)

var (
	exportFormat  string
	outputPath    string
	importReplace bool
	importFormat  string
	srdLevel      int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the spell book as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add cards from a JSON or YAML book file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the spell book as a static HTML page",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

var srdCmd = &cobra.Command{
	Use:   "srd",
	Short: "Browse and import spells from the SRD api",
}

var srdListCmd = &cobra.Command{
	Use:   "list",
	Short: "List SRD spell keys",
	Args:  cobra.NoArgs,
	RunE:  runSRDList,
}

var srdImportCmd = &cobra.Command{
	Use:   "import <key>...",
	Short: "Append SRD spells to the spell book",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSRDImport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", spellbook.FormatJSON, "json or yaml")
	exportCmd.Flags().StringVarP(&outputPath, "out", "o", "", "output file (default stdout)")

	importCmd.Flags().BoolVar(&importReplace, "replace", false, "discard the current book first")
	importCmd.Flags().StringVar(&importFormat, "format", "", "json or yaml (default from the file extension)")

	renderCmd.Flags().StringVarP(&outputPath, "out", "o", "", "output file (default stdout)")

	srdListCmd.Flags().IntVar(&srdLevel, "level", -1, "only list spells of this level")
	srdCmd.AddCommand(srdListCmd)
	srdCmd.AddCommand(srdImportCmd)
}

// withApp loads config, wires the services and runs fn
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func runExport(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		out, err := a.book.ExportBook(ctx, &spellbook.ExportBookInput{Format: exportFormat})
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outputPath, out.Data)
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	book, err := decodeBook(data, importFormat, args[0])
	if err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *app) error {
		out, err := a.book.ImportCards(ctx, &spellbook.ImportCardsInput{
			Cards:   book.Spells,
			Replace: importReplace,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d cards, book has %d\n", out.Imported, len(out.Book.Spells))
		return nil
	})
}

// decodeBook picks the decoder from format, falling back to the file extension
func decodeBook(data []byte, format, path string) (*spellcard.SpellBook, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = spellbook.FormatYAML
		default:
			format = spellbook.FormatJSON
		}
	}

	switch strings.ToLower(format) {
	case spellbook.FormatYAML:
		return spellcard.DecodeBookYAML(data)
	case spellbook.FormatJSON:
		return spellcard.DecodeBookJSON(data)
	default:
		return nil, errors.InvalidArgumentf("unsupported format %q", format)
	}
}

func runRender(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		out, err := a.book.GetBook(ctx, &spellbook.GetBookInput{})
		if err != nil {
			return err
		}

		var sb strings.Builder
		if err := render.Page("My PF2e Spellbook", render.Book(out.Book)).Render(ctx, &sb); err != nil {
			return fmt.Errorf("failed to render book: %w", err)
		}
		return writeOutput(cmd.OutOrStdout(), outputPath, []byte(sb.String()))
	})
}

func runSRDList(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		if a.srd == nil {
			return errors.FailedPrecondition("SRD import is disabled")
		}

		input := &srd.ListSpellsInput{}
		if srdLevel >= 0 {
			input.Level = &srdLevel
		}
		out, err := a.srd.ListSpells(ctx, input)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, spell := range out.Spells {
			fmt.Fprintf(w, "%s\t%s\n", spell.Key, spell.Name)
		}
		return nil
	})
}

func runSRDImport(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		if a.srd == nil {
			return errors.FailedPrecondition("SRD import is disabled")
		}

		cards, err := a.srd.GetCards(ctx, &srd.GetCardsInput{Keys: args})
		if err != nil {
			return err
		}

		out, err := a.book.ImportCards(ctx, &spellbook.ImportCardsInput{Cards: cards.Cards})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d cards, book has %d\n", out.Imported, len(out.Book.Spells))
		return nil
	})
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
