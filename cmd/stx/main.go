package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/stxdoc/internal/parser"
	"github.com/dgallion1/stxdoc/internal/stx"
	"github.com/google/renameio"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stx",
		Short: "Structured text to HTML converter",
		Long: `stx converts structured text, a plain-text format where indentation
gives structure, into HTML.

Paragraphs are separated by blank lines. A one-line paragraph followed by
more deeply indented paragraphs is a heading; "-", "*" and "o" start bullet
items, "1." and "(1)" ordered items, "term -- definition" definition items,
and a paragraph ending in "::" introduces a literal block.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(renderCmd())
	root.AddCommand(convertCmd())
	root.AddCommand(treeCmd())
	return root
}

func renderCmd() *cobra.Command {
	var (
		level  int
		title  bool
		web    bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render structured text as HTML",
		Long: `Render a structured text file, or standard input, as HTML.

Example:
  stx render README.stx
  stx render --title --output README.html README.stx
  cat notes.txt | stx render --level 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if level < 0 {
				return fmt.Errorf("--level must not be negative")
			}
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}

			var out string
			if title || web {
				out = stx.Page(stx.HTML(stx.StripPreamble(text), level))
				if web {
					out = "Content-Type: text/html\n\n" + out
				}
			} else {
				out = stx.HTML(text, level)
			}
			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().IntVarP(&level, "level", "l", stx.DefaultLevel, "Heading level of top-level headings (0 disables <hN>)")
	cmd.Flags().BoolVarP(&title, "title", "t", false, "Wrap in a complete page titled by the first heading")
	cmd.Flags().BoolVarP(&web, "web", "w", false, "Like --title, with a Content-Type header for CGI use")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func convertCmd() *cobra.Command {
	var (
		html        bool
		level       int
		output      string
		pdfFallback bool
	)

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a document to structured text",
		Long: `Import a Markdown, HTML, DOCX, PDF or CSV document and print it as
structured text, or as HTML with --html.

Example:
  stx convert guide.md
  stx convert --html report.docx -o report.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !parser.IsSupportedExtension(path) {
				return fmt.Errorf("unsupported file type: %s", path)
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			im := &parser.Importer{PDFFallback: pdfFallback}
			text, err := im.Import(f, path)
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}
			if html {
				text = stx.HTML(text, level)
			}
			return writeOutput(cmd, output, text)
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "Render the converted text as HTML")
	cmd.Flags().IntVarP(&level, "level", "l", stx.DefaultLevel, "Heading level of top-level headings with --html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&pdfFallback, "pdftotext", true, "Fall back to pdftotext for unreadable PDFs")
	return cmd
}

func treeCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the paragraph structure of structured text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			doc := stx.Parse(stx.References(text), stx.DefaultLevel)
			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "%+v", doc)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%v", doc)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show paragraph levels and kinds")
	return cmd
}

// readText reads the named file, or standard input when no file is given.
func readText(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return stx.Normalize(data)
}

// writeOutput writes s to path atomically, or to the command's output when
// path is empty.
func writeOutput(cmd *cobra.Command, path, s string) error {
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), s)
		return err
	}
	if err := renameio.WriteFile(path, []byte(s), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
