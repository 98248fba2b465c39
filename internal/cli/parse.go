package cli

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/addrsplit/addrsplit/internal/extract"
	"github.com/addrsplit/addrsplit/internal/i18n"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

type parseOptions struct {
	clipboard bool
	format    string
}

// readClipboard is swapped in tests; CI machines have no clipboard.
var readClipboard = clipboard.ReadAll

func newParseCommand(a *app) *cobra.Command {
	opts := &parseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [text...]",
		Short: "Split one line of text and print the fields",
		Long: "Split one line of text and print the fields.\n\n" +
			"The text is taken from the arguments, or the clipboard with --clipboard, or stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := opts.input(cmd, args)
			if err != nil {
				return err
			}

			record, err := extract.Extract(text)
			if err != nil {
				if stderrors.Is(err, extract.ErrEmptyAddress) {
					return stderrors.New(i18n.T("extract_error_empty_address"))
				}
				return err
			}
			return writeRecord(cmd.OutOrStdout(), record, opts.format)
		},
	}

	cmd.Flags().BoolVarP(&opts.clipboard, "clipboard", "c", false, "read the text from the clipboard")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "output format: json or text")
	return cmd
}

func (o *parseOptions) input(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case o.clipboard:
		text, err := readClipboard()
		if err != nil {
			return "", fmt.Errorf(i18n.T("cli_error_read_clipboard"), err)
		}
		return text, nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf(i18n.T("cli_error_read_stdin"), err)
		}
		return string(data), nil
	}
}

func writeRecord(w io.Writer, record extract.Record, format string) error {
	switch format {
	case "text":
		for _, field := range extract.Fields {
			if v, ok := record[field]; ok {
				if _, err := fmt.Fprintf(w, "%s: %s\n", field, v); err != nil {
					return err
				}
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
