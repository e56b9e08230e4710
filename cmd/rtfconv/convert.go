package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/richtext/format"
)

func newConvertCmd(a *app) *cobra.Command {
	var output, to string

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a document to RTF, HTML or plain text",
		Long: "Convert reads an RTF, HTML or text file and writes it in another format.\n" +
			"The target format comes from --to, else from the output file extension,\n" +
			"else plain text.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]

			target, err := targetFormat(to, output)
			if err != nil {
				return err
			}

			out, warnings, err := a.converter(in).Convert(target)
			if err != nil {
				return err
			}
			a.reportWarnings(in, warnings)

			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			a.log.Info("converted", "input", in, "output", output, "format", target.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&to, "to", "", "output format: rtf, html, text")
	return cmd
}

// targetFormat resolves the output format from --to or the output name
func targetFormat(to, output string) (format.Format, error) {
	if to != "" {
		f := format.Parse(to)
		if f == format.Unknown {
			return format.Unknown, fmt.Errorf("unknown output format %q", to)
		}
		return f, nil
	}
	if output != "" {
		if f := format.Detect(output); f != format.Unknown {
			return f, nil
		}
	}
	return format.Text, nil
}
