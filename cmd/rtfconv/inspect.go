package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/richtext"
	"github.com/tsawler/richtext/format"
	"github.com/tsawler/richtext/model"
	"github.com/tsawler/richtext/rtfdoc"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input>",
		Short: "Show the structure of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			conv := a.converter(in)

			f, err := conv.DetectedFormat()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "file:    %s\n", in)
			fmt.Fprintf(w, "format:  %s\n", f)

			var doc *model.Document
			if f == format.RTF {
				data, err := os.ReadFile(in)
				if err != nil {
					return fmt.Errorf("reading file: %w", err)
				}
				res := rtfdoc.Decode(data, a.rtfOptions()...)
				fmt.Fprintf(w, "status:  %s\n", res.Status)
				fmt.Fprintf(w, "header:  %t\n", res.SawHeader)
				doc = res.Document
			} else {
				var warnings []richtext.Warning
				doc, warnings, err = conv.Document()
				if err != nil {
					return err
				}
				a.reportWarnings(in, warnings)
			}

			printStructure(w, doc)
			return nil
		},
	}
}

// rtfOptions mirrors the converter options for direct rtfdoc use
func (a *app) rtfOptions() []rtfdoc.Option {
	opts := []rtfdoc.Option{
		rtfdoc.WithLogger(a.log.Logger),
		rtfdoc.WithDefaultFont(a.cfg.RTF.DefaultFont),
	}
	if a.cfg.RTF.ANSICodePage {
		opts = append(opts, rtfdoc.WithANSICodePage())
	}
	if a.cfg.RTF.StandardColorIndex {
		opts = append(opts, rtfdoc.WithStandardColorIndex())
	}
	return opts
}

func printStructure(w io.Writer, doc *model.Document) {
	lists := 0
	for _, b := range doc.Blocks {
		if b.IsListItem() {
			lists++
		}
	}

	fmt.Fprintf(w, "blocks:  %d (%d list items)\n", doc.BlockCount(), lists)
	fmt.Fprintf(w, "runs:    %d\n", doc.RunCount())

	var fonts []string
	for id, name := range doc.Fonts {
		if name != "" {
			fonts = append(fonts, fmt.Sprintf("%d=%s", id, name))
		}
	}
	fmt.Fprintf(w, "fonts:   %s\n", strings.Join(fonts, " "))

	colors := make([]string, len(doc.Colors))
	for i, c := range doc.Colors {
		colors[i] = fmt.Sprintf("%d=%s", i+1, c)
	}
	fmt.Fprintf(w, "colors:  %s\n", strings.Join(colors, " "))
}
