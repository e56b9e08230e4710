package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsawler/richtext/core"
)

func newTokensCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "tokens <input>",
		Short: "Dump the RTF token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading file: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			lex := core.NewLexer(data)
			n := 0
			for {
				tok, ok := lex.Next()
				if !ok {
					break
				}
				if limit > 0 && n == limit {
					a.log.Info("token dump truncated", "limit", limit)
					break
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\n", tok.Pos, tok.Type, tok)
				n++
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after this many tokens (0 = all)")
	return cmd
}
