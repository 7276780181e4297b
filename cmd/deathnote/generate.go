package main

import (
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"deathnote/internal/editor"
	"deathnote/internal/generator"
)

func newGenerateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "generate [prompt]",
		Short: "Generate a document for a prompt and print the HTML",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, gen, err := newService()
			if err != nil {
				return err
			}

			res, err := gen.Generate(cmd.Context(), generator.Request{
				Prompt:   strings.Join(args, " "),
				UserName: name,
			})
			if err != nil {
				return err
			}
			if res.Warning != "" {
				slog.Warn("fallback content used", "warning", res.Warning)
			}
			slog.Info("document generated", "source", res.Source)

			fmt.Fprintln(cmd.OutOrStdout(), res.Content)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name substituted for [Your Name]")
	return cmd
}

func newTemplatesCmd() *cobra.Command {
	var fallback bool

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the editor templates or the fallback template catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if fallback {
				fmt.Fprintln(tw, "ID\tKEYWORDS")
				for _, t := range generator.Templates() {
					fmt.Fprintf(tw, "%s\t%s\n", t.ID, strings.Join(t.Keywords, ", "))
				}
				return tw.Flush()
			}

			fmt.Fprintln(tw, "ID\tLABEL\tDESCRIPTION")
			for _, t := range editor.Templates() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, t.Label, t.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&fallback, "fallback", false, "list the keyword-matched fallback catalog instead")
	return cmd
}
