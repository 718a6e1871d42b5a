package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addTitle   string
	addContent string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		note, err := a.Notes().Create(ctx)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("title") || flags.Changed("content") {
			title := note.Title
			if flags.Changed("title") {
				title = addTitle
			}
			if note, _, err = a.Notes().Save(ctx, note.ID, title, addContent); err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created note %s (%s)\n", note.ID, note.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addTitle, "title", "", "note title; empty becomes \"Untitled\"")
	addCmd.Flags().StringVar(&addContent, "content", "", "note content")
}
