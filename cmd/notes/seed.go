package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// loremIpsum returns a markdown string with lorem ipsum content
func loremIpsum() string {
	return `# Lorem Ipsum

Lorem ipsum dolor sit amet, **consectetur** adipiscing elit.

- Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.
- Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat.

> Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur.

` +
		"```go\n" +
		"// Example code block\n" +
		"fmt.Println(\"Hello, world!\")\n" +
		"```\n"
}

var seedCount int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate sample notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		for i := 1; i <= seedCount; i++ {
			note, err := a.Notes().Create(ctx)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Sample note %d", i)
			if _, _, err := a.Notes().Save(ctx, note.ID, title, loremIpsum()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated note with ID: %s\n", note.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().IntVar(&seedCount, "count", 3, "number of notes to generate")
}
