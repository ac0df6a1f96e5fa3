package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewTagsCommand creates the tags command group
func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "Manage lead tags",
	}

	cmd.AddCommand(newTagsListCommand())

	return cmd
}

func newTagsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List lead tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			tags, err := client.Tags().List(context.Background()).All()
			if err != nil {
				return fmt.Errorf("listing tags: %w", err)
			}

			if handled, err := renderStructured(tags); handled {
				return err
			}

			if len(tags) == 0 {
				fmt.Fprintln(os.Stdout, "No tags found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Color")

			for _, tag := range tags {
				_ = table.Append(strconv.FormatInt(tag.ID, 10), tag.Name, formatStringPtr(tag.Color))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}
