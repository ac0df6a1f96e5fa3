package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewFieldsCommand creates the fields command group
func NewFieldsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fields",
		Aliases: []string{"field"},
		Short:   "Manage lead custom fields",
		Long:    "List and inspect the custom field definitions of leads",
	}

	cmd.AddCommand(newFieldsListCommand())
	cmd.AddCommand(newFieldsGetCommand())

	return cmd
}

func newFieldsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List custom field definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			fields, err := client.CustomFields().List(context.Background()).All()
			if err != nil {
				return fmt.Errorf("listing custom fields: %w", err)
			}

			if handled, err := renderStructured(fields); handled {
				return err
			}

			if len(fields) == 0 {
				fmt.Fprintln(os.Stdout, "No custom fields found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Code", "Type")

			for _, field := range fields {
				code := field.Code
				if code == "" {
					code = NotAvailable
				}

				_ = table.Append(strconv.FormatInt(field.ID, 10), field.Name, code, field.Type)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newFieldsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get FIELD_ID",
		Short: "Show one custom field definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fieldID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			field, err := client.CustomFields().Get(context.Background(), fieldID)
			if err != nil {
				return fmt.Errorf("getting custom field: %w", err)
			}

			if handled, err := renderStructured(field); handled {
				return err
			}

			fmt.Fprintf(os.Stdout, "Field %d: %s (%s)\n", field.ID, field.Name, field.Type)

			if len(field.Enums) == 0 {
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Enum ID", "Value", "Sort")

			for _, enum := range field.Enums {
				_ = table.Append(strconv.FormatInt(enum.ID, 10), enum.Value, strconv.Itoa(enum.Sort))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}
