package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewLossReasonsCommand creates the loss-reasons command group
func NewLossReasonsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "loss-reasons",
		Aliases: []string{"loss-reason"},
		Short:   "Manage lead loss reasons",
	}

	cmd.AddCommand(newLossReasonsListCommand())
	cmd.AddCommand(newLossReasonsGetCommand())

	return cmd
}

func newLossReasonsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List loss reasons",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			reasons, err := client.LossReasons().List(context.Background())
			if err != nil {
				return fmt.Errorf("listing loss reasons: %w", err)
			}

			if handled, err := renderStructured(reasons); handled {
				return err
			}

			if len(reasons) == 0 {
				fmt.Fprintln(os.Stdout, "No loss reasons found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Sort")

			for _, reason := range reasons {
				_ = table.Append(strconv.FormatInt(reason.ID, 10), reason.Name, strconv.Itoa(reason.Sort))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newLossReasonsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LOSS_REASON_ID",
		Short: "Show one loss reason",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reasonID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			reason, err := client.LossReasons().Get(context.Background(), reasonID)
			if err != nil {
				return fmt.Errorf("getting loss reason: %w", err)
			}

			if handled, err := renderStructured(reason); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("ID", strconv.FormatInt(reason.ID, 10))
			_ = table.Append("Name", reason.Name)
			_ = table.Append("Created", formatTimestampPtr(reason.CreatedAt))
			_ = table.Append("Updated", formatTimestampPtr(reason.UpdatedAt))

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}
