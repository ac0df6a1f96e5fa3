package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewPipelinesCommand creates the pipelines command group
func NewPipelinesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pipelines",
		Aliases: []string{"pipeline"},
		Short:   "Manage pipelines",
		Long:    "List lead pipelines and their statuses",
	}

	cmd.AddCommand(newPipelinesListCommand())
	cmd.AddCommand(newPipelinesGetCommand())
	cmd.AddCommand(newPipelinesStatusesCommand())

	return cmd
}

func newPipelinesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pipelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			pipelines, err := client.Pipelines().List(context.Background())
			if err != nil {
				return fmt.Errorf("listing pipelines: %w", err)
			}

			if handled, err := renderStructured(pipelines); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Main", "Archived")

			for _, pipeline := range pipelines {
				_ = table.Append(
					strconv.FormatInt(pipeline.ID, 10),
					pipeline.Name,
					strconv.FormatBool(pipeline.IsMain),
					strconv.FormatBool(pipeline.IsArchive),
				)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newPipelinesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PIPELINE_ID",
		Short: "Show one pipeline with its statuses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipelineID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			pipeline, err := client.Pipelines().Get(context.Background(), pipelineID)
			if err != nil {
				return fmt.Errorf("getting pipeline: %w", err)
			}

			if handled, err := renderStructured(pipeline); handled {
				return err
			}

			fmt.Fprintf(os.Stdout, "Pipeline %d: %s\n", pipeline.ID, pipeline.Name)

			if pipeline.Embedded == nil || len(pipeline.Embedded.Statuses) == 0 {
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Status ID", "Name", "Sort", "Color")

			for _, status := range pipeline.Embedded.Statuses {
				_ = table.Append(
					strconv.FormatInt(status.ID, 10),
					status.Name,
					strconv.Itoa(status.Sort),
					status.Color,
				)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newPipelinesStatusesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "statuses PIPELINE_ID",
		Short: "List the statuses of a pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipelineID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			statuses, err := client.Pipelines().ListStatuses(context.Background(), pipelineID)
			if err != nil {
				return fmt.Errorf("listing pipeline statuses: %w", err)
			}

			if handled, err := renderStructured(statuses); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Sort", "Editable")

			for _, status := range statuses {
				_ = table.Append(
					strconv.FormatInt(status.ID, 10),
					status.Name,
					strconv.Itoa(status.Sort),
					strconv.FormatBool(status.IsEditable),
				)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}
