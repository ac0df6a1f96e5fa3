package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fieldline-io/amocrm-client/pkg/amocrm"
)

// NewLeadsCommand creates the leads command group
func NewLeadsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "leads",
		Aliases: []string{"lead"},
		Short:   "Manage leads",
		Long:    "List, inspect, create and update account leads",
	}

	cmd.AddCommand(newLeadsListCommand())
	cmd.AddCommand(newLeadsGetCommand())
	cmd.AddCommand(newLeadsLinksCommand())
	cmd.AddCommand(newLeadsCreateCommand())
	cmd.AddCommand(newLeadsUpdateCommand())

	return cmd
}

func newLeadsListCommand() *cobra.Command {
	var (
		limit      int
		statusID   int64
		pipelineID int64
		query      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads",
		Long:  "List leads, optionally narrowed by status, pipeline or a search query",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			var filters []amocrm.Filter

			if cmd.Flags().Changed("status-id") {
				filters = append(filters, amocrm.Eq("status_id", strconv.FormatInt(statusID, 10)))
			}

			if cmd.Flags().Changed("pipeline-id") {
				filters = append(filters, amocrm.Eq("pipeline_id", strconv.FormatInt(pipelineID, 10)))
			}

			if query != "" {
				filters = append(filters, amocrm.Query(query))
			}

			iterator := client.Leads().List(context.Background(), limit, filters...)

			leads := make([]*amocrm.Lead, 0, limit)
			for iterator.HasNext() && len(leads) < limit {
				lead, err := iterator.Next()
				if err != nil {
					return fmt.Errorf("listing leads: %w", err)
				}

				leads = append(leads, lead)
			}

			if handled, err := renderStructured(leads); handled {
				return err
			}

			if len(leads) == 0 {
				fmt.Fprintln(os.Stdout, "No leads found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Price", "Status", "Pipeline", "Created")

			for _, lead := range leads {
				_ = table.Append(
					formatInt64Ptr(lead.ID),
					formatStringPtr(lead.Name),
					formatInt64Ptr(lead.Price),
					formatInt64Ptr(lead.StatusID),
					formatInt64Ptr(lead.PipelineID),
					formatTimestampPtr(lead.CreatedAt),
				)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of leads to show")
	cmd.Flags().Int64Var(&statusID, "status-id", 0, "filter by status identifier")
	cmd.Flags().Int64Var(&pipelineID, "pipeline-id", 0, "filter by pipeline identifier")
	cmd.Flags().StringVarP(&query, "query", "q", "", "full-text search query")

	return cmd
}

func newLeadsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LEAD_ID",
		Short: "Show one lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			leadID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			lead, err := client.Leads().Get(context.Background(), leadID)
			if err != nil {
				return fmt.Errorf("getting lead: %w", err)
			}

			if handled, err := renderStructured(lead); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("ID", formatInt64Ptr(lead.ID))
			_ = table.Append("Name", formatStringPtr(lead.Name))
			_ = table.Append("Price", formatInt64Ptr(lead.Price))
			_ = table.Append("Status", formatInt64Ptr(lead.StatusID))
			_ = table.Append("Pipeline", formatInt64Ptr(lead.PipelineID))
			_ = table.Append("Responsible", formatInt64Ptr(lead.ResponsibleUserID))
			_ = table.Append("Created", formatTimestampPtr(lead.CreatedAt))
			_ = table.Append("Updated", formatTimestampPtr(lead.UpdatedAt))
			_ = table.Append("Contacts", strconv.Itoa(len(lead.Contacts)))

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newLeadsLinksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "links LEAD_ID",
		Short: "Show entities linked to a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			leadID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			links, err := client.Leads().Links(context.Background(), leadID)
			if err != nil {
				return fmt.Errorf("getting lead links: %w", err)
			}

			if handled, err := renderStructured(links); handled {
				return err
			}

			if len(links) == 0 {
				fmt.Fprintln(os.Stdout, "No linked entities")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Entity Type", "Entity ID")

			for _, link := range links {
				_ = table.Append(link.ToEntityType, strconv.FormatInt(link.ToEntityID, 10))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newLeadsCreateCommand() *cobra.Command {
	var (
		name        string
		price       int64
		statusID    int64
		pipelineID  int64
		contactName string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a lead",
		Long:  "Create a lead, optionally together with a new contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			lead := &amocrm.Lead{Name: amocrm.String(name)}

			if cmd.Flags().Changed("price") {
				lead.Price = amocrm.Int64(price)
			}

			if cmd.Flags().Changed("status-id") {
				lead.StatusID = amocrm.Int64(statusID)
			}

			if cmd.Flags().Changed("pipeline-id") {
				lead.PipelineID = amocrm.Int64(pipelineID)
			}

			ctx := context.Background()

			if contactName != "" {
				contact := &amocrm.Contact{Name: amocrm.String(contactName)}

				result, err := client.Leads().CreateComplex(ctx, lead, contact)
				if err != nil {
					return fmt.Errorf("creating lead with contact: %w", err)
				}

				fmt.Fprintf(os.Stdout, "Created lead %d with contact %d\n", result.ID, result.ContactID)

				return nil
			}

			created, err := client.Leads().Create(ctx, lead)
			if err != nil {
				return fmt.Errorf("creating lead: %w", err)
			}

			fmt.Fprintf(os.Stdout, "Created lead %s\n", formatInt64Ptr(created[0].ID))

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "lead name (required)")
	cmd.Flags().Int64Var(&price, "price", 0, "sale value")
	cmd.Flags().Int64Var(&statusID, "status-id", 0, "initial status identifier")
	cmd.Flags().Int64Var(&pipelineID, "pipeline-id", 0, "pipeline identifier")
	cmd.Flags().StringVar(&contactName, "contact-name", "", "also create a contact with this name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLeadsUpdateCommand() *cobra.Command {
	var (
		name     string
		price    int64
		statusID int64
	)

	cmd := &cobra.Command{
		Use:   "update LEAD_ID",
		Short: "Update a lead",
		Long:  "Update a lead, sending only the fields given as flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			leadID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			lead := &amocrm.Lead{ID: amocrm.Int64(leadID)}

			if cmd.Flags().Changed("name") {
				lead.Name = amocrm.String(name)
			}

			if cmd.Flags().Changed("price") {
				lead.Price = amocrm.Int64(price)
			}

			if cmd.Flags().Changed("status-id") {
				lead.StatusID = amocrm.Int64(statusID)
			}

			result, err := client.Leads().Update(context.Background(), lead)
			if err != nil {
				return fmt.Errorf("updating lead: %w", err)
			}

			fmt.Fprintf(os.Stdout, "Updated lead %d\n", result.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new lead name")
	cmd.Flags().Int64Var(&price, "price", 0, "new sale value")
	cmd.Flags().Int64Var(&statusID, "status-id", 0, "new status identifier")

	return cmd
}
