package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fieldline-io/amocrm-client/pkg/amocrm"
)

// NewContactsCommand creates the contacts command group
func NewContactsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"contact"},
		Short:   "Manage contacts",
		Long:    "List, inspect, create and update account contacts",
	}

	cmd.AddCommand(newContactsListCommand())
	cmd.AddCommand(newContactsGetCommand())
	cmd.AddCommand(newContactsCreateCommand())
	cmd.AddCommand(newContactsUpdateCommand())

	return cmd
}

// firstFieldValue renders the first value of a derived multi-text
// field for table output.
func firstFieldValue(values []amocrm.FieldValue) string {
	if len(values) == 0 {
		return NotAvailable
	}

	if s, ok := values[0].Value.(string); ok {
		return s
	}

	return fmt.Sprint(values[0].Value)
}

func newContactsListCommand() *cobra.Command {
	var (
		limit int
		query string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			var filters []amocrm.Filter
			if query != "" {
				filters = append(filters, amocrm.Query(query))
			}

			iterator := client.Contacts().List(context.Background(), limit, filters...)

			contacts := make([]*amocrm.Contact, 0, limit)
			for iterator.HasNext() && len(contacts) < limit {
				contact, err := iterator.Next()
				if err != nil {
					return fmt.Errorf("listing contacts: %w", err)
				}

				contacts = append(contacts, contact)
			}

			if handled, err := renderStructured(contacts); handled {
				return err
			}

			if len(contacts) == 0 {
				fmt.Fprintln(os.Stdout, "No contacts found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Phone", "Email", "Created")

			for _, contact := range contacts {
				_ = table.Append(
					formatInt64Ptr(contact.ID),
					formatStringPtr(contact.Name),
					firstFieldValue(contact.Phone),
					firstFieldValue(contact.Email),
					formatTimestampPtr(contact.CreatedAt),
				)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of contacts to show")
	cmd.Flags().StringVarP(&query, "query", "q", "", "full-text search query")

	return cmd
}

func newContactsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CONTACT_ID",
		Short: "Show one contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contactID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			contact, err := client.Contacts().Get(context.Background(), contactID)
			if err != nil {
				return fmt.Errorf("getting contact: %w", err)
			}

			if handled, err := renderStructured(contact); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("ID", formatInt64Ptr(contact.ID))
			_ = table.Append("Name", formatStringPtr(contact.Name))
			_ = table.Append("First Name", formatStringPtr(contact.FirstName))
			_ = table.Append("Last Name", formatStringPtr(contact.LastName))
			_ = table.Append("Phone", firstFieldValue(contact.Phone))
			_ = table.Append("Email", firstFieldValue(contact.Email))
			_ = table.Append("Responsible", formatInt64Ptr(contact.ResponsibleUserID))
			_ = table.Append("Created", formatTimestampPtr(contact.CreatedAt))
			_ = table.Append("Updated", formatTimestampPtr(contact.UpdatedAt))

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newContactsCreateCommand() *cobra.Command {
	var (
		name      string
		firstName string
		lastName  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			contact := &amocrm.Contact{}

			if name != "" {
				contact.Name = amocrm.String(name)
			}

			if firstName != "" {
				contact.FirstName = amocrm.String(firstName)
			}

			if lastName != "" {
				contact.LastName = amocrm.String(lastName)
			}

			created, err := client.Contacts().Create(context.Background(), contact)
			if err != nil {
				return fmt.Errorf("creating contact: %w", err)
			}

			fmt.Fprintf(os.Stdout, "Created contact %s\n", formatInt64Ptr(created[0].ID))

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "full name")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")

	return cmd
}

func newContactsUpdateCommand() *cobra.Command {
	var (
		name      string
		firstName string
		lastName  string
	)

	cmd := &cobra.Command{
		Use:   "update CONTACT_ID",
		Short: "Update a contact",
		Long:  "Update a contact, sending only the fields given as flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contactID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			contact := &amocrm.Contact{ID: amocrm.Int64(contactID)}

			if cmd.Flags().Changed("name") {
				contact.Name = amocrm.String(name)
			}

			if cmd.Flags().Changed("first-name") {
				contact.FirstName = amocrm.String(firstName)
			}

			if cmd.Flags().Changed("last-name") {
				contact.LastName = amocrm.String(lastName)
			}

			result, err := client.Contacts().Update(context.Background(), contact)
			if err != nil {
				return fmt.Errorf("updating contact: %w", err)
			}

			fmt.Fprintf(os.Stdout, "Updated contact %d\n", result.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new full name")
	cmd.Flags().StringVar(&firstName, "first-name", "", "new first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "new last name")

	return cmd
}
