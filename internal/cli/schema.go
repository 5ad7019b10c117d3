package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var flagReconnect bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Connect to the database and print its property types",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().BoolVar(&flagReconnect, "reconnect", false, "Discard any cached schema first")
}

func runSchema(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.close()
	if err := a.requireDestination(); err != nil {
		return err
	}

	connect := a.service.Connect
	if flagReconnect {
		connect = a.service.Reconnect
	}
	schema, err := connect(ctx, a.cfg.Notion.APIKey, a.cfg.Notion.DatabaseID)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROPERTY\tKIND")
	for _, name := range schema.Names() {
		kind, _ := schema.Kind(name)
		fmt.Fprintf(tw, "%s\t%s\n", name, kind)
	}
	return tw.Flush()
}
