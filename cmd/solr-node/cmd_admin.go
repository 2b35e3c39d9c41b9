package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Ping the core",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := client.Ping(context.Background())
			if err != nil {
				fatal("ping", err)
			}
			checkResponse("ping", resp)
			output(resp.Data, "OK")
		},
	}
}

func newSchemaCmd() *cobra.Command {
	var fieldsOnly bool
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the core's schema",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			if fieldsOnly {
				resp, err := client.SchemaFields(ctx)
				if err != nil {
					fatal("schema", err)
				}
				checkResponse("schema", resp)
				output(resp.Data, "")
				return
			}

			resp, err := client.Schema(ctx)
			if err != nil {
				fatal("schema", err)
			}
			checkResponse("schema", resp)
			output(resp.Data, "")
		},
	}
	cmd.Flags().BoolVar(&fieldsOnly, "fields", false, "Print only the field definitions")
	return cmd
}
