package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	solr "github.com/aerian-studios/solr-node"
)

var errNothingToDelete = errors.New("pass --id or --query")

func updateOptions(noCommit, soft bool, within int) *solr.UpdateOptions {
	return &solr.UpdateOptions{
		Commit:       !noCommit && !soft && within == 0,
		SoftCommit:   soft,
		CommitWithin: within,
	}
}

func newUpdateCmd() *cobra.Command {
	var (
		file     string
		noCommit bool
		soft     bool
		within   int
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Index documents from a JSON file or stdin",
		Long: "Index documents read from --file or stdin. A JSON object is sent as a\n" +
			"single document; a JSON array is sent verbatim as an update body.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			data, err := readInput(file)
			if err != nil {
				fatal("read input", err)
			}

			var doc any
			if err := json.Unmarshal(data, &doc); err != nil {
				fatal("parse input", err)
			}

			ctx := context.Background()
			opts := updateOptions(noCommit, soft, within)

			var resp *solr.Response
			if _, isArray := doc.([]any); isArray {
				resp, err = client.UpdateCommands(ctx, doc, opts)
			} else {
				resp, err = client.Update(ctx, doc, opts)
			}
			if err != nil {
				fatal("update", err)
			}
			checkResponse("update", resp)
			output(resp.Data, "")
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON file to index, - or empty for stdin")
	cmd.Flags().BoolVar(&noCommit, "no-commit", false, "Do not commit after indexing")
	cmd.Flags().BoolVar(&soft, "soft", false, "Soft commit instead of a hard commit")
	cmd.Flags().IntVar(&within, "commit-within", 0, "Commit within N milliseconds")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	var (
		ids      []string
		query    string
		noCommit bool
		soft     bool
		within   int
	)
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete documents by id or query",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			opts := updateOptions(noCommit, soft, within)

			var (
				resp *solr.Response
				err  error
			)
			switch {
			case len(ids) > 0:
				resp, err = client.DeleteByIDs(ctx, ids, opts)
			case query != "":
				resp, err = client.Delete(ctx, query, opts)
			default:
				fatal("delete", errNothingToDelete)
			}
			if err != nil {
				fatal("delete", err)
			}
			checkResponse("delete", resp)
			output(resp.Data, "")
		},
	}
	cmd.Flags().StringSliceVar(&ids, "id", nil, "Document id, repeatable")
	cmd.Flags().StringVar(&query, "query", "", "Delete query, e.g. 'category:obsolete'")
	cmd.Flags().BoolVar(&noCommit, "no-commit", false, "Do not commit after deleting")
	cmd.Flags().BoolVar(&soft, "soft", false, "Soft commit instead of a hard commit")
	cmd.Flags().IntVar(&within, "commit-within", 0, "Commit within N milliseconds")
	return cmd
}

func newCommitCmd() *cobra.Command {
	var soft bool
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit pending changes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			var (
				resp *solr.Response
				err  error
			)
			if soft {
				resp, err = client.SoftCommit(ctx)
			} else {
				resp, err = client.Commit(ctx)
			}
			if err != nil {
				fatal("commit", err)
			}
			checkResponse("commit", resp)
			output(resp.Data, "")
		},
	}
	cmd.Flags().BoolVar(&soft, "soft", false, "Soft commit instead of a hard commit")
	return cmd
}

func readInput(file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(file)
}
