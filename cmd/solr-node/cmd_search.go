package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	solr "github.com/aerian-studios/solr-node"
)

func newSearchCmd() *cobra.Command {
	var (
		rows    int
		start   int
		sortBy  string
		fields  []string
		filters []string
	)
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the core; omitting the query matches all documents",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			query := solr.NewQuery()
			if len(args) == 1 {
				query.Q(args[0])
			}
			if rows > 0 {
				query.Rows(rows)
			}
			if start > 0 {
				query.Start(start)
			}
			if sortBy != "" {
				query.Sort(sortBy)
			}
			if len(fields) > 0 {
				query.Fields(fields...)
			}
			for _, fq := range filters {
				query.FilterQuery(fq)
			}

			resp, err := client.Search(context.Background(), query)
			if err != nil {
				fatal("search", err)
			}
			checkResponse("search", resp)

			docs, ok := resp.Docs()
			if !ok {
				output(resp.Data, "")
				return
			}

			if flagFmt == "table" {
				printDocTable(docs, fields)
				return
			}

			n, _ := resp.NumFound()
			output(map[string]any{"numFound": n, "docs": docs}, fmt.Sprint(n))
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 0, "Max documents to return")
	cmd.Flags().IntVar(&start, "start", 0, "Offset of the first document")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort clause, e.g. 'price desc'")
	cmd.Flags().StringSliceVar(&fields, "fl", nil, "Fields to return")
	cmd.Flags().StringArrayVar(&filters, "fq", nil, "Filter query, repeatable")
	return cmd
}

func newTermsCmd() *cobra.Command {
	var (
		field  string
		prefix string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "terms",
		Short: "Enumerate indexed terms of a field",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			query := solr.NewQuery().Terms(solr.TermsOptions{
				Field:  field,
				Prefix: prefix,
				Limit:  limit,
			})

			resp, err := client.Terms(context.Background(), query)
			if err != nil {
				fatal("terms", err)
			}
			checkResponse("terms", resp)
			output(resp.Data, "")
		},
	}
	cmd.Flags().StringVar(&field, "field", "", "Field to enumerate")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Only terms with this prefix")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max terms to return")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}
