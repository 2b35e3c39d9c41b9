package solr_test

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	solr "github.com/aerian-studios/solr-node"
	"github.com/aerian-studios/solr-node/metrics"
)

func ExampleNewQuery() {
	query := solr.NewQuery().
		Q("category:book").
		Fields("id", "title").
		Rows(10)

	fmt.Println(query)
	// Output:
	// q=category%3Abook&fl=id%2Ctitle&rows=10
}

func ExampleQuery_Facet() {
	query := solr.NewQuery().
		Q("*:*").
		Facet(solr.FacetOptions{Fields: []string{"category"}, MinCount: 1})

	fmt.Println(query)
	// Output:
	// q=%2A%3A%2A&facet=true&facet.field=category&facet.mincount=1
}

func ExampleQuery_FilterQuery() {
	query := solr.NewQuery().
		Q("laptop").
		FilterQuery("in_stock:true").
		FilterQuery("price:[100 TO 500]")

	fmt.Println(query)
	// Output:
	// q=laptop&fq=in_stock%3Atrue&fq=price%3A%5B100+TO+500%5D
}

func ExampleClient_Connect() {
	client := solr.New(solr.Config{Core: "products"})
	client.UseMetrics(metrics.New(prometheus.DefaultRegisterer))
	client.Connect()
}

func ExampleClient_Search() {
	client := solr.New(solr.Config{Core: "products"})

	resp, err := client.Search(context.Background(), solr.NewQuery().Q("category:book"))
	if err != nil {
		fmt.Println("search failed:", err)
		return
	}

	if n, ok := resp.NumFound(); ok {
		fmt.Println("found:", n)
	}
}

func ExampleClient_Update() {
	client := solr.New(solr.Config{Core: "products"})

	doc := map[string]any{"id": "1234", "title": "Go in Action", "category": "book"}

	if _, err := client.Update(context.Background(), doc, nil); err != nil {
		fmt.Println("update failed:", err)
	}
}

func ExampleAsync() {
	client := solr.New(solr.Config{Core: "products"})

	ch := solr.Async(context.Background(), func(ctx context.Context) (*solr.Response, error) {
		return client.Search(ctx, solr.NewQuery().Q("category:book"))
	})

	result := <-ch
	if result.Err != nil {
		fmt.Println("search failed:", result.Err)
	}
}
