package solr

import (
	"context"
	"net/http"
	"time"
)

// matchAllQuery is sent when an operation receives no query.
const matchAllQuery = "q=*:*"

// Queryer is the query accepted by the search family of operations. Exactly
// three forms exist: a *Query builder, a Raw string sent verbatim, and nil,
// which selects the match-all query.
type Queryer interface {
	queryString() string
}

// Raw is a preassembled query string, e.g. Raw("q=id:1&rows=1"). It is sent
// as given, without escaping.
type Raw string

func (r Raw) queryString() string { return string(r) }

func (q *Query) queryString() string { return q.String() }

// queryOf renders a Queryer, falling back to the match-all query for nil and
// for builders with no pairs.
func queryOf(q Queryer) string {
	if q == nil {
		return matchAllQuery
	}

	if s := q.queryString(); s != "" {
		return s
	}

	return matchAllQuery
}

// Search runs the query against the configured request handler. A nil query
// matches all documents.
func (c *Client) Search(ctx context.Context, query Queryer) (*Response, error) {
	url := c.requestURL(c.paths.search, queryOf(query))
	startTime := time.Now()

	resp, span, err := c.call(ctx, http.MethodGet, url, "", nil)

	c.sendOperationStats(ctx, &QueryLog{Type: "Search", URL: url}, startTime, "search", span)

	return resp, err
}

// Terms runs the query against the terms handler. Combine with Query.Terms
// to set the component parameters.
func (c *Client) Terms(ctx context.Context, query Queryer) (*Response, error) {
	url := c.requestURL(c.paths.terms, queryOf(query))
	startTime := time.Now()

	resp, span, err := c.call(ctx, http.MethodGet, url, "", nil)

	c.sendOperationStats(ctx, &QueryLog{Type: "Terms", URL: url}, startTime, "terms", span)

	return resp, err
}

// SpellCheck runs the query against the spell handler. Combine with
// Query.Spellcheck to set the component parameters.
func (c *Client) SpellCheck(ctx context.Context, query Queryer) (*Response, error) {
	url := c.requestURL(c.paths.spell, queryOf(query))
	startTime := time.Now()

	resp, span, err := c.call(ctx, http.MethodGet, url, "", nil)

	c.sendOperationStats(ctx, &QueryLog{Type: "SpellCheck", URL: url}, startTime, "spellcheck", span)

	return resp, err
}

// Suggest runs the query against the suggest handler. Combine with
// Query.Suggest to set the component parameters.
func (c *Client) Suggest(ctx context.Context, query Queryer) (*Response, error) {
	url := c.requestURL(c.paths.suggest, queryOf(query))
	startTime := time.Now()

	resp, span, err := c.call(ctx, http.MethodGet, url, "", nil)

	c.sendOperationStats(ctx, &QueryLog{Type: "Suggest", URL: url}, startTime, "suggest", span)

	return resp, err
}

// MoreLikeThis runs the query against the mlt handler. Combine with
// Query.MoreLikeThis to set the component parameters.
func (c *Client) MoreLikeThis(ctx context.Context, query Queryer) (*Response, error) {
	url := c.requestURL(c.paths.mlt, queryOf(query))
	startTime := time.Now()

	resp, span, err := c.call(ctx, http.MethodGet, url, "", nil)

	c.sendOperationStats(ctx, &QueryLog{Type: "MoreLikeThis", URL: url}, startTime, "mlt", span)

	return resp, err
}
