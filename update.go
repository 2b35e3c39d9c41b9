package solr

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// UpdateOptions carry the URL parameters of the update family of operations.
// A nil options value means commit immediately, matching what the update
// handlers do when called without options.
type UpdateOptions struct {
	// Commit makes the change visible to searchers before returning.
	Commit bool
	// SoftCommit makes the change visible without flushing to stable
	// storage.
	SoftCommit bool
	// CommitWithin asks the server to commit within the given number of
	// milliseconds. Zero omits the parameter.
	CommitWithin int
	// Params carries additional URL parameters, keys emitted in sorted
	// order.
	Params map[string]string
}

// updateQuery renders options to the update query string. nil defaults to
// commit=true.
func updateQuery(options *UpdateOptions) string {
	if options == nil {
		return "commit=true"
	}

	parts := make([]string, 0, 4)

	if options.Commit {
		parts = append(parts, "commit=true")
	}

	if options.SoftCommit {
		parts = append(parts, "softCommit=true")
	}

	if options.CommitWithin > 0 {
		parts = append(parts, "commitWithin="+strconv.Itoa(options.CommitWithin))
	}

	keys := make([]string, 0, len(options.Params))
	for k := range options.Params {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(options.Params[k]))
	}

	return strings.Join(parts, "&")
}

type addCommand struct {
	Doc       any  `json:"doc"`
	Overwrite bool `json:"overwrite"`
}

type addBody struct {
	Add addCommand `json:"add"`
}

type deleteQuery struct {
	Query string `json:"query"`
}

type deleteByQueryBody struct {
	Delete deleteQuery `json:"delete"`
}

type deleteID struct {
	ID string `json:"id"`
}

type deleteByIDBody struct {
	Delete []deleteID `json:"delete"`
}

// Update indexes a single document. The document is wrapped in an add
// command with overwrite enabled, so an existing document with the same
// unique key is replaced.
func (c *Client) Update(ctx context.Context, doc any, options *UpdateOptions) (*Response, error) {
	url := c.requestURL(c.paths.update, updateQuery(options))
	startTime := time.Now()

	body := addBody{Add: addCommand{Doc: doc, Overwrite: true}}

	resp, span, err := c.call(ctx, http.MethodPost, url, "", body)

	c.sendOperationStats(ctx, &QueryLog{Type: "Update", URL: url}, startTime, "update", span)

	return resp, err
}

// UpdateCommands sends a preassembled update body verbatim, for callers that
// build their own command list, e.g. mixed add and delete commands or an
// array of documents.
func (c *Client) UpdateCommands(ctx context.Context, commands any, options *UpdateOptions) (*Response, error) {
	url := c.requestURL(c.paths.update, updateQuery(options))
	startTime := time.Now()

	resp, span, err := c.call(ctx, http.MethodPost, url, "", commands)

	c.sendOperationStats(ctx, &QueryLog{Type: "UpdateCommands", URL: url}, startTime, "update-commands", span)

	return resp, err
}

// UpdateExtract indexes a rich-text or binary document through the extract
// handler. contentType tells the server how to parse the stream; empty means
// application/octet-stream and leaves detection to the server. A nil doc
// sends an empty add command instead, for callers that point the handler at
// the content with stream.url or stream.file parameters. Use options.Params
// to pass those and literal.* fields such as the document id.
func (c *Client) UpdateExtract(ctx context.Context, contentType string, doc io.Reader, options *UpdateOptions) (*Response, error) {
	url := c.requestURL(c.paths.extract, updateQuery(options))
	startTime := time.Now()

	var body any = doc

	if doc == nil {
		body = addBody{Add: addCommand{Overwrite: true}}
		contentType = ""
	} else if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, span, err := c.call(ctx, http.MethodPost, url, contentType, body)

	c.sendOperationStats(ctx, &QueryLog{Type: "UpdateExtract", URL: url}, startTime, "update-extract", span)

	return resp, err
}

// Delete removes the documents matching the given query, e.g. "id:1" or
// "*:*" to empty the core.
func (c *Client) Delete(ctx context.Context, query string, options *UpdateOptions) (*Response, error) {
	if query == "" {
		return nil, ErrEmptyDeleteQuery
	}

	url := c.requestURL(c.paths.update, updateQuery(options))
	startTime := time.Now()

	body := deleteByQueryBody{Delete: deleteQuery{Query: query}}

	resp, span, err := c.call(ctx, http.MethodPost, url, "", body)

	c.sendOperationStats(ctx, &QueryLog{Type: "Delete", URL: url}, startTime, "delete", span)

	return resp, err
}

// DeleteByFields removes the documents matching all given field/value pairs,
// joined into a single AND query with keys in sorted order.
func (c *Client) DeleteByFields(ctx context.Context, fields map[string]string, options *UpdateOptions) (*Response, error) {
	if len(fields) == 0 {
		return nil, ErrEmptyDeleteQuery
	}

	url := c.requestURL(c.paths.update, updateQuery(options))
	startTime := time.Now()

	body := deleteByQueryBody{Delete: deleteQuery{Query: fieldQuery(fields)}}

	resp, span, err := c.call(ctx, http.MethodPost, url, "", body)

	c.sendOperationStats(ctx, &QueryLog{Type: "DeleteByFields", URL: url}, startTime, "delete-by-fields", span)

	return resp, err
}

// DeleteByIDs removes the documents with the given unique keys. An empty
// list is an error before any request is made.
func (c *Client) DeleteByIDs(ctx context.Context, ids []string, options *UpdateOptions) (*Response, error) {
	if len(ids) == 0 {
		return nil, ErrNoDocumentIDs
	}

	url := c.requestURL(c.paths.update, updateQuery(options))
	startTime := time.Now()

	body := deleteByIDBody{Delete: make([]deleteID, 0, len(ids))}
	for _, id := range ids {
		body.Delete = append(body.Delete, deleteID{ID: id})
	}

	resp, span, err := c.call(ctx, http.MethodPost, url, "", body)

	c.sendOperationStats(ctx, &QueryLog{Type: "DeleteByIDs", URL: url}, startTime, "delete-by-ids", span)

	return resp, err
}

// Commit flushes pending changes and opens a new searcher.
func (c *Client) Commit(ctx context.Context) (*Response, error) {
	url := c.requestURL(c.paths.update, "commit=true")
	startTime := time.Now()

	resp, span, err := c.call(ctx, http.MethodPost, url, "", struct{}{})

	c.sendOperationStats(ctx, &QueryLog{Type: "Commit", URL: url}, startTime, "commit", span)

	return resp, err
}

// SoftCommit makes pending changes visible without flushing them to stable
// storage.
func (c *Client) SoftCommit(ctx context.Context) (*Response, error) {
	url := c.requestURL(c.paths.update, "softCommit=true")
	startTime := time.Now()

	resp, span, err := c.call(ctx, http.MethodPost, url, "", struct{}{})

	c.sendOperationStats(ctx, &QueryLog{Type: "SoftCommit", URL: url}, startTime, "soft-commit", span)

	return resp, err
}
