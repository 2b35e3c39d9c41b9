package solr

import (
	"context"
	"net/http"
	"time"
)

// Schema retrieves the core's entire schema: fields, field types, dynamic
// rules and copy field rules.
func (c *Client) Schema(ctx context.Context) (*Response, error) {
	url := c.requestURL(c.paths.schema, "")
	startTime := time.Now()

	resp, span, err := c.call(ctx, http.MethodGet, url, "", nil)

	c.sendOperationStats(ctx, &QueryLog{Type: "Schema", URL: url}, startTime, "schema", span)

	return resp, err
}

// SchemaFields retrieves the field definitions of the core's schema.
func (c *Client) SchemaFields(ctx context.Context) (*Response, error) {
	url := c.requestURL(c.paths.schemaFields, "")
	startTime := time.Now()

	resp, span, err := c.call(ctx, http.MethodGet, url, "", nil)

	c.sendOperationStats(ctx, &QueryLog{Type: "SchemaFields", URL: url}, startTime, "schema-fields", span)

	return resp, err
}

// ModifySchema posts schema commands such as add-field, replace-field and
// delete-field:
//
//	client.ModifySchema(ctx, map[string]any{
//		"add-field": map[string]any{"name": "genre", "type": "string", "stored": true},
//	})
func (c *Client) ModifySchema(ctx context.Context, commands any) (*Response, error) {
	url := c.requestURL(c.paths.schema, "")
	startTime := time.Now()

	resp, span, err := c.call(ctx, http.MethodPost, url, "", commands)

	c.sendOperationStats(ctx, &QueryLog{Type: "ModifySchema", URL: url}, startTime, "modify-schema", span)

	return resp, err
}
