package solr

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SchemaPaths(t *testing.T) {
	c, rec := newRecordingClient(t, Config{Core: "products"}, successBody)

	_, err := c.Schema(context.TODO())

	require.NoError(t, err, "TEST Failed.\n")
	assert.Equal(t, http.MethodGet, rec.method, "TEST Failed.\n")
	assert.Equal(t, "/solr/products/schema", rec.path, "TEST Failed.\n")
	assert.Equal(t, "wt=json", rec.query, "TEST Failed.\n")

	_, err = c.SchemaFields(context.TODO())

	require.NoError(t, err, "TEST Failed.\n")
	assert.Equal(t, "/solr/products/schema/fields", rec.path, "TEST Failed.\n")
}

func Test_ModifySchemaBody(t *testing.T) {
	c, rec := newRecordingClient(t, Config{Core: "products"}, successBody)

	commands := map[string]any{
		"add-field": map[string]any{"name": "genre", "type": "string", "stored": true},
	}

	resp, err := c.ModifySchema(context.TODO(), commands)

	require.NoError(t, err, "TEST Failed.\n")
	require.NotNil(t, resp, "TEST Failed.\n")
	assert.Equal(t, http.MethodPost, rec.method, "TEST Failed.\n")
	assert.Equal(t, "/solr/products/schema", rec.path, "TEST Failed.\n")
	assert.JSONEq(t, `{"add-field":{"name":"genre","type":"string","stored":true}}`, rec.body, "TEST Failed.\n")
}
