package solr

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_UpdateQuery(t *testing.T) {
	testCases := []struct {
		desc     string
		options  *UpdateOptions
		expected string
	}{
		{"nil commits immediately", nil, "commit=true"},
		{"zero options", &UpdateOptions{}, ""},
		{"commit", &UpdateOptions{Commit: true}, "commit=true"},
		{"soft commit", &UpdateOptions{SoftCommit: true}, "softCommit=true"},
		{"commit within", &UpdateOptions{CommitWithin: 5000}, "commitWithin=5000"},
		{"commit and commit within", &UpdateOptions{Commit: true, CommitWithin: 5000}, "commit=true&commitWithin=5000"},
		{"params are sorted", &UpdateOptions{Params: map[string]string{"overwrite": "false", "literal.id": "doc1"}},
			"literal.id=doc1&overwrite=false"},
	}

	for i, tc := range testCases {
		assert.Equal(t, tc.expected, updateQuery(tc.options), "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}

func Test_UpdateBody(t *testing.T) {
	c, rec := newRecordingClient(t, Config{Core: "products"}, successBody)

	resp, err := c.Update(context.TODO(), map[string]any{"id": "1234567", "cat": []string{"Book"}}, nil)

	require.NoError(t, err, "TEST Failed.\n")
	require.NotNil(t, resp, "TEST Failed.\n")
	assert.Equal(t, http.MethodPost, rec.method, "TEST Failed.\n")
	assert.Equal(t, "/solr/products/update", rec.path, "TEST Failed.\n")
	assert.Equal(t, "commit=true&wt=json", rec.query, "TEST Failed.\n")
	assert.JSONEq(t, `{"add":{"doc":{"id":"1234567","cat":["Book"]},"overwrite":true}}`, rec.body, "TEST Failed.\n")
}

func Test_UpdateSoftCommitOptions(t *testing.T) {
	c, rec := newRecordingClient(t, Config{Core: "products"}, successBody)

	_, err := c.Update(context.TODO(), map[string]any{"id": "1"}, &UpdateOptions{SoftCommit: true})

	require.NoError(t, err, "TEST Failed.\n")
	assert.Equal(t, "softCommit=true&wt=json", rec.query, "TEST Failed.\n")
}

func Test_UpdateCommandsBody(t *testing.T) {
	c, rec := newRecordingClient(t, Config{Core: "products"}, successBody)

	commands := []any{
		map[string]any{"id": "1", "title": "first"},
		map[string]any{"id": "2", "title": "second"},
	}

	_, err := c.UpdateCommands(context.TODO(), commands, nil)

	require.NoError(t, err, "TEST Failed.\n")
	assert.JSONEq(t, `[{"id":"1","title":"first"},{"id":"2","title":"second"}]`, rec.body, "TEST Failed.\n")
}

func Test_UpdateExtract(t *testing.T) {
	c, rec := newRecordingClient(t, Config{Core: "products"}, successBody)

	options := &UpdateOptions{Commit: true, Params: map[string]string{"literal.id": "pdf-1"}}

	_, err := c.UpdateExtract(context.TODO(), "text/plain", strings.NewReader("plain text document"), options)

	require.NoError(t, err, "TEST Failed.\n")
	assert.Equal(t, "/solr/products/update/extract", rec.path, "TEST Failed.\n")
	assert.Equal(t, "commit=true&literal.id=pdf-1&wt=json", rec.query, "TEST Failed.\n")
	assert.Equal(t, "text/plain", rec.header.Get("Content-Type"), "TEST Failed.\n")
	assert.Equal(t, "plain text document", rec.body, "TEST Failed.\n")
}

func Test_UpdateExtractDefaultContentType(t *testing.T) {
	c, rec := newRecordingClient(t, Config{Core: "products"}, successBody)

	_, err := c.UpdateExtract(context.TODO(), "", strings.NewReader("%PDF-1.4"), nil)

	require.NoError(t, err, "TEST Failed.\n")
	assert.Equal(t, "application/octet-stream", rec.header.Get("Content-Type"), "TEST Failed.\n")
}

func Test_UpdateExtractNoDocument(t *testing.T) {
	c, rec := newRecordingClient(t, Config{Core: "products"}, successBody)

	options := &UpdateOptions{Commit: true, Params: map[string]string{"stream.url": "http://files.local/a.pdf"}}

	_, err := c.UpdateExtract(context.TODO(), "", nil, options)

	require.NoError(t, err, "TEST Failed.\n")
	assert.Equal(t, "commit=true&stream.url=http%3A%2F%2Ffiles.local%2Fa.pdf&wt=json", rec.query, "TEST Failed.\n")
	assert.Equal(t, "application/json", rec.header.Get("Content-Type"), "TEST Failed.\n")
	assert.JSONEq(t, `{"add":{"doc":null,"overwrite":true}}`, rec.body, "TEST Failed.\n")
}

func Test_DeleteBody(t *testing.T) {
	c, rec := newRecordingClient(t, Config{Core: "products"}, successBody)

	_, err := c.Delete(context.TODO(), "id:1234", nil)

	require.NoError(t, err, "TEST Failed.\n")
	assert.Equal(t, "/solr/products/update", rec.path, "TEST Failed.\n")
	assert.Equal(t, "commit=true&wt=json", rec.query, "TEST Failed.\n")
	assert.JSONEq(t, `{"delete":{"query":"id:1234"}}`, rec.body, "TEST Failed.\n")
}

func Test_DeleteEmptyQuery(t *testing.T) {
	c, rec := newRecordingClient(t, Config{Core: "products"}, successBody)

	resp, err := c.Delete(context.TODO(), "", nil)

	require.ErrorIs(t, err, ErrEmptyDeleteQuery, "TEST Failed.\n")
	assert.Nil(t, resp, "TEST Failed.\n")
	assert.Empty(t, rec.method, "TEST Failed.\n")
}

func Test_DeleteByFieldsBody(t *testing.T) {
	c, rec := newRecordingClient(t, Config{Core: "products"}, successBody)

	_, err := c.DeleteByFields(context.TODO(), map[string]string{"price": "5", "cat": "Book"}, nil)

	require.NoError(t, err, "TEST Failed.\n")
	assert.JSONEq(t, `{"delete":{"query":"cat:Book AND price:5"}}`, rec.body, "TEST Failed.\n")
}

func Test_DeleteByFieldsEmpty(t *testing.T) {
	c, rec := newRecordingClient(t, Config{Core: "products"}, successBody)

	resp, err := c.DeleteByFields(context.TODO(), nil, nil)

	require.ErrorIs(t, err, ErrEmptyDeleteQuery, "TEST Failed.\n")
	assert.Nil(t, resp, "TEST Failed.\n")
	assert.Empty(t, rec.method, "TEST Failed.\n")
}

func Test_DeleteByIDsBody(t *testing.T) {
	c, rec := newRecordingClient(t, Config{Core: "products"}, successBody)

	_, err := c.DeleteByIDs(context.TODO(), []string{"1234", "12345"}, nil)

	require.NoError(t, err, "TEST Failed.\n")
	assert.JSONEq(t, `{"delete":[{"id":"1234"},{"id":"12345"}]}`, rec.body, "TEST Failed.\n")
}

func Test_DeleteByIDsEmpty(t *testing.T) {
	c, rec := newRecordingClient(t, Config{Core: "products"}, successBody)

	resp, err := c.DeleteByIDs(context.TODO(), nil, nil)

	require.ErrorIs(t, err, ErrNoDocumentIDs, "TEST Failed.\n")
	assert.Nil(t, resp, "TEST Failed.\n")
	assert.Empty(t, rec.method, "TEST Failed.\n")
}

func Test_CommitQueries(t *testing.T) {
	c, rec := newRecordingClient(t, Config{Core: "products"}, successBody)

	_, err := c.Commit(context.TODO())

	require.NoError(t, err, "TEST Failed.\n")
	assert.Equal(t, "commit=true&wt=json", rec.query, "TEST Failed.\n")
	assert.Equal(t, "{}", rec.body, "TEST Failed.\n")

	_, err = c.SoftCommit(context.TODO())

	require.NoError(t, err, "TEST Failed.\n")
	assert.Equal(t, "softCommit=true&wt=json", rec.query, "TEST Failed.\n")
	assert.Equal(t, "{}", rec.body, "TEST Failed.\n")
}
