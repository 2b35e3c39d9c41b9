package solr

import "errors"

var (
	// ErrNoDocumentIDs is returned by DeleteByIDs when the id list is empty.
	ErrNoDocumentIDs = errors.New("solr: no document ids given")
	// ErrEmptyDeleteQuery is returned by Delete and DeleteByFields when the
	// query resolves to nothing.
	ErrEmptyDeleteQuery = errors.New("solr: empty delete query")
	// ErrEncodeRequest wraps a request body that cannot be marshaled.
	ErrEncodeRequest = errors.New("solr: encode request body")
	// ErrDecodeResponse wraps a response body that is not valid JSON.
	ErrDecodeResponse = errors.New("solr: decode response body")
)
