package solr

import (
	"encoding/json"
	"fmt"
)

// Response stores the response from Solr. Code is the HTTP status and Data
// the decoded JSON body. Error statuses still produce a Response, so callers
// can inspect the body the server sent with them.
type Response struct {
	Code int
	Data any
}

// ResponseHeader is the responseHeader block present in most Solr responses.
type ResponseHeader struct {
	Status int
	QTime  int
}

// Header extracts the responseHeader block. ok is false when the body has
// none.
func (r *Response) Header() (ResponseHeader, bool) {
	body, ok := r.Data.(map[string]any)
	if !ok {
		return ResponseHeader{}, false
	}

	header, ok := body["responseHeader"].(map[string]any)
	if !ok {
		return ResponseHeader{}, false
	}

	var h ResponseHeader

	if v, ok := header["status"].(float64); ok {
		h.Status = int(v)
	}

	if v, ok := header["QTime"].(float64); ok {
		h.QTime = int(v)
	}

	return h, true
}

// NumFound extracts response.numFound, the total hit count of a search. ok
// is false when the body has no response block.
func (r *Response) NumFound() (int, bool) {
	body, ok := r.Data.(map[string]any)
	if !ok {
		return 0, false
	}

	result, ok := body["response"].(map[string]any)
	if !ok {
		return 0, false
	}

	n, ok := result["numFound"].(float64)
	if !ok {
		return 0, false
	}

	return int(n), true
}

// Docs extracts response.docs, the matched documents of a search. ok is
// false when the body has no response block.
func (r *Response) Docs() ([]any, bool) {
	body, ok := r.Data.(map[string]any)
	if !ok {
		return nil, false
	}

	result, ok := body["response"].(map[string]any)
	if !ok {
		return nil, false
	}

	docs, ok := result["docs"].([]any)
	if !ok {
		return nil, false
	}

	return docs, true
}

// Decode unmarshals the response body into target, for callers that want
// typed documents instead of walking Data.
func (r *Response) Decode(target any) error {
	b, err := json.Marshal(r.Data)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, target)
}

// ServerError reports the error block of the response, nil when there is
// none. The client never turns these into error returns, so callers that
// care check here.
func (r *Response) ServerError() *ServerError {
	return serverError(r.Code, r.Data)
}

// ServerError is the error block Solr returns for failed requests, e.g. a
// malformed query or an unknown field.
type ServerError struct {
	// HTTPCode is the status the error arrived with.
	HTTPCode int
	// Code is the code field of the error block.
	Code int
	// Message is the msg field of the error block.
	Message string
	// Metadata lists the error classes reported by the server.
	Metadata []string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("solr: %s (code %d)", e.Message, e.Code)
}

// serverError extracts the error block from a decoded body, nil when the
// body has none.
func serverError(httpCode int, data any) *ServerError {
	body, ok := data.(map[string]any)
	if !ok {
		return nil
	}

	block, ok := body["error"].(map[string]any)
	if !ok {
		return nil
	}

	serverErr := &ServerError{HTTPCode: httpCode}

	if v, ok := block["msg"].(string); ok {
		serverErr.Message = v
	}

	if v, ok := block["code"].(float64); ok {
		serverErr.Code = int(v)
	}

	if meta, ok := block["metadata"].([]any); ok {
		for _, m := range meta {
			if s, ok := m.(string); ok {
				serverErr.Metadata = append(serverErr.Metadata, s)
			}
		}
	}

	return serverErr
}
