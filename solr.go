// Package solr is a client for the Apache Solr HTTP API. It covers the
// select, terms, spell, mlt and suggest search handlers, the JSON update
// handler including delete and commit commands, the extract handler and the
// schema API.
//
// Queries are built with the chainable Query type and sent with a Client:
//
//	client := solr.New(solr.Config{Core: "products"})
//	query := solr.NewQuery().Q("category:book").Rows(10)
//	resp, err := client.Search(context.Background(), query)
package solr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultHost           = "127.0.0.1"
	defaultPort           = "8983"
	defaultRootPath       = "solr"
	defaultProtocol       = "http"
	defaultRequestHandler = "select"
	defaultRequestTimeout = 20 * time.Second
)

// Config holds the connection settings for a Solr server. Zero values fall
// back to a local default installation, so solr.New(solr.Config{}) talks to
// http://127.0.0.1:8983/solr.
type Config struct {
	// Host is the server name or address, without protocol or port.
	Host string
	// Port is the server port, "8983" when unset. "0" omits the port
	// segment entirely, for servers reached through a load balancer.
	Port string
	// Core is the core or collection name requests are scoped to.
	Core string
	// RootPath is the leading path segment of the Solr webapp, "solr" unless
	// the server is deployed under a different context path.
	RootPath string
	// Protocol is either "http" or "https".
	Protocol string

	// User and Password enable HTTP basic authentication. Credentials are
	// only sent when both are non-empty.
	User     string
	Password string

	// RequestHandler is the path segment used by Search, "select" by default.
	RequestHandler string

	// RequestTimeout bounds every request. When zero, the SOLR_REQUEST_TIMEOUT
	// environment variable is consulted per call, then a 20s fallback applies.
	// A context with an earlier deadline always wins.
	RequestTimeout time.Duration

	// Transport overrides the HTTP transport, e.g. to tune connection
	// pooling or TLS settings.
	Transport *http.Transport
}

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues requests against a single Solr core. Construct it with New,
// optionally attach observability with UseLogger, UseMetrics and UseTracer,
// and call Connect to register metrics and probe the server.
//
// Every request asks for the JSON response writer unless its query sets wt
// itself, and response bodies are always decoded as JSON.
type Client struct {
	config Config
	paths  requestPaths

	client  httpClient
	logger  Logger
	metrics Metrics
	tracer  trace.Tracer
}

// requestPaths maps each operation to its URL path segment. Built once in
// New from the configured request handler and never mutated afterwards.
type requestPaths struct {
	search       string
	terms        string
	spell        string
	mlt          string
	suggest      string
	update       string
	extract      string
	ping         string
	system       string
	schema       string
	schemaFields string
}

func newRequestPaths(handler string) requestPaths {
	return requestPaths{
		search:       handler,
		terms:        "terms",
		spell:        "spell",
		mlt:          "mlt",
		suggest:      "suggest",
		update:       "update",
		extract:      "update/extract",
		ping:         "admin/ping",
		system:       "admin/info/system",
		schema:       "schema",
		schemaFields: "schema/fields",
	}
}

// New initializes a Solr client with the provided configuration.
// Usage:
// client := New(config)
// client.UseLogger(loggerInstance)
// client.UseMetrics(metricsInstance)
// client.Connect().
func New(conf Config) *Client {
	if conf.Host == "" {
		conf.Host = defaultHost
	}

	if conf.Port == "" {
		conf.Port = defaultPort
	}

	if conf.RootPath == "" {
		conf.RootPath = defaultRootPath
	}

	if conf.Protocol == "" {
		conf.Protocol = defaultProtocol
	}

	if conf.RequestHandler == "" {
		conf.RequestHandler = defaultRequestHandler
	}

	c := &Client{config: conf, paths: newRequestPaths(conf.RequestHandler)}
	c.client = &http.Client{}

	if conf.Transport != nil {
		c.client = &http.Client{Transport: conf.Transport}
	}

	c.logger = noopLogger{}
	c.metrics = noopMetrics{}

	return c
}

// UseLogger sets the logger for the Solr client which asserts the Logger interface.
func (c *Client) UseLogger(logger any) {
	if l, ok := logger.(Logger); ok {
		c.logger = l
	}
}

// UseMetrics sets the metrics for the Solr client which asserts the Metrics interface.
func (c *Client) UseMetrics(metrics any) {
	if m, ok := metrics.(Metrics); ok {
		c.metrics = m
	}
}

// UseTracer sets the tracer for Solr client.
func (c *Client) UseTracer(tracer any) {
	if tracer, ok := tracer.(trace.Tracer); ok {
		c.tracer = tracer
	}
}

// Connect registers the operation metrics and probes the server with a
// system info request using the configuration the client was created with.
func (c *Client) Connect() {
	c.logger.Debugf("connecting to Solr at %v", c.hostURL())

	solrBuckets := []float64{.05, .075, .1, .125, .15, .2, .3, .5, .75, 1, 2, 3, 4, 5, 7.5, 10}
	c.metrics.NewHistogram("app_solr_stats", "Response time of Solr operations in milliseconds.", solrBuckets...)

	_, err := c.HealthCheck(context.Background())
	if err != nil {
		c.logger.Errorf("error while connecting to Solr: %v", err)
		return
	}

	c.logger.Infof("connected to Solr at %v", c.hostURL())
}

// Health represents the health status of the Solr server.
type Health struct {
	Status  string         `json:"status,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthCheck requests the server-wide system info handler. Unlike every
// other operation it is not scoped to the configured core.
func (c *Client) HealthCheck(ctx context.Context) (any, error) {
	url := c.hostURL() + "/" + c.config.RootPath + "/" + c.paths.system + "?wt=json"

	h := Health{Details: map[string]any{"host": c.hostURL()}}

	startTime := time.Now()

	resp, span, err := c.call(ctx, http.MethodGet, url, "", nil)

	defer c.sendOperationStats(ctx, &QueryLog{Type: "HealthCheck", URL: url}, startTime, "healthcheck", span)

	if err != nil {
		h.Status = "DOWN"
		h.Details["error"] = err.Error()

		return &h, err
	}

	h.Status = "UP"
	h.Details["system"] = resp.Data

	return &h, nil
}

// Ping requests the core's ping handler.
func (c *Client) Ping(ctx context.Context) (*Response, error) {
	url := c.requestURL(c.paths.ping, "")
	startTime := time.Now()

	resp, span, err := c.call(ctx, http.MethodGet, url, "", nil)

	c.sendOperationStats(ctx, &QueryLog{Type: "Ping", URL: url}, startTime, "ping", span)

	return resp, err
}

// hostURL assembles protocol, credentials, host and port. Credentials are
// embedded only when both user and password are set; net/http turns them
// into a basic Authorization header. A Port of "0" skips the port segment.
func (c *Client) hostURL() string {
	auth := ""
	if c.config.User != "" && c.config.Password != "" {
		auth = url.UserPassword(c.config.User, c.config.Password).String() + "@"
	}

	host := c.config.Host
	if c.config.Port != "" && c.config.Port != "0" {
		host += ":" + c.config.Port
	}

	return c.config.Protocol + "://" + auth + host
}

// requestURL joins the host, root path, core and handler path, then appends
// the query string with wt=json added unless the query already carries a wt
// pair. An empty core leaves a double slash in the path, matching how Solr
// resolves a default core.
func (c *Client) requestURL(path, query string) string {
	if !hasParam(query, "wt") {
		if query != "" {
			query += "&"
		}

		query += "wt=json"
	}

	return c.hostURL() + "/" + c.config.RootPath + "/" + c.config.Core + "/" + path + "?" + query
}

func hasParam(query, key string) bool {
	for _, seg := range strings.Split(query, "&") {
		if k, _, _ := strings.Cut(seg, "="); k == key {
			return true
		}
	}

	return false
}

// requestTimeout resolves the per-call timeout: an explicit RequestTimeout
// wins, then the SOLR_REQUEST_TIMEOUT environment variable read per call,
// then the 20s fallback.
func (c *Client) requestTimeout() time.Duration {
	if c.config.RequestTimeout > 0 {
		return c.config.RequestTimeout
	}

	if d, ok := envRequestTimeout(); ok {
		return d
	}

	return defaultRequestTimeout
}

// call forms the http request, makes a call to solr and decodes the JSON
// response. Error statuses are not errors here; the decoded body is handed
// back unchanged and callers inspect it with Response.ServerError.
func (c *Client) call(ctx context.Context, method, url, contentType string, body any) (*Response, trace.Span, error) {
	var span trace.Span

	if c.tracer != nil {
		ctx, span = c.tracer.Start(ctx, fmt.Sprintf("Solr %s", method),
			trace.WithAttributes(
				attribute.String("solr.url", url),
			),
		)
	}

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout())
	defer cancel()

	ctx = httptrace.WithClientTrace(ctx, otelhttptrace.NewClientTrace(ctx))

	req, err := c.createRequest(ctx, method, url, contentType, body)
	if err != nil {
		return nil, span, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, span, err
	}
	defer resp.Body.Close()

	var respBody any

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, span, err
	}

	err = json.Unmarshal(b, &respBody)
	if err != nil {
		return nil, span, fmt.Errorf("%w: %v", ErrDecodeResponse, err)
	}

	if span != nil {
		span.SetAttributes(
			attribute.Int("http.status_code", resp.StatusCode),
		)
	}

	return &Response{resp.StatusCode, respBody}, span, nil
}

func (c *Client) createRequest(ctx context.Context, method, url, contentType string, body any) (*http.Request, error) {
	var reader io.Reader

	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncodeRequest, err)
		}

		c.logger.Debugf("solr %s body: %s", method, buf)

		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json; charset=utf-8")

	if method != http.MethodGet {
		if contentType == "" {
			contentType = "application/json"
		}

		req.Header.Set("Content-Type", contentType)
	}

	return req, nil
}

func (c *Client) sendOperationStats(ctx context.Context, ql *QueryLog, startTime time.Time, method string, span trace.Span) {
	duration := time.Since(startTime).Microseconds()

	ql.Duration = duration

	c.logger.Debug(ql)

	if envDebugQueryTime() {
		c.logger.Infof("solr %v took %vµs", method, duration)
	}

	c.metrics.RecordHistogram(ctx, "app_solr_stats", float64(duration),
		"type", ql.Type)

	if span != nil {
		defer span.End()

		span.SetAttributes(
			attribute.String("solr.type", ql.Type),
			attribute.Int64(fmt.Sprintf("solr.%v.duration", method), duration))
	}
}
