package solr

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// param is a single query string pair. Pairs render in insertion order and
// keys may repeat, which url.Values cannot express since Encode sorts keys.
type param struct {
	key   string
	value string
}

// Query builds the query string for the search family of operations. Every
// setter appends pairs and returns the receiver, so calls chain:
//
//	q := solr.NewQuery().Q("title:go").Rows(20).FilterQuery("in_stock:true")
//
// The zero Query renders to an empty string, which the client treats as the
// match-all query.
type Query struct {
	params []param
}

// NewQuery returns an empty query builder.
func NewQuery() *Query {
	return &Query{}
}

// Query returns an empty query builder, a convenience for call chains that
// start from the client.
func (c *Client) Query() *Query {
	return NewQuery()
}

func (q *Query) add(key, value string) *Query {
	q.params = append(q.params, param{key: key, value: value})
	return q
}

func (q *Query) addInt(key string, value int) *Query {
	return q.add(key, strconv.Itoa(value))
}

func (q *Query) addBool(key string, value bool) *Query {
	return q.add(key, strconv.FormatBool(value))
}

func (q *Query) addFloat(key string, value float64) *Query {
	return q.add(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// Q sets the main query parameter.
func (q *Query) Q(query string) *Query {
	return q.add("q", query)
}

// QFields sets the main query from field/value pairs joined with AND, e.g.
// {"region": "US", "like_count": "10"} becomes q=like_count:10 AND region:US.
// Keys are emitted in sorted order.
func (q *Query) QFields(fields map[string]string) *Query {
	return q.add("q", fieldQuery(fields))
}

// FilterQuery appends an fq clause. Call it repeatedly to stack filters.
func (q *Query) FilterQuery(clause string) *Query {
	return q.add("fq", clause)
}

// Fields sets the fl parameter listing the fields to return.
func (q *Query) Fields(fields ...string) *Query {
	return q.add("fl", strings.Join(fields, ","))
}

// Start sets the offset of the first document to return.
func (q *Query) Start(n int) *Query {
	return q.addInt("start", n)
}

// Rows sets the maximum number of documents to return.
func (q *Query) Rows(n int) *Query {
	return q.addInt("rows", n)
}

// Sort sets the sort clause, e.g. "price desc" or "score desc,id asc".
func (q *Query) Sort(clause string) *Query {
	return q.add("sort", clause)
}

// DefaultField sets the df parameter, the field searched when the query
// gives none.
func (q *Query) DefaultField(field string) *Query {
	return q.add("df", field)
}

// DefType selects the query parser, e.g. "edismax".
func (q *Query) DefType(parser string) *Query {
	return q.add("defType", parser)
}

// RequestHandler sets the qt parameter, overriding the handler for this
// request only.
func (q *Query) RequestHandler(handler string) *Query {
	return q.add("qt", handler)
}

// Format sets the wt parameter, which the client otherwise fills with
// wt=json. Response bodies are decoded as JSON no matter the writer, so an
// override that does not produce JSON fails the call with ErrDecodeResponse.
func (q *Query) Format(wt string) *Query {
	return q.add("wt", wt)
}

// Param appends an arbitrary pair, for parameters without a dedicated
// setter. Pairs keep their insertion order in the rendered query string.
func (q *Query) Param(key, value string) *Query {
	return q.add(key, value)
}

// Params appends a pair per map entry, keys in sorted order.
func (q *Query) Params(params map[string]string) *Query {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		q.add(k, params[k])
	}

	return q
}

// TermsOptions configure the terms component. Zero fields are omitted.
type TermsOptions struct {
	// Field is the field to enumerate terms from, the terms.fl parameter.
	Field    string
	Prefix   string
	Regex    string
	Lower    string
	Upper    string
	MinCount int
	MaxCount int
	// Limit caps the number of terms returned, the server default is 10.
	Limit int
	// Sort orders terms by "count" or "index".
	Sort string
	Raw  bool
}

// Terms enables the terms component with the given options.
func (q *Query) Terms(opts TermsOptions) *Query {
	q.addBool("terms", true)

	if opts.Field != "" {
		q.add("terms.fl", opts.Field)
	}

	if opts.Prefix != "" {
		q.add("terms.prefix", opts.Prefix)
	}

	if opts.Regex != "" {
		q.add("terms.regex", opts.Regex)
	}

	if opts.Lower != "" {
		q.add("terms.lower", opts.Lower)
	}

	if opts.Upper != "" {
		q.add("terms.upper", opts.Upper)
	}

	if opts.MinCount > 0 {
		q.addInt("terms.mincount", opts.MinCount)
	}

	if opts.MaxCount > 0 {
		q.addInt("terms.maxcount", opts.MaxCount)
	}

	if opts.Limit > 0 {
		q.addInt("terms.limit", opts.Limit)
	}

	if opts.Sort != "" {
		q.add("terms.sort", opts.Sort)
	}

	if opts.Raw {
		q.addBool("terms.raw", true)
	}

	return q
}

// MoreLikeThisOptions configure the mlt component. Zero fields are omitted.
type MoreLikeThisOptions struct {
	// Fields lists the fields similarity is computed on, the mlt.fl
	// parameter.
	Fields        []string
	Count         int
	MinTermFreq   int
	MinDocFreq    int
	MinWordLength int
	MaxWordLength int
	MaxQueryTerms int
	MaxTokens     int
	Boost         bool
	// QueryFields weights fields for the generated query, e.g.
	// "title^10 text".
	QueryFields string
}

// MoreLikeThis enables the mlt component with the given options.
func (q *Query) MoreLikeThis(opts MoreLikeThisOptions) *Query {
	q.addBool("mlt", true)

	if len(opts.Fields) > 0 {
		q.add("mlt.fl", strings.Join(opts.Fields, ","))
	}

	if opts.Count > 0 {
		q.addInt("mlt.count", opts.Count)
	}

	if opts.MinTermFreq > 0 {
		q.addInt("mlt.mintf", opts.MinTermFreq)
	}

	if opts.MinDocFreq > 0 {
		q.addInt("mlt.mindf", opts.MinDocFreq)
	}

	if opts.MinWordLength > 0 {
		q.addInt("mlt.minwl", opts.MinWordLength)
	}

	if opts.MaxWordLength > 0 {
		q.addInt("mlt.maxwl", opts.MaxWordLength)
	}

	if opts.MaxQueryTerms > 0 {
		q.addInt("mlt.maxqt", opts.MaxQueryTerms)
	}

	if opts.MaxTokens > 0 {
		q.addInt("mlt.maxntp", opts.MaxTokens)
	}

	if opts.Boost {
		q.addBool("mlt.boost", true)
	}

	if opts.QueryFields != "" {
		q.add("mlt.qf", opts.QueryFields)
	}

	return q
}

// SpellcheckOptions configure the spellcheck component. Zero fields are
// omitted.
type SpellcheckOptions struct {
	// Query is the term to check, the spellcheck.q parameter.
	Query             string
	Build             bool
	Reload            bool
	Collate           bool
	MaxCollations     int
	MaxCollationTries int
	Count             int
	Dictionary        string
	Accuracy          float64
	OnlyMorePopular   bool
	ExtendedResults   bool
}

// Spellcheck enables the spellcheck component with the given options.
func (q *Query) Spellcheck(opts SpellcheckOptions) *Query {
	q.addBool("spellcheck", true)

	if opts.Query != "" {
		q.add("spellcheck.q", opts.Query)
	}

	if opts.Build {
		q.addBool("spellcheck.build", true)
	}

	if opts.Reload {
		q.addBool("spellcheck.reload", true)
	}

	if opts.Collate {
		q.addBool("spellcheck.collate", true)
	}

	if opts.MaxCollations > 0 {
		q.addInt("spellcheck.maxCollations", opts.MaxCollations)
	}

	if opts.MaxCollationTries > 0 {
		q.addInt("spellcheck.maxCollationTries", opts.MaxCollationTries)
	}

	if opts.Count > 0 {
		q.addInt("spellcheck.count", opts.Count)
	}

	if opts.Dictionary != "" {
		q.add("spellcheck.dictionary", opts.Dictionary)
	}

	if opts.Accuracy > 0 {
		q.addFloat("spellcheck.accuracy", opts.Accuracy)
	}

	if opts.OnlyMorePopular {
		q.addBool("spellcheck.onlyMorePopular", true)
	}

	if opts.ExtendedResults {
		q.addBool("spellcheck.extendedResults", true)
	}

	return q
}

// SuggestOptions configure the suggest component. Zero fields are omitted.
type SuggestOptions struct {
	// Query is the input to suggest completions for, the suggest.q
	// parameter.
	Query      string
	Dictionary string
	Count      int
	Build      bool
	// ContextFilter restricts suggestions by context field, the
	// suggest.cfq parameter.
	ContextFilter string
}

// Suggest enables the suggest component with the given options.
func (q *Query) Suggest(opts SuggestOptions) *Query {
	q.addBool("suggest", true)

	if opts.Query != "" {
		q.add("suggest.q", opts.Query)
	}

	if opts.Dictionary != "" {
		q.add("suggest.dictionary", opts.Dictionary)
	}

	if opts.Count > 0 {
		q.addInt("suggest.count", opts.Count)
	}

	if opts.Build {
		q.addBool("suggest.build", true)
	}

	if opts.ContextFilter != "" {
		q.add("suggest.cfq", opts.ContextFilter)
	}

	return q
}

// FacetOptions configure faceting. Zero fields are omitted.
type FacetOptions struct {
	// Query is a facet.query clause counting documents that match it.
	Query string
	// Fields lists fields to facet on, one facet.field pair per entry.
	Fields   []string
	Prefix   string
	Sort     string
	Limit    int
	Offset   int
	MinCount int
	Missing  bool
	Method   string
	// Pivot renders a facet.pivot pair with the fields comma joined.
	Pivot         []string
	PivotMinCount int
}

// Facet enables faceting with the given options.
func (q *Query) Facet(opts FacetOptions) *Query {
	q.addBool("facet", true)

	if opts.Query != "" {
		q.add("facet.query", opts.Query)
	}

	for _, f := range opts.Fields {
		q.add("facet.field", f)
	}

	if opts.Prefix != "" {
		q.add("facet.prefix", opts.Prefix)
	}

	if opts.Sort != "" {
		q.add("facet.sort", opts.Sort)
	}

	if opts.Limit != 0 {
		q.addInt("facet.limit", opts.Limit)
	}

	if opts.Offset > 0 {
		q.addInt("facet.offset", opts.Offset)
	}

	if opts.MinCount > 0 {
		q.addInt("facet.mincount", opts.MinCount)
	}

	if opts.Missing {
		q.addBool("facet.missing", true)
	}

	if opts.Method != "" {
		q.add("facet.method", opts.Method)
	}

	if len(opts.Pivot) > 0 {
		q.add("facet.pivot", strings.Join(opts.Pivot, ","))
	}

	if opts.PivotMinCount > 0 {
		q.addInt("facet.pivot.mincount", opts.PivotMinCount)
	}

	return q
}

// GroupOptions configure result grouping. Zero fields are omitted.
type GroupOptions struct {
	// Field groups results by field value.
	Field  string
	Limit  int
	Offset int
	Sort   string
	// Format is "grouped" or "simple".
	Format       string
	Main         bool
	NGroups      bool
	Truncate     bool
	Facet        bool
	CachePercent int
}

// Group enables result grouping with the given options.
func (q *Query) Group(opts GroupOptions) *Query {
	q.addBool("group", true)

	if opts.Field != "" {
		q.add("group.field", opts.Field)
	}

	if opts.Limit > 0 {
		q.addInt("group.limit", opts.Limit)
	}

	if opts.Offset > 0 {
		q.addInt("group.offset", opts.Offset)
	}

	if opts.Sort != "" {
		q.add("group.sort", opts.Sort)
	}

	if opts.Format != "" {
		q.add("group.format", opts.Format)
	}

	if opts.Main {
		q.addBool("group.main", true)
	}

	if opts.NGroups {
		q.addBool("group.ngroups", true)
	}

	if opts.Truncate {
		q.addBool("group.truncate", true)
	}

	if opts.Facet {
		q.addBool("group.facet", true)
	}

	if opts.CachePercent > 0 {
		q.addInt("group.cache.percent", opts.CachePercent)
	}

	return q
}

// HighlightOptions configure highlighting. Zero fields are omitted.
type HighlightOptions struct {
	// Fields lists the fields to highlight, the hl.fl parameter.
	Fields []string
	// Query overrides the highlighted terms, the hl.q parameter.
	Query                string
	Snippets             int
	FragSize             int
	SimplePre            string
	SimplePost           string
	RequireFieldMatch    bool
	UsePhraseHighlighter bool
	HighlightMultiTerm   bool
}

// Highlight enables highlighting with the given options.
func (q *Query) Highlight(opts HighlightOptions) *Query {
	q.addBool("hl", true)

	if len(opts.Fields) > 0 {
		q.add("hl.fl", strings.Join(opts.Fields, ","))
	}

	if opts.Query != "" {
		q.add("hl.q", opts.Query)
	}

	if opts.Snippets > 0 {
		q.addInt("hl.snippets", opts.Snippets)
	}

	if opts.FragSize > 0 {
		q.addInt("hl.fragsize", opts.FragSize)
	}

	if opts.SimplePre != "" {
		q.add("hl.simple.pre", opts.SimplePre)
	}

	if opts.SimplePost != "" {
		q.add("hl.simple.post", opts.SimplePost)
	}

	if opts.RequireFieldMatch {
		q.addBool("hl.requireFieldMatch", true)
	}

	if opts.UsePhraseHighlighter {
		q.addBool("hl.usePhraseHighlighter", true)
	}

	if opts.HighlightMultiTerm {
		q.addBool("hl.highlightMultiTerm", true)
	}

	return q
}

// String renders the pairs as a percent-encoded query string, preserving
// insertion order and repeated keys.
func (q *Query) String() string {
	if q == nil {
		return ""
	}

	var sb strings.Builder

	for i, p := range q.params {
		if i > 0 {
			sb.WriteByte('&')
		}

		sb.WriteString(url.QueryEscape(p.key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.value))
	}

	return sb.String()
}

// fieldQuery joins field/value pairs into an AND query, keys sorted so the
// output is deterministic.
func fieldQuery(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+fields[k])
	}

	return strings.Join(parts, " AND ")
}
