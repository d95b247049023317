package loader

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/featherframe/feather-loader/config"
	"github.com/featherframe/feather-loader/dom"
	"github.com/featherframe/feather-loader/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testServer records the order requests arrive in and serves a fixed
// body per path; unknown paths get a 404.
type testServer struct {
	*httptest.Server

	mu     sync.Mutex
	order  []string
	hits   map[string]int
	bodies map[string]string
	delays map[string]time.Duration
}

func newTestServer(bodies map[string]string) *testServer {
	ts := &testServer{
		hits:   map[string]int{},
		bodies: bodies,
		delays: map[string]time.Duration{},
	}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.Lock()
		ts.order = append(ts.order, r.URL.Path)
		ts.hits[r.URL.Path]++
		body, ok := ts.bodies[r.URL.Path]
		delay := ts.delays[r.URL.Path]
		ts.mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
	return ts
}

func (ts *testServer) setDelay(path string, delay time.Duration) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.delays[path] = delay
}

func (ts *testServer) requestOrder() []string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]string(nil), ts.order...)
}

func (ts *testServer) hitCount(path string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.hits[path]
}

func newTestLoader(ts *testServer) *Loader {
	return New(dom.NewHeadlessDocument(ts.URL))
}

func TestLoadSingleJSONResolvesScalar(t *testing.T) {
	ts := newTestServer(map[string]string{"/a.json": `{"foo":"bar"}`})
	defer ts.Close()

	res, err := newTestLoader(ts).Load("a.json")
	require.NoError(t, err)

	// a single non-array request is never wrapped in a slice
	assert.Equal(t, map[string]any{"foo": "bar"}, res)
}

func TestLoadUnparseableJSONFallsBackToText(t *testing.T) {
	ts := newTestServer(map[string]string{"/a.json": "not json at all"})
	defer ts.Close()

	res, err := newTestLoader(ts).Load("a.json")
	require.NoError(t, err)
	assert.Equal(t, "not json at all", res)
}

func TestLoadMultipleKeepsPositions(t *testing.T) {
	ts := newTestServer(map[string]string{
		"/a.json": `1`,
		"/b.json": `2`,
		"/c.json": `3`,
	})
	defer ts.Close()

	// the slowest request comes first; positions must not follow
	// completion order
	ts.setDelay("/a.json", 50*time.Millisecond)

	res, err := newTestLoader(ts).Load("a.json", "b.json", "c.json")
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, res)
}

func TestLoadSerialGroupOrder(t *testing.T) {
	ts := newTestServer(map[string]string{
		"/x.css":  "body{}",
		"/y.json": `{"y":true}`,
	})
	defer ts.Close()
	ts.setDelay("/x.css", 30*time.Millisecond)

	res, err := newTestLoader(ts).Load([]any{"x.css", "y.json"})
	require.NoError(t, err)

	// single array request: the result is the group's slice itself
	require.Equal(t, []any{"x.css", map[string]any{"y": true}}, res)
	assert.Equal(t, []string{"/x.css", "/y.json"}, ts.requestOrder())
}

func TestLoadTypedSliceIsSerialGroup(t *testing.T) {
	ts := newTestServer(map[string]string{
		"/x.css":  "body{}",
		"/y.json": `{"y":true}`,
	})
	defer ts.Close()
	ts.setDelay("/x.css", 30*time.Millisecond)

	// a []string request is a serial group like []any
	res, err := newTestLoader(ts).Load([]string{"x.css", "y.json"})
	require.NoError(t, err)

	require.Equal(t, []any{"x.css", map[string]any{"y": true}}, res)
	assert.Equal(t, []string{"/x.css", "/y.json"}, ts.requestOrder())
}

func TestLoadSerialGroupContinuesAfterFailure(t *testing.T) {
	ts := newTestServer(map[string]string{
		"/b.json": `2`,
	})
	defer ts.Close()

	res, err := newTestLoader(ts).Load([]any{"a.json", "b.json"})
	require.Error(t, err)

	group, ok := res.([]any)
	require.True(t, ok)
	require.Len(t, group, 2)

	// the failed member settles in place, the next still runs
	le, ok := group[0].(*errors.LoadError)
	require.True(t, ok)
	assert.Equal(t, "loading of a.json failed", le.Error())
	assert.Equal(t, float64(2), group[1])
	assert.Equal(t, []string{"/a.json", "/b.json"}, ts.requestOrder())
}

func TestLoadFailSlowBatch(t *testing.T) {
	ts := newTestServer(map[string]string{
		"/a.json": `"a"`,
		"/c.json": `"c"`,
	})
	defer ts.Close()
	ts.setDelay("/c.json", 40*time.Millisecond)

	res, err := newTestLoader(ts).Load("a.json", "missing.json", "c.json")
	require.Error(t, err)

	batch, ok := err.(*errors.BatchError)
	require.True(t, ok)

	slots, ok := res.([]any)
	require.True(t, ok)
	require.Len(t, slots, 3)

	assert.Equal(t, "a", slots[0])
	le, ok := slots[1].(*errors.LoadError)
	require.True(t, ok)
	assert.Equal(t, "loading of missing.json failed", le.Error())
	// the slow sibling still settled before rejection
	assert.Equal(t, "c", slots[2])

	assert.Equal(t, res, batch.Result)
}

func TestLoadSingleFailureRejectsWithLeafError(t *testing.T) {
	ts := newTestServer(nil)
	defer ts.Close()

	res, err := newTestLoader(ts).Load("missing.js")
	require.Error(t, err)
	assert.EqualError(t, err, "loading of missing.js failed")

	// the scalar result is the error value itself
	assert.Equal(t, err, res)
}

func TestLoadNestedGroupsEchoShape(t *testing.T) {
	ts := newTestServer(map[string]string{
		"/a.json": `"a"`,
		"/b.json": `"b"`,
		"/c.json": `"c"`,
		"/d.json": `"d"`,
	})
	defer ts.Close()

	// parallel( a, serial( b, parallel( c, d ) ) )
	res, err := newTestLoader(ts).Load(
		"a.json",
		[]any{"b.json", []any{"c.json", "d.json"}},
	)
	require.NoError(t, err)

	assert.Equal(t, []any{
		"a",
		[]any{"b", []any{"c", "d"}},
	}, res)
}

func TestLoadHTMLWithTemplates(t *testing.T) {
	page := `<template key="header"><h1>Hi</h1></template>` +
		`<template id="aside" key="aside"><em>Also</em></template>` +
		`<template key="footer"><p>Bye</p></template>`
	ts := newTestServer(map[string]string{
		"/page.html":  page,
		"/plain.html": "<p>just text</p>",
	})
	defer ts.Close()

	l := newTestLoader(ts)

	res, err := l.Load("page.html")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"header": "<h1>Hi</h1>",
		"aside":  "<em>Also</em>",
		"footer": "<p>Bye</p>",
	}, res)

	res, err = l.Load("plain.html")
	require.NoError(t, err)
	assert.Equal(t, "<p>just text</p>", res)
}

func TestLoadXMLDocument(t *testing.T) {
	ts := newTestServer(map[string]string{
		"/conf.xml": `<config><db host="local">primary</db></config>`,
	})
	defer ts.Close()

	res, err := newTestLoader(ts).Load("conf.xml")
	require.NoError(t, err)

	root, ok := res.(*dom.XMLNode)
	require.True(t, ok)
	assert.Equal(t, "config", root.Name)
	db := root.Find("db")
	require.NotNil(t, db)
	assert.Equal(t, "local", db.Attributes["host"])
	assert.Equal(t, "primary", db.Text)
}

func TestLoadImageTwiceHitsServerOnce(t *testing.T) {
	ts := newTestServer(map[string]string{"/logo.png": "PNG"})
	defer ts.Close()

	l := newTestLoader(ts)

	res, err := l.Load("logo.png")
	require.NoError(t, err)
	assert.Equal(t, "logo.png", res)

	res, err = l.Load("logo.png")
	require.NoError(t, err)
	assert.Equal(t, "logo.png", res)

	assert.Equal(t, 1, ts.hitCount("/logo.png"))
}

func TestLoadScriptDeliversRegisteredPayload(t *testing.T) {
	ts := newTestServer(map[string]string{"/js/app.min.js": "var x=1;"})
	defer ts.Close()

	l := newTestLoader(ts)
	doc := l.Document().(*dom.HeadlessDocument)

	// registered under the derived name: basename, minified infix dropped
	doc.RegisterScript("app.js", func(src string) any {
		return map[string]any{"source": src}
	})

	res, err := l.Load("js/app.min.js")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"source": "var x=1;"}, res)

	// the script element is removed once the payload is collected
	assert.Empty(t, l.Document().Head().Children())
}

func TestLoadScriptWithoutProgramDeliversSource(t *testing.T) {
	ts := newTestServer(map[string]string{"/raw.js": "var y=2;"})
	defer ts.Close()

	res, err := newTestLoader(ts).Load("raw.js")
	require.NoError(t, err)
	assert.Equal(t, "var y=2;", res)
}

func TestLoadCSSLeavesLinkInContext(t *testing.T) {
	ts := newTestServer(map[string]string{"/theme.css": "body{}"})
	defer ts.Close()

	l := newTestLoader(ts)

	opts := config.NewRequestOptions()
	opts.SetUrl("theme.css")
	opts.SetAttributes(map[string]string{"media": "print"})

	res, err := l.Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "theme.css", res)

	children := l.Document().Head().Children()
	require.Len(t, children, 1)
	link := children[0]
	assert.Equal(t, "link", link.TagName())
	href, _ := link.GetAttribute("href")
	assert.Equal(t, "theme.css", href)
	media, _ := link.GetAttribute("media")
	assert.Equal(t, "print", media)
}

// componentInstance stands in for a framework component: anything
// resolving to an insertion point is a valid loading context.
type componentInstance struct {
	element *dom.Element
}

func (c *componentInstance) InsertionPoint() *dom.Element {
	return c.element.Parent()
}

func TestLoadComponentContext(t *testing.T) {
	ts := newTestServer(map[string]string{"/c.css": "i{}"})
	defer ts.Close()

	l := newTestLoader(ts)
	doc := l.Document()

	mount := doc.CreateElement("main")
	inner := doc.CreateElement("section")
	mount.AppendChild(inner)

	opts := config.NewRequestOptions()
	opts.SetUrl("c.css")
	opts.SetContext(&componentInstance{element: inner})

	_, err := l.Load(opts)
	require.NoError(t, err)

	// injected next to the component's element, not into head
	assert.Empty(t, doc.Head().Children())
	tags := []string{}
	for _, child := range mount.Children() {
		tags = append(tags, child.TagName())
	}
	assert.Contains(t, tags, "link")
}

func TestLoadDetachedContextSettlesAsFailure(t *testing.T) {
	ts := newTestServer(map[string]string{"/c.css": "i{}"})
	defer ts.Close()

	l := newTestLoader(ts)

	// a component whose element was never attached resolves to no
	// insertion point; the leaf must fail, not crash
	opts := config.NewRequestOptions()
	opts.SetUrl("c.css")
	opts.SetContext(&componentInstance{element: l.Document().CreateElement("section")})

	res, err := l.Load(opts)
	require.Error(t, err)
	assert.EqualError(t, err, "loading of c.css failed")
	assert.Equal(t, err, res)
}

func TestLoadPostSendsParamsAsBody(t *testing.T) {
	var gotMethod, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer server.Close()

	l := New(dom.NewHeadlessDocument(server.URL))

	opts := config.NewRequestOptions()
	opts.SetUrl("submit.json")
	opts.SetMethod("POST")
	opts.SetParams(map[string]any{"name": "ada", "role": "eng"})

	res, err := l.Load(opts)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, res)
	assert.Equal(t, "POST", gotMethod)
	assert.Equal(t, "name=ada&role=eng", gotBody)
}
