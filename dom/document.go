package dom

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"
	"sync"

	_http "github.com/featherframe/feather-loader/http"
	"github.com/zishang520/engine.io/log"
)

var document_log = log.NewLog("feather-loader:dom")

// ScriptProgram produces the payload an injected script delivers once it
// has run; src is the fetched script source.
type ScriptProgram func(src string) any

// HeadlessDocument is the default Document: a head element, a fetch
// backed by the http package, a registry-based module importer and
// script table, and a per-document JSONP callback table. Image probes
// are cached by URL, so repeated loads of the same image skip the
// network.
type HeadlessDocument struct {
	baseURL *url.URL
	head    *Element

	mu         sync.RWMutex
	callbacks  map[string]func(any)
	modules    map[string]map[string]any
	scripts    map[string]ScriptProgram
	imageCache map[string]bool
}

// HeadlessDocument constructor. base is the URL relative references
// resolve against; an empty or unparseable base leaves references as-is.
func NewHeadlessDocument(base string) *HeadlessDocument {
	d := &HeadlessDocument{
		callbacks:  map[string]func(any){},
		modules:    map[string]map[string]any{},
		scripts:    map[string]ScriptProgram{},
		imageCache: map[string]bool{},
	}
	if base != "" {
		if parsed, err := url.Parse(base); err == nil {
			d.baseURL = parsed
		}
	}
	d.head = NewElement("head")
	d.head.setOwnerDocument(d)
	return d
}

func (d *HeadlessDocument) Head() *Element {
	return d.head
}

func (d *HeadlessDocument) CreateElement(tag string) *Element {
	e := NewElement(tag)
	e.setOwnerDocument(d)
	return e
}

func (d *HeadlessDocument) ResolveURL(ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil || parsed.IsAbs() || d.baseURL == nil {
		return ref
	}
	return d.baseURL.ResolveReference(parsed).String()
}

func (d *HeadlessDocument) Fetch(uri string, opts *_http.Options) (*_http.Response, error) {
	return _http.NewRequest(d.ResolveURL(uri), opts)
}

// RegisterModule makes namespace importable under uri.
func (d *HeadlessDocument) RegisterModule(uri string, namespace map[string]any) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.modules[d.ResolveURL(uri)] = namespace
}

func (d *HeadlessDocument) ImportModule(uri string) (map[string]any, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	namespace, ok := d.modules[d.ResolveURL(uri)]
	if !ok {
		return nil, fmt.Errorf("module %s is not registered", uri)
	}
	return namespace, nil
}

// RegisterScript installs the program a script element delivers its
// payload through. filename is the derived form produced by ScriptName.
func (d *HeadlessDocument) RegisterScript(filename string, program ScriptProgram) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.scripts[filename] = program
}

func (d *HeadlessDocument) RegisterCallback(name string, fn func(any)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.callbacks[name] = fn
}

func (d *HeadlessDocument) RemoveCallback(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.callbacks, name)
}

func (d *HeadlessDocument) callback(name string) (func(any), bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	fn, ok := d.callbacks[name]
	return fn, ok
}

func (d *HeadlessDocument) script(filename string) (ScriptProgram, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	program, ok := d.scripts[filename]
	return program, ok
}

func (d *HeadlessDocument) imageCached(uri string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.imageCache[uri]
}

func (d *HeadlessDocument) cacheImage(uri string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.imageCache[uri] = true
}

// ScriptName derives the delivery key for a script URL: the path
// basename with the minified infix dropped ("path/app.min.js" → "app.js").
func ScriptName(uri string) string {
	p := uri
	if parsed, err := url.Parse(uri); err == nil {
		p = parsed.Path
	}
	return strings.Replace(path.Base(p), ".min.", ".", 1)
}

// LoadElement settles an appended element: it fetches the element's
// target and emits "load" or "error" on it.
func (d *HeadlessDocument) LoadElement(el *Element) {
	switch el.TagName() {
	case "link":
		href, _ := el.GetAttribute("href")
		if err := d.probe(href); err != nil {
			el.Emit("error", err)
			return
		}
		el.Emit("load")
	case "img":
		src, _ := el.GetAttribute("src")
		if d.imageCached(src) {
			document_log.Debug("image %s served from cache", src)
			el.Emit("load")
			return
		}
		if err := d.probe(src); err != nil {
			el.Emit("error", err)
			return
		}
		d.cacheImage(src)
		el.Emit("load")
	case "script":
		d.loadScript(el)
	default:
		document_log.Debug("nothing to load for a %s element", el.TagName())
	}
}

// probe fetches uri and reduces the outcome to success or failure.
func (d *HeadlessDocument) probe(uri string) error {
	if uri == "" {
		return fmt.Errorf("element has no target")
	}
	res, err := d.Fetch(uri, &_http.Options{Compress: true})
	if err != nil {
		return err
	}
	if !res.IsSuccess() {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return nil
}

func (d *HeadlessDocument) loadScript(el *Element) {
	src, _ := el.GetAttribute("src")
	if src == "" {
		el.Emit("error", fmt.Errorf("element has no target"))
		return
	}
	res, err := d.Fetch(src, &_http.Options{Compress: true})
	if err != nil {
		el.Emit("error", err)
		return
	}
	if !res.IsSuccess() {
		el.Emit("error", fmt.Errorf("unexpected status %d", res.StatusCode))
		return
	}
	body := ""
	if res.BodyBuffer != nil {
		body = res.BodyBuffer.String()
	}

	// A script URL naming a registered callback is a JSONP response of
	// the form name(<json>): unwrap it and fire the callback.
	if name, ok := callbackName(src); ok {
		if fn, registered := d.callback(name); registered {
			data, err := unwrapJSONP(body)
			if err != nil {
				el.Emit("error", err)
				return
			}
			fn(data)
			el.Emit("load")
			return
		}
	}

	if program, ok := d.script(ScriptName(src)); ok {
		el.Deliver(program(body))
	} else {
		el.Deliver(body)
	}
	el.Emit("load")
}

func callbackName(uri string) (string, bool) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", false
	}
	name := parsed.Query().Get("callback")
	return name, name != ""
}

func unwrapJSONP(body string) (any, error) {
	open := strings.Index(body, "(")
	end := strings.LastIndex(body, ")")
	if open < 0 || end < open {
		return nil, fmt.Errorf("malformed jsonp response")
	}
	var data any
	if err := json.Unmarshal([]byte(body[open+1:end]), &data); err != nil {
		return nil, err
	}
	return data, nil
}
