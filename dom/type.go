package dom

import (
	_http "github.com/featherframe/feather-loader/http"
)

// Document is the environment the loader runs against. It supplies the
// primitives the strategies need: element creation with an insertion
// tree, a text-fetch, a dynamic-module import, an XML parser and the
// JSONP callback table. Each document keeps its own callback table, so
// concurrently running framework instances never collide.
type Document interface {
	// Document head, the default insertion point.
	Head() *Element
	// Creates a detached element owned by this document.
	CreateElement(tag string) *Element
	// Text-fetch primitive; relative URIs resolve against the document base.
	Fetch(uri string, opts *_http.Options) (*_http.Response, error)
	// Dynamic-module import primitive.
	ImportModule(uri string) (map[string]any, error)
	// XML-parse primitive.
	ParseXML(data string) (*XMLNode, error)
	// Resolves a possibly relative reference against the document base.
	ResolveURL(ref string) string
	// Registers a JSONP callback under a single-use name.
	RegisterCallback(name string, fn func(any))
	// Drops a JSONP callback registration.
	RemoveCallback(name string)
}

// ElementLoader is implemented by documents that asynchronously load an
// element once it is appended into a connected tree.
type ElementLoader interface {
	LoadElement(*Element)
}

// InsertionPoint is anything that can stand in for a DOM location: a
// raw element resolves to itself, a component instance resolves to its
// element's parent.
type InsertionPoint interface {
	InsertionPoint() *Element
}
