package loader

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/featherframe/feather-loader/config"
	"github.com/featherframe/feather-loader/dom"
	_http "github.com/featherframe/feather-loader/http"
)

// fetch runs the request's transport and returns the response text.
// Params ride the query string on GET and the body on everything else;
// extra passthrough query parameters are appended either way.
func (l *Loader) fetch(opts config.RequestOptionsInterface) (string, error) {
	uri := opts.Url()

	var body io.Reader
	headers := map[string]string{}
	for key, value := range opts.ExtraHeaders() {
		headers[key] = value
	}

	if params := opts.Params(); len(params) > 0 {
		encoded := EncodeParams(params)
		if opts.Method() == MethodGet {
			uri = appendQuery(uri, encoded)
		} else {
			body = strings.NewReader(encoded)
			if _, ok := headers["Content-Type"]; !ok {
				headers["Content-Type"] = "application/x-www-form-urlencoded"
			}
		}
	}
	if query := opts.Query(); query != nil {
		for key, values := range query.All() {
			for _, value := range values {
				uri = appendQuery(uri, url.QueryEscape(key)+"="+url.QueryEscape(value))
			}
		}
	}

	res, err := l.doc.Fetch(uri, &_http.Options{
		Method:          opts.Method(),
		Headers:         headers,
		Compress:        true,
		Timeout:         opts.RequestTimeout(),
		Body:            body,
		Jar:             opts.Jar(),
		TLSClientConfig: opts.TLSClientConfig(),
	})
	if err != nil {
		return "", err
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	if res.BodyBuffer == nil {
		return "", nil
	}
	return res.BodyBuffer.String(), nil
}

func appendQuery(uri string, qs string) string {
	if qs == "" {
		return uri
	}
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	return uri + sep + qs
}

func applyAttributes(el *dom.Element, attributes map[string]string) {
	for name, value := range attributes {
		el.SetAttribute(name, value)
	}
}

// awaitLoad appends el into parent and blocks until the element settles
// with either "load" or "error". A context resolving to no insertion
// point (a component whose element is detached) settles as a failure.
func awaitLoad(el *dom.Element, parent *dom.Element) error {
	if parent == nil {
		return fmt.Errorf("context resolves to no insertion point")
	}
	settled := make(chan error, 2)
	el.Once("load", func(...any) {
		settled <- nil
	})
	el.Once("error", func(args ...any) {
		settled <- settleError(args)
	})
	parent.AppendChild(el)
	return <-settled
}

func settleError(args []any) error {
	if len(args) > 0 {
		if err, ok := args[0].(error); ok {
			return err
		}
	}
	return fmt.Errorf("element error")
}
