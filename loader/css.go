package loader

import (
	"github.com/featherframe/feather-loader/config"
)

// loadCSS injects a stylesheet link into the request context and
// resolves with the URL once the element reports load. The link stays in
// the tree.
func (l *Loader) loadCSS(opts config.RequestOptionsInterface) (any, error) {
	el := l.doc.CreateElement("link")
	el.SetAttribute("rel", "stylesheet")
	el.SetAttribute("type", "text/css")
	el.SetAttribute("href", opts.Url())
	applyAttributes(el, opts.Attributes())

	if err := awaitLoad(el, opts.Context().InsertionPoint()); err != nil {
		return nil, err
	}
	return opts.Url(), nil
}
