package loader

import (
	"github.com/featherframe/feather-loader/config"
)

// loadImage points an image probe at the URL; the document's cache makes
// repeated loads of the same image cheap.
func (l *Loader) loadImage(opts config.RequestOptionsInterface) (any, error) {
	el := l.doc.CreateElement("img")
	el.SetAttribute("src", opts.Url())
	applyAttributes(el, opts.Attributes())

	if err := awaitLoad(el, opts.Context().InsertionPoint()); err != nil {
		return nil, err
	}
	return opts.Url(), nil
}
