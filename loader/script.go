package loader

import (
	"github.com/featherframe/feather-loader/config"
)

// loadScript injects an async script element, collects the payload the
// script delivered through its element handle and removes the element.
func (l *Loader) loadScript(opts config.RequestOptionsInterface) (any, error) {
	el := l.doc.CreateElement("script")
	el.SetAttribute("src", opts.Url())
	el.SetAttribute("async", "true")
	applyAttributes(el, opts.Attributes())

	if err := awaitLoad(el, opts.Context().InsertionPoint()); err != nil {
		return nil, err
	}
	payload := el.TakeDelivery()
	el.Remove()
	return payload, nil
}
