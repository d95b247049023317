package loader

import (
	"github.com/featherframe/feather-loader/config"
)

// loadXML fetches like json but parses the body into an XML document
// tree, falling back to the raw text when it does not parse.
func (l *Loader) loadXML(opts config.RequestOptionsInterface) (any, error) {
	text, err := l.fetch(opts)
	if err != nil {
		return nil, err
	}
	doc, err := l.doc.ParseXML(text)
	if err != nil {
		return text, nil
	}
	return doc, nil
}
