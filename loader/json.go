package loader

import (
	"encoding/json"

	"github.com/featherframe/feather-loader/config"
)

// loadJSON fetches (or, for the JSONP pseudo-method, performs a script
// round trip) and parses the body; an unparseable body resolves as the
// raw text.
func (l *Loader) loadJSON(opts config.RequestOptionsInterface) (any, error) {
	if opts.Method() == MethodJSONP {
		return l.loadJSONP(opts)
	}
	text, err := l.fetch(opts)
	if err != nil {
		return nil, err
	}
	return parseJSON(text), nil
}

func parseJSON(text string) any {
	var data any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return text
	}
	return data
}
