package loader

import (
	"regexp"

	"github.com/featherframe/feather-loader/config"
)

var templateMarker = regexp.MustCompile(`(?s)<template\b[^>]*\bkey="([^"]+)"[^>]*>(.*?)</template>`)

// loadHTML fetches the document text. When the text carries one or more
// template markers the result is a key → inner-text mapping, otherwise
// the raw text.
func (l *Loader) loadHTML(opts config.RequestOptionsInterface) (any, error) {
	text, err := l.fetch(opts)
	if err != nil {
		return nil, err
	}

	matches := templateMarker.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return text, nil
	}
	templates := make(map[string]string, len(matches))
	for _, match := range matches {
		templates[match[1]] = match[2]
	}
	return templates, nil
}
