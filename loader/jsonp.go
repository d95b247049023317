package loader

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/featherframe/feather-loader/config"
	"github.com/google/uuid"
)

// loadJSONP loads via an injected script whose URL names a single-use
// callback. The callback registration and the element are removed
// regardless of outcome.
func (l *Loader) loadJSONP(opts config.RequestOptionsInterface) (any, error) {
	callback := "featherloader_cb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	delivered := make(chan any, 1)
	l.doc.RegisterCallback(callback, func(data any) {
		delivered <- data
	})
	defer l.doc.RemoveCallback(callback)

	params := map[string]any{}
	for key, value := range opts.Params() {
		params[key] = value
	}
	params["callback"] = callback

	el := l.doc.CreateElement("script")
	el.SetAttribute("src", appendQuery(opts.Url(), EncodeParams(params)))
	applyAttributes(el, opts.Attributes())
	defer el.Remove()

	if err := awaitLoad(el, opts.Context().InsertionPoint()); err != nil {
		return nil, err
	}
	select {
	case data := <-delivered:
		return data, nil
	default:
		return nil, fmt.Errorf("jsonp callback %s never fired", callback)
	}
}

// EncodeParams renders params as a query string. Nested maps encode as
// bracketed keys ("outer[inner]=v"), a structured "json" value is
// serialized before encoding, values are percent-encoded, keys are
// emitted in sorted order and the trailing "&" is trimmed.
func EncodeParams(params map[string]any) string {
	var b strings.Builder
	encodeParams(&b, "", params)
	return strings.TrimSuffix(b.String(), "&")
}

func encodeParams(b *strings.Builder, prefix string, params map[string]any) {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := params[key]
		name := key
		if prefix != "" {
			name = prefix + "[" + key + "]"
		}
		if key == "json" {
			switch value.(type) {
			case map[string]any, []any:
				if encoded, err := json.Marshal(value); err == nil {
					value = string(encoded)
				}
			}
		}
		if nested, ok := value.(map[string]any); ok {
			encodeParams(b, name, nested)
			continue
		}
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(url.QueryEscape(fmt.Sprintf("%v", value)))
		b.WriteString("&")
	}
}
