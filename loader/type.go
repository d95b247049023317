package loader

import (
	"github.com/featherframe/feather-loader/config"
)

// Resource kinds with a loading strategy.
const (
	HTML   = "html"
	CSS    = "css"
	Image  = "image"
	Script = "js"
	Module = "module"
	JSON   = "json"
	XML    = "xml"
)

// Methods with loader-level meaning; anything else passes through to the
// transport untouched.
const (
	MethodGet   = "GET"
	MethodJSONP = "JSONP"
)

type strategy func(*Loader, config.RequestOptionsInterface) (any, error)
