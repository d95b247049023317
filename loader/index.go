package loader

var _strategies map[string]strategy = map[string]strategy{
	HTML:   (*Loader).loadHTML,
	CSS:    (*Loader).loadCSS,
	Image:  (*Loader).loadImage,
	Script: (*Loader).loadScript,
	Module: (*Loader).loadModule,
	JSON:   (*Loader).loadJSON,
	XML:    (*Loader).loadXML,
}

func Strategies() map[string]strategy {
	return _strategies
}
