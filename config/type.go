package config

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/featherframe/feather-loader/dom"
	"github.com/zishang520/engine.io/utils"
)

type RequestOptionsInterface interface {
	Url() string
	GetRawUrl() *string
	SetUrl(string)

	Context() dom.InsertionPoint
	GetRawContext() dom.InsertionPoint
	SetContext(dom.InsertionPoint)

	Kind() string
	GetRawKind() *string
	SetKind(string)

	Method() string
	GetRawMethod() *string
	SetMethod(string)

	Params() map[string]any
	GetRawParams() map[string]any
	SetParams(map[string]any)

	Attributes() map[string]string
	GetRawAttributes() map[string]string
	SetAttributes(map[string]string)

	Query() *utils.ParameterBag
	GetRawQuery() *utils.ParameterBag
	SetQuery(*utils.ParameterBag)

	ExtraHeaders() map[string]string
	GetRawExtraHeaders() map[string]string
	SetExtraHeaders(map[string]string)

	RequestTimeout() time.Duration
	GetRawRequestTimeout() *time.Duration
	SetRequestTimeout(time.Duration)

	Jar() http.CookieJar
	GetRawJar() http.CookieJar
	SetJar(http.CookieJar)

	TLSClientConfig() *tls.Config
	GetRawTLSClientConfig() *tls.Config
	SetTLSClientConfig(*tls.Config)
}
