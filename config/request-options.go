package config

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/featherframe/feather-loader/dom"
	"github.com/zishang520/engine.io/utils"
)

// RequestOptions is the normalized form of one load request. Only Url is
// required; the loader fills the rest in place during normalization, so
// a caller handing over an options object must treat it as mutated.
type RequestOptions struct {

	// The resource location. Required.
	url *string

	// Where injected loading elements are appended. Anything resolving
	// to an insertion point is accepted; the loader defaults this to the
	// document head.
	context dom.InsertionPoint

	// The resource kind ("html", "css", "image", "js", "module", "json",
	// "xml"). When unset it is inferred from the URL's path extension.
	kind *string

	// HTTP verb, plus the pseudo-method "JSONP".
	// @default "GET"
	method *string

	// Query/body values; nested maps encode as bracketed keys.
	params map[string]any

	// Extra attributes applied to any injected loading element.
	attributes map[string]string

	// Extra query parameters passed through to the transport untouched.
	query *utils.ParameterBag

	// Headers passed through to the transport with each request.
	extraHeaders map[string]string

	// Timeout for the underlying transport request (0 means none).
	requestTimeout *time.Duration

	// Cookie jar passed through to the transport.
	jar http.CookieJar

	// TLSClientConfig specifies the TLS configuration to use.
	// If nil, the default configuration is used.
	tlsClientConfig *tls.Config
}

// RequestOptions constructor.
func NewRequestOptions() *RequestOptions {
	return &RequestOptions{}
}

func (o *RequestOptions) Url() string {
	if o.url == nil {
		return ""
	}
	return *o.url
}
func (o *RequestOptions) GetRawUrl() *string {
	return o.url
}
func (o *RequestOptions) SetUrl(url string) {
	o.url = &url
}

func (o *RequestOptions) Context() dom.InsertionPoint {
	return o.context
}
func (o *RequestOptions) GetRawContext() dom.InsertionPoint {
	return o.context
}
func (o *RequestOptions) SetContext(context dom.InsertionPoint) {
	o.context = context
}

func (o *RequestOptions) Kind() string {
	if o.kind == nil {
		return ""
	}
	return *o.kind
}
func (o *RequestOptions) GetRawKind() *string {
	return o.kind
}
func (o *RequestOptions) SetKind(kind string) {
	o.kind = &kind
}

func (o *RequestOptions) Method() string {
	if o.method == nil {
		return ""
	}
	return *o.method
}
func (o *RequestOptions) GetRawMethod() *string {
	return o.method
}
func (o *RequestOptions) SetMethod(method string) {
	o.method = &method
}

func (o *RequestOptions) Params() map[string]any {
	return o.params
}
func (o *RequestOptions) GetRawParams() map[string]any {
	return o.params
}
func (o *RequestOptions) SetParams(params map[string]any) {
	o.params = params
}

func (o *RequestOptions) Attributes() map[string]string {
	return o.attributes
}
func (o *RequestOptions) GetRawAttributes() map[string]string {
	return o.attributes
}
func (o *RequestOptions) SetAttributes(attributes map[string]string) {
	o.attributes = attributes
}

func (o *RequestOptions) Query() *utils.ParameterBag {
	return o.query
}
func (o *RequestOptions) GetRawQuery() *utils.ParameterBag {
	return o.query
}
func (o *RequestOptions) SetQuery(query *utils.ParameterBag) {
	o.query = query
}

func (o *RequestOptions) ExtraHeaders() map[string]string {
	return o.extraHeaders
}
func (o *RequestOptions) GetRawExtraHeaders() map[string]string {
	return o.extraHeaders
}
func (o *RequestOptions) SetExtraHeaders(extraHeaders map[string]string) {
	o.extraHeaders = extraHeaders
}

func (o *RequestOptions) RequestTimeout() time.Duration {
	if o.requestTimeout == nil {
		return 0
	}
	return *o.requestTimeout
}
func (o *RequestOptions) GetRawRequestTimeout() *time.Duration {
	return o.requestTimeout
}
func (o *RequestOptions) SetRequestTimeout(requestTimeout time.Duration) {
	o.requestTimeout = &requestTimeout
}

func (o *RequestOptions) Jar() http.CookieJar {
	return o.jar
}
func (o *RequestOptions) GetRawJar() http.CookieJar {
	return o.jar
}
func (o *RequestOptions) SetJar(jar http.CookieJar) {
	o.jar = jar
}

func (o *RequestOptions) TLSClientConfig() *tls.Config {
	return o.tlsClientConfig
}
func (o *RequestOptions) GetRawTLSClientConfig() *tls.Config {
	return o.tlsClientConfig
}
func (o *RequestOptions) SetTLSClientConfig(tlsClientConfig *tls.Config) {
	o.tlsClientConfig = tlsClientConfig
}
