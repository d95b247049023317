package http

import (
	"compress/flate"
	"compress/gzip"
	"crypto/tls"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/zishang520/engine.io/types"
)

type Response struct {
	*http.Response

	BodyBuffer types.BufferInterface
}

// IsSuccess reports whether the response carries a non-error status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode < 400
}

type Options struct {
	Method          string
	Headers         map[string]string
	Compress        bool
	Timeout         time.Duration
	Body            io.Reader
	Jar             http.CookieJar
	TLSClientConfig *tls.Config
}

type Request struct {
	uri     string
	options *Options
}

// Request constructor
func NewRequest(uri string, opts *Options) (*Response, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Method == "" {
		opts.Method = http.MethodGet
	}

	r := &Request{}
	r.uri = uri
	r.options = opts

	return r.create()
}

func (r *Request) create() (*Response, error) {
	client := &http.Client{}
	if r.options.Jar != nil {
		client.Jar = r.options.Jar
	}
	if r.options.TLSClientConfig != nil {
		client.Transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: r.options.TLSClientConfig,
		}
	}
	if r.options.Timeout > 0 {
		client.Timeout = r.options.Timeout
	}

	request, err := http.NewRequest(strings.ToUpper(r.options.Method), r.uri, r.options.Body)
	if err != nil {
		return nil, err
	}
	for key, value := range r.options.Headers {
		request.Header.Set(key, value)
	}
	if _, hasContentType := request.Header["Content-Type"]; r.options.Body != nil && !hasContentType {
		request.Header.Set("Content-Type", "text/plain;charset=UTF-8")
	}
	request.Header.Set("Accept", "*/*")
	if r.options.Compress {
		request.Header.Set("Accept-Encoding", "gzip, deflate, br")
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, err
	}

	res := &Response{Response: response}

	// apparently, Body can be nil in some cases
	if response.Body != nil {
		defer response.Body.Close()

		body, err := decodeBody(response)
		if err != nil {
			return nil, err
		}
		res.BodyBuffer = body
	}
	return res, nil
}

// decodeBody buffers the response body, undoing any content encoding the
// server applied.
func decodeBody(response *http.Response) (types.BufferInterface, error) {
	body := types.NewStringBuffer(nil)

	var reader io.Reader = response.Body
	encoded := true
	switch response.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(response.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		fl := flate.NewReader(response.Body)
		defer fl.Close()
		reader = fl
	case "br":
		reader = brotli.NewReader(response.Body)
	default:
		encoded = false
	}

	if _, err := io.Copy(body, reader); err != nil {
		return nil, err
	}
	if encoded {
		response.Header.Del("Content-Encoding")
		response.Header.Del("Content-Length")
		response.ContentLength = -1
		response.Uncompressed = true
	}

	return body, nil
}
