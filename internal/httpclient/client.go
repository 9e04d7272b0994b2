package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"

	"github.com/aleister1102/linkcheck/internal/common"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
)

const maxErrorBodySnippet = 1024

// HTTPClient wraps net/http.Client with the defaults shared by page fetches, probes and webhooks.
type HTTPClient struct {
	client     *http.Client
	config     HTTPClientConfig
	logger     zerolog.Logger
	bufferPool sync.Pool
}

// NewHTTPClient creates a new HTTP client with the given configuration using net/http
func NewHTTPClient(config HTTPClientConfig, logger zerolog.Logger) (*HTTPClient, error) {
	logger = logger.With().Str("module", "HTTPClient").Logger()

	transport := &http.Transport{
		MaxIdleConns:          config.MaxIdleConns,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		MaxConnsPerHost:       config.MaxConnsPerHost,
		IdleConnTimeout:       config.IdleConnTimeout,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ExpectContinueTimeout: config.ExpectContinueTimeout,
		DialContext: (&net.Dialer{
			Timeout:   config.DialTimeout,
			KeepAlive: config.KeepAlive,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify,
		},
	}

	if config.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
		} else {
			logger.Debug().Msg("HTTP/2 support enabled")
		}
	}

	if config.Proxy != "" {
		proxyURL, err := url.Parse(config.Proxy)
		if err != nil {
			return nil, common.WrapError(err, "failed to parse proxy URL")
		}
		transport.Proxy = http.ProxyURL(proxyURL)
		logger.Info().Str("proxy", config.Proxy).Msg("HTTP client configured with proxy")
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}

	if !config.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	} else if config.MaxRedirects > 0 {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= config.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", config.MaxRedirects)
			}
			return nil
		}
	}

	logger.Debug().
		Dur("timeout", config.Timeout).
		Bool("insecure_skip_verify", config.InsecureSkipVerify).
		Bool("follow_redirects", config.FollowRedirects).
		Int("max_redirects", config.MaxRedirects).
		Bool("http2_enabled", config.EnableHTTP2).
		Msg("HTTP client created")

	return &HTTPClient{
		client: client,
		config: config,
		logger: logger,
		bufferPool: sync.Pool{
			New: func() interface{} {
				b := make([]byte, 32*1024)
				return &b
			},
		},
	}, nil
}

// IsSuccessStatus reports whether code counts as a completed request: 2xx, or a 3xx the client chose not to follow.
func IsSuccessStatus(code int) bool {
	return code >= 200 && code < 400
}

// Do performs a single HTTP request and buffers the response body.
// Transport failures are returned as *NetworkError; any status code is returned as a response.
func (c *HTTPClient) Do(req *HTTPRequest) (*HTTPResponse, error) {
	httpReq, err := c.newRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, NewNetworkError(req.URL, "HTTP request failed", err)
	}
	defer resp.Body.Close()

	// One byte past the cap tells a truncated body from one that fits exactly.
	var body io.Reader = resp.Body
	if c.config.MaxContentSize > 0 {
		body = io.LimitReader(resp.Body, int64(c.config.MaxContentSize)+1)
	}

	bufPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(bufPtr)
	buf := bytes.NewBuffer((*bufPtr)[:0])

	if _, err := io.Copy(buf, body); err != nil {
		return nil, NewNetworkError(req.URL, "failed to read response body", err)
	}

	data := buf.Bytes()
	truncated := c.config.MaxContentSize > 0 && len(data) > c.config.MaxContentSize
	if truncated {
		data = data[:c.config.MaxContentSize]
	}

	// Copy out so the pooled buffer can be reused.
	bodyBytes := make([]byte, len(data))
	copy(bodyBytes, data)

	httpResp := &HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    make(map[string]string),
		Body:       bodyBytes,
		Truncated:  truncated,
	}
	for key, values := range resp.Header {
		if len(values) > 0 {
			httpResp.Headers[key] = values[0]
		}
	}

	return httpResp, nil
}

// FetchContentResult holds results from FetchContent.
type FetchContentResult struct {
	Content        []byte
	ContentType    string
	HTTPStatusCode int
	Truncated      bool // Content was cut at MaxContentSize
}

// FetchContent GETs rawURL and returns its body. A status outside 200-399 yields *HTTPError.
func (c *HTTPClient) FetchContent(ctx context.Context, rawURL string) (*FetchContentResult, error) {
	resp, err := c.Do(&HTTPRequest{
		URL:     rawURL,
		Method:  http.MethodGet,
		Context: ctx,
	})
	if err != nil {
		c.logger.Error().Err(err).Str("url", rawURL).Msg("Failed to execute HTTP request")
		return nil, err
	}

	result := &FetchContentResult{
		ContentType:    resp.Headers["Content-Type"],
		HTTPStatusCode: resp.StatusCode,
	}

	if !IsSuccessStatus(resp.StatusCode) {
		c.logger.Warn().Str("url", rawURL).Int("status_code", resp.StatusCode).Msg("Received non-OK HTTP status")
		errorBody := resp.Body
		if len(errorBody) > maxErrorBodySnippet {
			errorBody = errorBody[:maxErrorBodySnippet]
		}
		result.Content = errorBody
		return result, NewHTTPErrorWithURL(resp.StatusCode, string(errorBody), rawURL)
	}

	result.Content = resp.Body
	result.Truncated = resp.Truncated
	if resp.Truncated {
		c.logger.Warn().
			Str("url", rawURL).
			Int("max_content_size", c.config.MaxContentSize).
			Msg("Response body exceeded the size limit and was truncated; references past the limit are not checked")
	}

	c.logger.Debug().
		Str("url", rawURL).
		Int("content_size", len(result.Content)).
		Str("content_type", result.ContentType).
		Msg("Successfully fetched content")

	return result, nil
}

// Probe issues method against rawURL and discards the body.
// It returns nil when the final status is 2xx/3xx, *HTTPError for other statuses and *NetworkError for transport failures.
func (c *HTTPClient) Probe(ctx context.Context, method, rawURL string) error {
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := c.newRequest(&HTTPRequest{URL: rawURL, Method: method, Context: ctx})
	if err != nil {
		return err
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return NewNetworkError(rawURL, "probe failed", err)
	}
	defer resp.Body.Close()

	// Drain so the connection returns to the pool; a truncated read is not a probe failure.
	var drain io.Reader = resp.Body
	if c.config.MaxContentSize > 0 {
		drain = io.LimitReader(resp.Body, int64(c.config.MaxContentSize))
	}
	_, _ = io.Copy(io.Discard, drain)

	if !IsSuccessStatus(resp.StatusCode) {
		return NewHTTPErrorWithURL(resp.StatusCode, "", rawURL)
	}
	return nil
}

func (c *HTTPClient) newRequest(req *HTTPRequest) (*http.Request, error) {
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, req.Body)
	if err != nil {
		return nil, NewNetworkError(req.URL, "failed to create HTTP request", err)
	}

	// Config headers first so per-request headers win.
	for key, value := range c.config.CustomHeaders {
		httpReq.Header.Set(key, value)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if c.config.UserAgent != "" && httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "*/*")
	}

	return httpReq, nil
}
