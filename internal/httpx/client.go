package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"iceberg_farmer/internal/logbus"
)

type Options struct {
	// Proxy is an optional forward proxy URL; empty means a direct connection.
	Proxy   string
	Timeout time.Duration
	// Limiter paces outgoing requests when set.
	Limiter *rate.Limiter
	Bus     *logbus.Bus
}

// Client issues requests for one account, through that account's proxy.
type Client struct {
	rc    *resty.Client
	proxy string
}

func New(opts Options) (*Client, error) {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if opts.Proxy != "" {
		u, err := ParseProxy(opts.Proxy)
		if err != nil {
			return nil, err
		}
		tr.Proxy = http.ProxyURL(u)
	} else {
		tr.Proxy = nil
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	rc := resty.NewWithClient(&http.Client{Transport: &decodingTransport{base: tr}}).
		SetTimeout(timeout).
		SetLogger(busLogger{bus: opts.Bus})

	bus := opts.Bus
	limiter := opts.Limiter
	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if limiter != nil {
			if err := limiter.Wait(req.Context()); err != nil {
				return err
			}
		}
		if bus != nil {
			bus.Log(logbus.LevelDebug, "http request", map[string]any{
				"method": req.Method,
				"url":    req.URL,
			})
		}
		return nil
	})

	return &Client{rc: rc, proxy: opts.Proxy}, nil
}

// ParseProxy accepts scheme://[user:pass@]host:port and defaults the scheme to http.
func ParseProxy(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty proxy")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("error parsing proxy URL: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("error parsing proxy URL: missing host in %q", raw)
	}
	switch u.Scheme {
	case "http", "https", "socks5", "socks5h":
	default:
		return nil, fmt.Errorf("error parsing proxy URL: unsupported scheme %q", u.Scheme)
	}
	return u, nil
}

func (c *Client) Proxy() string { return c.proxy }

func (c *Client) Get(ctx context.Context, rawURL string, headers Profile) Result {
	return c.Do(ctx, http.MethodGet, rawURL, nil, headers)
}

func (c *Client) Post(ctx context.Context, rawURL string, body any, headers Profile) Result {
	return c.Do(ctx, http.MethodPost, rawURL, body, headers)
}

func (c *Client) Patch(ctx context.Context, rawURL string, body any, headers Profile) Result {
	return c.Do(ctx, http.MethodPatch, rawURL, body, headers)
}

func (c *Client) Delete(ctx context.Context, rawURL string, headers Profile) Result {
	return c.Do(ctx, http.MethodDelete, rawURL, nil, headers)
}

func (c *Client) Do(ctx context.Context, method, rawURL string, body any, headers Profile) Result {
	req := c.rc.R().
		SetContext(ctx).
		SetHeaders(headers)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, rawURL)
	if err != nil {
		return Result{Success: false, Err: err}
	}
	res := Result{
		Status: resp.StatusCode(),
		Data:   resp.Body(),
	}
	if !resp.IsSuccess() {
		res.Err = &StatusError{Code: res.Status, Body: string(res.Data)}
		return res
	}
	res.Success = true
	return res
}

type ipResponse struct {
	IP string `json:"ip"`
}

// CheckProxyIP asks an IP-echo service for the exit address of proxy. Unlike the
// request methods it returns its failure so the caller can refuse the account.
func CheckProxyIP(ctx context.Context, proxy, checkURL string, timeout time.Duration, bus *logbus.Bus) (string, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c, err := New(Options{Proxy: proxy, Timeout: timeout, Bus: bus})
	if err != nil {
		return "", fmt.Errorf("error checking proxy IP: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res := c.Get(ctx, checkURL, Profile{"Accept": "application/json"})
	if res.Err != nil {
		return "", fmt.Errorf("error checking proxy IP: %w", res.Err)
	}
	if res.Status != http.StatusOK {
		return "", fmt.Errorf("error checking proxy IP: unable to check proxy IP, status code: %d", res.Status)
	}
	var out ipResponse
	if err := res.Decode(&out); err != nil {
		return "", fmt.Errorf("error checking proxy IP: %w", err)
	}
	if strings.TrimSpace(out.IP) == "" {
		return "", errors.New("error checking proxy IP: empty ip in response")
	}
	return out.IP, nil
}

type busLogger struct {
	bus *logbus.Bus
}

func (l busLogger) Errorf(format string, v ...any) { l.log(logbus.LevelError, format, v...) }
func (l busLogger) Warnf(format string, v ...any)  { l.log(logbus.LevelWarn, format, v...) }
func (l busLogger) Debugf(format string, v ...any) { l.log(logbus.LevelDebug, format, v...) }

func (l busLogger) log(level, format string, v ...any) {
	if l.bus == nil {
		return
	}
	l.bus.Log(level, strings.TrimSpace(fmt.Sprintf(format, v...)), map[string]any{"component": "resty"})
}
