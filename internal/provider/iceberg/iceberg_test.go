package iceberg

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iceberg_farmer/internal/config"
	"iceberg_farmer/internal/errs"
	"iceberg_farmer/internal/httpx"
	"iceberg_farmer/internal/model"
)

type recorded struct {
	method string
	path   string
	query  string
	header http.Header
	body   string
}

type fakeUpstream struct {
	mu       sync.Mutex
	calls    []recorded
	handlers map[string]http.HandlerFunc
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, recorded{
		method: r.Method,
		path:   r.URL.Path,
		query:  r.URL.RawQuery,
		header: r.Header.Clone(),
		body:   string(b),
	})
	h := f.handlers[r.Method+" "+r.URL.Path]
	f.mu.Unlock()
	if h == nil {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

func (f *fakeUpstream) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func writeJSON(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

func newProvider(t *testing.T, handlers map[string]http.HandlerFunc) (*IcebergProvider, *fakeUpstream) {
	t.Helper()
	up := &fakeUpstream{handlers: handlers}
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	cfg, err := config.Load("testdata/does-not-exist.yaml")
	require.NoError(t, err)
	cfg.Site.BaseURL = srv.URL
	cfg.Ads.BaseURL = srv.URL
	cfg.Site.TimeoutMs = 5000

	return New(Options{Site: cfg.Site, Ads: cfg.Ads, Proxy: cfg.Proxy}), up
}

var acc = model.Account{Index: 0, Auth: "user=%7B%22id%22%3A1%7D"}

func TestFarmingStatus(t *testing.T) {
	t.Run("empty object means no farm", func(t *testing.T) {
		p, up := newProvider(t, map[string]http.HandlerFunc{
			"GET " + pathFarming: writeJSON(http.StatusOK, map[string]any{}),
		})
		f, err := p.FarmingStatus(context.Background(), acc)
		require.NoError(t, err)
		assert.Nil(t, f)
		assert.Equal(t, acc.Auth, up.last().header.Get("X-Telegram-Auth"))
	})

	t.Run("running farm", func(t *testing.T) {
		p, _ := newProvider(t, map[string]http.HandlerFunc{
			"GET " + pathFarming: writeJSON(http.StatusOK, map[string]any{
				"start_time": "2024-10-01T10:00:00.000000Z",
				"stop_time":  "2024-10-01T16:00:00.000000Z",
			}),
		})
		f, err := p.FarmingStatus(context.Background(), acc)
		require.NoError(t, err)
		require.NotNil(t, f)
		assert.Equal(t, 6*time.Hour, f.Duration())
	})

	t.Run("non 200 status", func(t *testing.T) {
		p, _ := newProvider(t, map[string]http.HandlerFunc{
			"GET " + pathFarming: writeJSON(http.StatusAccepted, map[string]any{}),
		})
		_, err := p.FarmingStatus(context.Background(), acc)
		assert.ErrorIs(t, err, errs.ErrUnexpectedStatus)
	})
}

func TestStartFarming_PermissiveStatus(t *testing.T) {
	p, up := newProvider(t, map[string]http.HandlerFunc{
		"POST " + pathFarming: writeJSON(http.StatusCreated, map[string]any{}),
	})
	_, started, err := p.StartFarming(context.Background(), acc)
	require.NoError(t, err)
	assert.False(t, started)
	assert.JSONEq(t, `{}`, up.last().body)
}

func TestCollectFarming(t *testing.T) {
	p, up := newProvider(t, map[string]http.HandlerFunc{
		"DELETE " + pathFarmCollect: writeJSON(http.StatusOK, map[string]any{}),
	})
	require.NoError(t, p.CollectFarming(context.Background(), acc))
	assert.Equal(t, http.MethodDelete, up.last().method)
}

func TestTasksAndUpdate(t *testing.T) {
	p, up := newProvider(t, map[string]http.HandlerFunc{
		"GET " + pathTasks: writeJSON(http.StatusOK, []map[string]any{
			{"id": 7, "description": "Join channel", "price": 500, "status": "new"},
			{"id": 8, "description": "Follow", "price": 100, "status": "collected"},
		}),
		"PATCH " + pathTasks + "task/7/": writeJSON(http.StatusOK, map[string]any{"success": true}),
		"PATCH " + pathTasks + "task/8/": writeJSON(http.StatusOK, map[string]any{"detail": "nope"}),
	})
	ctx := context.Background()

	tasks, err := p.Tasks(ctx, acc)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "7", tasks[0].ID.String())
	assert.Equal(t, model.TaskStatusNew, tasks[0].Status)

	ok, err := p.UpdateTask(ctx, acc, "7", model.TaskStatusInWork)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"status":"in_work"}`, up.last().body)

	ok, err = p.UpdateTask(ctx, acc, "8", model.TaskStatusInWork)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTasks_AcceptsTextIDsAndPrices(t *testing.T) {
	p, up := newProvider(t, map[string]http.HandlerFunc{
		"GET " + pathTasks: writeJSON(http.StatusOK, []map[string]any{
			{"id": "daily-checkin", "description": "Check in", "price": "100 ICE", "status": "new"},
			{"id": 9, "description": "Boost", "price": 12.5, "status": "new"},
		}),
		"PATCH " + pathTasks + "task/daily-checkin/": writeJSON(http.StatusOK, map[string]any{"success": true}),
	})
	ctx := context.Background()

	tasks, err := p.Tasks(ctx, acc)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "daily-checkin", tasks[0].ID.String())
	assert.Equal(t, "100 ICE", tasks[0].Price.String())
	assert.Equal(t, "9", tasks[1].ID.String())
	assert.Equal(t, "12.5", tasks[1].Price.String())

	ok, err := p.UpdateTask(ctx, acc, tasks[0].ID.String(), model.TaskStatusInWork)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, pathTasks+"task/daily-checkin/", up.last().path)
}

func TestBalance_SingleGet(t *testing.T) {
	p, up := newProvider(t, map[string]http.HandlerFunc{
		"GET " + pathBalance: writeJSON(http.StatusOK, map[string]any{"amount": "1 234.50", "count_reset": 2}),
	})

	bal, err := p.Balance(context.Background(), acc)
	require.NoError(t, err)
	assert.Equal(t, "1 234.50", bal.Amount.String())

	up.mu.Lock()
	calls := append([]recorded(nil), up.calls...)
	up.mu.Unlock()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodGet, calls[0].method)
	assert.Equal(t, pathBalance, calls[0].path)
	assert.Equal(t, acc.Auth, calls[0].header.Get("X-Telegram-Auth"))

	p, _ = newProvider(t, map[string]http.HandlerFunc{
		"GET " + pathBalance: writeJSON(http.StatusOK, map[string]any{"amount": 1500}),
	})
	bal, err = p.Balance(context.Background(), acc)
	require.NoError(t, err)
	assert.Equal(t, "1500", bal.Amount.String())
}

func TestCurrentUser(t *testing.T) {
	p, _ := newProvider(t, map[string]http.HandlerFunc{
		"GET " + pathCurrentUser: writeJSON(http.StatusOK, map[string]any{"adsgram_counter": 19, "chat_id": 5550001}),
	})
	u, err := p.CurrentUser(context.Background(), acc)
	require.NoError(t, err)
	assert.Equal(t, 19, *u.AdsgramCounter)
	assert.Equal(t, "5550001", u.ChatID.String())

	p, _ = newProvider(t, map[string]http.HandlerFunc{
		"GET " + pathCurrentUser: writeJSON(http.StatusOK, map[string]any{"chat_id": 1}),
	})
	_, err = p.CurrentUser(context.Background(), acc)
	assert.ErrorIs(t, err, errs.ErrMissingField)
}

func TestFetchAdAndTrack_UseAdProfile(t *testing.T) {
	var p *IcebergProvider
	var up *fakeUpstream
	p, up = newProvider(t, map[string]http.HandlerFunc{
		"GET " + pathAdv: writeJSON(http.StatusOK, map[string]any{
			"banner": map[string]any{
				"trackings": []map[string]any{
					{"name": "render", "value": "/track/render"},
					{"name": "show", "value": "/track/show"},
					{"name": "reward", "value": "/track/reward"},
				},
			},
		}),
		"GET /track/render": writeJSON(http.StatusOK, map[string]any{}),
	})
	ctx := context.Background()

	banner, err := p.FetchAd(ctx, acc, "5550001")
	require.NoError(t, err)
	render, ok := banner.Tracking("render")
	require.True(t, ok)

	call := up.last()
	assert.Equal(t, "blockId=3721&tg_id=5550001&tg_platform=android&platform=Win32&language=vi&top_domain=0xiceberg.com", call.query)
	assert.Empty(t, call.header.Get("X-Telegram-Auth"))
	assert.Equal(t, "cross-site", call.header.Get("Sec-Fetch-Site"))
	assert.Equal(t, "https://0xiceberg.com", call.header.Get("Origin"))

	require.NoError(t, p.Track(ctx, acc, p.site.BaseURL+render))
	assert.Empty(t, up.last().header.Get("X-Telegram-Auth"))

	err = p.Track(ctx, acc, p.site.BaseURL+"/track/missing")
	assert.True(t, httpx.IsStatus(err, http.StatusNotFound))
}

func TestHeaderProfiles(t *testing.T) {
	cfg, err := config.Load("testdata/does-not-exist.yaml")
	require.NoError(t, err)

	site := SiteHeaders(cfg.Site, "auth-string")
	ad := AdHeaders(cfg.Site, cfg.Ads)

	assert.Equal(t, "auth-string", site["X-Telegram-Auth"])
	assert.Equal(t, "same-origin", site["Sec-Fetch-Site"])
	assert.NotContains(t, ad, "X-Telegram-Auth")
	assert.Equal(t, cfg.Site.UserAgent, ad["User-Agent"])
	assert.Equal(t, site["User-Agent"], ad["User-Agent"])
}

func TestClientForReusesPerProxy(t *testing.T) {
	p, _ := newProvider(t, nil)
	a, err := p.clientFor(model.Account{})
	require.NoError(t, err)
	b, err := p.clientFor(model.Account{Index: 3})
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := p.clientFor(model.Account{Proxy: "http://127.0.0.1:3128"})
	require.NoError(t, err)
	assert.NotSame(t, a, c)

	_, err = p.clientFor(model.Account{Proxy: "ftp://bad"})
	assert.Error(t, err)
}
