package iceberg

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"iceberg_farmer/internal/config"
	"iceberg_farmer/internal/errs"
	"iceberg_farmer/internal/httpx"
	"iceberg_farmer/internal/logbus"
	"iceberg_farmer/internal/model"
)

const (
	pathBalance     = "/api/v1/web-app/balance/"
	pathFarming     = "/api/v1/web-app/farming/"
	pathFarmCollect = "/api/v1/web-app/farming/collect/"
	pathTasks       = "/api/v1/web-app/tasks/"
	pathCurrentUser = "/api/v1/users/user/current-user/"
	pathAdv         = "/adv"
)

type Options struct {
	Site   config.SiteConfig
	Ads    config.AdsConfig
	Proxy  config.ProxyConfig
	Limits config.LimitsConfig
	Bus    *logbus.Bus
}

type IcebergProvider struct {
	site     config.SiteConfig
	ads      config.AdsConfig
	proxyCfg config.ProxyConfig
	bus      *logbus.Bus
	limiter  *rate.Limiter

	mu      sync.Mutex
	clients map[string]*httpx.Client
}

func New(opts Options) *IcebergProvider {
	var limiter *rate.Limiter
	if opts.Limits.QPS > 0 {
		burst := opts.Limits.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.Limits.QPS), burst)
	}
	return &IcebergProvider{
		site:     opts.Site,
		ads:      opts.Ads,
		proxyCfg: opts.Proxy,
		bus:      opts.Bus,
		limiter:  limiter,
		clients:  make(map[string]*httpx.Client),
	}
}

func (p *IcebergProvider) Name() string { return "iceberg" }

type farmingResp struct {
	StartTime model.Timestamp `json:"start_time"`
	StopTime  model.Timestamp `json:"stop_time"`
}

type taskUpdateReq struct {
	Status model.TaskStatus `json:"status"`
}

type taskUpdateResp struct {
	Success bool `json:"success"`
}

type advResp struct {
	Banner *model.AdBanner `json:"banner"`
}

func (p *IcebergProvider) CheckProxyIP(ctx context.Context, proxy string) (string, error) {
	return httpx.CheckProxyIP(ctx, proxy, p.proxyCfg.CheckURL, p.proxyCfg.CheckTimeout(), p.bus)
}

func (p *IcebergProvider) Balance(ctx context.Context, account model.Account) (model.Balance, error) {
	client, err := p.clientFor(account)
	if err != nil {
		return model.Balance{}, err
	}
	res := client.Get(ctx, p.siteURL(pathBalance), SiteHeaders(p.site, account.Auth))
	if res.Err != nil {
		return model.Balance{}, res.Err
	}
	if res.Status != http.StatusOK {
		return model.Balance{}, fmt.Errorf("fetch balance: %w %d", errs.ErrUnexpectedStatus, res.Status)
	}
	var out model.Balance
	if err := res.Decode(&out); err != nil {
		return model.Balance{}, fmt.Errorf("decode balance: %w", err)
	}
	return out, nil
}

func (p *IcebergProvider) FarmingStatus(ctx context.Context, account model.Account) (*model.Farming, error) {
	client, err := p.clientFor(account)
	if err != nil {
		return nil, err
	}
	res := client.Get(ctx, p.siteURL(pathFarming), SiteHeaders(p.site, account.Auth))
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Status != http.StatusOK {
		return nil, fmt.Errorf("failed to check farming status: %w %d", errs.ErrUnexpectedStatus, res.Status)
	}
	if res.Empty() {
		return nil, nil
	}
	var out farmingResp
	if err := res.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode farming status: %w", err)
	}
	if out.StopTime.IsZero() {
		return nil, fmt.Errorf("farming status: %w: stop_time", errs.ErrMissingField)
	}
	return &model.Farming{StartTime: out.StartTime, StopTime: out.StopTime}, nil
}

func (p *IcebergProvider) StartFarming(ctx context.Context, account model.Account) (model.Farming, bool, error) {
	client, err := p.clientFor(account)
	if err != nil {
		return model.Farming{}, false, err
	}
	res := client.Post(ctx, p.siteURL(pathFarming), map[string]any{}, SiteHeaders(p.site, account.Auth))
	if res.Err != nil {
		return model.Farming{}, false, res.Err
	}
	if res.Status != http.StatusOK {
		return model.Farming{}, false, nil
	}
	var out farmingResp
	if err := res.Decode(&out); err != nil {
		return model.Farming{}, false, fmt.Errorf("decode farming start: %w", err)
	}
	return model.Farming{StartTime: out.StartTime, StopTime: out.StopTime}, true, nil
}

func (p *IcebergProvider) CollectFarming(ctx context.Context, account model.Account) error {
	client, err := p.clientFor(account)
	if err != nil {
		return err
	}
	return client.Delete(ctx, p.siteURL(pathFarmCollect), SiteHeaders(p.site, account.Auth)).Err
}

func (p *IcebergProvider) Tasks(ctx context.Context, account model.Account) ([]model.Task, error) {
	client, err := p.clientFor(account)
	if err != nil {
		return nil, err
	}
	res := client.Get(ctx, p.siteURL(pathTasks), SiteHeaders(p.site, account.Auth))
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Status != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch tasks: %w %d", errs.ErrUnexpectedStatus, res.Status)
	}
	var out []model.Task
	if err := res.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return out, nil
}

func (p *IcebergProvider) UpdateTask(ctx context.Context, account model.Account, taskID string, status model.TaskStatus) (bool, error) {
	client, err := p.clientFor(account)
	if err != nil {
		return false, err
	}
	u := p.siteURL(pathTasks + "task/" + url.PathEscape(taskID) + "/")
	res := client.Patch(ctx, u, taskUpdateReq{Status: status}, SiteHeaders(p.site, account.Auth))
	if res.Err != nil {
		return false, res.Err
	}
	var out taskUpdateResp
	if err := res.Decode(&out); err != nil {
		// a body without a success flag counts as a failed transition
		return false, nil
	}
	return out.Success, nil
}

func (p *IcebergProvider) CurrentUser(ctx context.Context, account model.Account) (model.CurrentUser, error) {
	client, err := p.clientFor(account)
	if err != nil {
		return model.CurrentUser{}, err
	}
	res := client.Get(ctx, p.siteURL(pathCurrentUser), SiteHeaders(p.site, account.Auth))
	if res.Err != nil {
		return model.CurrentUser{}, res.Err
	}
	if res.Status != http.StatusOK {
		return model.CurrentUser{}, fmt.Errorf("failed to fetch user data: %w %d", errs.ErrUnexpectedStatus, res.Status)
	}
	var out model.CurrentUser
	if err := res.Decode(&out); err != nil {
		return model.CurrentUser{}, fmt.Errorf("decode current user: %w", err)
	}
	if out.AdsgramCounter == nil {
		return model.CurrentUser{}, fmt.Errorf("current user: %w: adsgram_counter", errs.ErrMissingField)
	}
	return out, nil
}

func (p *IcebergProvider) FetchAd(ctx context.Context, account model.Account, chatID string) (model.AdBanner, error) {
	client, err := p.clientFor(account)
	if err != nil {
		return model.AdBanner{}, err
	}
	res := client.Get(ctx, p.AdURL(chatID), AdHeaders(p.site, p.ads))
	if res.Err != nil {
		return model.AdBanner{}, res.Err
	}
	if res.Status != http.StatusOK {
		return model.AdBanner{}, fmt.Errorf("failed to fetch advertisement data: %w %d", errs.ErrUnexpectedStatus, res.Status)
	}
	var out advResp
	if err := res.Decode(&out); err != nil {
		return model.AdBanner{}, fmt.Errorf("decode advertisement: %w", err)
	}
	if out.Banner == nil {
		return model.AdBanner{}, fmt.Errorf("advertisement: %w: banner", errs.ErrMissingField)
	}
	return *out.Banner, nil
}

func (p *IcebergProvider) Track(ctx context.Context, account model.Account, trackingURL string) error {
	client, err := p.clientFor(account)
	if err != nil {
		return err
	}
	return client.Get(ctx, trackingURL, AdHeaders(p.site, p.ads)).Err
}

// AdURL builds the ad-serving request, keeping the parameter order the web app uses.
func (p *IcebergProvider) AdURL(chatID string) string {
	params := [][2]string{
		{"blockId", p.ads.BlockID},
		{"tg_id", chatID},
		{"tg_platform", p.ads.TgPlatform},
		{"platform", p.ads.Platform},
		{"language", p.ads.Language},
		{"top_domain", p.ads.TopDomain},
	}
	parts := make([]string, 0, len(params))
	for _, kv := range params {
		parts = append(parts, kv[0]+"="+url.QueryEscape(kv[1]))
	}
	return strings.TrimRight(p.ads.BaseURL, "/") + pathAdv + "?" + strings.Join(parts, "&")
}

func (p *IcebergProvider) siteURL(path string) string {
	return strings.TrimRight(p.site.BaseURL, "/") + path
}

// clientFor returns the client bound to the account's proxy, creating it once.
func (p *IcebergProvider) clientFor(account model.Account) (*httpx.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.clients[account.Proxy]; ok {
		return c, nil
	}
	c, err := httpx.New(httpx.Options{
		Proxy:   account.Proxy,
		Timeout: p.site.Timeout(),
		Limiter: p.limiter,
		Bus:     p.bus,
	})
	if err != nil {
		return nil, err
	}
	p.clients[account.Proxy] = c
	return c, nil
}
