package model

import "time"

// Result is the uniform outcome of one workflow for one account.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	// Reason distinguishes expected terminal outcomes, such as the ad cap, from errors.
	Reason   string `json:"reason,omitempty"`
	NewCount int    `json:"newCount,omitempty"`
}

const ReasonLimitReached = "limit_reached"

func OK() Result { return Result{Success: true} }

func Failed(err error) Result {
	if err == nil {
		return Result{Success: false}
	}
	return Result{Success: false, Error: err.Error()}
}

type AdsSummary struct {
	Viewed    int    `json:"viewed"`
	LastCount int    `json:"lastCount"`
	StopCause string `json:"stopCause,omitempty"`
}

type AccountReport struct {
	Index      int        `json:"index"`
	UserID     string     `json:"userId,omitempty"`
	FirstName  string     `json:"firstName,omitempty"`
	ProxyIP    string     `json:"proxyIp,omitempty"`
	Skipped    bool       `json:"skipped"`
	SkipReason string     `json:"skipReason,omitempty"`
	Balance    *Balance   `json:"balance,omitempty"`
	Farming    Result     `json:"farming"`
	Tasks      Result     `json:"tasks"`
	Ads        AdsSummary `json:"ads"`
}

type PassReport struct {
	ID         string          `json:"id"`
	Number     int             `json:"number"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
	Accounts   []AccountReport `json:"accounts"`
}

// Skipped counts the accounts that did not run any workflow.
func (r PassReport) Skipped() int {
	n := 0
	for _, a := range r.Accounts {
		if a.Skipped {
			n++
		}
	}
	return n
}

// AdsViewed sums ad views across the pass.
func (r PassReport) AdsViewed() int {
	n := 0
	for _, a := range r.Accounts {
		n += a.Ads.Viewed
	}
	return n
}

type EngineState struct {
	Running  bool        `json:"running"`
	Passes   int         `json:"passes"`
	LastPass *PassReport `json:"lastPass,omitempty"`
}
