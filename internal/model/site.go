package model

import "time"

type Balance struct {
	Amount     Text `json:"amount"`
	CountReset any  `json:"count_reset"`
}

// Farming is the server-side farming cycle. A nil *Farming means no cycle is running.
type Farming struct {
	StartTime Timestamp `json:"start_time"`
	StopTime  Timestamp `json:"stop_time"`
}

func (f Farming) Duration() time.Duration {
	return f.StopTime.Sub(f.StartTime.Time)
}

type CurrentUser struct {
	AdsgramCounter *int   `json:"adsgram_counter"`
	ChatID         UserID `json:"chat_id"`
}

type AdTracking struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type AdBanner struct {
	Trackings []AdTracking `json:"trackings"`
}

// Tracking returns the callback URL registered under name.
func (b AdBanner) Tracking(name string) (string, bool) {
	for _, t := range b.Trackings {
		if t.Name == name && t.Value != "" {
			return t.Value, true
		}
	}
	return "", false
}
