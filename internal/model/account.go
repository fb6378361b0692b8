package model

// Account is one line of the credential file paired with its positional proxy.
type Account struct {
	Index int    `json:"index"`
	Auth  string `json:"-"`
	Proxy string `json:"proxy,omitempty"`
}

// HasProxy reports whether the account routes through a forward proxy.
func (a Account) HasProxy() bool {
	return a.Proxy != ""
}

// TelegramUser is the JSON object carried in the user field of the auth string.
type TelegramUser struct {
	ID        UserID `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}
