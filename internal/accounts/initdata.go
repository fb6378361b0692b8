package accounts

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"iceberg_farmer/internal/errs"
	"iceberg_farmer/internal/model"
)

// ParseUser extracts the Telegram user embedded in an auth string, i.e. the
// JSON value of its url-encoded user field.
func ParseUser(auth string) (model.TelegramUser, error) {
	values, qerr := url.ParseQuery(strings.TrimSpace(auth))
	raw := values.Get("user")
	if raw == "" {
		if qerr != nil {
			return model.TelegramUser{}, fmt.Errorf("%w: %v", errs.ErrMalformedAuth, qerr)
		}
		return model.TelegramUser{}, errs.ErrMalformedAuth
	}

	var user model.TelegramUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return model.TelegramUser{}, fmt.Errorf("%w: user is not valid JSON: %v", errs.ErrMalformedAuth, err)
	}
	if user.ID == "" {
		return model.TelegramUser{}, fmt.Errorf("%w: user.id", errs.ErrMissingField)
	}
	if strings.TrimSpace(user.FirstName) == "" {
		return model.TelegramUser{}, fmt.Errorf("%w: user.first_name", errs.ErrMissingField)
	}
	return user, nil
}
