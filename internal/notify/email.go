package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/mail"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/gomail.v2"

	"iceberg_farmer/internal/config"
	"iceberg_farmer/internal/logbus"
	"iceberg_farmer/internal/model"
)

// EmailNotifier mails a summary of each pass. Sending happens on its own
// goroutine so a slow SMTP server never delays the next account.
type EmailNotifier struct {
	settings config.EmailConfig
	bus      *logbus.Bus
	send     func(ctx context.Context, settings config.EmailConfig, report model.PassReport) error

	mu     sync.Mutex
	queue  chan model.PassReport
	ctx    context.Context
	cancel func()
	wg     sync.WaitGroup
}

func NewEmailNotifier(settings config.EmailConfig, bus *logbus.Bus) *EmailNotifier {
	return newEmailNotifier(settings, bus, SendPassSummaryEmail)
}

func newEmailNotifier(settings config.EmailConfig, bus *logbus.Bus, send func(context.Context, config.EmailConfig, model.PassReport) error) *EmailNotifier {
	ctx, cancel := context.WithCancel(context.Background())
	n := &EmailNotifier{
		settings: settings,
		bus:      bus,
		send:     send,
		queue:    make(chan model.PassReport, 16),
		ctx:      ctx,
		cancel:   cancel,
	}
	n.wg.Add(1)
	go n.loop()
	return n
}

// Close stops the sender after the queued reports are flushed or ctx expires.
func (n *EmailNotifier) Close(ctx context.Context) error {
	n.mu.Lock()
	cancel := n.cancel
	n.cancel = nil
	n.mu.Unlock()

	if cancel == nil {
		return nil
	}
	close(n.queue)

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		cancel()
		return nil
	case <-ctx.Done():
		cancel()
		return ctx.Err()
	}
}

func (n *EmailNotifier) NotifyPassCompleted(_ context.Context, report model.PassReport) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel == nil {
		return
	}
	select {
	case n.queue <- report:
	default:
		if n.bus != nil {
			n.bus.Log(logbus.LevelWarn, "E-mail summary dropped: queue is full", map[string]any{"pass": report.Number})
		}
	}
}

func (n *EmailNotifier) loop() {
	defer n.wg.Done()
	for report := range n.queue {
		n.handle(report)
	}
}

func (n *EmailNotifier) handle(report model.PassReport) {
	if !n.settings.Enabled {
		return
	}
	if err := validateEmailSettings(n.settings); err != nil {
		if n.bus != nil {
			n.bus.Log(logbus.LevelWarn, "E-mail settings are invalid", map[string]any{"error": err.Error()})
		}
		return
	}
	if err := n.send(n.ctx, n.settings, report); err != nil {
		if n.bus != nil {
			n.bus.Log(logbus.LevelWarn, "E-mail summary failed", map[string]any{
				"error": err.Error(),
				"pass":  report.Number,
			})
		}
		return
	}
	if n.bus != nil {
		n.bus.Log(logbus.LevelInfo, "E-mail summary sent", map[string]any{
			"pass": report.Number,
			"to":   strings.TrimSpace(n.settings.Email),
		})
	}
}

func validateEmailSettings(s config.EmailConfig) error {
	email := strings.TrimSpace(s.Email)
	if email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("invalid email")
	}
	if strings.TrimSpace(s.AuthCode) == "" {
		return errors.New("authCode is required")
	}
	return nil
}

func SendPassSummaryEmail(ctx context.Context, settings config.EmailConfig, report model.PassReport) error {
	if err := validateEmailSettings(settings); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	email := strings.TrimSpace(settings.Email)
	host, port, useSSL, err := smtpConfigForEmail(email)
	if err != nil {
		return err
	}
	htmlBody, textBody, err := buildSummaryEmailBody(report)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(email, "Iceberg farmer"))
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", buildSummarySubject(report))
	msg.SetBody("text/plain", textBody)
	msg.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(host, port, email, strings.TrimSpace(settings.AuthCode))
	d.SSL = useSSL
	return d.DialAndSend(msg)
}

func smtpConfigForEmail(email string) (host string, port int, useSSL bool, err error) {
	parts := strings.Split(strings.TrimSpace(email), "@")
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return "", 0, false, errors.New("invalid email format")
	}
	domain := strings.ToLower(strings.TrimSpace(parts[1]))

	switch {
	case domain == "gmail.com" || domain == "googlemail.com":
		return "smtp.gmail.com", 587, false, nil
	case domain == "outlook.com" || domain == "hotmail.com" || domain == "live.com":
		return "smtp.office365.com", 587, false, nil
	case domain == "yahoo.com" || strings.HasPrefix(domain, "yahoo."):
		return "smtp.mail.yahoo.com", 465, true, nil
	case domain == "icloud.com" || domain == "me.com":
		return "smtp.mail.me.com", 587, false, nil
	case domain == "yandex.ru" || domain == "yandex.com":
		return "smtp.yandex.com", 465, true, nil
	default:
		return "smtp." + domain, 465, true, nil
	}
}

func buildSummarySubject(report model.PassReport) string {
	return fmt.Sprintf("Pass #%d finished: %d accounts, %d ads viewed", report.Number, len(report.Accounts), report.AdsViewed())
}

var summaryHTMLTpl = template.Must(template.New("pass-summary").Parse(`
<!doctype html>
<html lang="en">
  <head><meta charset="utf-8" /><title>Pass summary</title></head>
  <body style="margin:0;padding:24px;background:#f6f8fb;font-family:-apple-system,'Segoe UI',Roboto,Arial,sans-serif;">
    <div style="max-width:720px;margin:0 auto;background:#fff;border:1px solid #e6e8ef;border-radius:14px;overflow:hidden;">
      <div style="padding:18px 22px;background:linear-gradient(135deg,#0ea5e9,#6366f1);color:#fff;">
        <div style="font-size:16px;font-weight:700;">Pass #{{ .Number }}</div>
        <div style="margin-top:6px;font-size:12px;">{{ .Start }} ~ {{ .End }}</div>
      </div>
      <table role="presentation" cellspacing="0" cellpadding="0" border="0" style="width:100%;border-collapse:collapse;">
        <thead>
          <tr style="background:#fafbff;">
            <th style="padding:10px 12px;text-align:left;font-size:12px;color:#6b7280;">#</th>
            <th style="padding:10px 12px;text-align:left;font-size:12px;color:#6b7280;">Account</th>
            <th style="padding:10px 12px;text-align:left;font-size:12px;color:#6b7280;">Balance</th>
            <th style="padding:10px 12px;text-align:left;font-size:12px;color:#6b7280;">Farming</th>
            <th style="padding:10px 12px;text-align:left;font-size:12px;color:#6b7280;">Tasks</th>
            <th style="padding:10px 12px;text-align:left;font-size:12px;color:#6b7280;">Ads</th>
          </tr>
        </thead>
        <tbody>
          {{ range .Rows }}
          <tr>
            <td style="padding:10px 12px;font-size:12px;border-top:1px solid #eef0f6;">{{ .Index }}</td>
            <td style="padding:10px 12px;font-size:12px;border-top:1px solid #eef0f6;">{{ .Account }}</td>
            <td style="padding:10px 12px;font-size:12px;border-top:1px solid #eef0f6;">{{ .Balance }}</td>
            <td style="padding:10px 12px;font-size:12px;border-top:1px solid #eef0f6;">{{ .Farming }}</td>
            <td style="padding:10px 12px;font-size:12px;border-top:1px solid #eef0f6;">{{ .Tasks }}</td>
            <td style="padding:10px 12px;font-size:12px;border-top:1px solid #eef0f6;">{{ .Ads }}</td>
          </tr>
          {{ end }}
        </tbody>
      </table>
    </div>
  </body>
</html>
`))

type summaryRow struct {
	Index   string
	Account string
	Balance string
	Farming string
	Tasks   string
	Ads     string
}

func buildSummaryEmailBody(report model.PassReport) (htmlBody string, textBody string, err error) {
	if len(report.Accounts) == 0 {
		return "", "", errors.New("no accounts in report")
	}

	rows := make([]summaryRow, 0, len(report.Accounts))
	for _, a := range report.Accounts {
		row := summaryRow{
			Index:   strconv.Itoa(a.Index + 1),
			Account: safeText(a.FirstName, a.UserID),
			Balance: "-",
			Farming: resultLabel(a.Farming),
			Tasks:   resultLabel(a.Tasks),
			Ads:     fmt.Sprintf("%d viewed (%s)", a.Ads.Viewed, safeText(a.Ads.StopCause, "-")),
		}
		if a.Skipped {
			row.Farming, row.Tasks, row.Ads = "skipped", "skipped", safeText(a.SkipReason, "skipped")
		}
		if a.Balance != nil {
			row.Balance = a.Balance.Amount.String()
		}
		rows = append(rows, row)
	}

	data := struct {
		Number int
		Start  string
		End    string
		Rows   []summaryRow
	}{
		Number: report.Number,
		Start:  report.StartedAt.Format("2006-01-02 15:04:05"),
		End:    report.FinishedAt.Format("2006-01-02 15:04:05"),
		Rows:   rows,
	}

	var buf bytes.Buffer
	if err := summaryHTMLTpl.Execute(&buf, data); err != nil {
		return "", "", err
	}

	text := new(strings.Builder)
	fmt.Fprintf(text, "Pass #%d (%s ~ %s)\n", data.Number, data.Start, data.End)
	for _, r := range rows {
		fmt.Fprintf(text, "- %s | %s | balance %s | farming %s | tasks %s | ads %s\n", r.Index, r.Account, r.Balance, r.Farming, r.Tasks, r.Ads)
	}
	return buf.String(), text.String(), nil
}

func resultLabel(r model.Result) string {
	if r.Success {
		return "ok"
	}
	return "error: " + safeText(r.Error, "unknown")
}

func safeText(prefer, fallback string) string {
	prefer = strings.TrimSpace(prefer)
	if prefer != "" {
		return prefer
	}
	return strings.TrimSpace(fallback)
}
