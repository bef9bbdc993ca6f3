package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sweather/internal/logger"
	"sweather/internal/models"
	"sweather/internal/repository"
)

// Digest event types.
const (
	eventDigestSent   = "DIGEST_SENT"
	eventDigestFailed = "DIGEST_FAILED"
)

// DigestConfig fixes the digest's location, horizon, language and
// recipient.
type DigestConfig struct {
	City     string
	Days     int
	Language models.Language
	To       string
}

// DefaultDigestConfig mirrors the deployed digest job: 14 Arabic days
// for a fixed town.
func DefaultDigestConfig() DigestConfig {
	return DigestConfig{
		City:     "Ain Leuh",
		Days:     14,
		Language: models.LangArabic,
	}
}

// DigestReport is the outcome of a digest send.
type DigestReport struct {
	MessageID string `json:"message_id"`
	Days      int    `json:"days"`
	Body      string `json:"body"`
}

// emojiRule maps condition keywords to an emoji. Rules are evaluated
// in order, first match wins. The keywords are coupled to the
// provider's Arabic phrasing; if the provider rewords its condition
// texts only the default emoji is used. Known fragile, accepted.
type emojiRule struct {
	keywords []string
	emoji    string
}

var emojiRules = []emojiRule{
	{keywords: []string{"مشمس", "صحو"}, emoji: "☀️"},
	{keywords: []string{"ممطر", "مطر"}, emoji: "🌧️"},
	{keywords: []string{"غائم"}, emoji: "⛅"},
	{keywords: []string{"عاصف", "رياح"}, emoji: "🌬️"},
	{keywords: []string{"ثلج"}, emoji: "❄️"},
}

const defaultEmoji = "🌤️"

// conditionEmoji picks the emoji for a provider condition text.
func conditionEmoji(condition string) string {
	for _, rule := range emojiRules {
		for _, kw := range rule.keywords {
			if strings.Contains(condition, kw) {
				return rule.emoji
			}
		}
	}
	return defaultEmoji
}

// DigestService builds and sends the scheduled weather digest.
type DigestService struct {
	client    WeatherClient
	messenger Messenger
	events    repository.EventRepo
	cfg       DigestConfig
	log       *logger.Logger
}

func NewDigestService(client WeatherClient, messenger Messenger, events repository.EventRepo, cfg DigestConfig, log *logger.Logger) *DigestService {
	if cfg.City == "" {
		cfg.City = DefaultDigestConfig().City
	}
	if cfg.Days <= 0 {
		cfg.Days = DefaultDigestConfig().Days
	}
	if cfg.Language == "" {
		cfg.Language = DefaultDigestConfig().Language
	}
	return &DigestService{client: client, messenger: messenger, events: events, cfg: cfg, log: log}
}

var _ Digest = (*DigestService)(nil)

// Send fetches the digest forecast and pushes the formatted summary
// through the messaging gateway. It returns the gateway message ID.
func (s *DigestService) Send(ctx context.Context) (DigestReport, error) {
	snap, err := s.client.FetchForecast(ctx, s.cfg.City, s.cfg.Days, s.cfg.Language)
	if err != nil {
		s.record(ctx, eventDigestFailed, "digest fetch failed", map[string]any{"err": err.Error()})
		return DigestReport{}, fmt.Errorf("fetch digest forecast for %q: %w", s.cfg.City, err)
	}

	body := formatDigest(s.cfg.City, snap.Days)

	sid, err := s.messenger.Send(ctx, s.cfg.To, body)
	if err != nil {
		s.record(ctx, eventDigestFailed, "digest send failed", map[string]any{"err": err.Error()})
		return DigestReport{}, fmt.Errorf("send digest message: %w", err)
	}

	s.record(ctx, eventDigestSent, "digest sent for "+s.cfg.City, map[string]any{"sid": sid, "days": len(snap.Days)})
	if s.log != nil {
		s.log.Infow("digest_sent", "city", s.cfg.City, "days", len(snap.Days), "sid", sid)
	}
	return DigestReport{MessageID: sid, Days: len(snap.Days), Body: body}, nil
}

func (s *DigestService) record(ctx context.Context, typ, desc string, meta map[string]any) {
	if s.events == nil {
		return
	}
	if err := s.events.Append(ctx, models.WeatherEvent{Type: typ, Description: desc, Metadata: meta}); err != nil && s.log != nil {
		s.log.Warnw("event_append_failed", "type", typ, "err", err)
	}
}

// formatDigest renders the multi-line Arabic digest: numbered days,
// each with date, emoji, provider condition text and average
// temperature.
func formatDigest(city string, days []models.DayForecast) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 توقعات الطقس لمدة 14 يومًا في %s:\n\n", city)
	for i, d := range days {
		date := time.Unix(d.DateEpoch, 0).UTC().Format("2006-01-02")
		fmt.Fprintf(&b, "%d️⃣ %s: %s %s، متوسط الحرارة: %g°C\n",
			i+1, date, conditionEmoji(d.ConditionText), d.ConditionText, d.AvgTempC)
	}
	b.WriteString("\n🔆 طقس آمن وممتع!")
	return b.String()
}
