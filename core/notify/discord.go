package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lmgveerhoek/rescan/core/reconcile"
)

// Discord limits: 6000 characters across an embed's textual parts, 25 fields
// per embed. The character budget keeps headroom for the footer.
const (
	embedCharLimit  = 5900
	embedFieldLimit = 25

	embedColorBlue = 0x3498db
)

// DiscordSink posts run summaries to a Discord webhook as embeds. Summaries
// whose embed would exceed Discord's size limits are split across several
// messages.
type DiscordSink struct {
	webhookURL string
	username   string
	avatarURL  string
	httpClient *http.Client
}

// NewDiscordSink creates a Discord webhook sink.
func NewDiscordSink(cfg Config) *DiscordSink {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	return &DiscordSink{
		webhookURL: cfg.DiscordWebhookURL,
		username:   cfg.WebhookName,
		avatarURL:  cfg.AvatarURL,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// Name implements Sink.
func (s *DiscordSink) Name() string {
	return "discord"
}

// Publish implements Sink.
func (s *DiscordSink) Publish(ctx context.Context, summary *reconcile.Summary) error {
	for _, e := range buildEmbeds(summary) {
		payload := webhookPayload{
			Username:  s.username,
			AvatarURL: s.avatarURL,
			Embeds:    []embed{e},
		}
		if err := s.post(ctx, payload); err != nil {
			return err
		}
	}
	return nil
}

func (s *DiscordSink) post(ctx context.Context, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("discord webhook request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("discord webhook returned status %d (failed to read body)", resp.StatusCode)
		}
		return fmt.Errorf("discord webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

type webhookPayload struct {
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Embeds    []embed `json:"embeds"`
}

type embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Timestamp string       `json:"timestamp,omitempty"`
	Fields    []embedField `json:"fields,omitempty"`
	Footer    *embedFooter `json:"footer,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type embedFooter struct {
	Text string `json:"text"`
}

// buildEmbeds renders the summary as one embed, splitting into continuation
// embeds whenever Discord's character or field limits would be exceeded.
// The footer rides on the last embed only.
func buildEmbeds(summary *reconcile.Summary) []embed {
	embeds := packFields(buildFields(summary))

	timestamp := time.Now().UTC().Format(time.RFC3339)
	for i := range embeds {
		embeds[i].Color = embedColorBlue
		embeds[i].Timestamp = timestamp
	}
	embeds[len(embeds)-1].Footer = &embedFooter{
		Text: "Run Time: " + summary.Duration.Round(time.Second).String(),
	}
	return embeds
}

// packFields distributes fields over as few embeds as the character and
// field-count limits allow, without dropping any field.
func packFields(fields []embedField) []embed {
	newEmbed := func(cont bool) embed {
		if cont {
			return embed{Title: "Rescan Summary (continued)"}
		}
		return embed{Title: "Rescan Summary"}
	}

	var embeds []embed
	current := newEmbed(false)
	size := len(current.Title)

	for _, f := range fields {
		fieldSize := len(f.Name) + len(f.Value)
		if len(current.Fields) > 0 &&
			(size+fieldSize > embedCharLimit || len(current.Fields) >= embedFieldLimit) {
			embeds = append(embeds, current)
			current = newEmbed(true)
			size = len(current.Title)
		}
		current.Fields = append(current.Fields, f)
		size += fieldSize
	}

	return append(embeds, current)
}

// buildFields renders the summary sections in the order the original report
// presents them: overview, symlink issues, per-library counts, other issues.
func buildFields(summary *reconcile.Summary) []embedField {
	fields := []embedField{{
		Name:  "📊 Overview",
		Value: fmt.Sprintf("Found **%d** items from **%d** scanned files", summary.TotalMissing, summary.TotalScanned),
	}}

	if summary.BrokenSymlinks > 0 {
		fields = append(fields, embedField{
			Name:  "⚠️ Issues",
			Value: fmt.Sprintf("Broken Symlinks Skipped: **%d**", summary.BrokenSymlinks),
		})
	}

	titles := make([]string, 0, len(summary.Missing))
	for title := range summary.Missing {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	for _, title := range titles {
		fields = append(fields, embedField{
			Name:   "📁 " + title,
			Value:  fmt.Sprintf("Found: **%d** items", len(summary.Missing[title])),
			Inline: true,
		})
	}

	if len(summary.Errors) > 0 || len(summary.Warnings) > 0 {
		var lines []string
		for _, e := range summary.Errors {
			lines = append(lines, "❌ "+e)
		}
		for _, w := range summary.Warnings {
			lines = append(lines, "⚠️ "+w)
		}
		fields = append(fields, embedField{
			Name:  "⚠️ Other Issues",
			Value: truncate(strings.Join(lines, "\n"), 1024),
		})
	}

	return fields
}

// truncate limits a field value to Discord's 1024-character field cap.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit - len("…")
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
