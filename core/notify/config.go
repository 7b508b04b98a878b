package notify

// Config holds configuration for run notifications.
type Config struct {
	// Enabled toggles notification dispatch as a whole.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// DiscordWebhookURL is the Discord webhook to post run summaries to.
	// Empty disables the Discord sink.
	DiscordWebhookURL string `mapstructure:"discord_webhook_url" default:""`
	// WebhookName is the username the webhook posts under.
	WebhookName string `mapstructure:"webhook_name" default:"Rescan"`
	// AvatarURL is the avatar the webhook posts with.
	AvatarURL string `mapstructure:"avatar_url" default:"https://raw.githubusercontent.com/pukabyte/rescan/master/assets/logo.png"`
	// TimeoutSeconds bounds the whole notification dispatch of one run.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`
}
