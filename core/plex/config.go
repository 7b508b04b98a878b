package plex

// Config holds configuration for the Plex server connection.
type Config struct {
	// URL is the base URL of the Plex server (e.g., http://localhost:32400).
	URL string `mapstructure:"url" default:"http://localhost:32400"`
	// Token is the X-Plex-Token used to authenticate API requests.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds is the HTTP request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
