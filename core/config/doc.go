// Package config provides configuration management for Rescan.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Plex: server URL and authentication token
//   - Scan: directories, pacing interval, run interval, symlink checking
//   - Notifications: Discord webhook settings
//   - Storage: S3/MinIO credentials and bucket settings for report archiving
//   - History: run history database connection
//   - Server: status HTTP server settings (port, API key)
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Plex.URL)
package config
