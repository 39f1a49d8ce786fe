// Package config provides configuration management for tidy. All
// behavior has compiled-in defaults; a config file is optional and
// only overrides them.
package config

// Default configuration values for tidy.
const (
	// DefaultOutput is the formatter used when none is requested.
	DefaultOutput = "pretty"

	// DefaultRetentionDays is how long history entries are kept.
	DefaultRetentionDays = 30

	// DefaultWatchSettle is how long a newly created file must sit
	// still before watch mode moves it.
	DefaultWatchSettle = "500ms"

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"
)

// DefaultPhotoExtensions are the formats the photos command sorts.
var DefaultPhotoExtensions = []string{"jpg", "jpeg", "raf"}
