package config

// Config is the whole configuration surface. It is read once at startup
// (Load) and passed by reference into component constructors; no component
// reads environment state directly.
type Config struct {
	Telegram   TelegramConfig   `json:"telegram"`
	Logging    LoggingConfig    `json:"logging"`
	Scheduler  SchedulerConfig  `json:"scheduler"`
	Sources    SourcesConfig    `json:"sources"`
	Summarizer SummarizerConfig `json:"summarizer"`
}

type TelegramConfig struct {
	Token string `json:"token"`
	// ChatID is the digest destination. Alerts go to AlertChatID when set,
	// otherwise to ChatID.
	ChatID      int64 `json:"chat_id"`
	AlertChatID int64 `json:"alert_chat_id,omitempty"`
	// SendTimeout is a Go duration string (e.g. "15s").
	SendTimeout string `json:"send_timeout,omitempty"`
}

type LoggingConfig struct {
	Level   string      `json:"level"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// SchedulerConfig controls the daily trigger loop.
type SchedulerConfig struct {
	// Time is the daily trigger time-of-day, "HH:MM". Default "05:00".
	Time string `json:"time,omitempty"`
	// Timezone for the trigger time. Default UTC.
	Timezone string `json:"timezone,omitempty"`
	// PollInterval is how often the loop checks whether the trigger is due.
	// Go duration string, default "1m".
	PollInterval string `json:"poll_interval,omitempty"`
	// LivenessInterval is how often an observational liveness line is logged.
	// Go duration string, default "15m". Should be coarser than PollInterval.
	LivenessInterval string `json:"liveness_interval,omitempty"`
}

type SourcesConfig struct {
	// Limit is the per-source fetch cap. Default 10.
	Limit   int             `json:"limit,omitempty"`
	GitHub  GitHubConfig    `json:"github"`
	ClawHub ClawHubConfig   `json:"clawhub"`
	RSS     []RSSFeedConfig `json:"rss,omitempty"`
}

type GitHubConfig struct {
	// Token authenticates the search API. Absent token means the source
	// degrades to empty results, it is not an error.
	Token string `json:"token,omitempty"`
	// Keywords is the primary search keyword set.
	Keywords string `json:"keywords,omitempty"`
	// WindowDays bounds the "created since" window of the primary query.
	WindowDays int    `json:"window_days,omitempty"`
	Timeout    string `json:"timeout,omitempty"`
}

type ClawHubConfig struct {
	BaseURL string `json:"base_url,omitempty"`
	APIKey  string `json:"api_key,omitempty"`
	Timeout string `json:"timeout,omitempty"`
}

type RSSFeedConfig struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	// Tag is an optional qualitative popularity tag shown for every entry.
	Tag     string `json:"tag,omitempty"`
	Timeout string `json:"timeout,omitempty"`
}

// SummarizerConfig selects and tunes the generation backend. An empty APIKey
// switches the summarizer to the identity fallback (item descriptions pass
// through unchanged).
type SummarizerConfig struct {
	// Provider is "openai" (default) or "gemini".
	Provider string `json:"provider,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	Model    string `json:"model,omitempty"`
	// Instruction is the fixed prompt prefix (language + length constraint).
	Instruction string `json:"instruction,omitempty"`
	Timeout     string `json:"timeout,omitempty"`
	// RatePerSec paces backend calls. Default 2.
	RatePerSec int `json:"rate_per_sec,omitempty"`
}
