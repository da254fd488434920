package config

// Config holds all configuration for the application.
type Config struct {
	DBName           string `env:"DB_NAME" envDefault:"padel.db"`
	Port             string `env:"PORT" envDefault:"8080"`
	TenantID         string `env:"TENANT_ID"`
	ProjectID        string `env:"GCP_PROJECT"`
	ClubTimezone     string `env:"CLUB_TIMEZONE" envDefault:"Europe/Stockholm"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	RecapCron        string `env:"RECAP_CRON" envDefault:"30 23 * * *"`
	ImportCron       string `env:"IMPORT_CRON" envDefault:"0 * * * *"`
	PlaytomicRPS     float64 `env:"PLAYTOMIC_RPS" envDefault:"5"`
	SchedulerEnabled bool   `env:"SCHEDULER_ENABLED" envDefault:"true"`
	Slack            SlackConfig
	Turso            TursoConfig
}

type SlackConfig struct {
	Token         string `env:"SLACK_BOT_TOKEN"`
	ChannelID     string `env:"SLACK_CHANNEL_ID"`
	SigningSecret string `env:"SLACK_SIGNING_SECRET"`
}

type TursoConfig struct {
	PrimaryURL string `env:"TURSO_PRIMARY_URL"`
	AuthToken  string `env:"TURSO_AUTH_TOKEN"`
}
