package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
}

// TursoConfig configures an optional remote libSQL primary. When the
// primary URL is empty the application runs on a local SQLite file.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
