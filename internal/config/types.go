package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	Game          GameConfig
}

// TursoConfig selects an optional hosted primary database. When PrimaryURL
// is empty the app runs on the local SQLite file alone.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// GameConfig carries the default timer settings applied to a new session.
type GameConfig struct {
	LengthMinutes        int
	PeriodCount          int
	HalftimeBreakSeconds int
}
