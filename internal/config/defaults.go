package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/rehabflow/data/db/rehabflow.db"
	}
	if cfg.Storage.BleveIndexPath == "" {
		cfg.Storage.BleveIndexPath = "/usr/local/var/rehabflow/data/indices/plans"
	}
	if cfg.Storage.ResultsDir == "" {
		cfg.Storage.ResultsDir = "/usr/local/var/rehabflow/data/results"
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 10
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Intake.Extensions == nil {
		cfg.Intake.Extensions = []string{".txt", ".md", ".pdf", ".docx", ".odt", ".rtf", ".xlsx"}
	}
	// Recursive defaults to true when unset (nil).
	if len(cfg.Intake.Directories) > 0 && cfg.Intake.Recursive == nil {
		t := true
		cfg.Intake.Recursive = &t
	}
	cfg.Missions.ApplyDefaults()
	cfg.Matching.ApplyDefaults()
}
