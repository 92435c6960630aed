package models

// MConfig Structure
type MConfig struct {
	Name          string         `yaml:"name"`
	Host          string         `yaml:"host"`
	Port          int            `yaml:"port"`
	LogLevel      string         `yaml:"log_level"`
	ServerEnabled bool           `yaml:"server_enabled"`
	Tickers       []string       `yaml:"tickers"`
	Benchmark     string         `yaml:"benchmark"`
	Range         MRangeConfig   `yaml:"range"`
	Alignment     string         `yaml:"alignment"` // "outer" (default) or "intersect"
	Export        MExportConfig  `yaml:"export"`
	Storage       MStorageConfig `yaml:"storage"`
	Network       MNetworkConfig `yaml:"network"`
}

type MRangeConfig struct {
	Start string `yaml:"start"` // ISO-8601, inclusive
	End   string `yaml:"end"`   // ISO-8601, inclusive
}

type MExportConfig struct {
	Precision int    `yaml:"precision"`
	OutputDir string `yaml:"output_dir"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	CacheTTLDays       int    `yaml:"cache_ttl_days"`
}

type MNetworkConfig struct {
	Enabled            bool     `yaml:"enabled"`
	Proxies            []string `yaml:"proxies"`
	RequestTimeout     int      `yaml:"timeout"`
	MaxRetries         int      `yaml:"retries"`
	ConcurrentRequests int      `yaml:"concurrent_requests"`
	UserAgent          string   `yaml:"user_agent"`
}
