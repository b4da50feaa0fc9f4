package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 9090
	}
	if cfg.Wikidata.Endpoint == "" {
		cfg.Wikidata.Endpoint = "https://query.wikidata.org/sparql"
	}
	if cfg.Wikidata.TimeoutSeconds == 0 {
		cfg.Wikidata.TimeoutSeconds = 30
	}
	if cfg.Wikidata.UserAgent == "" {
		cfg.Wikidata.UserAgent = "caselaw/1.0 (court case search service)"
	}
	if cfg.Wikidata.MaxResults == 0 {
		cfg.Wikidata.MaxResults = 5000
	}
	if cfg.Cache.Capacity == 0 {
		cfg.Cache.Capacity = 100
	}
	if cfg.Cache.CorpusTTLMinutes == 0 {
		cfg.Cache.CorpusTTLMinutes = 60
	}
	if cfg.Cache.QueryTTLMinutes == 0 {
		cfg.Cache.QueryTTLMinutes = 5
	}
	if cfg.Cache.SweepIntervalMinutes == 0 {
		cfg.Cache.SweepIntervalMinutes = 5
	}
	if cfg.Breaker.MaxRequests == 0 {
		cfg.Breaker.MaxRequests = 1
	}
	if cfg.Breaker.IntervalSeconds == 0 {
		cfg.Breaker.IntervalSeconds = 60
	}
	if cfg.Breaker.TimeoutSeconds == 0 {
		cfg.Breaker.TimeoutSeconds = 30
	}
	if cfg.Breaker.FailureRatio == 0 {
		cfg.Breaker.FailureRatio = 0.6
	}
}
