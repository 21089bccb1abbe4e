package request

// APIConfig is the input used to derive Settings.
type APIConfig struct {
	Hostname string
	Version  string
}

// Settings is the resolved configuration used to build request URLs.
type Settings struct {
	APIBaseURL string
}

// NewSettings derives Settings from cfg. The base URL is hostname + "/api/" + version,
// without any slash normalization.
func NewSettings(cfg APIConfig) Settings {
	return Settings{APIBaseURL: cfg.Hostname + "/api/" + cfg.Version}
}
