package metrics

import "strings"

// Config carries the constant labels stamped on every metric series.
type Config struct {
	ServiceName string
	Environment string
}

func (c Config) labels() map[string]string {
	service := strings.TrimSpace(c.ServiceName)
	if service == "" {
		service = "cricket-gear-hub"
	}
	environment := strings.TrimSpace(c.Environment)
	if environment == "" {
		environment = "unknown"
	}
	return map[string]string{
		"service": service,
		"env":     environment,
	}
}
