package openapi

import "os"

const (
	defaultTitle       = "CallQA API"
	defaultDescription = "Quality review service for recorded AI-agent phone calls."
)

// Config carries the info block of the generated document.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

type ConfigEnv struct {
	Title       string
	Description string
}

// Finalize never fails; it returns an error to match the other config sections.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.Title = firstSet(c.Title, defaultTitle)
	c.Description = firstSet(c.Description, defaultDescription)
	if env != nil {
		c.Title = firstSet(os.Getenv(env.Title), c.Title)
		c.Description = firstSet(os.Getenv(env.Description), c.Description)
	}
	return nil
}

func (c *Config) Merge(overlay *Config) {
	c.Title = firstSet(overlay.Title, c.Title)
	c.Description = firstSet(overlay.Description, c.Description)
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
