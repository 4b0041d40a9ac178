package provider

import "time"

// Config is a configured AI backend. Lower Priority values are tried first.
type Config struct {
	ID        uint64
	CreatedAt time.Time
	UpdatedAt time.Time

	Name       string
	Kind       Kind
	APIKey     string
	Endpoint   string
	Deployment string
	Model      string
	APIVersion string
	Options    map[string]any
	Active     bool
	Priority   int
}

type ConfigPatch struct {
	APIKey     *string
	Endpoint   *string
	Deployment *string
	Model      *string
	APIVersion *string
	Options    *map[string]any
	Active     *bool
	Priority   *int
}

// HasCredentials reports whether the entry carries what its kind needs to
// make a call.
func (c *Config) HasCredentials() bool {
	if c.APIKey == "" {
		return false
	}
	if c.Kind == KindAzureOpenAI {
		return c.Endpoint != "" && c.Deployment != ""
	}
	return true
}

// ModelName resolves the model identifier sent to the backend.
func (c *Config) ModelName() string {
	if c.Kind == KindAzureOpenAI && c.Deployment != "" {
		return c.Deployment
	}
	if c.Model != "" {
		return c.Model
	}
	return c.Kind.DefaultModel()
}

func (c *Config) Apply(patch *ConfigPatch) {
	if patch.APIKey != nil {
		c.APIKey = *patch.APIKey
	}
	if patch.Endpoint != nil {
		c.Endpoint = *patch.Endpoint
	}
	if patch.Deployment != nil {
		c.Deployment = *patch.Deployment
	}
	if patch.Model != nil {
		c.Model = *patch.Model
	}
	if patch.APIVersion != nil {
		c.APIVersion = *patch.APIVersion
	}
	if patch.Options != nil {
		c.Options = *patch.Options
	}
	if patch.Active != nil {
		c.Active = *patch.Active
	}
	if patch.Priority != nil {
		c.Priority = *patch.Priority
	}
}
