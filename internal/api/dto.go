package api

import (
	"time"

	"github.com/omega/animator/internal/biz/attempt"
	"github.com/omega/animator/internal/biz/provider"
	"github.com/omega/animator/internal/biz/script"
	"github.com/samber/lo"
)

type GenerateScriptReq struct {
	Prompt   string `json:"prompt" binding:"required"`
	Provider string `json:"provider"`
	Execute  bool   `json:"execute"`
}

type GenerateScriptResp struct {
	ID         string `json:"id"`
	Script     string `json:"script"`
	Status     string `json:"status"`
	OutputPath string `json:"output_path,omitempty"`
	OutputURL  string `json:"output_url,omitempty"`
	Error      string `json:"error,omitempty"`
}

type ScriptResp struct {
	ID           string    `json:"id"`
	Prompt       string    `json:"prompt"`
	Script       string    `json:"script"`
	Provider     string    `json:"provider"`
	SceneClass   string    `json:"scene_class,omitempty"`
	Status       string    `json:"status"`
	OutputPath   string    `json:"output_path,omitempty"`
	OutputURL    string    `json:"output_url,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Attempts     int       `json:"attempts"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ScriptListResp struct {
	Items  []ScriptResp `json:"items"`
	Total  int64        `json:"total"`
	Offset int          `json:"offset"`
	Limit  int          `json:"limit"`
}

type AttemptResp struct {
	Number         int       `json:"attempt_number"`
	OriginalScript string    `json:"original_script"`
	ModifiedScript string    `json:"modified_script,omitempty"`
	SceneClass     string    `json:"scene_class,omitempty"`
	Successful     bool      `json:"successful"`
	Output         string    `json:"output,omitempty"`
	Error          string    `json:"error,omitempty"`
	OutputPath     string    `json:"output_path,omitempty"`
	Repair         string    `json:"repair,omitempty"`
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
	DurationMs     int64     `json:"duration_ms"`
}

type CreateProviderReq struct {
	Name       string         `json:"name" binding:"required"`
	Kind       string         `json:"kind" binding:"required"`
	APIKey     string         `json:"api_key"`
	Endpoint   string         `json:"endpoint"`
	Deployment string         `json:"deployment"`
	Model      string         `json:"model"`
	APIVersion string         `json:"api_version"`
	Options    map[string]any `json:"options"`
	Active     *bool          `json:"active"`
	Priority   *int           `json:"priority"`
}

type UpdateProviderReq struct {
	APIKey     *string         `json:"api_key"`
	Endpoint   *string         `json:"endpoint"`
	Deployment *string         `json:"deployment"`
	Model      *string         `json:"model"`
	APIVersion *string         `json:"api_version"`
	Options    *map[string]any `json:"options"`
	Active     *bool           `json:"active"`
	Priority   *int            `json:"priority"`
}

// ProviderResp never carries the api key.
type ProviderResp struct {
	ID             uint64         `json:"id"`
	Name           string         `json:"name"`
	Kind           string         `json:"kind"`
	Endpoint       string         `json:"endpoint,omitempty"`
	Deployment     string         `json:"deployment,omitempty"`
	Model          string         `json:"model"`
	APIVersion     string         `json:"api_version,omitempty"`
	Options        map[string]any `json:"options,omitempty"`
	Active         bool           `json:"active"`
	Priority       int            `json:"priority"`
	HasCredentials bool           `json:"has_credentials"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func toGenerateResp(s *script.Script) GenerateScriptResp {
	return GenerateScriptResp{
		ID:         s.ID,
		Script:     s.Content,
		Status:     string(s.Status),
		OutputPath: s.OutputPath,
		OutputURL:  s.OutputURL,
		Error:      s.ErrorMessage,
	}
}

func toScriptResp(s *script.Script) ScriptResp {
	return ScriptResp{
		ID:           s.ID,
		Prompt:       s.Prompt,
		Script:       s.Content,
		Provider:     s.Provider,
		SceneClass:   s.SceneClass,
		Status:       string(s.Status),
		OutputPath:   s.OutputPath,
		OutputURL:    s.OutputURL,
		ErrorMessage: s.ErrorMessage,
		Attempts:     s.Attempts,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toAttemptResps(items []*attempt.Attempt) []AttemptResp {
	return lo.Map(items, func(a *attempt.Attempt, _ int) AttemptResp {
		return AttemptResp{
			Number:         a.Number,
			OriginalScript: a.OriginalScript,
			ModifiedScript: a.ModifiedScript,
			SceneClass:     a.SceneClass,
			Successful:     a.Successful,
			Output:         a.Output,
			Error:          a.Error,
			OutputPath:     a.OutputPath,
			Repair:         string(a.Repair),
			StartedAt:      a.StartedAt,
			CompletedAt:    a.CompletedAt,
			DurationMs:     a.Duration().Milliseconds(),
		}
	})
}

func toProviderResp(c *provider.Config) ProviderResp {
	return ProviderResp{
		ID:             c.ID,
		Name:           c.Name,
		Kind:           c.Kind.String(),
		Endpoint:       c.Endpoint,
		Deployment:     c.Deployment,
		Model:          c.ModelName(),
		APIVersion:     c.APIVersion,
		Options:        c.Options,
		Active:         c.Active,
		Priority:       c.Priority,
		HasCredentials: c.HasCredentials(),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (r CreateProviderReq) toDomain() (*provider.Config, error) {
	kind, err := provider.ParseKind(r.Kind)
	if err != nil {
		return nil, err
	}
	return &provider.Config{
		Name:       r.Name,
		Kind:       kind,
		APIKey:     r.APIKey,
		Endpoint:   r.Endpoint,
		Deployment: r.Deployment,
		Model:      r.Model,
		APIVersion: r.APIVersion,
		Options:    r.Options,
		Active:     lo.FromPtrOr(r.Active, true),
		Priority:   lo.FromPtrOr(r.Priority, provider.DefaultPriority),
	}, nil
}

func (r UpdateProviderReq) toPatch() *provider.ConfigPatch {
	return &provider.ConfigPatch{
		APIKey:     r.APIKey,
		Endpoint:   r.Endpoint,
		Deployment: r.Deployment,
		Model:      r.Model,
		APIVersion: r.APIVersion,
		Options:    r.Options,
		Active:     r.Active,
		Priority:   r.Priority,
	}
}
