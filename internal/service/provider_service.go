package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/omega/animator/internal/biz/provider"
	domainError "github.com/omega/animator/internal/domain/error"
	"github.com/omega/animator/pkg/config"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// IProviderService manages the provider catalog.
type IProviderService interface {
	Create(ctx context.Context, cfg *provider.Config) (*provider.Config, error)
	Get(ctx context.Context, id uint64) (*provider.Config, error)
	Update(ctx context.Context, id uint64, patch *provider.ConfigPatch) (*provider.Config, error)
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, filter provider.ListFilter) ([]*provider.Config, error)

	// Seed upserts entries by name and returns how many were written.
	Seed(ctx context.Context, entries []config.ProviderConfig) (int, error)
	// Import seeds from a YAML document holding a list of entries, or a
	// mapping with a "providers" list.
	Import(ctx context.Context, data []byte) (int, error)
}

type ProviderService struct {
	repo   provider.Repo
	logger *zap.Logger
}

func NewProviderService(repo provider.Repo, logger *zap.Logger) IProviderService {
	return &ProviderService{repo: repo, logger: logger.Named("provider_service")}
}

func (s *ProviderService) Create(ctx context.Context, cfg *provider.Config) (*provider.Config, error) {
	if err := validateProvider(cfg); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, cfg); err != nil {
		return nil, err
	}
	s.logger.Info("provider created", zap.String("name", cfg.Name), zap.String("kind", cfg.Kind.String()))
	return cfg, nil
}

func (s *ProviderService) Get(ctx context.Context, id uint64) (*provider.Config, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProviderService) Update(ctx context.Context, id uint64, patch *provider.ConfigPatch) (*provider.Config, error) {
	cfg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cfg.Apply(patch)
	if err := validateProvider(cfg); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *ProviderService) Delete(ctx context.Context, id uint64) error {
	return s.repo.Delete(ctx, id)
}

func (s *ProviderService) List(ctx context.Context, filter provider.ListFilter) ([]*provider.Config, error) {
	return s.repo.List(ctx, filter)
}

func (s *ProviderService) Seed(ctx context.Context, entries []config.ProviderConfig) (int, error) {
	written := 0
	for _, entry := range entries {
		entry = entry.Resolved()
		cfg, err := FromProviderConfig(entry)
		if err != nil {
			return written, err
		}
		if err := s.seedOne(ctx, cfg, entry); err != nil {
			return written, fmt.Errorf("seed provider %q: %w", cfg.Name, err)
		}
		written++
	}
	if written > 0 {
		s.logger.Info("provider catalog seeded", zap.Int("count", written))
	}
	return written, nil
}

// seedOne creates cfg, or merges only the fields entry sets into the stored
// entry so values changed through the API survive a reseed.
func (s *ProviderService) seedOne(ctx context.Context, cfg *provider.Config, entry config.ProviderConfig) error {
	if err := validateProvider(cfg); err != nil {
		return err
	}
	existing, err := s.repo.GetByName(ctx, cfg.Name)
	if errors.Is(err, domainError.ErrProviderNotFound) {
		return s.repo.Create(ctx, cfg)
	}
	if err != nil {
		return err
	}
	existing.Kind = cfg.Kind
	existing.Apply(seedPatch(entry))
	return s.repo.Save(ctx, existing)
}

func seedPatch(entry config.ProviderConfig) *provider.ConfigPatch {
	return &provider.ConfigPatch{
		APIKey:     lo.EmptyableToPtr(entry.APIKey),
		Endpoint:   lo.EmptyableToPtr(entry.Endpoint),
		Deployment: lo.EmptyableToPtr(entry.Deployment),
		Model:      lo.EmptyableToPtr(entry.Model),
		APIVersion: lo.EmptyableToPtr(entry.APIVersion),
		Active:     entry.Active,
		Priority:   lo.EmptyableToPtr(entry.Priority),
	}
}

type providerDocument struct {
	Providers []config.ProviderConfig `yaml:"providers"`
}

func (s *ProviderService) Import(ctx context.Context, data []byte) (int, error) {
	var entries []config.ProviderConfig
	if err := yaml.Unmarshal(data, &entries); err != nil {
		var doc providerDocument
		if docErr := yaml.Unmarshal(data, &doc); docErr != nil {
			return 0, domainError.NewBusinessError("INVALID_PROVIDER_FILE", "failed to parse provider file", errors.Join(domainError.ErrInvalidInput, docErr))
		}
		entries = doc.Providers
	}
	return s.Seed(ctx, entries)
}

// FromProviderConfig converts a config file entry into a catalog entry.
func FromProviderConfig(entry config.ProviderConfig) (*provider.Config, error) {
	kind, err := provider.ParseKind(entry.Kind)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(entry.Name)
	if name == "" {
		name = kind.String()
	}
	priority := entry.Priority
	if priority == 0 {
		priority = provider.DefaultPriority
	}
	active := true
	if entry.Active != nil {
		active = *entry.Active
	}
	return &provider.Config{
		Name:       name,
		Kind:       kind,
		APIKey:     entry.APIKey,
		Endpoint:   entry.Endpoint,
		Deployment: entry.Deployment,
		Model:      entry.Model,
		APIVersion: entry.APIVersion,
		Active:     active,
		Priority:   priority,
	}, nil
}

func validateProvider(cfg *provider.Config) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return domainError.NewBusinessError("INVALID_PROVIDER", "provider name is required", domainError.ErrInvalidInput)
	}
	if _, err := provider.ParseKind(cfg.Kind.String()); err != nil {
		return err
	}
	if cfg.Priority < 0 {
		return domainError.NewBusinessError("INVALID_PROVIDER", "priority must not be negative", domainError.ErrInvalidInput)
	}
	return nil
}
