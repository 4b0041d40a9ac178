package providerrepo_test

import (
	"context"
	"testing"

	domain "github.com/omega/animator/internal/biz/provider"
	domainError "github.com/omega/animator/internal/domain/error"
	"github.com/omega/animator/internal/infra/persistence/providerrepo"
	"github.com/omega/animator/internal/orm/ormtest"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrdersByPriority(t *testing.T) {
	ctx := context.Background()
	repo := providerrepo.NewRepositoryImpl(ormtest.NewStorage(t).DB())

	entries := []*domain.Config{
		{Name: "late", Kind: domain.KindGemini, APIKey: "k", Active: true, Priority: 20},
		{Name: "early", Kind: domain.KindAzureOpenAI, APIKey: "k", Active: true, Priority: 1},
		{Name: "off", Kind: domain.KindGemini, APIKey: "k", Active: false, Priority: 0},
	}
	for _, e := range entries {
		require.NoError(t, repo.Create(ctx, e))
	}

	active, err := repo.List(ctx, domain.ListFilter{Active: mo.Some(true)})
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "early", active[0].Name)
	assert.Equal(t, "late", active[1].Name)

	gemini, err := repo.List(ctx, domain.ListFilter{Kind: mo.Some(domain.KindGemini)})
	require.NoError(t, err)
	require.Len(t, gemini, 2)
	assert.Equal(t, "off", gemini[0].Name)
	assert.False(t, gemini[0].Active)
}

func TestOptionsRoundTripAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := providerrepo.NewRepositoryImpl(ormtest.NewStorage(t).DB())

	cfg := &domain.Config{
		Name:    "gemini",
		Kind:    domain.KindGemini,
		APIKey:  "k",
		Active:  true,
		Options: map[string]any{"temperature": 0.5},
	}
	require.NoError(t, repo.Create(ctx, cfg))

	got, err := repo.GetByName(ctx, "gemini")
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.Options["temperature"])

	assert.ErrorIs(t, repo.Create(ctx, &domain.Config{Name: "gemini", Kind: domain.KindGemini}), domainError.ErrProviderExists)

	require.NoError(t, repo.Delete(ctx, cfg.ID))
	assert.ErrorIs(t, repo.Delete(ctx, cfg.ID), domainError.ErrProviderNotFound)
	_, err = repo.GetByID(ctx, cfg.ID)
	assert.ErrorIs(t, err, domainError.ErrProviderNotFound)
}
