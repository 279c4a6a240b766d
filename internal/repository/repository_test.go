package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/leads-service/internal/docstore"
	"github.com/spec-kit/leads-service/internal/domain"
)

func stores(t *testing.T) map[string]docstore.Store {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return map[string]docstore.Store{
		"memory": docstore.NewMemoryStore(),
		"redis":  docstore.NewRedisStore(client, "repo"),
	}
}

func TestLeadRepositoryLifecycle(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewLeadRepository(store)
			base := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
			phone := "+7 900 000-00-00"
			ip := "203.0.113.7"

			first := domain.NewLead(domain.LeadInput{Name: "Anna", Email: "anna@example.com", Phone: &phone, Message: "site", IPAddress: &ip, Country: "Germany", UserAgent: "curl/8"}, base)
			second := domain.NewLead(domain.LeadInput{Name: "Boris", Email: "boris@example.com", Message: "app"}, base.Add(time.Minute))
			require.NoError(t, repo.Insert(ctx, first))
			require.NoError(t, repo.Insert(ctx, second))

			leads, err := docstore.Collect(repo.List(ctx, LeadFilter{}))
			require.NoError(t, err)
			require.Len(t, leads, 2)
			assert.Equal(t, second.ID, leads[0].ID)
			assert.Equal(t, first, leads[1])
			assert.Nil(t, leads[0].Phone)
			assert.Equal(t, domain.Unknown, *leads[0].Country)

			require.NoError(t, repo.UpdateStatus(ctx, first.ID, domain.LeadStatusCompleted))
			completed := domain.LeadStatusCompleted
			done, err := docstore.Collect(repo.List(ctx, LeadFilter{Status: &completed}))
			require.NoError(t, err)
			require.Len(t, done, 1)
			assert.Equal(t, first.ID, done[0].ID)
			assert.True(t, first.CreatedAt.Equal(done[0].CreatedAt))

			assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", domain.LeadStatusNew), docstore.ErrNotFound)
			require.NoError(t, repo.Delete(ctx, first.ID))
			assert.ErrorIs(t, repo.Delete(ctx, first.ID), docstore.ErrNotFound)
		})
	}
}

func TestLeadRepositoryReadsStructuredTimestamps(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	created := time.Date(2024, 11, 5, 14, 30, 0, 0, time.UTC)

	require.NoError(t, store.Collection(QuotesCollection).Insert(ctx, docstore.Document{
		"id":         "legacy",
		"name":       "Legacy",
		"email":      "legacy@example.com",
		"message":    "imported",
		"created_at": created,
	}))

	leads, err := docstore.Collect(NewLeadRepository(store).List(ctx, LeadFilter{}))
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, created, leads[0].CreatedAt)
	assert.Equal(t, domain.LeadStatusNew, leads[0].Status)
}

func TestLeadRepositorySurfacesCorruptTimestamp(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	require.NoError(t, store.Collection(QuotesCollection).Insert(ctx, docstore.Document{"id": "bad", "created_at": "soon"}))

	_, err := docstore.Collect(NewLeadRepository(store).List(ctx, LeadFilter{}))
	assert.Error(t, err)
}

func TestProjectRepositoryReplace(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewProjectRepository(store)
			link := "https://shop.example.com"
			project := domain.NewProject(domain.ProjectInput{Title: "Shop", Description: "e-commerce", Tech: []string{"React", "FastAPI"}, Image: "shop.png", Link: &link}, time.Now())
			require.NoError(t, repo.Insert(ctx, project))

			require.NoError(t, repo.Replace(ctx, project.ID, domain.ProjectInput{Title: "Shop v2", Description: "rewrite", Tech: []string{"Go"}, Image: "shop2.png"}))

			projects, err := docstore.Collect(repo.List(ctx, true))
			require.NoError(t, err)
			require.Len(t, projects, 1)
			got := projects[0]
			assert.Equal(t, project.ID, got.ID)
			assert.True(t, project.CreatedAt.Equal(got.CreatedAt))
			assert.Equal(t, "Shop v2", got.Title)
			assert.Equal(t, []string{"Go"}, got.Tech)
			assert.Nil(t, got.Link)

			assert.ErrorIs(t, repo.Replace(ctx, "missing", domain.ProjectInput{Title: "x"}), docstore.ErrNotFound)
			require.NoError(t, repo.Delete(ctx, project.ID))
			assert.ErrorIs(t, repo.Delete(ctx, project.ID), docstore.ErrNotFound)
		})
	}
}

func TestStatusCheckRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStatusCheckRepository(docstore.NewMemoryStore())
	check := domain.NewStatusCheck("uptime-bot", time.Now())
	require.NoError(t, repo.Insert(ctx, check))

	checks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, checks, 1)
	assert.Equal(t, check, checks[0])
}
