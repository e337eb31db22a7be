package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrSnakeDoc/navs/internal/domain"
	"github.com/MrSnakeDoc/navs/internal/index"
	"github.com/MrSnakeDoc/navs/internal/logger"
)

type brokenReader struct{}

func (brokenReader) ListLinks(context.Context, domain.LinkFilter) ([]*domain.Link, error) {
	return nil, errors.New("store down")
}

func (brokenReader) ListGroups(context.Context, domain.GroupFilter) ([]*domain.Group, error) {
	return nil, errors.New("store down")
}

func TestStoreSyncer_Sync(t *testing.T) {
	ctx := context.Background()
	backing := index.NewMemoryIndex()
	deleted := time.Now()
	_ = backing.SaveLinks(ctx, []*domain.Link{{Name: "a"}, {Name: "b", DeletionTimestamp: &deleted}})
	_ = backing.SaveGroups(ctx, []*domain.Group{{Name: "g"}})

	idx := index.NewMemoryIndex()
	ss := NewStoreSyncer(backing, idx, logger.NewNop(), time.Hour, nil)

	if err := ss.Sync(ctx); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if idx.LinkCount() != 2 || idx.GroupCount() != 1 {
		t.Errorf("index = %d links / %d groups, want 2 / 1", idx.LinkCount(), idx.GroupCount())
	}
}

func TestStoreSyncer_Failure(t *testing.T) {
	idx := index.NewMemoryIndex()
	idx.Replace([]*domain.Link{{Name: "keep"}}, nil)

	ss := NewStoreSyncer(brokenReader{}, idx, logger.NewNop(), time.Hour, nil)
	if err := ss.Start(context.Background()); err == nil {
		t.Fatal("Start() should fail when the store is down")
	}
	if idx.LinkCount() != 1 {
		t.Errorf("index changed after failed sync: %d links", idx.LinkCount())
	}
}
