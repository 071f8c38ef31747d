package exercises

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	catalogueCacheSize   = 8 * 1024 * 1024
	catalogueCacheExpire = 10 * 60 // seconds
	allExercisesCacheKey = "all"
)

//go:generate mockgen -source=$GOFILE -destination=catalogue_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	ListVisible(ctx context.Context, userID int) ([]Exercise, error)
	ListAll(ctx context.Context) ([]Exercise, error)
	Get(ctx context.Context, id int) (*Exercise, error)
	Add(ctx context.Context, exercise Exercise) (*Exercise, error)
	Update(ctx context.Context, exercise Exercise) error
	Delete(ctx context.Context, id int) error
}

// Catalogue serves exercise lists from an in-memory cache keyed per user.
// Any write drops the whole cache, since a global exercise shows up in every user's list.
type Catalogue struct {
	repo  exercisesRepo
	cache *freecache.Cache
}

func NewCatalogue(repo exercisesRepo) *Catalogue {
	return &Catalogue{
		repo:  repo,
		cache: freecache.NewCache(catalogueCacheSize),
	}
}

func visibleCacheKey(userID int) string {
	return fmt.Sprintf("visible::%d", userID)
}

func (c *Catalogue) ListVisible(ctx context.Context, userID int) ([]Exercise, error) {
	return c.cachedList(visibleCacheKey(userID), func() ([]Exercise, error) {
		return c.repo.ListVisible(ctx, userID)
	})
}

func (c *Catalogue) ListAll(ctx context.Context) ([]Exercise, error) {
	return c.cachedList(allExercisesCacheKey, func() ([]Exercise, error) {
		return c.repo.ListAll(ctx)
	})
}

func (c *Catalogue) Get(ctx context.Context, id int) (*Exercise, error) {
	return c.repo.Get(ctx, id)
}

func (c *Catalogue) Add(ctx context.Context, exercise Exercise) (*Exercise, error) {
	added, err := c.repo.Add(ctx, exercise)
	if err != nil {
		return nil, err
	}
	c.cache.Clear()
	return added, nil
}

func (c *Catalogue) Update(ctx context.Context, exercise Exercise) error {
	if err := c.repo.Update(ctx, exercise); err != nil {
		return err
	}
	c.cache.Clear()
	return nil
}

func (c *Catalogue) Delete(ctx context.Context, id int) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}
	c.cache.Clear()
	return nil
}

func (c *Catalogue) cachedList(key string, load func() ([]Exercise, error)) ([]Exercise, error) {
	if cached, err := c.cache.Get([]byte(key)); err == nil {
		var exercises []Exercise
		if err := json.Unmarshal(cached, &exercises); err == nil {
			log.Tracef("exercises [%s] served from cache", key)
			return exercises, nil
		} else {
			log.Errorf("failed to unmarshal cached exercises [%s]: %s", key, err)
		}
	}

	exercises, err := load()
	if err != nil {
		return nil, err
	}

	exercisesBytes, err := json.Marshal(exercises)
	if err != nil {
		log.Errorf("failed to marshal exercises for cache [%s]: %s", key, err)
		return exercises, nil
	}
	if err := c.cache.Set([]byte(key), exercisesBytes, catalogueCacheExpire); err != nil {
		log.Errorf("failed to write exercises cache [%s]: %s", key, err)
	}

	return exercises, nil
}
