package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/pictor/pictor/internal/metrics"
	"github.com/pictor/pictor/internal/model"
	"github.com/pictor/pictor/internal/repository"
)

// Pagination limits. Out-of-range requests are clamped, never rejected.
const (
	DefaultPageLimit = 6
	MinPageLimit     = 1
	MaxPageLimit     = 50
)

// DefaultSeedCount is the number of images seeded when none is specified.
const DefaultSeedCount = 80

// seedKeywords is the tag vocabulary for seeded images.
var seedKeywords = []string{
	"travel", "food", "nature", "city", "art", "night", "portrait", "street",
	"minimal", "color", "blackwhite", "ocean", "mountain", "forest", "animal",
}

// ImageStore is the image store surface the image service needs.
type ImageStore interface {
	ListImages(ctx context.Context, filter repository.ImageFilter, limit int) ([]*model.Image, error)
	InsertImages(ctx context.Context, images []*model.Image) error
	DeleteAllImages(ctx context.Context) error
	CountImages(ctx context.Context, keyword string) (int64, error)
}

// ImageService serves cursor-paginated image listings and seeds the
// gallery contents.
type ImageService struct {
	store   ImageStore
	metrics metrics.Recorder

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	rng     *rand.Rand
}

// NewImageService creates a new ImageService.
func NewImageService(store ImageStore, recorder metrics.Recorder) *ImageService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &ImageService{
		store:   store,
		metrics: recorder,
		entropy: ulid.Monotonic(rng, 0),
		rng:     rng,
	}
}

// PageInput defines input for a page request.
type PageInput struct {
	Keyword string
	Cursor  string
	// Limit of 0 means the default. Values outside [MinPageLimit,
	// MaxPageLimit] are clamped silently.
	Limit int
}

// Page returns one window of images matching the filter.
//
// It fetches limit+1 records ordered ascending by ID: the extra record
// only signals that more data exists and is never returned. NextCursor is
// the ID of the last returned item when the extra record was present,
// empty otherwise. An unrecognized cursor is treated as absent by the
// store layer, so a garbage cursor restarts the listing instead of
// erroring.
func (s *ImageService) Page(ctx context.Context, input PageInput) (*model.Page, error) {
	start := time.Now()

	limit := clampLimit(input.Limit)

	images, err := s.store.ListImages(ctx, repository.ImageFilter{
		Keyword: input.Keyword,
		Cursor:  input.Cursor,
	}, limit+1)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	page := &model.Page{Items: images}
	if len(images) > limit {
		page.Items = images[:limit]
		page.NextCursor = page.Items[len(page.Items)-1].ID
	}
	if page.Items == nil {
		page.Items = []*model.Image{}
	}

	s.metrics.IncPageServed()
	s.metrics.ObservePageSize(len(page.Items))
	s.metrics.ObservePageDuration(time.Since(start))

	return page, nil
}

// clampLimit normalizes a requested page size into [MinPageLimit, MaxPageLimit].
func clampLimit(limit int) int {
	if limit == 0 {
		return DefaultPageLimit
	}
	if limit < MinPageLimit {
		return MinPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

// Seed replaces the gallery contents with count generated images.
// Generated IDs use a monotonic ULID source so insertion order and ID
// order agree even within one millisecond.
func (s *ImageService) Seed(ctx context.Context, count int) (int, error) {
	if count <= 0 {
		count = DefaultSeedCount
	}

	images := make([]*model.Image, 0, count)
	now := time.Now().UTC()

	s.mu.Lock()
	for i := 0; i < count; i++ {
		width := s.randomInt(260, 520)
		height := s.randomInt(260, 640)
		images = append(images, &model.Image{
			ID:        ulid.MustNew(ulid.Timestamp(now), s.entropy).String(),
			URL:       fmt.Sprintf("https://placehold.co/%dx%d", width, height),
			Width:     width,
			Height:    height,
			Keywords:  s.pickKeywords(),
			CreatedAt: now,
		})
	}
	s.mu.Unlock()

	if err := s.store.DeleteAllImages(ctx); err != nil {
		return 0, fmt.Errorf("clear images: %w", err)
	}
	if err := s.store.InsertImages(ctx, images); err != nil {
		return 0, fmt.Errorf("insert images: %w", err)
	}

	return len(images), nil
}

// Count returns the number of stored images matching the keyword.
func (s *ImageService) Count(ctx context.Context, keyword string) (int64, error) {
	return s.store.CountImages(ctx, keyword)
}

// randomInt returns a random int in [min, max]. Caller holds s.mu.
func (s *ImageService) randomInt(min, max int) int {
	return min + s.rng.Intn(max-min+1)
}

// pickKeywords draws 2-5 distinct tags from the vocabulary. Caller holds s.mu.
func (s *ImageService) pickKeywords() []string {
	count := 2 + s.rng.Intn(4)
	picked := s.rng.Perm(len(seedKeywords))[:count]

	keywords := make([]string, 0, count)
	for _, idx := range picked {
		keywords = append(keywords, seedKeywords[idx])
	}
	return keywords
}
