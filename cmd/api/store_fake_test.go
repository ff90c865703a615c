package main

import (
	"context"
	"sort"
	"sync"
	"time"

	"spa/internal/domain/reviews"
	"spa/internal/params"

	"github.com/google/uuid"
)

// memStore is an in-memory reviews.Store sharing the domain validation rules.
type memStore struct {
	mu          sync.Mutex
	items       []*reviews.Review
	autoApprove bool
	clock       time.Time
	failWith    error
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memStore) seed(name string, rating int, approved, visible bool) *reviews.Review {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.tick()
	rv := &reviews.Review{
		ID:         uuid.New(),
		Name:       name,
		Treatment:  reviews.Aromatherapy,
		Review:     "A calm and restorative visit.",
		Rating:     rating,
		IsApproved: approved,
		IsVisible:  visible,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.items = append(m.items, rv)
	return rv
}

func (m *memStore) find(id string) (*reviews.Review, int, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, -1, reviews.ErrNotFound
	}
	for i, rv := range m.items {
		if rv.ID == rid {
			return rv, i, nil
		}
	}
	return nil, -1, reviews.ErrNotFound
}

func (m *memStore) newestFirst(keep func(*reviews.Review) bool) []reviews.Review {
	out := make([]reviews.Review, 0, len(m.items))
	for _, rv := range m.items {
		if keep(rv) {
			out = append(out, *rv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func pageOf(all []reviews.Review, p params.Pagination) []reviews.Review {
	if p.Offset >= len(all) {
		return []reviews.Review{}
	}
	end := p.Offset + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[p.Offset:end]
}

func distributionOf(items []reviews.Review) reviews.Distribution {
	d := reviews.NewDistribution()
	for _, rv := range items {
		d[rv.Rating]++
	}
	return d
}

func (m *memStore) Submit(_ context.Context, in reviews.SubmitInput) (*reviews.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	rv, err := reviews.NewReview(in)
	if err != nil {
		return nil, err
	}
	now := m.tick()
	rv.ID = uuid.New()
	rv.IsApproved = m.autoApprove
	rv.CreatedAt, rv.UpdatedAt = now, now
	m.items = append(m.items, rv)

	out := *rv
	return &out, nil
}

func (m *memStore) ListPublic(_ context.Context, p params.Pagination) (*reviews.PublicPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	all := m.newestFirst((*reviews.Review).Public)
	dist := distributionOf(all)
	p.ComputeMeta(len(all))
	return &reviews.PublicPage{
		Reviews:           pageOf(all, p),
		Pagination:        p,
		AverageRating:     dist.Average(),
		TotalRatedReviews: int64(len(all)),
	}, nil
}

func (m *memStore) ListAll(_ context.Context, p params.Pagination) (*reviews.AdminPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	all := m.newestFirst(func(*reviews.Review) bool { return true })
	p.ComputeMeta(len(all))
	return &reviews.AdminPage{Reviews: pageOf(all, p), Pagination: p}, nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*reviews.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rv, _, err := m.find(id)
	if err != nil {
		return nil, err
	}
	out := *rv
	return &out, nil
}

func (m *memStore) Update(_ context.Context, id string, in reviews.UpdateInput) (*reviews.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := in.Normalize(); err != nil {
		return nil, err
	}
	rv, _, err := m.find(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		rv.Name = *in.Name
	}
	if in.Treatment != nil {
		rv.Treatment, _ = reviews.ParseTreatment(*in.Treatment)
	}
	if in.Review != nil {
		rv.Review = *in.Review
	}
	if in.Rating != nil {
		rv.Rating = *in.Rating
	}
	if in.IsApproved != nil {
		rv.IsApproved = *in.IsApproved
	}
	if in.IsVisible != nil {
		rv.IsVisible = *in.IsVisible
	}
	rv.UpdatedAt = m.tick()

	out := *rv
	return &out, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, i, err := m.find(id)
	if err != nil {
		return err
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

func (m *memStore) DeleteAll(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := int64(len(m.items))
	m.items = nil
	return n, nil
}

func (m *memStore) DeleteMany(_ context.Context, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(ids) == 0 {
		return 0, &reviews.ValidationError{Fields: []reviews.FieldError{{Field: "review_ids", Message: "Please provide an array of review IDs"}}}
	}
	var n int64
	for _, id := range ids {
		if _, i, err := m.find(id); err == nil {
			m.items = append(m.items[:i], m.items[i+1:]...)
			n++
		}
	}
	return n, nil
}

func (m *memStore) toggle(id string, flip func(*reviews.Review)) (*reviews.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rv, _, err := m.find(id)
	if err != nil {
		return nil, err
	}
	flip(rv)
	rv.UpdatedAt = m.tick()
	out := *rv
	return &out, nil
}

func (m *memStore) ToggleApproval(_ context.Context, id string) (*reviews.Review, error) {
	return m.toggle(id, func(rv *reviews.Review) { rv.IsApproved = !rv.IsApproved })
}

func (m *memStore) ToggleVisibility(_ context.Context, id string) (*reviews.Review, error) {
	return m.toggle(id, func(rv *reviews.Review) { rv.IsVisible = !rv.IsVisible })
}

func (m *memStore) Stats(context.Context) (*reviews.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	dist := distributionOf(m.newestFirst((*reviews.Review).Public))
	return &reviews.Stats{
		TotalReviews:       dist.Total(),
		AverageRating:      dist.Average(),
		RatingDistribution: dist,
	}, nil
}

func (m *memStore) AdminStats(context.Context) (*reviews.AdminStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	all := m.newestFirst(func(*reviews.Review) bool { return true })
	s := &reviews.AdminStats{RatingDistribution: distributionOf(all)}
	since := m.clock.Add(-reviews.RecentWindow)
	for _, rv := range all {
		s.TotalReviews++
		if rv.IsApproved {
			s.ApprovedReviews++
		}
		if rv.IsVisible {
			s.VisibleReviews++
		}
		if !rv.CreatedAt.Before(since) {
			s.RecentReviews++
		}
	}
	s.AverageRating = s.RatingDistribution.Average()
	return s, nil
}
