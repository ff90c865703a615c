package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"spa/internal/infra/dbx"
	"spa/internal/params"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RecentWindow bounds the "recent reviews" counter of the admin dashboard.
const RecentWindow = 7 * 24 * time.Hour

type Store interface {
	Submit(ctx context.Context, in SubmitInput) (*Review, error)
	ListPublic(ctx context.Context, p params.Pagination) (*PublicPage, error)
	GetByID(ctx context.Context, id string) (*Review, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Review, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	ToggleApproval(ctx context.Context, id string) (*Review, error)
	ToggleVisibility(ctx context.Context, id string) (*Review, error)
	Stats(ctx context.Context) (*Stats, error)
	AdminStats(ctx context.Context) (*AdminStats, error)
	ListAll(ctx context.Context, p params.Pagination) (*AdminPage, error)
}

type Repository struct {
	db          dbx.Querier
	autoApprove bool
	now         func() time.Time
}

type Option func(*Repository)

// WithAutoApprove publishes new submissions immediately instead of waiting for a
// moderator.
func WithAutoApprove(enabled bool) Option {
	return func(r *Repository) { r.autoApprove = enabled }
}

// WithClock overrides the time source used for ids, timestamps and the recent window.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func NewRepository(db dbx.Querier, opts ...Option) *Repository {
	r := &Repository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

const reviewColumns = `id, name, treatment, review, rating, is_approved, is_visible, created_at, updated_at`

const publicFilter = `is_approved = TRUE AND is_visible = TRUE`

func scanReview(row pgx.Row) (*Review, error) {
	var (
		rv        Review
		treatment string
	)
	err := row.Scan(
		&rv.ID, &rv.Name, &treatment, &rv.Review, &rv.Rating,
		&rv.IsApproved, &rv.IsVisible, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rv.Treatment, err = ParseTreatment(treatment); err != nil {
		return nil, fmt.Errorf("review %s: %w", rv.ID, err)
	}
	return &rv, nil
}

func collectReviews(rows pgx.Rows) ([]Review, error) {
	defer rows.Close()

	reviews := make([]Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// parseID treats malformed ids as unknown ones.
func parseID(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}

// Submit validates and stores a new review.
func (r *Repository) Submit(ctx context.Context, in SubmitInput) (*Review, error) {
	rv, err := NewReview(in)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, storageErr("generate review id", err)
	}
	now := r.now().UTC()

	rv.ID = id
	rv.IsApproved = r.autoApprove
	rv.CreatedAt, rv.UpdatedAt = now, now

	query := `
        INSERT INTO reviews (id, name, treatment, review, rating, is_approved, is_visible, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at, updated_at
    `
	err = r.db.QueryRow(ctx, query,
		rv.ID, rv.Name, rv.Treatment.String(), rv.Review, rv.Rating,
		rv.IsApproved, rv.IsVisible, rv.CreatedAt, rv.UpdatedAt,
	).Scan(&rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, storageErr("insert review", err)
	}
	return rv, nil
}

// ListPublic returns one page of approved and visible reviews, newest first, with the
// rating summary of the whole filtered set.
func (r *Repository) ListPublic(ctx context.Context, p params.Pagination) (*PublicPage, error) {
	var (
		total   int
		average float64
	)
	summary := `
        SELECT COUNT(id), COALESCE(AVG(rating), 0)::float8
        FROM reviews
        WHERE ` + publicFilter
	if err := r.db.QueryRow(ctx, summary).Scan(&total, &average); err != nil {
		return nil, storageErr("summarize public reviews", err)
	}

	query := `
        SELECT ` + reviewColumns + `
        FROM reviews
        WHERE ` + publicFilter + `
        ORDER BY created_at DESC, id
        LIMIT $1 OFFSET $2
    `
	rows, err := r.db.Query(ctx, query, p.Limit, p.Offset)
	if err != nil {
		return nil, storageErr("list public reviews", err)
	}
	reviews, err := collectReviews(rows)
	if err != nil {
		return nil, storageErr("list public reviews", err)
	}

	p.ComputeMeta(total)
	return &PublicPage{
		Reviews:           reviews,
		Pagination:        p,
		AverageRating:     average,
		TotalRatedReviews: int64(total),
	}, nil
}

// ListAll returns one page of every review regardless of moderation flags.
func (r *Repository) ListAll(ctx context.Context, p params.Pagination) (*AdminPage, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(id) FROM reviews`).Scan(&total); err != nil {
		return nil, storageErr("count reviews", err)
	}

	query := `
        SELECT ` + reviewColumns + `
        FROM reviews
        ORDER BY created_at DESC, id
        LIMIT $1 OFFSET $2
    `
	rows, err := r.db.Query(ctx, query, p.Limit, p.Offset)
	if err != nil {
		return nil, storageErr("list reviews", err)
	}
	reviews, err := collectReviews(rows)
	if err != nil {
		return nil, storageErr("list reviews", err)
	}

	p.ComputeMeta(total)
	return &AdminPage{Reviews: reviews, Pagination: p}, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Review, error) {
	rid, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	rv, err := scanReview(r.db.QueryRow(ctx, query, rid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storageErr("get review", err)
	}
	return rv, nil
}

// Update applies a partial update with dynamic fields, validating each provided field
// with the submission rules.
func (r *Repository) Update(ctx context.Context, id string, in UpdateInput) (*Review, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}
	rid, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	setParts := []string{}
	args := []any{}
	argIndex := 1

	set := func(column string, value any) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if in.Name != nil {
		set("name", *in.Name)
	}
	if in.Treatment != nil {
		t, _ := ParseTreatment(*in.Treatment)
		set("treatment", t.String())
	}
	if in.Review != nil {
		set("review", *in.Review)
	}
	if in.Rating != nil {
		set("rating", *in.Rating)
	}
	if in.IsApproved != nil {
		set("is_approved", *in.IsApproved)
	}
	if in.IsVisible != nil {
		set("is_visible", *in.IsVisible)
	}

	// Always update updated_at
	set("updated_at", r.now().UTC())

	args = append(args, rid)
	query := fmt.Sprintf(`
        UPDATE reviews
        SET %s
        WHERE id = $%d
        RETURNING %s
    `, strings.Join(setParts, ", "), argIndex, reviewColumns)

	rv, err := scanReview(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storageErr("update review", err)
	}
	return rv, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	rid, ok := parseID(id)
	if !ok {
		return ErrNotFound
	}

	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, rid)
	if err != nil {
		return storageErr("delete review", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll removes every review and reports how many were removed.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM reviews`)
	if err != nil {
		return 0, storageErr("delete all reviews", err)
	}
	return result.RowsAffected(), nil
}

// DeleteMany removes the listed reviews. Malformed and unknown ids are ignored.
func (r *Repository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		verr := &ValidationError{}
		verr.add("review_ids", "Please provide an array of review IDs")
		return 0, verr
	}

	valid := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		rid, ok := parseID(id)
		if !ok {
			continue
		}
		if _, dup := seen[rid]; dup {
			continue
		}
		seen[rid] = struct{}{}
		valid = append(valid, rid)
	}
	if len(valid) == 0 {
		return 0, nil
	}

	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = ANY($1)`, valid)
	if err != nil {
		return 0, storageErr("delete reviews", err)
	}
	return result.RowsAffected(), nil
}

func (r *Repository) toggle(ctx context.Context, id, column string) (*Review, error) {
	rid, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	query := fmt.Sprintf(`
        UPDATE reviews
        SET %[1]s = NOT %[1]s, updated_at = $2
        WHERE id = $1
        RETURNING %[2]s
    `, column, reviewColumns)

	rv, err := scanReview(r.db.QueryRow(ctx, query, rid, r.now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storageErr("toggle "+column, err)
	}
	return rv, nil
}

// ToggleApproval flips is_approved atomically.
func (r *Repository) ToggleApproval(ctx context.Context, id string) (*Review, error) {
	return r.toggle(ctx, id, "is_approved")
}

// ToggleVisibility flips is_visible atomically.
func (r *Repository) ToggleVisibility(ctx context.Context, id string) (*Review, error) {
	return r.toggle(ctx, id, "is_visible")
}

func (r *Repository) distribution(ctx context.Context, where string) (Distribution, error) {
	query := `SELECT rating, COUNT(id) FROM reviews`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` GROUP BY rating`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dist := NewDistribution()
	for rows.Next() {
		var (
			rating int
			count  int64
		)
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, err
		}
		if rating < MinRating || rating > MaxRating {
			continue
		}
		dist[rating] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dist, nil
}

// Stats summarises approved and visible reviews. Totals and the average come from the
// same grouped rows as the distribution, so the buckets always sum to the total.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	dist, err := r.distribution(ctx, publicFilter)
	if err != nil {
		return nil, storageErr("review stats", err)
	}
	return &Stats{
		TotalReviews:       dist.Total(),
		AverageRating:      dist.Average(),
		RatingDistribution: dist,
	}, nil
}

// AdminStats summarises every review for the moderation dashboard.
func (r *Repository) AdminStats(ctx context.Context) (*AdminStats, error) {
	since := r.now().UTC().Add(-RecentWindow)

	query := `
        SELECT
            COUNT(id),
            COUNT(id) FILTER (WHERE is_approved = TRUE),
            COUNT(id) FILTER (WHERE is_visible = TRUE),
            COUNT(id) FILTER (WHERE created_at >= $1),
            COALESCE(AVG(rating), 0)::float8
        FROM reviews
    `
	var s AdminStats
	err := r.db.QueryRow(ctx, query, since).Scan(
		&s.TotalReviews,
		&s.ApprovedReviews,
		&s.VisibleReviews,
		&s.RecentReviews,
		&s.AverageRating,
	)
	if err != nil {
		return nil, storageErr("admin review stats", err)
	}

	if s.RatingDistribution, err = r.distribution(ctx, ""); err != nil {
		return nil, storageErr("admin rating distribution", err)
	}
	return &s, nil
}
