package main

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"spa/internal/domain/reviews"
	"spa/internal/params"

	"github.com/go-chi/chi/v5"
)

const storeTimeout = 5 * time.Second

// ratingValue accepts a JSON number or a numeric string. The text is validated by the
// store so both forms share the same rules.
type ratingValue string

func (v *ratingValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = ratingValue(s)
		return nil
	}
	*v = ratingValue(data)
	return nil
}

type submitReviewPayload struct {
	Name      string      `json:"name"`
	Treatment string      `json:"treatment"`
	Review    string      `json:"review"`
	Rating    ratingValue `json:"rating" swaggertype:"integer"`
}

type submitReviewResponse struct {
	Message string          `json:"message"`
	Review  *reviews.Review `json:"review"`
}

func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

// submitReviewHandler godoc
//
//	@Summary		Submit a review
//	@Description	Stores a new review. It appears publicly once it is approved and visible.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		submitReviewPayload	true	"Review payload"
//	@Success		201		{object}	submitReviewResponse
//	@Failure		400		{object}	error	"Validation failed"
//	@Failure		429		{object}	error	"Too many submissions"
//	@Failure		500		{object}	error
//	@Router			/reviews [post]
func (app *application) submitReviewHandler(w http.ResponseWriter, r *http.Request) {
	var payload submitReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	review, err := app.store.Reviews.Submit(ctx, reviews.SubmitInput{
		Name:      payload.Name,
		Treatment: payload.Treatment,
		Review:    payload.Review,
		Rating:    string(payload.Rating),
	})
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.logger.Infow("review submitted", "review_id", review.ID, "rating", review.Rating, "published", review.Public())

	if err := app.jsonResponse(w, http.StatusCreated, submitReviewResponse{
		Message: "Review submitted successfully",
		Review:  review,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listPublicReviewsHandler godoc
//
//	@Summary		List published reviews
//	@Description	Returns approved and visible reviews, newest first, with the rating summary of all published reviews.
//	@Tags			reviews
//	@Produce		json
//	@Param			page	query		int	false	"Page number"	default(1)
//	@Param			limit	query		int	false	"Page size"		default(10)
//	@Success		200		{object}	reviews.PublicPage
//	@Failure		500		{object}	error
//	@Router			/reviews [get]
func (app *application) listPublicReviewsHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query(), params.PublicDefaults)

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	page, err := app.store.Reviews.ListPublic(ctx, p)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	page.AverageRating = roundRating(page.AverageRating)

	if err := app.jsonResponse(w, http.StatusOK, page); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getReviewHandler godoc
//
//	@Summary		Get a review
//	@Tags			reviews
//	@Produce		json
//	@Param			reviewID	path		string	true	"Review ID"
//	@Success		200			{object}	reviews.Review
//	@Failure		404			{object}	error	"Review not found"
//	@Failure		500			{object}	error
//	@Router			/reviews/{reviewID} [get]
func (app *application) getReviewHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	review, err := app.store.Reviews.GetByID(ctx, chi.URLParam(r, "reviewID"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// reviewStatsHandler godoc
//
//	@Summary		Public rating statistics
//	@Description	Total, average and per-star distribution of approved and visible reviews.
//	@Tags			reviews
//	@Produce		json
//	@Success		200	{object}	reviews.Stats
//	@Failure		500	{object}	error
//	@Router			/reviews/stats [get]
func (app *application) reviewStatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	stats, err := app.store.Reviews.Stats(ctx)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	stats.AverageRating = roundRating(stats.AverageRating)

	if err := app.jsonResponse(w, http.StatusOK, stats); err != nil {
		app.internalServerError(w, r, err)
	}
}
