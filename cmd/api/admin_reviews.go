package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"spa/internal/domain/reviews"
	"spa/internal/params"

	"github.com/go-chi/chi/v5"
)

type updateReviewPayload struct {
	Name       *string      `json:"name"`
	Treatment  *string      `json:"treatment"`
	Review     *string      `json:"review"`
	Rating     *ratingValue `json:"rating" swaggertype:"integer"`
	IsApproved *bool        `json:"is_approved"`
	IsVisible  *bool        `json:"is_visible"`
}

func (p updateReviewPayload) toInput() (reviews.UpdateInput, error) {
	in := reviews.UpdateInput{
		Name:       p.Name,
		Treatment:  p.Treatment,
		Review:     p.Review,
		IsApproved: p.IsApproved,
		IsVisible:  p.IsVisible,
	}
	if p.Rating != nil {
		rating, err := strconv.Atoi(strings.TrimSpace(string(*p.Rating)))
		if err != nil {
			return in, &reviews.ValidationError{Fields: []reviews.FieldError{{
				Field:   "rating",
				Message: fmt.Sprintf("Rating must be a whole number between %d and %d", reviews.MinRating, reviews.MaxRating),
			}}}
		}
		in.Rating = &rating
	}
	return in, nil
}

type bulkDeletePayload struct {
	ReviewIDs json.RawMessage `json:"review_ids" swaggertype:"array,string"`
}

type moderationResponse struct {
	Message string          `json:"message"`
	Review  *reviews.Review `json:"review"`
}

type deleteResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deleted_count"`
}

// listAllReviewsHandler godoc
//
//	@Summary		List every review
//	@Description	Returns all reviews regardless of approval or visibility, newest first.
//	@Tags			admin
//	@Produce		json
//	@Param			page	query		int	false	"Page number"	default(1)
//	@Param			limit	query		int	false	"Page size"		default(50)
//	@Success		200		{object}	reviews.AdminPage
//	@Failure		401		{object}	error
//	@Failure		403		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/reviews [get]
func (app *application) listAllReviewsHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query(), params.AdminDefaults)

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	page, err := app.store.Reviews.ListAll(ctx, p)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, page); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminReviewStatsHandler godoc
//
//	@Summary		Moderation dashboard statistics
//	@Description	Totals over every review, including approved, visible and recent (7 days) counts.
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	reviews.AdminStats
//	@Failure		401	{object}	error
//	@Failure		403	{object}	error
//	@Failure		500	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/reviews/stats [get]
func (app *application) adminReviewStatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	stats, err := app.store.Reviews.AdminStats(ctx)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}
	stats.AverageRating = roundRating(stats.AverageRating)

	if err := app.jsonResponse(w, http.StatusOK, stats); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateReviewHandler godoc
//
//	@Summary		Update a review
//	@Description	Partial update. Provided fields are validated with the submission rules.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			reviewID	path		string				true	"Review ID"
//	@Param			payload		body		updateReviewPayload	true	"Fields to change"
//	@Success		200			{object}	moderationResponse
//	@Failure		400			{object}	error
//	@Failure		404			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/reviews/{reviewID} [put]
func (app *application) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	var payload updateReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	in, err := payload.toInput()
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	review, err := app.store.Reviews.Update(ctx, chi.URLParam(r, "reviewID"), in)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.logger.Infow("review updated", "review_id", review.ID, "published", review.Public(), "admin", getAdminFromContext(r))

	if err := app.jsonResponse(w, http.StatusOK, moderationResponse{
		Message: "Review updated successfully",
		Review:  review,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteReviewHandler godoc
//
//	@Summary		Delete a review
//	@Tags			admin
//	@Produce		json
//	@Param			reviewID	path		string	true	"Review ID"
//	@Success		200			{object}	deleteResponse
//	@Failure		404			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/reviews/{reviewID} [delete]
func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := app.store.Reviews.Delete(ctx, reviewID); err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.logger.Infow("review deleted", "review_id", reviewID, "admin", getAdminFromContext(r))

	if err := app.jsonResponse(w, http.StatusOK, deleteResponse{
		Message:      "Review deleted successfully",
		DeletedCount: 1,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteAllReviewsHandler godoc
//
//	@Summary		Delete every review
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	deleteResponse
//	@Failure		500	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/reviews [delete]
func (app *application) deleteAllReviewsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	n, err := app.store.Reviews.DeleteAll(ctx)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.logger.Infow("all reviews deleted", "deleted_count", n, "admin", getAdminFromContext(r))

	if err := app.jsonResponse(w, http.StatusOK, deleteResponse{
		Message:      fmt.Sprintf("All reviews deleted successfully. %d reviews removed.", n),
		DeletedCount: n,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// bulkDeleteReviewsHandler godoc
//
//	@Summary		Delete selected reviews
//	@Description	Unknown or malformed ids are ignored; the response reports how many were removed.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		bulkDeletePayload	true	"Review ids"
//	@Success		200		{object}	deleteResponse
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/reviews/bulk-delete [post]
func (app *application) bulkDeleteReviewsHandler(w http.ResponseWriter, r *http.Request) {
	var payload bulkDeletePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ids, err := reviews.DecodeIDList(payload.ReviewIDs)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	n, err := app.store.Reviews.DeleteMany(ctx, ids)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.logger.Infow("reviews bulk deleted", "requested", len(ids), "deleted_count", n, "admin", getAdminFromContext(r))

	if err := app.jsonResponse(w, http.StatusOK, deleteResponse{
		Message:      fmt.Sprintf("%d reviews deleted successfully", n),
		DeletedCount: n,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// toggleApprovalHandler godoc
//
//	@Summary		Toggle approval
//	@Tags			admin
//	@Produce		json
//	@Param			reviewID	path		string	true	"Review ID"
//	@Success		200			{object}	moderationResponse
//	@Failure		404			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/reviews/{reviewID}/toggle-approval [patch]
func (app *application) toggleApprovalHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	review, err := app.store.Reviews.ToggleApproval(ctx, chi.URLParam(r, "reviewID"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.logger.Infow("review approval toggled", "review_id", review.ID, "approved", review.IsApproved, "published", review.Public(), "admin", getAdminFromContext(r))

	if err := app.jsonResponse(w, http.StatusOK, moderationResponse{
		Message: fmt.Sprintf("Review %s successfully", review.ApprovalStatus()),
		Review:  review,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// toggleVisibilityHandler godoc
//
//	@Summary		Toggle visibility
//	@Tags			admin
//	@Produce		json
//	@Param			reviewID	path		string	true	"Review ID"
//	@Success		200			{object}	moderationResponse
//	@Failure		404			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/reviews/{reviewID}/toggle-visibility [patch]
func (app *application) toggleVisibilityHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	review, err := app.store.Reviews.ToggleVisibility(ctx, chi.URLParam(r, "reviewID"))
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.logger.Infow("review visibility toggled", "review_id", review.ID, "visible", review.IsVisible, "published", review.Public(), "admin", getAdminFromContext(r))

	if err := app.jsonResponse(w, http.StatusOK, moderationResponse{
		Message: fmt.Sprintf("Review %s successfully", review.VisibilityStatus()),
		Review:  review,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}
