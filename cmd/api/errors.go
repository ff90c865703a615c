package main

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"spa/internal/domain/reviews"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	fields := []any{"method", r.Method, "path", r.URL.Path, "error", err.Error()}
	if cause := errors.Unwrap(err); cause != nil {
		fields = append(fields, "cause", cause.Error())
	}
	app.logger.Errorw("internal error", fields...)

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) validationErrorResponse(w http.ResponseWriter, r *http.Request, verr *reviews.ValidationError) {
	app.logger.Warnw("validation failed", "method", r.Method, "path", r.URL.Path, "fields", verr.Fields)

	writeJSONError(w, http.StatusBadRequest, "Validation failed", verr.Messages()...)
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusNotFound, "Review not found")
}

func (app *application) unauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	app.logger.Warnw("forbidden", "method", r.Method, "path", r.URL.Path)

	writeJSONError(w, http.StatusForbidden, "forbidden")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path, "retry_after", retryAfter)

	seconds := int(math.Ceil(retryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(seconds))

	writeJSONError(w, http.StatusTooManyRequests, "Too many reviews submitted from this IP, please try again later.")
}

// storeErrorResponse maps an error returned by the review store to its response.
func (app *application) storeErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var verr *reviews.ValidationError
	switch {
	case errors.As(err, &verr):
		app.validationErrorResponse(w, r, verr)
	case errors.Is(err, reviews.ErrNotFound):
		app.notFoundResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}
