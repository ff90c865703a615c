package reviews

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinRating       = 1
	MaxRating       = 5
	MaxNameLength   = 100
	MinReviewLength = 10
	MaxReviewLength = 1000
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterValidation("treatment", func(fl validator.FieldLevel) bool {
		_, err := ParseTreatment(fl.Field().String())
		return err == nil
	})
}

// reviewFields mirrors the editable text columns. Lengths are rune counts.
type reviewFields struct {
	Name      string `validate:"required,max=100"`
	Treatment string `validate:"required,treatment"`
	Review    string `validate:"required,min=10,max=1000"`
	Rating    int    `validate:"min=1,max=5"`
}

var fieldNames = map[string]string{
	"Name":      "name",
	"Treatment": "treatment",
	"Review":    "review",
	"Rating":    "rating",
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "required" {
			return "Name is required"
		}
		return fmt.Sprintf("Name cannot exceed %d characters", MaxNameLength)
	case "Treatment":
		if fe.Tag() == "required" {
			return "Treatment is required"
		}
		return "Treatment must be one of: " + treatmentList()
	case "Review":
		switch fe.Tag() {
		case "required":
			return "Review text is required"
		case "min":
			return fmt.Sprintf("Review must be at least %d characters long", MinReviewLength)
		default:
			return fmt.Sprintf("Review cannot exceed %d characters", MaxReviewLength)
		}
	case "Rating":
		if fe.Tag() == "min" {
			return fmt.Sprintf("Rating must be at least %d", MinRating)
		}
		return fmt.Sprintf("Rating cannot exceed %d", MaxRating)
	}
	return fe.Error()
}

func treatmentList() string {
	names := make([]string, 0, len(treatmentNames))
	for _, t := range Treatments() {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

// collect runs the validator and keeps only errors for fields in scope.
func collect(in reviewFields, scope map[string]bool, verr *ValidationError) {
	err := validate.Struct(in)
	if err == nil {
		return
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		verr.add("request", err.Error())
		return
	}
	for _, fe := range ves {
		if scope != nil && !scope[fe.Field()] {
			continue
		}
		verr.add(fieldNames[fe.Field()], fieldMessage(fe))
	}
}

// NewReview trims and validates a submission and returns the unsaved entity. Id and
// timestamps are left for the store to assign.
func NewReview(in SubmitInput) (*Review, error) {
	verr := &ValidationError{}

	fields := reviewFields{
		Name:      strings.TrimSpace(in.Name),
		Treatment: strings.TrimSpace(in.Treatment),
		Review:    strings.TrimSpace(in.Review),
		Rating:    MinRating,
	}

	scope := map[string]bool{"Name": true, "Treatment": true, "Review": true}
	collect(fields, scope, verr)

	rawRating := strings.TrimSpace(in.Rating)
	switch rating, err := strconv.Atoi(rawRating); {
	case rawRating == "":
		verr.add("rating", "Rating is required")
	case err != nil:
		verr.add("rating", fmt.Sprintf("Rating must be a whole number between %d and %d", MinRating, MaxRating))
	default:
		fields.Rating = rating
		collect(fields, map[string]bool{"Rating": true}, verr)
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}

	treatment, _ := ParseTreatment(fields.Treatment)
	return &Review{
		Name:      fields.Name,
		Treatment: treatment,
		Review:    fields.Review,
		Rating:    fields.Rating,
		IsVisible: true,
	}, nil
}

// Normalize trims the provided fields of a partial update in place and validates only
// those fields.
func (in *UpdateInput) Normalize() error {
	verr := &ValidationError{}
	if in.empty() {
		verr.add("request", "At least one field must be provided")
		return verr
	}

	fields := reviewFields{Name: "x", Treatment: OtherTreatment.String(), Review: strings.Repeat("x", MinReviewLength), Rating: MinRating}
	scope := map[string]bool{}

	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		in.Name, fields.Name, scope["Name"] = &v, v, true
	}
	if in.Treatment != nil {
		v := strings.TrimSpace(*in.Treatment)
		in.Treatment, fields.Treatment, scope["Treatment"] = &v, v, true
	}
	if in.Review != nil {
		v := strings.TrimSpace(*in.Review)
		in.Review, fields.Review, scope["Review"] = &v, v, true
	}
	if in.Rating != nil {
		fields.Rating, scope["Rating"] = *in.Rating, true
	}

	if len(scope) > 0 {
		collect(fields, scope, verr)
	}
	return verr.orNil()
}

// DecodeIDList parses a JSON value that must be a non-empty array of strings.
func DecodeIDList(raw json.RawMessage) ([]string, error) {
	invalid := &ValidationError{}
	invalid.add("review_ids", "Please provide an array of review IDs")

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed[0] != '[' {
		return nil, invalid
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, invalid
	}
	if len(ids) == 0 {
		return nil, invalid
	}
	return ids, nil
}
