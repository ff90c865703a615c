package reviews

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"spa/internal/params"

	"github.com/google/uuid"
)

// Treatment is the closed set of services a review can be written for.
type Treatment int

const (
	SignatureFacial Treatment = iota + 1
	DeepTissueMassage
	CouplesRetreat
	Aromatherapy
	HotStoneMassage
	BodyWrap
	ManicurePedicure
	OtherTreatment
)

var treatmentNames = map[Treatment]string{
	SignatureFacial:   "Signature Facial",
	DeepTissueMassage: "Deep Tissue Massage",
	CouplesRetreat:    "Couples Retreat",
	Aromatherapy:      "Aromatherapy",
	HotStoneMassage:   "Hot Stone Massage",
	BodyWrap:          "Body Wrap",
	ManicurePedicure:  "Manicure & Pedicure",
	OtherTreatment:    "Other",
}

// Treatments lists every category in display order.
func Treatments() []Treatment {
	return []Treatment{
		SignatureFacial,
		DeepTissueMassage,
		CouplesRetreat,
		Aromatherapy,
		HotStoneMassage,
		BodyWrap,
		ManicurePedicure,
		OtherTreatment,
	}
}

// ParseTreatment matches the display name exactly after trimming surrounding space.
func ParseTreatment(s string) (Treatment, error) {
	s = strings.TrimSpace(s)
	for t, name := range treatmentNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown treatment %q", s)
}

func (t Treatment) Valid() bool {
	_, ok := treatmentNames[t]
	return ok
}

func (t Treatment) String() string {
	if name, ok := treatmentNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Treatment(%d)", int(t))
}

func (t Treatment) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid treatment %d", int(t))
	}
	return json.Marshal(t.String())
}

func (t *Treatment) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTreatment(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type Review struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Treatment  Treatment `json:"treatment" swaggertype:"string"`
	Review     string    `json:"review"`
	Rating     int       `json:"rating"` // 1-5
	IsApproved bool      `json:"is_approved"`
	IsVisible  bool      `json:"is_visible"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Public reports whether the review may appear on the public surface.
func (r *Review) Public() bool {
	return r.IsApproved && r.IsVisible
}

func (r *Review) ApprovalStatus() string {
	if r.IsApproved {
		return "approved"
	}
	return "unapproved"
}

func (r *Review) VisibilityStatus() string {
	if r.IsVisible {
		return "made visible"
	}
	return "hidden"
}

// SubmitInput is the raw public submission. Rating stays textual so numeric strings
// and JSON numbers are handled by the same rule.
type SubmitInput struct {
	Name      string
	Treatment string
	Review    string
	Rating    string
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name       *string `json:"name"`
	Treatment  *string `json:"treatment"`
	Review     *string `json:"review"`
	Rating     *int    `json:"rating"`
	IsApproved *bool   `json:"is_approved"`
	IsVisible  *bool   `json:"is_visible"`
}

func (in UpdateInput) empty() bool {
	return in.Name == nil && in.Treatment == nil && in.Review == nil &&
		in.Rating == nil && in.IsApproved == nil && in.IsVisible == nil
}

// Distribution maps each rating 1..5 to a review count. Values built with
// NewDistribution always carry all five keys.
type Distribution map[int]int64

func NewDistribution() Distribution {
	d := make(Distribution, MaxRating-MinRating+1)
	for r := MinRating; r <= MaxRating; r++ {
		d[r] = 0
	}
	return d
}

// Total sums the counts of every bucket.
func (d Distribution) Total() int64 {
	var total int64
	for _, c := range d {
		total += c
	}
	return total
}

// Average is the count-weighted mean rating, 0 for an empty distribution.
func (d Distribution) Average() float64 {
	total := d.Total()
	if total == 0 {
		return 0
	}
	var sum int64
	for r, c := range d {
		sum += int64(r) * c
	}
	return float64(sum) / float64(total)
}

type PublicPage struct {
	Reviews           []Review          `json:"reviews"`
	Pagination        params.Pagination `json:"pagination"`
	AverageRating     float64           `json:"average_rating"`
	TotalRatedReviews int64             `json:"total_rated_reviews"`
}

type AdminPage struct {
	Reviews    []Review          `json:"reviews"`
	Pagination params.Pagination `json:"pagination"`
}

// Stats is scoped to approved and visible reviews.
type Stats struct {
	TotalReviews       int64        `json:"total_reviews"`
	AverageRating      float64      `json:"average_rating"`
	RatingDistribution Distribution `json:"rating_distribution"`
}

// AdminStats covers every review regardless of moderation flags.
type AdminStats struct {
	TotalReviews       int64        `json:"total_reviews"`
	ApprovedReviews    int64        `json:"approved_reviews"`
	VisibleReviews     int64        `json:"visible_reviews"`
	RecentReviews      int64        `json:"recent_reviews"`
	AverageRating      float64      `json:"average_rating"`
	RatingDistribution Distribution `json:"rating_distribution"`
}
