package reviews

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	out := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, f.Field)
	}
	return out
}

func TestNewReview(t *testing.T) {
	valid := SubmitInput{
		Name:      "  Ava  ",
		Treatment: " Aromatherapy ",
		Review:    "  Loved the session, very relaxing.  ",
		Rating:    "5",
	}

	rv, err := NewReview(valid)
	require.NoError(t, err)
	assert.Equal(t, "Ava", rv.Name)
	assert.Equal(t, Aromatherapy, rv.Treatment)
	assert.Equal(t, "Loved the session, very relaxing.", rv.Review)
	assert.Equal(t, 5, rv.Rating)
	assert.False(t, rv.IsApproved)
	assert.True(t, rv.IsVisible)
}

func TestNewReviewRejects(t *testing.T) {
	base := SubmitInput{Name: "Ava", Treatment: "Body Wrap", Review: "A wonderful afternoon.", Rating: "4"}

	tests := []struct {
		name   string
		mutate func(in *SubmitInput)
		fields []string
	}{
		{"all empty", func(in *SubmitInput) { *in = SubmitInput{} }, []string{"name", "treatment", "review", "rating"}},
		{"whitespace only name", func(in *SubmitInput) { in.Name = "   " }, []string{"name"}},
		{"name too long", func(in *SubmitInput) { in.Name = strings.Repeat("a", 101) }, []string{"name"}},
		{"unknown treatment", func(in *SubmitInput) { in.Treatment = "Mud Bath" }, []string{"treatment"}},
		{"review too short", func(in *SubmitInput) { in.Review = "too short" }, []string{"review"}},
		{"review too long", func(in *SubmitInput) { in.Review = strings.Repeat("r", 1001) }, []string{"review"}},
		{"rating zero", func(in *SubmitInput) { in.Rating = "0" }, []string{"rating"}},
		{"rating six", func(in *SubmitInput) { in.Rating = "6" }, []string{"rating"}},
		{"rating not a number", func(in *SubmitInput) { in.Rating = "five" }, []string{"rating"}},
		{"rating fractional", func(in *SubmitInput) { in.Rating = "4.5" }, []string{"rating"}},
		{"two fields at once", func(in *SubmitInput) { in.Treatment = "Sauna"; in.Rating = "9" }, []string{"treatment", "rating"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)

			rv, err := NewReview(in)
			assert.Nil(t, rv)
			assert.ElementsMatch(t, tt.fields, fieldsOf(t, err))
		})
	}
}

func TestNewReviewBoundaries(t *testing.T) {
	in := SubmitInput{
		Name:      strings.Repeat("n", MaxNameLength),
		Treatment: "Manicure & Pedicure",
		Review:    strings.Repeat("é", MinReviewLength),
		Rating:    "1",
	}
	rv, err := NewReview(in)
	require.NoError(t, err)
	assert.Equal(t, ManicurePedicure, rv.Treatment)
	assert.Equal(t, 1, rv.Rating)
}

func TestUpdateInputNormalize(t *testing.T) {
	str := func(s string) *string { return &s }
	num := func(n int) *int { return &n }
	flag := func(b bool) *bool { return &b }

	t.Run("empty update is rejected", func(t *testing.T) {
		in := UpdateInput{}
		assert.Equal(t, []string{"request"}, fieldsOf(t, in.Normalize()))
	})

	t.Run("flags only", func(t *testing.T) {
		in := UpdateInput{IsApproved: flag(true)}
		assert.NoError(t, in.Normalize())
	})

	t.Run("provided fields are trimmed", func(t *testing.T) {
		in := UpdateInput{Name: str("  Mia "), Review: str("  Great hot stone massage  ")}
		require.NoError(t, in.Normalize())
		assert.Equal(t, "Mia", *in.Name)
		assert.Equal(t, "Great hot stone massage", *in.Review)
	})

	t.Run("only changed fields are validated", func(t *testing.T) {
		in := UpdateInput{Rating: num(7), Treatment: str("Sauna")}
		assert.ElementsMatch(t, []string{"rating", "treatment"}, fieldsOf(t, in.Normalize()))
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		in := UpdateInput{Name: str("  ")}
		assert.Equal(t, []string{"name"}, fieldsOf(t, in.Normalize()))
	})
}

func TestDecodeIDList(t *testing.T) {
	ids, err := DecodeIDList(json.RawMessage(`["a", "b"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	for _, raw := range []string{``, `null`, `[]`, `"abc"`, `{"id":"a"}`, `[1, 2]`, `42`} {
		t.Run(raw, func(t *testing.T) {
			ids, err := DecodeIDList(json.RawMessage(raw))
			assert.Nil(t, ids)
			assert.Equal(t, []string{"review_ids"}, fieldsOf(t, err))
		})
	}
}
