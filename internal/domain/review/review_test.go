package review

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	tests := []struct {
		name    string
		rating  int
		wantErr bool
	}{
		{"one star", 1, false},
		{"five stars", 5, false},
		{"zero stars", 0, true},
		{"six stars", 6, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review, err := NewReview(userID, productID, tt.rating, "good product")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, review)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.rating, review.Rating)
				assert.False(t, review.IsHidden)
			}
		})
	}
}

func TestReview_Revise(t *testing.T) {
	review, err := NewReview(uuid.New(), uuid.New(), 5, "great")
	require.NoError(t, err)

	require.NoError(t, review.Revise(2, "broke after a week"))
	assert.Equal(t, 2, review.Rating)
	assert.Equal(t, "broke after a week", review.Comment)

	assert.Error(t, review.Revise(0, "invalid"))
	assert.Equal(t, 2, review.Rating)
}

func TestReview_SetReply(t *testing.T) {
	review, err := NewReview(uuid.New(), uuid.New(), 3, "average")
	require.NoError(t, err)

	firstAdmin := uuid.New()
	secondAdmin := uuid.New()

	assert.Error(t, review.SetReply("", firstAdmin))

	require.NoError(t, review.SetReply("Thanks for the feedback", firstAdmin))
	first := *review.RepliedAt
	assert.Equal(t, firstAdmin, *review.RepliedBy)

	require.NoError(t, review.SetReply("We have shipped a replacement", secondAdmin))
	assert.Equal(t, "We have shipped a replacement", review.Reply)
	assert.Equal(t, secondAdmin, *review.RepliedBy)
	assert.False(t, review.RepliedAt.Before(first))
}

func TestReview_ToggleHidden(t *testing.T) {
	review, err := NewReview(uuid.New(), uuid.New(), 1, "spam")
	require.NoError(t, err)

	assert.True(t, review.ToggleHidden())
	assert.True(t, review.IsHidden)
	assert.False(t, review.ToggleHidden())
	assert.False(t, review.IsHidden)
}
