package utils

import (
	"math"
	"strconv"

	"github.com/skillbridge/api/models"
)

// AverageRating computes the mean of string-encoded ratings, rounded to one
// decimal place. Tutors with no reviews get 0. A rating that fails to parse
// contributes 0 but still counts toward the denominator.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	var sum float64
	for _, review := range reviews {
		rating, err := strconv.ParseFloat(review.Rating, 64)
		if err != nil {
			continue
		}
		sum += rating
	}

	return math.Round(sum/float64(len(reviews))*10) / 10
}
