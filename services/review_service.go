package services

import (
	"context"
	"fmt"
	"time"

	"github.com/anjiri1684/review_board/models"
	"gorm.io/gorm"
)

type ReviewService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db, now: time.Now}
}

// ListReviews returns every review, newest review_date first.
func (s *ReviewService) ListReviews(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.WithContext(ctx).Order("review_date desc").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) InsertReview(ctx context.Context, review *models.Review) error {
	if review.ReviewDate.IsZero() {
		review.ReviewDate = s.now()
	}
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}
