// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/buyx/backend/internal/models"
	"github.com/buyx/backend/internal/utils"
)

type ReviewService struct {
	db *gorm.DB
}

type AddReviewRequest struct {
	Rating  int    `json:"rating" validate:"required"`
	Comment string `json:"comment,omitempty"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// AddReview upserts the (user, product) review: a resubmission overwrites
// rating and comment in place instead of inserting a second row.
func (s *ReviewService) AddReview(userID, productID uuid.UUID, req *AddReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var review models.Review
	err := s.db.Where("product_id = ? AND user_id = ?", productID, userID).First(&review).Error
	switch {
	case err == nil:
		review.Rating = req.Rating
		review.Comment = req.Comment
		if err := s.db.Save(&review).Error; err != nil {
			return nil, fmt.Errorf("failed to update review: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		review = models.Review{
			ProductID: productID,
			UserID:    userID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := s.db.Create(&review).Error; err != nil {
			return nil, fmt.Errorf("failed to create review: %w", err)
		}
	default:
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &review, nil
}

func (s *ReviewService) GetProductReviews(productID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Where("product_id = ?", productID).Preload("User").
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}
