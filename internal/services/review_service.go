package services

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mistryapurva/the-food-critique-api/internal/apperr"
	"github.com/mistryapurva/the-food-critique-api/internal/models"
)

type ReviewService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewReviewService(db *gorm.DB, log *logrus.Logger) *ReviewService {
	return &ReviewService{db: db, log: log}
}

// CreateReviewInput is the payload a USER submits against a restaurant.
type CreateReviewInput struct {
	Restaurant uint    `json:"restaurant" binding:"required"`
	Rating     float64 `json:"rating" binding:"required"`
	Comment    string  `json:"comment"`
	DateVisit  string  `json:"dateVisit"`
}

// AddCommentInput is the owner's single response to a review.
type AddCommentInput struct {
	Comment string `json:"comment" binding:"required"`
}

// UpdateReviewInput carries the fields an administrator may rewrite.
type UpdateReviewInput struct {
	Rating    *float64       `json:"rating"`
	Comment   *string        `json:"comment"`
	DateVisit *string        `json:"dateVisit"`
	Status    *models.Status `json:"status"`
}

// ReviewListItem is a review with restaurant and author resolved to
// {id, name} projections.
type ReviewListItem struct {
	models.Review
	Restaurant Ref `json:"restaurant"`
	Author     Ref `json:"author"`
}

func (s *ReviewService) Create(actor Actor, input CreateReviewInput) (*models.Review, error) {
	if actor.ID == 0 {
		return nil, apperr.BadRequest("Missing owner")
	}
	if input.Restaurant == 0 || input.Rating == 0 {
		return nil, apperr.BadRequest("Missing mandatory parameters")
	}

	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, input.Restaurant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Server("Restaurant not found")
		}
		s.log.WithError(err).Error("fetching restaurant failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	now := time.Now()
	review := models.Review{
		RestaurantID: input.Restaurant,
		AuthorID:     actor.ID,
		Rating:       input.Rating,
		Comment:      strings.TrimSpace(input.Comment),
		DateVisit:    input.DateVisit,
		Status:       models.StatusActive,
		CreatedOn:    now,
		UpdatedOn:    now,
	}
	if err := s.db.Create(&review).Error; err != nil {
		s.log.WithError(err).Error("creating review failed")
		return nil, apperr.Server("An unexpected error occurred")
	}
	return &review, nil
}

// AddComment appends the owner's response to a review. Only the owner of the
// reviewed restaurant may comment, and only once per review. The duplicate
// check and the append are not transactional; a race between two appends by
// the same author can slip through the check.
func (s *ReviewService) AddComment(actor Actor, reviewID string, input AddCommentInput) (*models.Review, error) {
	if actor.ID == 0 {
		return nil, apperr.BadRequest("Missing owner")
	}
	id, err := parseID(reviewID)
	if err != nil {
		return nil, apperr.BadRequest("Unable to find review")
	}

	var review models.Review
	if err := s.db.Preload("Comments").First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Server("Review not found")
		}
		s.log.WithError(err).Error("fetching review failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, review.RestaurantID).Error; err != nil {
		s.log.WithError(err).Error("fetching reviewed restaurant failed")
		return nil, apperr.Server("An unexpected error occurred")
	}
	if restaurant.OwnerID != actor.ID {
		return nil, apperr.Unauthorized("The current user is not authorized to add comments to this review")
	}

	for _, comment := range review.Comments {
		if comment.AuthorID == actor.ID {
			return nil, apperr.Server("The owner has already added a comment for this review")
		}
	}

	now := time.Now()
	comment := models.ReviewComment{
		ReviewID:  review.ID,
		AuthorID:  actor.ID,
		Comment:   strings.TrimSpace(input.Comment),
		Status:    models.StatusActive,
		CreatedOn: now,
		UpdatedOn: now,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		s.log.WithError(err).Error("appending owner comment failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	review.Comments = append(review.Comments, comment)
	return &review, nil
}

func (s *ReviewService) Update(actor Actor, reviewID string, input UpdateReviewInput) (*models.Review, error) {
	if actor.ID == 0 {
		return nil, apperr.BadRequest("Missing owner")
	}
	id, err := parseID(reviewID)
	if err != nil {
		return nil, apperr.BadRequest("Unable to find review")
	}

	var existing models.Review
	if err := s.db.Preload("Comments").First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Server("Review not found")
		}
		s.log.WithError(err).Error("fetching review failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	if input.Rating != nil {
		existing.Rating = *input.Rating
	}
	if input.Comment != nil {
		existing.Comment = strings.TrimSpace(*input.Comment)
	}
	if input.DateVisit != nil {
		existing.DateVisit = *input.DateVisit
	}
	if input.Status != nil && *input.Status != "" {
		existing.Status = *input.Status
	}
	existing.UpdatedOn = time.Now()

	if err := s.db.Save(&existing).Error; err != nil {
		s.log.WithError(err).Error("updating review failed")
		return nil, apperr.Server("An unexpected error occurred")
	}
	return &existing, nil
}

// List returns every review, newest update first, with restaurant and author
// projections. The skip parameter is accepted but deliberately not applied,
// matching the behavior callers already depend on.
func (s *ReviewService) List(skip int) ([]ReviewListItem, error) {
	_ = skip

	var reviews []models.Review
	err := s.db.Preload("Comments").Order("updated_on DESC").Find(&reviews).Error
	if err != nil {
		s.log.WithError(err).Error("listing reviews failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	restaurantRefs, err := s.restaurantRefs(reviews)
	if err != nil {
		return nil, err
	}
	authorRefs, err := s.authorRefs(reviews)
	if err != nil {
		return nil, err
	}

	items := make([]ReviewListItem, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, ReviewListItem{
			Review:     review,
			Restaurant: restaurantRefs[review.RestaurantID],
			Author:     authorRefs[review.AuthorID],
		})
	}
	return items, nil
}

func (s *ReviewService) restaurantRefs(reviews []models.Review) (map[uint]Ref, error) {
	ids := make([]uint, 0, len(reviews))
	seen := make(map[uint]struct{}, len(reviews))
	for _, review := range reviews {
		if _, ok := seen[review.RestaurantID]; ok {
			continue
		}
		seen[review.RestaurantID] = struct{}{}
		ids = append(ids, review.RestaurantID)
	}

	refs := make(map[uint]Ref, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}

	var restaurants []models.Restaurant
	if err := s.db.Where("id IN ?", ids).Find(&restaurants).Error; err != nil {
		s.log.WithError(err).Error("fetching reviewed restaurants failed")
		return nil, apperr.Server("An unexpected error occurred")
	}
	for _, restaurant := range restaurants {
		refs[restaurant.ID] = Ref{ID: restaurant.ID, Name: restaurant.Name}
	}
	return refs, nil
}

func (s *ReviewService) authorRefs(reviews []models.Review) (map[uint]Ref, error) {
	ids := reviewAuthorIDs(reviews)

	refs := make(map[uint]Ref, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}

	var users []models.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		s.log.WithError(err).Error("fetching review authors failed")
		return nil, apperr.Server("An unexpected error occurred")
	}
	for _, user := range users {
		refs[user.ID] = Ref{ID: user.ID, Name: user.Name}
	}
	return refs, nil
}
