package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mistryapurva/the-food-critique-api/internal/apperr"
	"github.com/mistryapurva/the-food-critique-api/internal/models"
)

// PageSize is the fixed page length of restaurant listings.
const PageSize = 12

// ImageEncoder fetches a remote image and returns it resized and transcoded
// as an embeddable data URI.
type ImageEncoder interface {
	FetchAndEncode(url string) (string, error)
}

type RestaurantService struct {
	db     *gorm.DB
	images ImageEncoder
	log    *logrus.Logger
}

func NewRestaurantService(db *gorm.DB, images ImageEncoder, log *logrus.Logger) *RestaurantService {
	return &RestaurantService{db: db, images: images, log: log}
}

// EnrichedRestaurant is a restaurant augmented with its computed average
// rating. AvgRating is null when the restaurant has no reviews.
type EnrichedRestaurant struct {
	models.Restaurant
	AvgRating *float64 `json:"avgRating"`
}

// ReviewView is a review with its author resolved to an {id, name} projection.
type ReviewView struct {
	models.Review
	Author Ref `json:"author"`
}

// RestaurantDetail is the detail-fetch result: the restaurant, its reviews
// ordered newest first, and the average over all of them.
type RestaurantDetail struct {
	models.Restaurant
	AvgRating *float64     `json:"avgRating"`
	Reviews   []ReviewView `json:"reviews"`
}

// CreateRestaurantInput is the owner-submitted restaurant payload.
type CreateRestaurantInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// UpdateRestaurantInput uses pointers so an absent field leaves the stored
// value untouched while an explicit empty Image clears the encoded payload.
type UpdateRestaurantInput struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Image       *string        `json:"image"`
	Status      *models.Status `json:"status"`
}

// List returns the page of restaurants visible to the actor, each joined
// with its reviews to compute the average rating. The join and grouping run
// in application code over two keyed queries.
func (s *RestaurantService) List(actor Actor, search string, minRating float64, skip int) ([]EnrichedRestaurant, error) {
	q := s.db.Model(&models.Restaurant{})

	switch actor.Role {
	case models.RoleAdmin:
		// all restaurants
	case models.RoleOwner:
		// only the actor's own restaurants, whatever their status
		q = q.Where("owner_id = ?", actor.ID)
	default:
		q = q.Where("status = ?", models.StatusActive)
	}

	if term := strings.TrimSpace(search); term != "" {
		q = q.Where("lower(name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}

	var restaurants []models.Restaurant
	if err := q.Find(&restaurants).Error; err != nil {
		s.log.WithError(err).Error("listing restaurants failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	averages, err := s.averageRatings(restaurantIDs(restaurants))
	if err != nil {
		return nil, err
	}

	enriched := make([]EnrichedRestaurant, 0, len(restaurants))
	for _, restaurant := range restaurants {
		avg := averages[restaurant.ID]
		if minRating > 0 && (avg == nil || *avg < minRating) {
			continue
		}
		enriched = append(enriched, EnrichedRestaurant{Restaurant: restaurant, AvgRating: avg})
	}

	// avgRating descending, unrated last, ties by name ascending
	sort.SliceStable(enriched, func(i, j int) bool {
		left, right := enriched[i].AvgRating, enriched[j].AvgRating
		switch {
		case left == nil && right != nil:
			return false
		case left != nil && right == nil:
			return true
		case left != nil && right != nil && *left != *right:
			return *left > *right
		}
		return enriched[i].Name < enriched[j].Name
	})

	if skip < 0 {
		skip = 0
	}
	if skip >= len(enriched) {
		return []EnrichedRestaurant{}, nil
	}
	end := skip + PageSize
	if end > len(enriched) {
		end = len(enriched)
	}
	return enriched[skip:end], nil
}

// Get fetches one restaurant with its reviews (newest first) and authors.
// The average covers every review; INACTIVE reviews are then hidden from
// non-admin callers without recomputing it.
func (s *RestaurantService) Get(actor Actor, id string) (*RestaurantDetail, error) {
	restaurantID, err := parseID(id)
	if err != nil {
		return nil, apperr.BadRequest("Unable to find restaurant")
	}

	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.log.WithError(err).Error("fetching restaurant failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	var reviews []models.Review
	err = s.db.Where("restaurant_id = ?", restaurant.ID).
		Preload("Comments").
		Order("created_on DESC").
		Find(&reviews).Error
	if err != nil {
		s.log.WithError(err).Error("fetching reviews failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	authors, err := s.userRefs(reviewAuthorIDs(reviews))
	if err != nil {
		return nil, err
	}

	var avg *float64
	if len(reviews) > 0 {
		sum := 0.0
		for _, review := range reviews {
			sum += review.Rating
		}
		mean := sum / float64(len(reviews))
		avg = &mean
	}

	views := make([]ReviewView, 0, len(reviews))
	for _, review := range reviews {
		if actor.Role != models.RoleAdmin && review.Status == models.StatusInactive {
			continue
		}
		views = append(views, ReviewView{Review: review, Author: authors[review.AuthorID]})
	}

	return &RestaurantDetail{Restaurant: restaurant, AvgRating: avg, Reviews: views}, nil
}

func (s *RestaurantService) Create(actor Actor, input CreateRestaurantInput) (*models.Restaurant, error) {
	if actor.ID == 0 {
		return nil, apperr.BadRequest("Missing owner")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.BadRequest("Missing mandatory parameters")
	}

	var existing models.Restaurant
	err := s.db.Where("name = ? AND owner_id = ?", name, actor.ID).First(&existing).Error
	if err == nil {
		return nil, apperr.Server("Restaurant already exists for given user")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.WithError(err).Error("restaurant lookup failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	now := time.Now()
	restaurant := models.Restaurant{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Image:       input.Image,
		OwnerID:     actor.ID,
		Status:      models.StatusActive,
		CreatedOn:   now,
		UpdatedOn:   now,
	}

	// The record is only persisted once image processing has succeeded.
	if input.Image != "" {
		encoded, err := s.images.FetchAndEncode(input.Image)
		if err != nil {
			s.log.WithError(err).WithField("image", input.Image).Error("image processing failed")
			return nil, apperr.Server("Error processing image")
		}
		restaurant.ImageEncoded = encoded
	}

	if err := s.db.Create(&restaurant).Error; err != nil {
		s.log.WithError(err).Error("creating restaurant failed")
		return nil, apperr.Server("An unexpected error occurred")
	}
	return &restaurant, nil
}

func (s *RestaurantService) Update(actor Actor, id string, input UpdateRestaurantInput) (*models.Restaurant, error) {
	if actor.ID == 0 {
		return nil, apperr.BadRequest("Missing owner")
	}
	restaurantID, err := parseID(id)
	if err != nil {
		return nil, apperr.BadRequest("Unable to find restaurant")
	}

	var existing models.Restaurant
	if err := s.db.First(&existing, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Server("Restaurant not found")
		}
		s.log.WithError(err).Error("fetching restaurant failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	if actor.Role == models.RoleOwner && existing.OwnerID != actor.ID {
		return nil, apperr.Server("Current user not authorized to update this restaurant")
	}

	// Reprocess only when the submitted image differs from the stored one;
	// an explicit empty value clears the encoded payload.
	if input.Image != nil && *input.Image != existing.Image {
		if *input.Image != "" {
			encoded, err := s.images.FetchAndEncode(*input.Image)
			if err != nil {
				s.log.WithError(err).WithField("image", *input.Image).Error("image processing failed")
				return nil, apperr.Server("Error processing image")
			}
			existing.ImageEncoded = encoded
		} else {
			existing.ImageEncoded = ""
		}
		existing.Image = *input.Image
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		existing.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		existing.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil && *input.Status != "" {
		existing.Status = *input.Status
	}
	existing.UpdatedOn = time.Now()

	if err := s.db.Save(&existing).Error; err != nil {
		s.log.WithError(err).Error("updating restaurant failed")
		return nil, apperr.Server("An unexpected error occurred")
	}
	return &existing, nil
}

// Delete marks the restaurant INACTIVE. Ownership is not checked here; the
// route policy restricts the call to administrators.
func (s *RestaurantService) Delete(id string) (*models.Restaurant, error) {
	restaurantID, err := parseID(id)
	if err != nil {
		return nil, apperr.BadRequest("Unable to find restaurant")
	}

	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Server("Restaurant not found")
		}
		s.log.WithError(err).Error("fetching restaurant failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	restaurant.Status = models.StatusInactive
	restaurant.UpdatedOn = time.Now()
	if err := s.db.Save(&restaurant).Error; err != nil {
		s.log.WithError(err).Error("deactivating restaurant failed")
		return nil, apperr.Server("An unexpected error occurred")
	}
	return &restaurant, nil
}

// averageRatings groups all reviews of the given restaurants and computes
// each arithmetic mean. Restaurants without reviews are absent from the map.
func (s *RestaurantService) averageRatings(ids []uint) (map[uint]*float64, error) {
	averages := make(map[uint]*float64, len(ids))
	if len(ids) == 0 {
		return averages, nil
	}

	var reviews []models.Review
	if err := s.db.Where("restaurant_id IN ?", ids).Find(&reviews).Error; err != nil {
		s.log.WithError(err).Error("fetching reviews failed")
		return nil, apperr.Server("An unexpected error occurred")
	}

	sums := make(map[uint]float64, len(ids))
	counts := make(map[uint]int, len(ids))
	for _, review := range reviews {
		sums[review.RestaurantID] += review.Rating
		counts[review.RestaurantID]++
	}
	for id, count := range counts {
		mean := sums[id] / float64(count)
		averages[id] = &mean
	}
	return averages, nil
}

// userRefs resolves user ids to {id, name} projections.
func (s *RestaurantService) userRefs(ids []uint) (map[uint]Ref, error) {
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

func restaurantIDs(restaurants []models.Restaurant) []uint {
	ids := make([]uint, 0, len(restaurants))
	for _, restaurant := range restaurants {
		ids = append(ids, restaurant.ID)
	}
	return ids
}

func reviewAuthorIDs(reviews []models.Review) []uint {
	seen := make(map[uint]struct{}, len(reviews))
	ids := make([]uint, 0, len(reviews))
	for _, review := range reviews {
		if _, ok := seen[review.AuthorID]; ok {
			continue
		}
		seen[review.AuthorID] = struct{}{}
		ids = append(ids, review.AuthorID)
	}
	return ids
}
