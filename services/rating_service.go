package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/brenosouzaaa/sistema-pizzaria/models"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

const (
	MinScore = 1
	MaxScore = 5
	// scores at or below LowScore are raised to the staff screens
	LowScore = 2
)

type RatingService struct {
	db    *gorm.DB
	staff StaffNotifier
	now   func() time.Time
}

type RatingOption func(*RatingService)

func WithRatingAlerts(n StaffNotifier) RatingOption {
	return func(s *RatingService) { s.staff = n }
}

func NewRatingService(db *gorm.DB, opts ...RatingOption) *RatingService {
	s := &RatingService{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rate stores a 1..5 score. An empty name is stored as the unidentified
// customer label.
func (s *RatingService) Rate(ctx context.Context, customerName string, score int) (*models.Rating, error) {
	if score < MinScore || score > MaxScore {
		return nil, invalidInput("score must be between %d and %d, got %d", MinScore, MaxScore, score)
	}
	name := strings.TrimSpace(customerName)
	if name == "" {
		name = UnidentifiedCustomer
	}

	r := models.Rating{CustomerName: name, Score: score, RatedAt: s.now()}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, storageError("rating", "", err)
	}
	utils.InfoLogger.WithField("score", score).Info("Rating stored")
	if score <= LowScore && s.staff != nil {
		s.staff.NotifyStaff(fmt.Sprintf("Low rating from %s: %d/%d", name, score, MaxScore))
	}
	return &r, nil
}

func (s *RatingService) ListRatings(ctx context.Context) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := s.db.WithContext(ctx).Order("data_hora DESC").Find(&ratings).Error; err != nil {
		return nil, storageError("rating", "", err)
	}
	return ratings, nil
}
