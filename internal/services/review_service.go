package services

import (
	"errors"
	"strings"

	"apexmotors/internal/domain"
	"apexmotors/internal/repos"
	"apexmotors/internal/view"
)

var (
	ErrAlreadyReviewed = errors.New("vehicle already reviewed by this account")
	ErrReviewDenied    = errors.New("review missing or not owned by this account")
)

type ReviewService struct {
	Reviews *repos.ReviewRepo
}

func NewReviewService(r *repos.ReviewRepo) *ReviewService {
	return &ReviewService{Reviews: r}
}

// Add inserts one review per (account, vehicle). The pre-check drives the
// friendly notice; the unique index catches the remaining race and is mapped
// to the same error.
func (s *ReviewService) Add(invID, accountID int64, text string, rating int) (int64, error) {
	reviewed, err := s.Reviews.HasReviewed(invID, accountID)
	if err != nil {
		return 0, err
	}
	if reviewed {
		return 0, ErrAlreadyReviewed
	}
	id, err := s.Reviews.Add(invID, accountID, text, rating)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrAlreadyReviewed
		}
		return 0, err
	}
	return id, nil
}

// Reviewed reports whether the account already reviewed the vehicle, so the
// detail page can swap the form for an edit link.
func (s *ReviewService) Reviewed(invID, accountID int64) (bool, error) {
	return s.Reviews.HasReviewed(invID, accountID)
}

func (s *ReviewService) ForVehicle(invID int64) ([]domain.VehicleReview, error) {
	return s.Reviews.ByVehicle(invID)
}

func (s *ReviewService) ForAccount(accountID int64) ([]domain.AccountReview, error) {
	return s.Reviews.ByAccount(accountID)
}

// Owned fetches a review and enforces ownership. Missing and foreign reviews
// collapse into the same error so callers cannot probe existence.
func (s *ReviewService) Owned(reviewID, accountID int64) (domain.AccountReview, error) {
	rv, err := s.Reviews.Get(reviewID)
	if err != nil || rv.AccountID != accountID {
		return domain.AccountReview{}, ErrReviewDenied
	}
	return rv, nil
}

func (s *ReviewService) Update(reviewID, accountID int64, text string, rating int) error {
	if _, err := s.Owned(reviewID, accountID); err != nil {
		return err
	}
	return s.Reviews.Update(reviewID, text, rating)
}

func (s *ReviewService) Delete(reviewID, accountID int64) error {
	if _, err := s.Owned(reviewID, accountID); err != nil {
		return err
	}
	return s.Reviews.Delete(reviewID)
}

// Summary computes the aggregate rating on demand. The average comes back
// rounded to one decimal; Average stays nil when no reviews exist.
func (s *ReviewService) Summary(invID int64) (domain.RatingSummary, error) {
	sum, err := s.Reviews.Summary(invID)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	if sum.Average != nil {
		r := view.Round1(*sum.Average)
		sum.Average = &r
	}
	return sum, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}
