package app

import (
	"context"
	"strings"

	"hoteldir/internal/domain"
)

type ReviewService struct {
	repo domain.ReviewRepository
}

func NewReviewService(repo domain.ReviewRepository) *ReviewService {
	return &ReviewService{repo: repo}
}

func validRating(f float64) bool { return f >= 1.0 && f <= 5.0 }

func (s *ReviewService) Create(ctx context.Context, rv domain.Review) (domain.Review, error) {
	var missing []string
	if strings.TrimSpace(rv.ReviewerName) == "" {
		missing = append(missing, "ReviewerName")
	}
	if strings.TrimSpace(rv.Subject) == "" {
		missing = append(missing, "ReviewSubject")
	}
	if strings.TrimSpace(rv.Content) == "" {
		missing = append(missing, "ReviewContent")
	}
	if rv.Date.IsZero() {
		missing = append(missing, "ReviewDate")
	}
	if len(missing) > 0 {
		return domain.Review{}, &domain.ValidationError{Fields: missing}
	}
	for _, f := range []float64{rv.Overall, rv.Cleanliness, rv.Location, rv.Service, rv.Value} {
		if !validRating(f) {
			return domain.Review{}, domain.Invalid("ratings must be between 1.0 and 5.0")
		}
	}
	return s.repo.CreateReview(ctx, rv)
}

// Update replaces subject and content only; ratings are immutable.
// Only the original reviewer or an admin may edit.
func (s *ReviewService) Update(ctx context.Context, ident domain.Identity, id int64, subject, content string) (domain.Review, error) {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(content) == "" {
		return domain.Review{}, &domain.ValidationError{Msg: "subject and content are required"}
	}
	cur, err := s.repo.GetReview(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	if ident.Role != domain.RoleAdmin && cur.ReviewerName != ident.Username {
		return domain.Review{}, domain.ErrForbidden
	}
	return s.repo.UpdateReview(ctx, id, subject, content)
}

// Helpful is the legacy unconditional counter bump.
func (s *ReviewService) Helpful(ctx context.Context, id int64, typ string) (domain.Review, error) {
	switch typ {
	case "yes":
		return s.repo.IncrementHelpful(ctx, id, domain.VoteUp)
	case "no":
		return s.repo.IncrementHelpful(ctx, id, domain.VoteDown)
	}
	return domain.Review{}, domain.Invalid("type must be \"yes\" or \"no\"")
}

// Like toggles the caller's durable upvote on a review.
func (s *ReviewService) Like(ctx context.Context, ident domain.Identity, id int64) (domain.Review, error) {
	return s.repo.ToggleVote(ctx, id, ident.UserID, domain.VoteUp)
}

// Dislike toggles the caller's durable downvote on a review.
func (s *ReviewService) Dislike(ctx context.Context, ident domain.Identity, id int64) (domain.Review, error) {
	return s.repo.ToggleVote(ctx, id, ident.UserID, domain.VoteDown)
}

func (s *ReviewService) ForHotel(ctx context.Context, hotelID int64, q domain.PageQuery) (domain.ReviewsPage, domain.PageInfo, error) {
	q = q.Clamp(10)
	page, err := s.repo.ListHotelReviews(ctx, hotelID, q)
	if err != nil {
		return domain.ReviewsPage{}, domain.PageInfo{}, err
	}
	return page, domain.NewPageInfo(q, page.Total), nil
}
