package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"hoteldir/internal/app"
	"hoteldir/internal/domain"
)

type fakeReviews struct {
	byID   map[int64]domain.Review
	nextID int64
	votes  map[[2]int64]domain.VoteDirection // {reviewID, userID}
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{byID: map[int64]domain.Review{}, votes: map[[2]int64]domain.VoteDirection{}}
}

func (f *fakeReviews) CreateReview(ctx context.Context, r domain.Review) (domain.Review, error) {
	f.nextID++
	r.ID = f.nextID
	f.byID[r.ID] = r
	return r, nil
}

func (f *fakeReviews) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	r, ok := f.byID[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeReviews) ListHotelReviews(ctx context.Context, hotelID int64, q domain.PageQuery) (domain.ReviewsPage, error) {
	var items []domain.Review
	for _, r := range f.byID {
		if r.HotelID == hotelID {
			items = append(items, r)
		}
	}
	return domain.ReviewsPage{Items: items, Total: len(items)}, nil
}

func (f *fakeReviews) UpdateReview(ctx context.Context, id int64, subject, content string) (domain.Review, error) {
	r, ok := f.byID[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	r.Subject, r.Content = subject, content
	f.byID[id] = r
	return r, nil
}

func (f *fakeReviews) IncrementHelpful(ctx context.Context, id int64, dir domain.VoteDirection) (domain.Review, error) {
	r, ok := f.byID[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	if dir == domain.VoteUp {
		r.HelpfulYes++
	} else {
		r.HelpfulNo++
	}
	f.byID[id] = r
	return r, nil
}

func (f *fakeReviews) ToggleVote(ctx context.Context, reviewID, userID int64, dir domain.VoteDirection) (domain.Review, error) {
	r, ok := f.byID[reviewID]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	key := [2]int64{reviewID, userID}
	var existing *domain.VoteDirection
	if v, ok := f.votes[key]; ok {
		existing = &v
	}
	next, dYes, dNo := domain.ApplyVote(existing, dir)
	if next == nil {
		delete(f.votes, key)
	} else {
		f.votes[key] = *next
	}
	r.HelpfulYes += dYes
	r.HelpfulNo += dNo
	f.byID[reviewID] = r
	return r, nil
}

func validReview() domain.Review {
	return domain.Review{
		HotelID:      1,
		ReviewerName: "ana",
		Subject:      "Great stay",
		Content:      "Would come back.",
		Date:         time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Overall:      4.5,
		Cleanliness:  5,
		Location:     4,
		Service:      4,
		Value:        3.5,
	}
}

func TestCreateReviewMissingFields(t *testing.T) {
	svc := app.NewReviewService(newFakeReviews())

	rv := validReview()
	rv.ReviewerName = ""
	rv.Content = "  "
	_, err := svc.Create(context.Background(), rv)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	got := strings.Join(ve.Fields, ",")
	if !strings.Contains(got, "ReviewerName") || !strings.Contains(got, "ReviewContent") {
		t.Fatalf("missing fields %q must name ReviewerName and ReviewContent", got)
	}
}

func TestCreateReviewRatingBounds(t *testing.T) {
	svc := app.NewReviewService(newFakeReviews())

	for _, bad := range []float64{0, 0.9, 5.1, -3} {
		rv := validReview()
		rv.Value = bad
		if _, err := svc.Create(context.Background(), rv); err == nil {
			t.Fatalf("rating %v must be rejected", bad)
		}
	}

	if _, err := svc.Create(context.Background(), validReview()); err != nil {
		t.Fatalf("valid review rejected: %v", err)
	}
}

func TestUpdateReviewAuthorOrAdminOnly(t *testing.T) {
	repo := newFakeReviews()
	svc := app.NewReviewService(repo)
	ctx := context.Background()

	rv, err := svc.Create(ctx, validReview())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	author := domain.Identity{UserID: 1, Username: "ana", Role: domain.RoleTraveler}
	stranger := domain.Identity{UserID: 2, Username: "tom", Role: domain.RoleTraveler}
	admin := domain.Identity{UserID: 3, Username: "root", Role: domain.RoleAdmin}

	if _, err := svc.Update(ctx, stranger, rv.ID, "s", "c"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger update: want ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(ctx, author, rv.ID, "Edited", "By the author."); err != nil {
		t.Fatalf("author update: %v", err)
	}
	if _, err := svc.Update(ctx, admin, rv.ID, "Edited", "By an admin."); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestHelpfulType(t *testing.T) {
	repo := newFakeReviews()
	svc := app.NewReviewService(repo)
	ctx := context.Background()

	rv, _ := svc.Create(ctx, validReview())

	out, err := svc.Helpful(ctx, rv.ID, "yes")
	if err != nil || out.HelpfulYes != 1 {
		t.Fatalf("helpful yes: %+v, err %v", out, err)
	}
	if _, err := svc.Helpful(ctx, rv.ID, "maybe"); err == nil {
		t.Fatal("invalid type must be rejected")
	}
}

func TestLikeDislikeToggle(t *testing.T) {
	repo := newFakeReviews()
	svc := app.NewReviewService(repo)
	ctx := context.Background()
	ident := domain.Identity{UserID: 9, Username: "ana", Role: domain.RoleTraveler}

	rv, _ := svc.Create(ctx, validReview())

	out, err := svc.Like(ctx, ident, rv.ID)
	if err != nil || out.HelpfulYes != 1 || out.HelpfulNo != 0 {
		t.Fatalf("after like: %+v, err %v", out, err)
	}

	out, _ = svc.Like(ctx, ident, rv.ID) // retract
	if out.HelpfulYes != 0 {
		t.Fatalf("repeated like must retract, got %+v", out)
	}

	out, _ = svc.Dislike(ctx, ident, rv.ID)
	out, _ = svc.Like(ctx, ident, rv.ID) // switch sides
	if out.HelpfulYes != 1 || out.HelpfulNo != 0 {
		t.Fatalf("after switching to like: %+v", out)
	}
}
