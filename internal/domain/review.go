package domain

import "time"

type Review struct {
	ID           int64
	HotelID      int64
	ReviewerName string
	Subject      string
	Content      string
	Date         time.Time

	Overall     float64
	Cleanliness float64
	Location    float64
	Service     float64
	Value       float64

	HelpfulYes int
	HelpfulNo  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ReviewsPage struct {
	Items []Review
	Total int
}

type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// ApplyVote computes the toggle transition for one user's vote on a review.
// Voting the same direction again retracts the vote; voting the opposite
// direction moves it. Returns the resulting vote (nil = no vote) and the
// deltas to apply to the helpful-yes / helpful-no counters.
func ApplyVote(existing *VoteDirection, dir VoteDirection) (next *VoteDirection, dYes, dNo int) {
	side := func(d VoteDirection) (int, int) {
		if d == VoteUp {
			return 1, 0
		}
		return 0, 1
	}

	if existing != nil && *existing == dir {
		y, n := side(dir)
		return nil, -y, -n
	}
	dYes, dNo = side(dir)
	if existing != nil {
		y, n := side(*existing)
		dYes -= y
		dNo -= n
	}
	return &dir, dYes, dNo
}
