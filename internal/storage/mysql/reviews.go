package mysql

import (
	"context"
	"database/sql"

	"hoteldir/internal/domain"
)

func scanReview(row interface{ Scan(...any) error }) (domain.Review, error) {
	var rv domain.Review
	if err := row.Scan(
		&rv.ID,
		&rv.HotelID,
		&rv.ReviewerName,
		&rv.Subject,
		&rv.Content,
		&rv.Date,
		&rv.Overall,
		&rv.Cleanliness,
		&rv.Location,
		&rv.Service,
		&rv.Value,
		&rv.HelpfulYes,
		&rv.HelpfulNo,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Review{}, domain.ErrNotFound
		}
		return domain.Review{}, err
	}
	return rv, nil
}

func (r *Repo) getReview(ctx context.Context, q querier, id int64) (domain.Review, error) {
	return scanReview(q.QueryRowContext(ctx, getReviewSQL, id))
}

func (r *Repo) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	return r.getReview(ctx, r.db, id)
}

func (r *Repo) CreateReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	var out domain.Review
	err := r.transact(ctx, func(tx *sql.Tx) error {
		if err := checkExists(ctx, tx, hotelExistsSQL, rv.HotelID, "hotel"); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, insertReviewSQL,
			rv.HotelID,
			rv.ReviewerName,
			rv.Subject,
			rv.Content,
			rv.Date,
			rv.Overall,
			rv.Cleanliness,
			rv.Location,
			rv.Service,
			rv.Value,
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		out, err = r.getReview(ctx, tx, id)
		return err
	})
	return out, err
}

func (r *Repo) ListHotelReviews(ctx context.Context, hotelID int64, q domain.PageQuery) (domain.ReviewsPage, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, countHotelReviewsSQL, hotelID).Scan(&total); err != nil {
		return domain.ReviewsPage{}, err
	}

	rows, err := r.db.QueryContext(ctx, listHotelReviewsSQL, hotelID, q.Limit, q.Offset())
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return domain.ReviewsPage{}, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return domain.ReviewsPage{}, err
	}
	return domain.ReviewsPage{Items: out, Total: total}, nil
}

func (r *Repo) UpdateReview(ctx context.Context, id int64, subject, content string) (domain.Review, error) {
	var out domain.Review
	err := r.transact(ctx, func(tx *sql.Tx) error {
		if _, err := r.getReview(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, updateReviewSQL, subject, content, id); err != nil {
			return err
		}
		var err error
		out, err = r.getReview(ctx, tx, id)
		return err
	})
	return out, err
}

func (r *Repo) IncrementHelpful(ctx context.Context, id int64, dir domain.VoteDirection) (domain.Review, error) {
	dYes, dNo := 0, 1
	if dir == domain.VoteUp {
		dYes, dNo = 1, 0
	}
	var out domain.Review
	err := r.transact(ctx, func(tx *sql.Tx) error {
		if _, err := r.getReview(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, bumpHelpfulSQL, dYes, dNo, id); err != nil {
			return err
		}
		var err error
		out, err = r.getReview(ctx, tx, id)
		return err
	})
	return out, err
}

func (r *Repo) ToggleVote(ctx context.Context, reviewID, userID int64, dir domain.VoteDirection) (domain.Review, error) {
	var out domain.Review
	err := r.transact(ctx, func(tx *sql.Tx) error {
		if _, err := r.getReview(ctx, tx, reviewID); err != nil {
			return err
		}

		var existing *domain.VoteDirection
		var cur string
		err := tx.QueryRowContext(ctx, getVoteSQL, reviewID, userID).Scan(&cur)
		switch {
		case err == sql.ErrNoRows:
			// first vote
		case err != nil:
			return err
		default:
			d := domain.VoteDirection(cur)
			existing = &d
		}

		next, dYes, dNo := domain.ApplyVote(existing, dir)
		if next == nil {
			if _, err := tx.ExecContext(ctx, deleteVoteSQL, reviewID, userID); err != nil {
				return err
			}
		} else {
			if _, err := tx.ExecContext(ctx, upsertVoteSQL, reviewID, userID, string(*next)); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, bumpHelpfulSQL, dYes, dNo, reviewID); err != nil {
			return err
		}

		out, err = r.getReview(ctx, tx, reviewID)
		return err
	})
	return out, err
}
