package repos

import (
	"apexmotors/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Add(invID, accountID int64, text string, rating int) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO review(inv_id, account_id, review_text, review_rating)
	  VALUES(?,?,?,?)
	`, invID, accountID, text, rating)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ReviewRepo) ByVehicle(invID int64) ([]domain.VehicleReview, error) {
	var out []domain.VehicleReview
	err := r.db.Select(&out, `
	  SELECT r.review_id, r.inv_id, r.account_id, r.review_text, r.review_rating, r.review_date,
	         a.first_name, a.last_name
	  FROM review r
	  JOIN account a ON a.account_id = r.account_id
	  WHERE r.inv_id = ?
	  ORDER BY r.review_date DESC, r.review_id DESC
	`, invID)
	return out, err
}

func (r *ReviewRepo) ByAccount(accountID int64) ([]domain.AccountReview, error) {
	var out []domain.AccountReview
	err := r.db.Select(&out, `
	  SELECT r.review_id, r.inv_id, r.account_id, r.review_text, r.review_rating, r.review_date,
	         i.inv_make, i.inv_model, i.inv_year
	  FROM review r
	  JOIN inventory i ON i.inv_id = r.inv_id
	  WHERE r.account_id = ?
	  ORDER BY r.review_date DESC, r.review_id DESC
	`, accountID)
	return out, err
}

func (r *ReviewRepo) Get(id int64) (domain.AccountReview, error) {
	var rv domain.AccountReview
	err := r.db.Get(&rv, `
	  SELECT r.review_id, r.inv_id, r.account_id, r.review_text, r.review_rating, r.review_date,
	         i.inv_make, i.inv_model, i.inv_year
	  FROM review r
	  JOIN inventory i ON i.inv_id = r.inv_id
	  WHERE r.review_id = ?
	`, id)
	return rv, err
}

func (r *ReviewRepo) HasReviewed(invID, accountID int64) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM review WHERE inv_id=? AND account_id=?`, invID, accountID)
	return n > 0, err
}

func (r *ReviewRepo) Summary(invID int64) (domain.RatingSummary, error) {
	var s domain.RatingSummary
	err := r.db.Get(&s, `
	  SELECT AVG(review_rating) AS average_rating, COUNT(*) AS review_count
	  FROM review WHERE inv_id = ?
	`, invID)
	return s, err
}

func (r *ReviewRepo) Update(id int64, text string, rating int) error {
	_, err := r.db.Exec(`
	  UPDATE review SET review_text=?, review_rating=? WHERE review_id=?
	`, text, rating, id)
	return err
}

func (r *ReviewRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM review WHERE review_id=?`, id)
	return err
}
