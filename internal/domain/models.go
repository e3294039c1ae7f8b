package domain

type Classification struct {
	ID   int64  `db:"classification_id"`
	Name string `db:"classification_name"`
}

type Vehicle struct {
	ID               int64   `db:"inv_id"`
	ClassificationID int64   `db:"classification_id"`
	Make             string  `db:"inv_make"`
	Model            string  `db:"inv_model"`
	Year             string  `db:"inv_year"`
	Description      string  `db:"inv_description"`
	Image            string  `db:"inv_image"`
	Thumbnail        string  `db:"inv_thumbnail"`
	Price            float64 `db:"inv_price"`
	Miles            int64   `db:"inv_miles"`
	Color            string  `db:"inv_color"`
}

type Review struct {
	ID        int64  `db:"review_id"`
	InvID     int64  `db:"inv_id"`
	AccountID int64  `db:"account_id"`
	Text      string `db:"review_text"`
	Rating    int    `db:"review_rating"`
	Date      string `db:"review_date"`
}

// RatingFloat adapts the integer rating for the star-glyph template func.
func (r Review) RatingFloat() float64 { return float64(r.Rating) }

// VehicleReview is a review joined with the reviewer's name, for detail pages.
type VehicleReview struct {
	Review
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
}

// AccountReview is a review joined with vehicle identity, for "my reviews".
type AccountReview struct {
	Review
	Make  string `db:"inv_make"`
	Model string `db:"inv_model"`
	Year  string `db:"inv_year"`
}

// RatingSummary is the on-demand aggregate for one vehicle. Average is nil
// when no reviews exist.
type RatingSummary struct {
	Average *float64 `db:"average_rating"`
	Count   int      `db:"review_count"`
}
