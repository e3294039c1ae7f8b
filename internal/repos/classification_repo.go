package repos

import (
	"apexmotors/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ClassificationRepo struct{ db *sqlx.DB }

func NewClassificationRepo(db *sqlx.DB) *ClassificationRepo { return &ClassificationRepo{db: db} }

func (r *ClassificationRepo) List() ([]domain.Classification, error) {
	var out []domain.Classification
	err := r.db.Select(&out, `
	  SELECT classification_id, classification_name
	  FROM classification
	  ORDER BY classification_name
	`)
	return out, err
}

func (r *ClassificationRepo) Get(id int64) (domain.Classification, error) {
	var c domain.Classification
	err := r.db.Get(&c, `
	  SELECT classification_id, classification_name
	  FROM classification WHERE classification_id = ?
	`, id)
	return c, err
}

func (r *ClassificationRepo) Add(name string) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO classification(classification_name) VALUES(?)`, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ClassificationRepo) NameExists(name string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM classification WHERE LOWER(classification_name)=LOWER(?)`, name)
	return n > 0, err
}
