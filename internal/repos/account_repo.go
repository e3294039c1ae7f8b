package repos

import (
	"apexmotors/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AccountRepo struct{ DB *sqlx.DB }

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{DB: db} }

func (r *AccountRepo) ByEmail(email string) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.Get(&a, `
		SELECT account_id,first_name,last_name,email,password_hash,account_type,created_at
		FROM account WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) ByID(id int64) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.Get(&a, `
		SELECT account_id,first_name,last_name,email,password_hash,account_type,created_at
		FROM account WHERE account_id=?`, id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) Register(first, last, email, hash string) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO account(first_name,last_name,email,password_hash,account_type)
		VALUES(?,?,?,?,'Client')`, first, last, email, hash)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// EmailExists reports whether an email is taken by an account other than
// excludeID (pass 0 for registration).
func (r *AccountRepo) EmailExists(email string, excludeID int64) (bool, error) {
	var n int
	err := r.DB.Get(&n, `
		SELECT COUNT(*) FROM account
		WHERE LOWER(email)=LOWER(?) AND account_id != ?`, email, excludeID)
	return n > 0, err
}

func (r *AccountRepo) UpdateProfile(id int64, first, last, email string) error {
	_, err := r.DB.Exec(`
		UPDATE account SET first_name=?, last_name=?, email=?
		WHERE account_id=?`, first, last, email, id)
	return err
}

func (r *AccountRepo) UpdatePassword(id int64, hash string) error {
	_, err := r.DB.Exec(`UPDATE account SET password_hash=? WHERE account_id=?`, hash, id)
	return err
}
