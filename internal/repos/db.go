package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo data if the DB is empty (classifications/vehicles)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure baseline accounts exist (idempotent; safe to run every start)
	if err := seedAccounts(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Accounts
CREATE TABLE IF NOT EXISTS account(
  account_id INTEGER PRIMARY KEY AUTOINCREMENT,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  account_type TEXT NOT NULL DEFAULT 'Client' CHECK (account_type IN ('Client','Employee','Admin')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_account_email_nocase ON account(LOWER(email));

-- Classifications
CREATE TABLE IF NOT EXISTS classification(
  classification_id INTEGER PRIMARY KEY AUTOINCREMENT,
  classification_name TEXT NOT NULL UNIQUE
);

-- Inventory
CREATE TABLE IF NOT EXISTS inventory(
  inv_id INTEGER PRIMARY KEY AUTOINCREMENT,
  classification_id INTEGER NOT NULL REFERENCES classification(classification_id) ON DELETE RESTRICT,
  inv_make TEXT NOT NULL,
  inv_model TEXT NOT NULL,
  inv_year TEXT NOT NULL,
  inv_description TEXT NOT NULL,
  inv_image TEXT NOT NULL,
  inv_thumbnail TEXT NOT NULL,
  inv_price NUMERIC NOT NULL CHECK (inv_price >= 0),
  inv_miles INTEGER NOT NULL CHECK (inv_miles >= 0),
  inv_color TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_inventory_classification ON inventory(classification_id);

-- Reviews: one per (vehicle, account); the unique index closes the
-- check-then-insert race behind the "already reviewed" pre-check.
CREATE TABLE IF NOT EXISTS review(
  review_id INTEGER PRIMARY KEY AUTOINCREMENT,
  inv_id INTEGER NOT NULL REFERENCES inventory(inv_id) ON DELETE CASCADE,
  account_id INTEGER NOT NULL REFERENCES account(account_id) ON DELETE CASCADE,
  review_text TEXT NOT NULL,
  review_rating INTEGER NOT NULL CHECK (review_rating BETWEEN 1 AND 5),
  review_date TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_review_vehicle_account ON review(inv_id, account_id);
CREATE INDEX IF NOT EXISTS idx_review_vehicle ON review(inv_id);
CREATE INDEX IF NOT EXISTS idx_review_account ON review(account_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM classification`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo classifications/vehicles")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO classification(classification_id, classification_name) VALUES
	  (1,'Custom'),
	  (2,'Sedan'),
	  (3,'SUV'),
	  (4,'Truck'),
	  (5,'Sport')`)

	tx.MustExec(`INSERT INTO inventory(classification_id,inv_make,inv_model,inv_year,inv_description,inv_image,inv_thumbnail,inv_price,inv_miles,inv_color) VALUES
	  (5,'Lamborghini','Adventador','2016','This V-12 engine packs a punch at over 700 horsepower.','/images/vehicles/adventador.jpg','/images/vehicles/adventador-tn.jpg',417650,71003,'Blue'),
	  (4,'Ford','Crown Victoria','2013','Surplus patrol car in great shape, low miles.','/images/vehicles/crwn-vic.jpg','/images/vehicles/crwn-vic-tn.jpg',10000,108247,'White'),
	  (2,'Mechanic','Special','1964','Not sure where this car came from. Runs great though!','/images/vehicles/mechanic.jpg','/images/vehicles/mechanic-tn.jpg',100,200125,'Rust'),
	  (3,'Cadillac','Escalade','2019','Luxury SUV with all the trimmings.','/images/vehicles/escalade.jpg','/images/vehicles/escalade-tn.jpg',75195,41958,'Black'),
	  (1,'GM','Hummer','2016','Do you have 6 kids and like to go offroading? The Hummer gives you the small interiors with an engine to get you out of any muddy or rocky situation.','/images/vehicles/hummer.jpg','/images/vehicles/hummer-tn.jpg',58800,56564,'Yellow'),
	  (2,'Ford','Model T','1921','The Model T can be a bit tricky to drive. It was the first car to be put into production.','/images/vehicles/model-t.jpg','/images/vehicles/model-t-tn.jpg',30000,26357,'Black')`)

	return tx.Commit()
}

// seedAccounts ensures a Client, an Employee and an Admin exist (idempotent).
func seedAccounts(db *sqlx.DB) error {
	type acct struct {
		First, Last, Email, Type, Hash string
	}
	mk := func(first, last, email, typ, raw string) acct {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 10)
		return acct{First: first, Last: last, Email: email, Type: typ, Hash: string(h)}
	}

	accounts := []acct{
		mk("Basic", "Client", "basic@apexmotors.test", "Client", "I@mABas1cCl!3nt"),
		mk("Happy", "Employee", "happy@apexmotors.test", "Employee", "I@mAnEmpl0y33"),
		mk("Manager", "User", "manager@apexmotors.test", "Admin", "I@mAnAdm!n1strat0r"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, a := range accounts {
		if _, err := tx.Exec(`
			INSERT INTO account(first_name,last_name,email,password_hash,account_type)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, a.First, a.Last, a.Email, a.Hash, a.Type); err != nil {
			return err
		}
	}

	return tx.Commit()
}
