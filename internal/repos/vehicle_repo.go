package repos

import (
	"apexmotors/internal/domain"

	"github.com/jmoiron/sqlx"
)

type VehicleRepo struct{ db *sqlx.DB }

func NewVehicleRepo(db *sqlx.DB) *VehicleRepo { return &VehicleRepo{db: db} }

const vehicleCols = `
  inv_id, classification_id, inv_make, inv_model, inv_year, inv_description,
  inv_image, inv_thumbnail, inv_price, inv_miles, inv_color`

func (r *VehicleRepo) ListByClassification(classificationID int64) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	err := r.db.Select(&out, `
	  SELECT `+vehicleCols+`
	  FROM inventory
	  WHERE classification_id = ?
	  ORDER BY inv_make, inv_model
	`, classificationID)
	return out, err
}

func (r *VehicleRepo) Get(id int64) (domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.db.Get(&v, `
	  SELECT `+vehicleCols+`
	  FROM inventory WHERE inv_id = ?
	`, id)
	return v, err
}

func (r *VehicleRepo) Add(v domain.Vehicle) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO inventory(classification_id,inv_make,inv_model,inv_year,inv_description,
	    inv_image,inv_thumbnail,inv_price,inv_miles,inv_color)
	  VALUES(?,?,?,?,?,?,?,?,?,?)
	`, v.ClassificationID, v.Make, v.Model, v.Year, v.Description,
		v.Image, v.Thumbnail, v.Price, v.Miles, v.Color)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *VehicleRepo) Update(v domain.Vehicle) error {
	_, err := r.db.Exec(`
	  UPDATE inventory
	  SET classification_id=?, inv_make=?, inv_model=?, inv_year=?, inv_description=?,
	      inv_image=?, inv_thumbnail=?, inv_price=?, inv_miles=?, inv_color=?
	  WHERE inv_id=?
	`, v.ClassificationID, v.Make, v.Model, v.Year, v.Description,
		v.Image, v.Thumbnail, v.Price, v.Miles, v.Color, v.ID)
	return err
}

func (r *VehicleRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM inventory WHERE inv_id=?`, id)
	return err
}
