package handlers

import (
	"github.com/gofiber/fiber/v2"

	"apexmotors/internal/domain"
	"apexmotors/internal/flash"
	applog "apexmotors/internal/log"
	"apexmotors/internal/services"
	"apexmotors/internal/validate"
)

type InventoryHandler struct {
	Catalog *services.CatalogService
	Inv     *services.InventoryService
	Reviews *services.ReviewService
	Flash   *flash.Store
}

// Home renders the landing page.
func (h *InventoryHandler) Home(c *fiber.Ctx) error {
	return render(c, "home", fiber.Map{"Title": "Home"})
}

// ByClassification renders the vehicle grid for one classification.
func (h *InventoryHandler) ByClassification(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("classificationId"))
	if !ok {
		return fiber.ErrNotFound
	}
	cls, err := h.Catalog.Classification(id)
	if err != nil {
		return fiber.ErrNotFound
	}
	vehicles, err := h.Catalog.VehiclesByClassification(id)
	if err != nil {
		return err
	}
	return render(c, "inventory/classification", fiber.Map{
		"Title":    cls.Name + " vehicles",
		"Name":     cls.Name,
		"Vehicles": vehicles,
	})
}

// Detail renders one vehicle with its reviews and aggregate rating.
func (h *InventoryHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("inventoryId"))
	if !ok {
		return fiber.ErrNotFound
	}
	v, err := h.Catalog.Vehicle(id)
	if err != nil {
		return fiber.ErrNotFound
	}
	data, err := detailData(c, h.Reviews, v)
	if err != nil {
		return err
	}
	return render(c, "inventory/detail", data)
}

// detailData assembles everything the detail template needs. The review
// handler reuses it when a failed submission has to reconstitute the page.
func detailData(c *fiber.Ctx, rs *services.ReviewService, v domain.Vehicle) (fiber.Map, error) {
	reviews, err := rs.ForVehicle(v.ID)
	if err != nil {
		return nil, err
	}
	summary, err := rs.Summary(v.ID)
	if err != nil {
		return nil, err
	}
	data := fiber.Map{
		"Title":   v.Year + " " + v.Make + " " + v.Model,
		"V":       v,
		"Reviews": reviews,
		"Summary": summary,
	}
	if acct := currentAccount(c); acct != nil {
		reviewed, err := rs.Reviewed(v.ID, acct.ID)
		if err != nil {
			return nil, err
		}
		data["HasReviewed"] = reviewed
	}
	return data, nil
}

// Management renders the staff landing page for inventory administration.
func (h *InventoryHandler) Management(c *fiber.Ctx) error {
	cls, err := h.Catalog.Nav()
	if err != nil {
		return err
	}
	return render(c, "inventory/management", fiber.Map{
		"Title":           "Inventory Management",
		"Classifications": cls,
	})
}

func (h *InventoryHandler) AddClassificationForm(c *fiber.Ctx) error {
	return render(c, "inventory/add-classification", fiber.Map{"Title": "Add Classification"})
}

func (h *InventoryHandler) AddClassification(c *fiber.Ctx) error {
	form := validate.ClassificationForm{Name: c.FormValue("classification_name")}
	if errs := form.Validate(); len(errs) > 0 {
		return render(c, "inventory/add-classification", fiber.Map{
			"Title": "Add Classification", "Errors": errs, "Name": form.Name,
		})
	}
	_, err := h.Inv.AddClassification(form.Name)
	if err == services.ErrClassificationExists {
		return render(c, "inventory/add-classification", fiber.Map{
			"Title": "Add Classification",
			"Errors": []string{"That classification already exists."},
			"Name":   form.Name,
		})
	}
	if err != nil {
		applog.Error(c, "inventory.classification.add.fail", err, map[string]any{"name": form.Name})
		c.Status(fiber.StatusInternalServerError)
		return render(c, "inventory/add-classification", fiber.Map{
			"Title": "Add Classification",
			"Notices": []string{"Sorry, adding the classification failed."},
			"Name":    form.Name,
		})
	}
	applog.Audit(c, "inventory.classification.add", map[string]any{"name": form.Name})
	h.Flash.Add(c, "The "+form.Name+" classification was successfully added.")
	return c.Redirect("/inv/")
}

func (h *InventoryHandler) AddVehicleForm(c *fiber.Ctx) error {
	return render(c, "inventory/add-inventory", fiber.Map{
		"Title": "Add Vehicle",
		"Form":  validate.VehicleForm{},
	})
}

func (h *InventoryHandler) AddVehicle(c *fiber.Ctx) error {
	form := vehicleForm(c)
	if errs := form.Validate(); len(errs) > 0 {
		return render(c, "inventory/add-inventory", fiber.Map{
			"Title": "Add Vehicle", "Errors": errs, "Form": form,
		})
	}
	v := vehicleFromForm(form)
	if _, err := h.Inv.AddVehicle(v); err != nil {
		applog.Error(c, "inventory.vehicle.add.fail", err, map[string]any{"make": v.Make, "model": v.Model})
		c.Status(fiber.StatusInternalServerError)
		return render(c, "inventory/add-inventory", fiber.Map{
			"Title": "Add Vehicle",
			"Notices": []string{"Sorry, adding the vehicle failed."},
			"Form":    form,
		})
	}
	applog.Audit(c, "inventory.vehicle.add", map[string]any{"make": v.Make, "model": v.Model})
	h.Flash.Add(c, "The "+v.Make+" "+v.Model+" was successfully added.")
	return c.Redirect("/inv/")
}

func (h *InventoryHandler) EditVehicleForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("inventoryId"))
	if !ok {
		return fiber.ErrNotFound
	}
	v, err := h.Catalog.Vehicle(id)
	if err != nil {
		return fiber.ErrNotFound
	}
	return render(c, "inventory/edit-inventory", fiber.Map{
		"Title": "Edit " + v.Make + " " + v.Model,
		"Form":  formFromVehicle(v),
	})
}

func (h *InventoryHandler) UpdateVehicle(c *fiber.Ctx) error {
	form := vehicleForm(c)
	if errs := form.Validate(); len(errs) > 0 || form.InvID == "" {
		if form.InvID == "" {
			errs = append(errs, "Invalid vehicle.")
		}
		return render(c, "inventory/edit-inventory", fiber.Map{
			"Title": "Edit Vehicle", "Errors": errs, "Form": form,
		})
	}
	v := vehicleFromForm(form)
	v.ID, _ = validate.ID(form.InvID)
	if err := h.Inv.UpdateVehicle(v); err != nil {
		applog.Error(c, "inventory.vehicle.update.fail", err, map[string]any{"inv_id": v.ID})
		c.Status(fiber.StatusNotImplemented)
		return render(c, "inventory/edit-inventory", fiber.Map{
			"Title": "Edit Vehicle",
			"Notices": []string{"Sorry, the update failed. Please try again."},
			"Form":    form,
		})
	}
	applog.Audit(c, "inventory.vehicle.update", map[string]any{"inv_id": v.ID})
	h.Flash.Add(c, "The "+v.Make+" "+v.Model+" was successfully updated.")
	return c.Redirect("/inv/")
}

func (h *InventoryHandler) DeleteVehicleForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("inv_id"))
	if !ok {
		return fiber.ErrNotFound
	}
	v, err := h.Catalog.Vehicle(id)
	if err != nil {
		return fiber.ErrNotFound
	}
	return render(c, "inventory/delete-confirm", fiber.Map{
		"Title": "Delete " + v.Make + " " + v.Model,
		"V":     v,
	})
}

func (h *InventoryHandler) DeleteVehicle(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("inv_id"))
	if !ok {
		return fiber.ErrNotFound
	}
	if err := h.Inv.DeleteVehicle(id); err != nil {
		applog.Error(c, "inventory.vehicle.delete.fail", err, map[string]any{"inv_id": id})
		h.Flash.Add(c, "Sorry, the delete failed. Please try again.")
		return c.Redirect("/inv/")
	}
	applog.Audit(c, "inventory.vehicle.delete", map[string]any{"inv_id": id})
	h.Flash.Add(c, "The vehicle was successfully deleted.")
	return c.Redirect("/inv/")
}

// InventoryJSON answers the structured list used by the management page's
// classification picker.
func (h *InventoryHandler) InventoryJSON(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("classification_id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid classification id"})
	}
	vehicles, err := h.Catalog.VehiclesByClassification(id)
	if err != nil {
		return err
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	return c.JSON(vehicles)
}

func vehicleForm(c *fiber.Ctx) validate.VehicleForm {
	return validate.VehicleForm{
		InvID:            c.FormValue("inv_id"),
		ClassificationID: c.FormValue("classification_id"),
		Make:             c.FormValue("inv_make"),
		Model:            c.FormValue("inv_model"),
		Year:             c.FormValue("inv_year"),
		Description:      c.FormValue("inv_description"),
		Image:            c.FormValue("inv_image"),
		Thumbnail:        c.FormValue("inv_thumbnail"),
		Price:            c.FormValue("inv_price"),
		Miles:            c.FormValue("inv_miles"),
		Color:            c.FormValue("inv_color"),
	}
}

func vehicleFromForm(f validate.VehicleForm) domain.Vehicle {
	clsID, price, miles := f.Values()
	return domain.Vehicle{
		ClassificationID: clsID,
		Make:             f.Make,
		Model:            f.Model,
		Year:             f.Year,
		Description:      f.Description,
		Image:            f.Image,
		Thumbnail:        f.Thumbnail,
		Price:            price,
		Miles:            miles,
		Color:            f.Color,
	}
}

func formFromVehicle(v domain.Vehicle) validate.VehicleForm {
	return validate.VehicleForm{
		InvID:            itoa(v.ID),
		ClassificationID: itoa(v.ClassificationID),
		Make:             v.Make,
		Model:            v.Model,
		Year:             v.Year,
		Description:      v.Description,
		Image:            v.Image,
		Thumbnail:        v.Thumbnail,
		Price:            trimFloat(v.Price),
		Miles:            itoa(v.Miles),
		Color:            v.Color,
	}
}
