package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"apexmotors/internal/flash"
	applog "apexmotors/internal/log"
	"apexmotors/internal/services"
	"apexmotors/internal/validate"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
	Catalog *services.CatalogService
	Flash   *flash.Store
}

// reviewDenied is the single notice for missing and foreign reviews, so the
// response does not reveal whether the review exists.
const reviewDenied = "That review could not be found in your account."

func reviewForm(c *fiber.Ctx) validate.ReviewForm {
	return validate.ReviewForm{
		ReviewID: c.FormValue("review_id"),
		InvID:    c.FormValue("inv_id"),
		Text:     c.FormValue("review_text"),
		Rating:   c.FormValue("review_rating"),
	}
}

// Add processes a new review for a vehicle detail page.
func (h *ReviewHandler) Add(c *fiber.Ctx) error {
	acct := currentAccount(c)
	form := reviewForm(c)

	invID, ok := validate.ID(form.InvID)
	if !ok {
		return fiber.ErrNotFound
	}
	v, err := h.Catalog.Vehicle(invID)
	if err != nil {
		return fiber.ErrNotFound
	}

	if errs := form.Validate(); len(errs) > 0 {
		data, derr := detailData(c, h.Reviews, v)
		if derr != nil {
			return derr
		}
		data["Errors"] = errs
		data["ReviewText"] = form.Text
		data["ReviewRating"] = form.Rating
		return render(c, "inventory/detail", data)
	}

	_, err = h.Reviews.Add(invID, acct.ID, form.Text, form.RatingValue())
	if errors.Is(err, services.ErrAlreadyReviewed) {
		h.Flash.Add(c, "You have already reviewed this vehicle. You can edit your existing review.")
		return c.Redirect("/inv/detail/" + itoa(invID))
	}
	if err != nil {
		applog.Error(c, "review.add.fail", err, map[string]any{"inv_id": invID})
		data, derr := detailData(c, h.Reviews, v)
		if derr != nil {
			return derr
		}
		data["Notices"] = []string{"Sorry, submitting the review failed."}
		data["ReviewText"] = form.Text
		data["ReviewRating"] = form.Rating
		c.Status(fiber.StatusInternalServerError)
		return render(c, "inventory/detail", data)
	}

	applog.Audit(c, "review.add", map[string]any{"inv_id": invID})
	h.Flash.Add(c, "Review submitted successfully!")
	return c.Redirect("/inv/detail/" + itoa(invID))
}

// Mine lists the signed-in account's reviews with edit/delete actions.
func (h *ReviewHandler) Mine(c *fiber.Ctx) error {
	acct := currentAccount(c)
	reviews, err := h.Reviews.ForAccount(acct.ID)
	if err != nil {
		return err
	}
	return render(c, "account/reviews", fiber.Map{
		"Title":   "My Reviews",
		"Reviews": reviews,
	})
}

func (h *ReviewHandler) EditForm(c *fiber.Ctx) error {
	acct := currentAccount(c)
	id, ok := validate.ID(c.Params("reviewId"))
	if !ok {
		h.Flash.Add(c, reviewDenied)
		return c.Redirect("/review/user")
	}
	rv, err := h.Reviews.Owned(id, acct.ID)
	if err != nil {
		h.Flash.Add(c, reviewDenied)
		return c.Redirect("/review/user")
	}
	return render(c, "account/edit-review", fiber.Map{
		"Title":        "Edit Review - " + rv.Year + " " + rv.Make + " " + rv.Model,
		"ReviewID":     rv.ID,
		"InvID":        rv.InvID,
		"ReviewText":   rv.Text,
		"ReviewRating": rv.Rating,
		"Vehicle":      rv.Year + " " + rv.Make + " " + rv.Model,
	})
}

func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	acct := currentAccount(c)
	form := reviewForm(c)
	id, ok := validate.ID(form.ReviewID)
	if !ok {
		h.Flash.Add(c, reviewDenied)
		return c.Redirect("/review/user")
	}
	rv, err := h.Reviews.Owned(id, acct.ID)
	if err != nil {
		h.Flash.Add(c, reviewDenied)
		return c.Redirect("/review/user")
	}

	vehicle := rv.Year + " " + rv.Make + " " + rv.Model
	if errs := form.Validate(); len(errs) > 0 {
		return render(c, "account/edit-review", fiber.Map{
			"Title":        "Edit Review - " + vehicle,
			"Errors":       errs,
			"ReviewID":     id,
			"InvID":        rv.InvID,
			"ReviewText":   form.Text,
			"ReviewRating": form.Rating,
			"Vehicle":      vehicle,
		})
	}

	if err := h.Reviews.Update(id, acct.ID, form.Text, form.RatingValue()); err != nil {
		applog.Error(c, "review.update.fail", err, map[string]any{"review_id": id})
		c.Status(fiber.StatusInternalServerError)
		return render(c, "account/edit-review", fiber.Map{
			"Title":        "Edit Review - " + vehicle,
			"Notices":      []string{"Sorry, updating the review failed."},
			"ReviewID":     id,
			"InvID":        rv.InvID,
			"ReviewText":   form.Text,
			"ReviewRating": form.Rating,
			"Vehicle":      vehicle,
		})
	}

	applog.Audit(c, "review.update", map[string]any{"review_id": id})
	h.Flash.Add(c, "Review updated successfully!")
	return c.Redirect("/review/user")
}

// DeleteForm renders the static confirmation summary before a delete.
func (h *ReviewHandler) DeleteForm(c *fiber.Ctx) error {
	acct := currentAccount(c)
	id, ok := validate.ID(c.Params("reviewId"))
	if !ok {
		h.Flash.Add(c, reviewDenied)
		return c.Redirect("/review/user")
	}
	rv, err := h.Reviews.Owned(id, acct.ID)
	if err != nil {
		h.Flash.Add(c, reviewDenied)
		return c.Redirect("/review/user")
	}
	return render(c, "account/delete-review", fiber.Map{
		"Title":        "Delete Review - " + rv.Year + " " + rv.Make + " " + rv.Model,
		"ReviewID":     rv.ID,
		"ReviewText":   rv.Text,
		"ReviewRating": rv.Rating,
		"Vehicle":      rv.Year + " " + rv.Make + " " + rv.Model,
	})
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	acct := currentAccount(c)
	id, ok := validate.ID(c.FormValue("review_id"))
	if !ok {
		h.Flash.Add(c, reviewDenied)
		return c.Redirect("/review/user")
	}
	// Ownership is re-checked inside Delete, against the current row.
	rv, err := h.Reviews.Owned(id, acct.ID)
	if err != nil {
		h.Flash.Add(c, reviewDenied)
		return c.Redirect("/review/user")
	}

	if err := h.Reviews.Delete(id, acct.ID); err != nil {
		applog.Error(c, "review.delete.fail", err, map[string]any{"review_id": id})
		vehicle := rv.Year + " " + rv.Make + " " + rv.Model
		c.Status(fiber.StatusInternalServerError)
		return render(c, "account/delete-review", fiber.Map{
			"Title":        "Delete Review - " + vehicle,
			"Notices":      []string{"Sorry, deleting the review failed."},
			"ReviewID":     rv.ID,
			"ReviewText":   rv.Text,
			"ReviewRating": rv.Rating,
			"Vehicle":      vehicle,
		})
	}

	applog.Audit(c, "review.delete", map[string]any{"review_id": id})
	h.Flash.Add(c, "Review deleted successfully!")
	return c.Redirect("/review/user")
}
