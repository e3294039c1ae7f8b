package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"apexmotors/internal/flash"
	applog "apexmotors/internal/log"
	"apexmotors/internal/services"
	"apexmotors/internal/validate"
)

type AccountHandler struct {
	Auth   *services.AuthService
	Flash  *flash.Store
	Secure bool
}

func (h *AccountHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "account/login", fiber.Map{"Title": "Login"})
}

func (h *AccountHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "account/register", fiber.Map{"Title": "Register"})
}

func (h *AccountHandler) Register(c *fiber.Ctx) error {
	form := validate.RegistrationForm{
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		Email:     c.FormValue("email"),
		Password:  c.FormValue("password"),
	}
	if errs := form.Validate(); len(errs) > 0 {
		return render(c, "account/register", fiber.Map{
			"Title": "Register", "Errors": errs,
			"FirstName": form.FirstName, "LastName": form.LastName, "Email": form.Email,
		})
	}

	_, err := h.Auth.Register(form.FirstName, form.LastName, form.Email, form.Password)
	if errors.Is(err, services.ErrEmailTaken) {
		return render(c, "account/register", fiber.Map{
			"Title": "Register", "Errors": []string{"That email is already registered. Please log in or use a different email."},
			"FirstName": form.FirstName, "LastName": form.LastName, "Email": form.Email,
		})
	}
	if err != nil {
		applog.Error(c, "account.register.fail", err, map[string]any{"email": form.Email})
		c.Status(fiber.StatusInternalServerError)
		return render(c, "account/register", fiber.Map{
			"Title": "Register", "Notices": []string{"Sorry, the registration failed. Please try again."},
			"FirstName": form.FirstName, "LastName": form.LastName, "Email": form.Email,
		})
	}

	applog.Audit(c, "account.register", map[string]any{"email": form.Email})
	c.Status(fiber.StatusCreated)
	return render(c, "account/login", fiber.Map{
		"Title":   "Login",
		"Notices": []string{"Congratulations, you're registered " + form.FirstName + ". Please log in."},
	})
}

func (h *AccountHandler) Login(c *fiber.Ctx) error {
	form := validate.LoginForm{Email: c.FormValue("email"), Password: c.FormValue("password")}
	if errs := form.Validate(); len(errs) > 0 {
		c.Status(fiber.StatusBadRequest)
		return render(c, "account/login", fiber.Map{
			"Title": "Login", "Errors": errs, "Email": form.Email,
		})
	}

	acct, err := h.Auth.Login(form.Email, form.Password)
	if err != nil {
		// Missing account and hash mismatch share this path; so does any
		// comparison error, per the uniform recoverable policy.
		applog.Security(c, "account.login.fail", map[string]any{"email": form.Email})
		c.Status(fiber.StatusBadRequest)
		return render(c, "account/login", fiber.Map{
			"Title":   "Login",
			"Notices": []string{"Please check your credentials and try again."},
			"Email":   form.Email,
		})
	}

	token, err := h.Auth.IssueToken(acct)
	if err != nil {
		applog.Error(c, "account.token.fail", err, nil)
		c.Status(fiber.StatusBadRequest)
		return render(c, "account/login", fiber.Map{
			"Title":   "Login",
			"Notices": []string{"Please check your credentials and try again."},
			"Email":   form.Email,
		})
	}
	setTokenCookie(c, token, h.Secure)
	applog.Audit(c, "account.login", map[string]any{"email": form.Email})
	return c.Redirect("/account/")
}

// Home renders the account management view.
func (h *AccountHandler) Home(c *fiber.Ctx) error {
	return render(c, "account/management", fiber.Map{"Title": "Account Management"})
}

func (h *AccountHandler) UpdateForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("account_id"))
	if !ok {
		h.Flash.Add(c, "Account not found.")
		return c.Redirect("/account/")
	}
	acct, err := h.Auth.Account(id)
	if err != nil {
		h.Flash.Add(c, "Account not found.")
		return c.Redirect("/account/")
	}
	return render(c, "account/update", fiber.Map{
		"Title":     "Update Account",
		"AccountID": acct.ID,
		"FirstName": acct.FirstName, "LastName": acct.LastName, "Email": acct.Email,
	})
}

func (h *AccountHandler) Update(c *fiber.Ctx) error {
	form := validate.AccountUpdateForm{
		AccountID: c.FormValue("account_id"),
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		Email:     c.FormValue("email"),
	}
	if errs := form.Validate(); len(errs) > 0 {
		return render(c, "account/update", fiber.Map{
			"Title": "Update Account", "Errors": errs,
			"AccountID": form.AccountID,
			"FirstName": form.FirstName, "LastName": form.LastName, "Email": form.Email,
		})
	}
	id, _ := validate.ID(form.AccountID)

	acct, err := h.Auth.UpdateProfile(id, form.FirstName, form.LastName, form.Email)
	if errors.Is(err, services.ErrEmailTaken) {
		return render(c, "account/update", fiber.Map{
			"Title": "Update Account", "Errors": []string{"That email is already in use by another account."},
			"AccountID": form.AccountID,
			"FirstName": form.FirstName, "LastName": form.LastName, "Email": form.Email,
		})
	}
	if err != nil {
		applog.Error(c, "account.update.fail", err, map[string]any{"account_id": id})
		c.Status(fiber.StatusNotImplemented)
		return render(c, "account/update", fiber.Map{
			"Title":   "Update Account",
			"Notices": []string{"Sorry, the update failed. Please try again."},
			"AccountID": form.AccountID,
			"FirstName": form.FirstName, "LastName": form.LastName, "Email": form.Email,
		})
	}

	// Refresh the identity cookie so the new name/email show immediately.
	if token, terr := h.Auth.IssueToken(acct); terr == nil {
		setTokenCookie(c, token, h.Secure)
	}
	applog.Audit(c, "account.update", map[string]any{"account_id": id})
	h.Flash.Add(c, "Account information updated successfully.")
	return c.Redirect("/account/")
}

func (h *AccountHandler) ChangePassword(c *fiber.Ctx) error {
	form := validate.PasswordChangeForm{
		AccountID: c.FormValue("account_id"),
		Password:  c.FormValue("password"),
	}
	id, _ := validate.ID(form.AccountID)
	if errs := form.Validate(); len(errs) > 0 {
		data := fiber.Map{"Title": "Update Account", "Errors": errs, "AccountID": form.AccountID}
		h.fillAccountFields(id, data)
		return render(c, "account/update", data)
	}

	if err := h.Auth.ChangePassword(id, form.Password); err != nil {
		applog.Error(c, "account.password.fail", err, map[string]any{"account_id": id})
		data := fiber.Map{
			"Title":     "Update Account",
			"Notices":   []string{"Sorry, the password change failed. Please try again."},
			"AccountID": form.AccountID,
		}
		h.fillAccountFields(id, data)
		c.Status(fiber.StatusNotImplemented)
		return render(c, "account/update", data)
	}

	applog.Audit(c, "account.password.change", map[string]any{"account_id": id})
	h.Flash.Add(c, "Password changed successfully.")
	return c.Redirect("/account/")
}

func (h *AccountHandler) Logout(c *fiber.Ctx) error {
	clearTokenCookie(c, h.Secure)
	applog.Audit(c, "account.logout", nil)
	return c.Redirect("/")
}

// fillAccountFields re-fetches current profile values for a failed password
// change, so the update form is not rendered empty.
func (h *AccountHandler) fillAccountFields(id int64, data fiber.Map) {
	if acct, err := h.Auth.Account(id); err == nil {
		data["FirstName"] = acct.FirstName
		data["LastName"] = acct.LastName
		data["Email"] = acct.Email
	}
}
