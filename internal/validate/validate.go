package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail          = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reClassification = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	reYear           = regexp.MustCompile(`^\d{4}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return s, false
	}
	return s, reEmail.MatchString(s)
}

// Password enforces the account password policy.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 20 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

// ID parses a positive integer identifier from a route param or form field.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n >= 1
}

const passwordMsg = "Password must be 8-20 characters and include an uppercase letter, a lowercase letter, a number and a symbol."

// RegistrationForm carries submitted values so a failed form re-renders
// with nothing lost.
type RegistrationForm struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func (f *RegistrationForm) Validate() []string {
	var errs []string
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	if f.FirstName == "" {
		errs = append(errs, "Please provide a first name.")
	}
	if f.LastName == "" {
		errs = append(errs, "Please provide a last name.")
	}
	var ok bool
	if f.Email, ok = Email(f.Email); !ok {
		errs = append(errs, "A valid email is required.")
	}
	if !Password(f.Password) {
		errs = append(errs, passwordMsg)
	}
	return errs
}

type LoginForm struct {
	Email    string
	Password string
}

func (f *LoginForm) Validate() []string {
	var errs []string
	var ok bool
	if f.Email, ok = Email(f.Email); !ok {
		errs = append(errs, "A valid email is required.")
	}
	if f.Password == "" {
		errs = append(errs, "Please provide a password.")
	}
	return errs
}

type AccountUpdateForm struct {
	AccountID string
	FirstName string
	LastName  string
	Email     string
}

func (f *AccountUpdateForm) Validate() []string {
	var errs []string
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	if f.FirstName == "" {
		errs = append(errs, "Please provide a first name.")
	}
	if f.LastName == "" {
		errs = append(errs, "Please provide a last name.")
	}
	var ok bool
	if f.Email, ok = Email(f.Email); !ok {
		errs = append(errs, "A valid email is required.")
	}
	if _, ok := ID(f.AccountID); !ok {
		errs = append(errs, "Invalid account.")
	}
	return errs
}

type PasswordChangeForm struct {
	AccountID string
	Password  string
}

func (f *PasswordChangeForm) Validate() []string {
	var errs []string
	if !Password(f.Password) {
		errs = append(errs, passwordMsg)
	}
	if _, ok := ID(f.AccountID); !ok {
		errs = append(errs, "Invalid account.")
	}
	return errs
}

type ClassificationForm struct {
	Name string
}

func (f *ClassificationForm) Validate() []string {
	var errs []string
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		errs = append(errs, "Please provide a classification name.")
	} else if !reClassification.MatchString(f.Name) {
		errs = append(errs, "Classification name cannot contain spaces or special characters.")
	}
	return errs
}

// VehicleForm covers both add-inventory and update-inventory submissions;
// InvID is only checked when present.
type VehicleForm struct {
	InvID            string
	ClassificationID string
	Make             string
	Model            string
	Year             string
	Description      string
	Image            string
	Thumbnail        string
	Price            string
	Miles            string
	Color            string
}

func (f *VehicleForm) Validate() []string {
	var errs []string
	trim := func(s *string) { *s = strings.TrimSpace(*s) }
	trim(&f.Make)
	trim(&f.Model)
	trim(&f.Year)
	trim(&f.Description)
	trim(&f.Image)
	trim(&f.Thumbnail)
	trim(&f.Price)
	trim(&f.Miles)
	trim(&f.Color)

	if f.Make == "" {
		errs = append(errs, "Make is required.")
	}
	if f.Model == "" {
		errs = append(errs, "Model is required.")
	}
	if !reYear.MatchString(f.Year) {
		errs = append(errs, "Year must be a 4-digit value.")
	}
	if f.Description == "" {
		errs = append(errs, "Description is required.")
	}
	if f.Image == "" {
		errs = append(errs, "Image path is required.")
	}
	if f.Thumbnail == "" {
		errs = append(errs, "Thumbnail path is required.")
	}
	if p, err := strconv.ParseFloat(f.Price, 64); err != nil || p < 0 {
		errs = append(errs, "Price must be a positive number.")
	}
	if m, err := strconv.ParseInt(f.Miles, 10, 64); err != nil || m < 0 {
		errs = append(errs, "Miles must be a positive whole number.")
	}
	if f.Color == "" {
		errs = append(errs, "Color is required.")
	}
	if _, ok := ID(f.ClassificationID); !ok {
		errs = append(errs, "Classification is required.")
	}
	if f.InvID != "" {
		if _, ok := ID(f.InvID); !ok {
			errs = append(errs, "Invalid vehicle.")
		}
	}
	return errs
}

// Vehicle converts a validated form into a domain row. Call only after
// Validate returned no errors.
func (f *VehicleForm) Values() (classificationID int64, price float64, miles int64) {
	classificationID, _ = ID(f.ClassificationID)
	price, _ = strconv.ParseFloat(f.Price, 64)
	miles, _ = strconv.ParseInt(f.Miles, 10, 64)
	return
}

type ReviewForm struct {
	ReviewID string
	InvID    string
	Text     string
	Rating   string
}

func (f *ReviewForm) Validate() []string {
	var errs []string
	f.Text = strings.TrimSpace(f.Text)
	if f.Text == "" {
		errs = append(errs, "Please provide a review.")
	} else if n := len(f.Text); n < 10 || n > 1000 {
		errs = append(errs, "Review must be between 10 and 1000 characters.")
	}
	if r, err := strconv.Atoi(strings.TrimSpace(f.Rating)); err != nil || r < 1 || r > 5 {
		errs = append(errs, "Rating must be between 1 and 5.")
	}
	if _, ok := ID(f.InvID); !ok {
		errs = append(errs, "Invalid inventory ID.")
	}
	return errs
}

func (f *ReviewForm) RatingValue() int {
	r, _ := strconv.Atoi(strings.TrimSpace(f.Rating))
	return r
}
