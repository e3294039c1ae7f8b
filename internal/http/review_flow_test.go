package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	"apexmotors/internal/domain"
	"apexmotors/internal/services"
)

func clientSession(t *testing.T, auth *services.AuthService) *http.Cookie {
	t.Helper()
	tok, err := auth.IssueToken(&domain.Account{
		ID: 1, FirstName: "Basic", Email: "basic@apexmotors.test", Type: domain.RoleClient,
	})
	if err != nil {
		t.Fatal(err)
	}
	return &http.Cookie{Name: "jwt", Value: tok}
}

func reviewCount(t *testing.T, db *sqlx.DB, invID, accountID int64) int {
	t.Helper()
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM review WHERE inv_id=? AND account_id=?`, invID, accountID); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestReviewSubmitOncePerVehicle(t *testing.T) {
	app, deps, db := newTestApp(t)
	jwt := clientSession(t, deps.Auth)

	respDetail, err := app.Test(func() *http.Request {
		req := httptest.NewRequest("GET", "/inv/detail/1", nil)
		req.AddCookie(jwt)
		return req
	}())
	if err != nil {
		t.Fatal(err)
	}
	csrfTok := cookieValue(respDetail, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf cookie missing")
	}
	csrfCookie := &http.Cookie{Name: "csrf_", Value: csrfTok}

	form := url.Values{
		"csrf":          {csrfTok},
		"inv_id":        {"1"},
		"review_rating": {"5"},
		"review_text":   {"Over 700 horsepower and it absolutely shows."},
	}
	resp, err := app.Test(postForm(t, "/review/add", form, jwt, csrfCookie))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("add review: want 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/inv/detail/1" {
		t.Fatalf("redirect = %q", loc)
	}
	if n := reviewCount(t, db, 1, 1); n != 1 {
		t.Fatalf("want 1 review, got %d", n)
	}

	// The second submission bounces back without inserting.
	resp2, err := app.Test(postForm(t, "/review/add", form, jwt, csrfCookie))
	if err != nil {
		t.Fatal(err)
	}
	if resp2.StatusCode != http.StatusFound {
		t.Fatalf("duplicate review: want 302, got %d", resp2.StatusCode)
	}
	if n := reviewCount(t, db, 1, 1); n != 1 {
		t.Fatalf("duplicate inserted: %d rows", n)
	}

	// The detail page now shows the review and the aggregate, and swaps the
	// form for an edit link.
	reqDetail := httptest.NewRequest("GET", "/inv/detail/1", nil)
	reqDetail.AddCookie(jwt)
	respAfter, err := app.Test(reqDetail)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(respAfter.Body)
	page := string(body)
	if !strings.Contains(page, "Over 700 horsepower and it absolutely shows.") {
		t.Fatal("review text missing from detail page")
	}
	if !strings.Contains(page, "★★★★★") {
		t.Fatal("aggregate stars missing")
	}
	if !strings.Contains(page, "Edit your review") {
		t.Fatal("edit link missing for an account that already reviewed")
	}
	if strings.Contains(page, `id="add-review-form"`) {
		t.Fatal("add form still shown after reviewing")
	}
}

func TestReviewValidationReRendersDetail(t *testing.T) {
	app, deps, db := newTestApp(t)
	jwt := clientSession(t, deps.Auth)

	respDetail, _ := app.Test(func() *http.Request {
		req := httptest.NewRequest("GET", "/inv/detail/2", nil)
		req.AddCookie(jwt)
		return req
	}())
	csrfTok := cookieValue(respDetail, "csrf_")
	csrfCookie := &http.Cookie{Name: "csrf_", Value: csrfTok}

	form := url.Values{
		"csrf":          {csrfTok},
		"inv_id":        {"2"},
		"review_rating": {"9"},
		"review_text":   {"short"},
	}
	resp, err := app.Test(postForm(t, "/review/add", form, jwt, csrfCookie))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("invalid review: want 200 re-render, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, "Review must be between 10 and 1000 characters.") {
		t.Fatal("length error missing")
	}
	if !strings.Contains(page, "Rating must be between 1 and 5.") {
		t.Fatal("rating error missing")
	}
	// The typed text survives the round trip.
	if !strings.Contains(page, ">short</textarea>") {
		t.Fatal("submitted text not preserved")
	}
	if n := reviewCount(t, db, 2, 1); n != 0 {
		t.Fatalf("invalid review inserted: %d rows", n)
	}
}

func TestReviewOwnershipOverHTTP(t *testing.T) {
	app, deps, db := newTestApp(t)

	// Account 2 owns the review; account 1 tries to edit it.
	if _, err := deps.ReviewHandler.Reviews.Add(1, 2, "A different opinion entirely.", 2); err != nil {
		t.Fatal(err)
	}
	var reviewID int64
	if err := db.Get(&reviewID, `SELECT review_id FROM review WHERE inv_id=1 AND account_id=2`); err != nil {
		t.Fatal(err)
	}

	jwt := clientSession(t, deps.Auth)
	req := httptest.NewRequest("GET", "/review/edit/"+strconv.FormatInt(reviewID, 10), nil)
	req.AddCookie(jwt)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("foreign edit: want 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/review/user" {
		t.Fatalf("foreign edit redirect = %q", loc)
	}
}

func TestReviewTextIsEscaped(t *testing.T) {
	app, deps, _ := newTestApp(t)

	payload := `<script>alert("xss")</script> plus enough text`
	if _, err := deps.ReviewHandler.Reviews.Add(1, 1, payload, 3); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/inv/detail/1", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if strings.Contains(page, "<script>alert") {
		t.Fatal("review text rendered unescaped")
	}
	if !strings.Contains(page, "&lt;script&gt;") {
		t.Fatal("escaped review text missing")
	}
}
