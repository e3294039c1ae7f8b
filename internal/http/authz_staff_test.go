package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"apexmotors/internal/domain"
)

func staffPaths() []string {
	return []string{"/inv/", "/inv/add-classification", "/inv/add-inventory", "/inv/edit/1", "/inv/delete/1"}
}

func TestStaffPagesRejectAnonymous(t *testing.T) {
	app, _, _ := newTestApp(t)

	for _, path := range staffPaths() {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("%s anonymous: want 302, got %d", path, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/account/login" {
			t.Fatalf("%s: redirect = %q", path, loc)
		}
	}
}

func TestStaffPagesRejectClient(t *testing.T) {
	app, deps, _ := newTestApp(t)

	tok, err := deps.Auth.IssueToken(&domain.Account{
		ID: 1, FirstName: "Basic", Email: "basic@apexmotors.test", Type: domain.RoleClient,
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, path := range staffPaths() {
		req := httptest.NewRequest("GET", path, nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: tok})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("%s as client: want 302, got %d", path, resp.StatusCode)
		}
	}
}

func TestStaffPagesAllowEmployeeAndAdmin(t *testing.T) {
	app, deps, _ := newTestApp(t)

	for _, acct := range []*domain.Account{
		{ID: 2, FirstName: "Happy", Email: "happy@apexmotors.test", Type: domain.RoleEmployee},
		{ID: 3, FirstName: "Manager", Email: "manager@apexmotors.test", Type: domain.RoleAdmin},
	} {
		tok, err := deps.Auth.IssueToken(acct)
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest("GET", "/inv/", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: tok})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("management as %s: want 200, got %d", acct.Type, resp.StatusCode)
		}
	}
}
