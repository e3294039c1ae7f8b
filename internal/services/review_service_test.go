package services_test

import (
	"errors"
	"testing"

	"apexmotors/internal/repos"
	"apexmotors/internal/services"
)

// Seeded fixtures: vehicles 1-6, accounts 1 (Client), 2 (Employee), 3 (Admin).
func reviewSvc(t *testing.T) *services.ReviewService {
	t.Helper()
	db := memdb(t)
	return services.NewReviewService(repos.NewReviewRepo(db))
}

func TestReviewOnePerVehiclePerAccount(t *testing.T) {
	svc := reviewSvc(t)

	id, err := svc.Add(1, 1, "Over 700 horsepower and it shows.", 5)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id < 1 {
		t.Fatalf("bad review id %d", id)
	}

	if _, err := svc.Add(1, 1, "Trying to review it twice.", 4); !errors.Is(err, services.ErrAlreadyReviewed) {
		t.Fatalf("want ErrAlreadyReviewed, got %v", err)
	}

	// Same vehicle, different account is fine; same account, different vehicle too.
	if _, err := svc.Add(1, 2, "A different opinion entirely.", 2); err != nil {
		t.Fatalf("second account blocked: %v", err)
	}
	if _, err := svc.Add(2, 1, "Great surplus patrol car.", 4); err != nil {
		t.Fatalf("second vehicle blocked: %v", err)
	}

	reviewed, err := svc.Reviewed(1, 1)
	if err != nil || !reviewed {
		t.Fatalf("Reviewed(1,1) = %v, %v", reviewed, err)
	}
	reviewed, err = svc.Reviewed(3, 1)
	if err != nil || reviewed {
		t.Fatalf("Reviewed(3,1) = %v, %v", reviewed, err)
	}
}

func TestReviewOwnershipGates(t *testing.T) {
	svc := reviewSvc(t)

	id, err := svc.Add(1, 1, "Mine and mine alone.", 5)
	if err != nil {
		t.Fatal(err)
	}

	// The owner can read it back.
	rv, err := svc.Owned(id, 1)
	if err != nil {
		t.Fatalf("owner denied: %v", err)
	}
	if rv.Make != "Lamborghini" {
		t.Fatalf("vehicle join missing: %+v", rv)
	}

	// Foreign account and missing review collapse into the same error.
	if _, err := svc.Owned(id, 2); !errors.Is(err, services.ErrReviewDenied) {
		t.Fatalf("foreign account: want ErrReviewDenied, got %v", err)
	}
	if _, err := svc.Owned(9999, 1); !errors.Is(err, services.ErrReviewDenied) {
		t.Fatalf("missing review: want ErrReviewDenied, got %v", err)
	}

	if err := svc.Update(id, 2, "Hijacked text.", 1); !errors.Is(err, services.ErrReviewDenied) {
		t.Fatalf("foreign update: want ErrReviewDenied, got %v", err)
	}
	if err := svc.Delete(id, 2); !errors.Is(err, services.ErrReviewDenied) {
		t.Fatalf("foreign delete: want ErrReviewDenied, got %v", err)
	}

	if err := svc.Update(id, 1, "Edited by the owner.", 4); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	rv, _ = svc.Owned(id, 1)
	if rv.Text != "Edited by the owner." || rv.Rating != 4 {
		t.Fatalf("update not applied: %+v", rv)
	}

	if err := svc.Delete(id, 1); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.Owned(id, 1); !errors.Is(err, services.ErrReviewDenied) {
		t.Fatal("deleted review still owned")
	}
}

func TestReviewSummary(t *testing.T) {
	svc := reviewSvc(t)

	// No reviews yet: nil average, zero count.
	sum, err := svc.Summary(4)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Average != nil || sum.Count != 0 {
		t.Fatalf("empty summary = %+v", sum)
	}

	if _, err := svc.Add(4, 1, "All the trimmings indeed.", 5); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(4, 2, "Thirsty but comfortable.", 4); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(4, 3, "Too big for my garage.", 2); err != nil {
		t.Fatal(err)
	}

	sum, err = svc.Summary(4)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Count != 3 {
		t.Fatalf("count = %d", sum.Count)
	}
	// (5+4+2)/3 = 3.666..., rounded to one decimal.
	if sum.Average == nil || *sum.Average != 3.7 {
		t.Fatalf("average = %v", sum.Average)
	}
}

func TestReviewListsAreOrderedNewestFirst(t *testing.T) {
	svc := reviewSvc(t)

	if _, err := svc.Add(3, 1, "Runs great though, really.", 3); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(3, 2, "Where did this car come from?", 2); err != nil {
		t.Fatal(err)
	}

	reviews, err := svc.ForVehicle(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(reviews) != 2 {
		t.Fatalf("want 2 reviews, got %d", len(reviews))
	}
	// Ties on date fall back to the higher id first.
	if reviews[0].AccountID != 2 {
		t.Fatalf("newest first violated: %+v", reviews)
	}
	if reviews[0].FirstName == "" {
		t.Fatalf("reviewer name missing: %+v", reviews[0])
	}

	mine, err := svc.ForAccount(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].Make != "Mechanic" {
		t.Fatalf("account reviews = %+v", mine)
	}
}
