package fridge

import (
	"context"
	"testing"

	"github.com/prismqdev/foodler-backend/pkg/db"
	pkgerrors "github.com/prismqdev/foodler-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	conn := openTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo, db.NewFromGorm(conn), testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo
}

func TestAddItemValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, AddItemInput{Name: "  ", Quantity: 100})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}

	_, err = svc.AddItem(ctx, AddItemInput{Name: "rice", Quantity: -1})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative quantity, got %v", err)
	}
}

func TestAddItemDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	dto, err := svc.AddItem(context.Background(), AddItemInput{
		Name:     " Basmati Rice ",
		Quantity: 500,
		Unit:     "g",
		Calories: floatPtr(351),
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if dto.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if dto.Name != "Basmati Rice" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
	if dto.MealsWithout != 0 || dto.LastUsedDate != nil {
		t.Fatalf("expected empty rotation history, got %+v", dto)
	}
	if dto.AddedDate.IsZero() {
		t.Fatal("expected added date to be set")
	}
}

func TestUpdateQuantityNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateQuantity(context.Background(), 42, 10)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateQuantityRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.AddItem(ctx, AddItemInput{Name: "rice", Quantity: 500, Unit: "g"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	updated, err := svc.UpdateQuantity(ctx, created.ID, 250)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if updated.Quantity != 250 {
		t.Fatalf("expected quantity 250, got %v", updated.Quantity)
	}
}

func TestDeleteItemNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.DeleteItem(context.Background(), 42)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMarkAsUsedNeverFirstInRotation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, _ := svc.AddItem(ctx, AddItemInput{Name: "rice", Quantity: 500})
	b, _ := svc.AddItem(ctx, AddItemInput{Name: "beans", Quantity: 400})

	if _, err := svc.AdvanceRotation(ctx, nil); err != nil {
		t.Fatalf("AdvanceRotation: %v", err)
	}
	if _, err := svc.MarkAsUsed(ctx, a.ID); err != nil {
		t.Fatalf("MarkAsUsed: %v", err)
	}

	items, err := svc.ItemsToUse(ctx, 0)
	if err != nil {
		t.Fatalf("ItemsToUse: %v", err)
	}
	if items[0].ID != b.ID {
		t.Fatalf("expected untouched item first, got id %d", items[0].ID)
	}
	if items[len(items)-1].ID != a.ID {
		t.Fatalf("expected freshly used item last, got id %d", items[len(items)-1].ID)
	}
}

func TestAdvanceRotationTwiceAccumulates(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	item, _ := svc.AddItem(ctx, AddItemInput{Name: "lentils", Quantity: 300})

	for i := 0; i < 2; i++ {
		if _, err := svc.AdvanceRotation(ctx, nil); err != nil {
			t.Fatalf("AdvanceRotation: %v", err)
		}
	}

	reloaded, err := repo.FindByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if reloaded.MealsWithout != 2 {
		t.Fatalf("expected 2 skipped meals, got %d", reloaded.MealsWithout)
	}
}

func TestAdvanceRotationExcludesUsedItems(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	used, _ := svc.AddItem(ctx, AddItemInput{Name: "rice", Quantity: 500})
	skipped, _ := svc.AddItem(ctx, AddItemInput{Name: "beans", Quantity: 400})

	updated, err := svc.AdvanceRotation(ctx, []uint{used.ID})
	if err != nil {
		t.Fatalf("AdvanceRotation: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected 1 row updated, got %d", updated)
	}

	usedReloaded, _ := repo.FindByID(ctx, used.ID)
	skippedReloaded, _ := repo.FindByID(ctx, skipped.ID)
	if usedReloaded.MealsWithout != 0 {
		t.Fatalf("excluded item counter moved: %d", usedReloaded.MealsWithout)
	}
	if skippedReloaded.MealsWithout != 1 {
		t.Fatalf("expected skipped item counter 1, got %d", skippedReloaded.MealsWithout)
	}
}

func TestExpiringSoonValidatesDays(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ExpiringSoon(context.Background(), -1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListItemsWithNameFilter(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.AddItem(ctx, AddItemInput{Name: "Basmati Rice", Quantity: 500})
	svc.AddItem(ctx, AddItemInput{Name: "Lentils", Quantity: 300})

	all, err := svc.ListItems(ctx, "")
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 items, got %d", len(all))
	}

	filtered, err := svc.ListItems(ctx, "rice")
	if err != nil {
		t.Fatalf("ListItems filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name != "Basmati Rice" {
		t.Fatalf("unexpected filter result: %+v", filtered)
	}
}
