package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erazemk/garderoba/internal/db"
)

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, 1, "Blue Shirt", "shirts")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Name != "Blue Shirt" {
		t.Errorf("expected name 'Blue Shirt', got %q", item.Name)
	}
	if item.OwnerID != 1 {
		t.Errorf("expected owner 1, got %d", item.OwnerID)
	}
	if item.Category != "shirts" {
		t.Errorf("expected category 'shirts', got %q", item.Category)
	}
	if item.WornCount != 0 {
		t.Errorf("expected worn count 0, got %d", item.WornCount)
	}
	if item.LastWorn != nil || item.LastWashed != nil {
		t.Error("expected a new item to have no wear or wash timestamps")
	}
}

func TestCreateItemDuplicateName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateItem(ctx, database, 1, "Blue Shirt", "shirts"); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	// Same name with different casing and spacing is still a duplicate.
	_, err := CreateItem(ctx, database, 1, "  blue   SHIRT ", "tops")
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}

	// A different user may use the same name.
	if _, err := CreateItem(ctx, database, 2, "Blue Shirt", "shirts"); err != nil {
		t.Errorf("CreateItem for another owner: %v", err)
	}
}

func TestFindItemByName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	created, err := CreateItem(ctx, database, 1, "Wool Socks", "socks")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	found, err := FindItemByName(ctx, database, 1, "wool socks")
	if err != nil {
		t.Fatalf("FindItemByName: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Errorf("expected to find item %d, got %+v", created.ID, found)
	}

	missing, err := FindItemByName(ctx, database, 1, "Silk Scarf")
	if err != nil {
		t.Fatalf("FindItemByName: %v", err)
	}
	if missing != nil {
		t.Errorf("expected (nil, nil) for an unknown name, got %+v", missing)
	}

	// Another owner's items are invisible.
	other, err := FindItemByName(ctx, database, 2, "Wool Socks")
	if err != nil {
		t.Fatalf("FindItemByName: %v", err)
	}
	if other != nil {
		t.Errorf("expected not to see another owner's item, got %+v", other)
	}
}

func TestListItemsOrder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"zip Hoodie", "Apron", "mittens"} {
		if _, err := CreateItem(ctx, database, 1, name, ""); err != nil {
			t.Fatalf("CreateItem(%q): %v", name, err)
		}
	}
	CreateItem(ctx, database, 2, "Belt", "")

	items, err := ListItems(ctx, database, 1)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	want := []string{"Apron", "mittens", "zip Hoodie"}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("items[%d].Name = %q, want %q", i, items[i].Name, name)
		}
	}
}

func TestRecordWear(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, 1, "Jeans", "pants")

	first := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	if err := RecordWear(ctx, database, item.ID, first); err != nil {
		t.Fatalf("RecordWear: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.WornCount != 1 {
		t.Errorf("expected worn count 1, got %d", got.WornCount)
	}
	if got.LastWorn == nil || !got.LastWorn.Equal(first) {
		t.Errorf("expected last worn %v, got %v", first, got.LastWorn)
	}

	second := first.Add(24 * time.Hour)
	RecordWear(ctx, database, item.ID, second)

	got, _ = GetItem(ctx, database, item.ID)
	if got.WornCount != 2 {
		t.Errorf("expected worn count 2 after second wear, got %d", got.WornCount)
	}
	if got.LastWorn == nil || !got.LastWorn.Equal(second) {
		t.Errorf("expected last worn %v, got %v", second, got.LastWorn)
	}
}

func TestRecordWash(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, 1, "Jeans", "pants")

	worn := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		RecordWear(ctx, database, item.ID, worn)
	}

	washed := worn.Add(48 * time.Hour)
	if err := RecordWash(ctx, database, item.ID, washed); err != nil {
		t.Fatalf("RecordWash: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.WornCount != 0 {
		t.Errorf("expected worn count 0 after wash, got %d", got.WornCount)
	}
	if got.LastWashed == nil || !got.LastWashed.Equal(washed) {
		t.Errorf("expected last washed %v, got %v", washed, got.LastWashed)
	}
	if got.LastWorn == nil || !got.LastWorn.Equal(worn) {
		t.Errorf("wash must not touch last worn, got %v", got.LastWorn)
	}

	// Washing an already clean item is valid and overwrites the timestamp.
	again := washed.Add(24 * time.Hour)
	if err := RecordWash(ctx, database, item.ID, again); err != nil {
		t.Fatalf("second RecordWash: %v", err)
	}
	got, _ = GetItem(ctx, database, item.ID)
	if got.WornCount != 0 {
		t.Errorf("expected worn count to stay 0, got %d", got.WornCount)
	}
	if got.LastWashed == nil || !got.LastWashed.Equal(again) {
		t.Errorf("expected last washed %v, got %v", again, got.LastWashed)
	}
}

func TestCountItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	n, err := CountItems(ctx, database, 1)
	if err != nil {
		t.Fatalf("CountItems: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 items, got %d", n)
	}

	CreateItem(ctx, database, 1, "Hat", "headwear")
	CreateItem(ctx, database, 1, "Scarf", "accessories")
	CreateItem(ctx, database, 2, "Coat", "outerwear")

	n, _ = CountItems(ctx, database, 1)
	if n != 2 {
		t.Errorf("expected 2 items, got %d", n)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Blue Shirt", "blue shirt"},
		{"  Blue   Shirt  ", "blue shirt"},
		{"MAJICA", "majica"},
		{"Čevlji", "čevlji"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
