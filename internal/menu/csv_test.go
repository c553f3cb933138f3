package menu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cafev2/storefront-backend/pkg/db/models"
	"github.com/cafev2/storefront-backend/pkg/types"
)

func TestParseCSV(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"Name,Price,Category,Description,Image,isVeg",
		"Classic Cheese Burger,180,Snacks,Crispy patty,https://cdn.example.com/burger.jpg,TRUE",
		"Chicken Club Sandwich,220,Meals,Triple-layered,,FALSE",
	}, "\n")

	items, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(items))
	}

	first := items[0]
	if first.Name != "Classic Cheese Burger" || !first.IsVeg {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if !first.Price.Equal(decimal.NewFromInt(180)) {
		t.Fatalf("unexpected price %s", first.Price)
	}
	if first.Image != "https://cdn.example.com/burger.jpg" {
		t.Fatalf("unexpected image %q", first.Image)
	}
	if items[1].IsVeg {
		t.Fatal("FALSE must parse as not veg")
	}
}

func TestParseCSVLowercaseHeader(t *testing.T) {
	t.Parallel()

	input := "name,price,category\nFries,120,Snacks\n"
	items, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Fries" {
		t.Fatalf("unexpected rows: %+v", items)
	}
}

func TestParseCSVCoercesBadPrice(t *testing.T) {
	t.Parallel()

	input := "Name,Price\nFries,not-a-number\n"
	items, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !items[0].Price.IsZero() {
		t.Fatalf("unparseable price must coerce to zero, got %s", items[0].Price)
	}
}

func TestParseCSVSkipsBlankNamesButKeepsGoing(t *testing.T) {
	t.Parallel()

	input := "Name,Price\n,100\nFries,120\n"
	items, err := ParseCSV(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected accumulated row error")
	}
	if len(items) != 1 || items[0].Name != "Fries" {
		t.Fatalf("good rows must survive bad ones: %+v", items)
	}
}

func TestParseCSVRequiresNameColumn(t *testing.T) {
	t.Parallel()

	if _, err := ParseCSV(strings.NewReader("Price,Category\n100,Snacks\n")); err == nil {
		t.Fatal("expected error for missing Name column")
	}
}

func TestWriteCSVRoundTrips(t *testing.T) {
	t.Parallel()

	pos := 50
	items := []models.MenuItem{{
		Name:        "Peri Peri Fries",
		Description: "Golden fries",
		Category:    "Snacks",
		Price:       decimal.NewFromInt(120),
		IsVeg:       true,
		Media: types.MediaList{
			{URL: "https://cdn.example.com/fries.jpg", Type: types.MediaTypeImage, YPos: &pos},
		},
	}}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := ParseCSV(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("expected 1 row, got %d", len(parsed))
	}
	got := parsed[0]
	if got.Name != "Peri Peri Fries" || !got.IsVeg || got.Image != "https://cdn.example.com/fries.jpg" {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if !got.Price.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("round trip lost price: %s", got.Price)
	}
}
