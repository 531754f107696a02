package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/nutrikart/storefront/internal/models"
)

func TestCartService_AddItem(t *testing.T) {
	tests := []struct {
		name         string
		req          models.AddItemRequest
		wantErr      error
		wantQuantity int
		wantSize     string
		wantFlavor   string
	}{
		{
			name:         "defaults to first size and flavor",
			req:          models.AddItemRequest{ProductID: 2, Quantity: 2},
			wantQuantity: 2,
			wantSize:     "30 servings",
			wantFlavor:   "Fruit Punch",
		},
		{
			name:         "explicit variant",
			req:          models.AddItemRequest{ProductID: 1, Quantity: 1, Size: "5 lbs", Flavor: "Vanilla"},
			wantQuantity: 1,
			wantSize:     "5 lbs",
			wantFlavor:   "Vanilla",
		},
		{
			name:         "quantity above ten is clamped",
			req:          models.AddItemRequest{ProductID: 3, Quantity: 25},
			wantQuantity: 10,
			wantSize:     "300g",
			wantFlavor:   "Unflavored",
		},
		{
			name:         "zero quantity becomes one",
			req:          models.AddItemRequest{ProductID: 3, Quantity: 0},
			wantQuantity: 1,
			wantSize:     "300g",
			wantFlavor:   "Unflavored",
		},
		{
			name:    "unknown product",
			req:     models.AddItemRequest{ProductID: 999, Quantity: 1},
			wantErr: ErrInvalidProduct,
		},
		{
			name:    "unknown size",
			req:     models.AddItemRequest{ProductID: 2, Quantity: 1, Size: "1000 servings"},
			wantErr: ErrInvalidSize,
		},
		{
			name:    "unknown flavor",
			req:     models.AddItemRequest{ProductID: 2, Quantity: 1, Flavor: "Bacon"},
			wantErr: ErrInvalidFlavor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			view, err := f.carts.AddItem(context.Background(), "cart-1", tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(view.Lines) != 1 {
				t.Fatalf("expected 1 line, got %d", len(view.Lines))
			}
			line := view.Lines[0]
			if line.Quantity != tt.wantQuantity {
				t.Errorf("expected quantity %d, got %d", tt.wantQuantity, line.Quantity)
			}
			if line.Size != tt.wantSize || line.Flavor != tt.wantFlavor {
				t.Errorf("expected %s/%s, got %s/%s", tt.wantSize, tt.wantFlavor, line.Size, line.Flavor)
			}
		})
	}
}

func TestCartService_AddItemMergesIdenticalLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.carts.AddItem(ctx, "cart-1", models.AddItemRequest{ProductID: 2, Quantity: 6}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view, err := f.carts.AddItem(ctx, "cart-1", models.AddItemRequest{ProductID: 2, Quantity: 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(view.Lines))
	}
	if view.Lines[0].Quantity != 10 {
		t.Errorf("expected merged quantity clamped to 10, got %d", view.Lines[0].Quantity)
	}

	view, err = f.carts.AddItem(ctx, "cart-1", models.AddItemRequest{ProductID: 2, Quantity: 1, Flavor: "Blue Raspberry"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Lines) != 2 {
		t.Errorf("expected a second line for a different flavor, got %d", len(view.Lines))
	}
}

func TestCartService_Pricing(t *testing.T) {
	f := newFixture(t)

	// Nova Surge: 3999 at 20% off
	view, err := f.carts.AddItem(context.Background(), "cart-1", models.AddItemRequest{ProductID: 2, Quantity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.Lines[0].Subtotal != 6398 {
		t.Errorf("expected line subtotal 6398, got %d", view.Lines[0].Subtotal)
	}
	if view.Subtotal != 6398 || view.Shipping != 250 || view.Total != 6648 {
		t.Errorf("expected 6398 + 250 = 6648, got %d + %d = %d", view.Subtotal, view.Shipping, view.Total)
	}
}

func TestCartService_UpdateQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.carts.AddItem(ctx, "cart-1", models.AddItemRequest{ProductID: 7, Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lineID := view.Lines[0].LineID

	tests := []struct {
		quantity int
		want     int
	}{
		{3, 3},
		{11, 10},
		{0, 1},
		{-2, 1},
	}

	for _, tt := range tests {
		view, err := f.carts.UpdateQuantity(ctx, "cart-1", lineID, tt.quantity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := view.Lines[0].Quantity; got != tt.want {
			t.Errorf("UpdateQuantity(%d): expected %d, got %d", tt.quantity, tt.want, got)
		}
	}

	if _, err := f.carts.UpdateQuantity(ctx, "cart-1", "missing", 2); !errors.Is(err, ErrLineNotFound) {
		t.Errorf("expected ErrLineNotFound, got %v", err)
	}
}

func TestCartService_RemoveItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.carts.AddItem(ctx, "cart-1", models.AddItemRequest{ProductID: 7, Quantity: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view, err := f.carts.AddItem(ctx, "cart-1", models.AddItemRequest{ProductID: 12, Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err = f.carts.RemoveItem(ctx, "cart-1", view.Lines[0].LineID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].Product.ID != 12 {
		t.Errorf("expected only product 12 to remain, got %+v", view.Lines)
	}

	if _, err := f.carts.RemoveItem(ctx, "cart-1", "missing"); !errors.Is(err, ErrLineNotFound) {
		t.Errorf("expected ErrLineNotFound, got %v", err)
	}
}

func TestCartService_DropsLinesForUnknownProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cart := &models.Cart{ID: "cart-1", Lines: []models.CartLine{
		{ID: "gone", ProductID: 404, Quantity: 1},
		{ID: "kept", ProductID: 7, Quantity: 1},
	}}
	if err := f.cartRepo.Save(ctx, cart); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := f.carts.GetCart(ctx, "cart-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].LineID != "kept" {
		t.Errorf("expected only the known line, got %+v", view.Lines)
	}
}

func TestCartService_MissingCartID(t *testing.T) {
	f := newFixture(t)

	if _, err := f.carts.GetCart(context.Background(), ""); !errors.Is(err, ErrMissingCartID) {
		t.Errorf("expected ErrMissingCartID, got %v", err)
	}
}

func TestCartService_ConcurrentAddItemKeepsEveryLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for round := 0; round < 200; round++ {
		cartID := fmt.Sprintf("cart-%d", round)

		var wg sync.WaitGroup
		errs := make(chan error, 3)
		for _, productID := range []int64{1, 2, 3} {
			wg.Add(1)
			go func(productID int64) {
				defer wg.Done()
				_, err := f.carts.AddItem(ctx, cartID, models.AddItemRequest{ProductID: productID, Quantity: 1})
				errs <- err
			}(productID)
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		view, err := f.carts.GetCart(ctx, cartID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(view.Lines) != 3 {
			t.Fatalf("round %d: expected 3 lines, got %d", round, len(view.Lines))
		}
	}
}

func TestCartService_FailedMutationLeavesCartUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.carts.AddItem(ctx, "cart-1", models.AddItemRequest{ProductID: 7, Quantity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := view.Lines[0]

	if _, err := f.carts.UpdateQuantity(ctx, "cart-1", "missing", 5); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}

	after, err := f.carts.GetCart(ctx, "cart-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(after.Lines) != 1 || after.Lines[0].Quantity != before.Quantity {
		t.Errorf("expected cart to be unchanged, got %+v", after.Lines)
	}
}
