package storage

import (
	"context"
	"errors"
	"testing"

	"kharcha/internal/common"
	"kharcha/internal/model"
)

func TestDebt_SaveListDelete(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	debts := []model.Debt{
		{ID: "debt-1", Name: "credit card", Balance: 45000, InterestRate: 36, MinPayment: 2000},
		{ID: "debt-2", Name: "personal loan", Balance: 120000, InterestRate: 14, MinPayment: 5500},
	}
	for i := range debts {
		if err := store.SaveDebt(ctx, &debts[i]); err != nil {
			t.Fatalf("SaveDebt(%s) error = %v", debts[i].Name, err)
		}
	}

	got, err := store.ListDebts(ctx)
	if err != nil {
		t.Fatalf("ListDebts() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "credit card" || got[0].Balance != 45000 || got[0].InterestRate != 36 {
		t.Errorf("got[0] = %+v", got[0])
	}

	t.Run("upsert updates balance", func(t *testing.T) {
		updated := model.Debt{ID: "debt-1", Name: "credit card", Balance: 40000, InterestRate: 36, MinPayment: 2000}
		if err := store.SaveDebt(ctx, &updated); err != nil {
			t.Fatalf("SaveDebt() error = %v", err)
		}

		got, err := store.ListDebts(ctx)
		if err != nil {
			t.Fatalf("ListDebts() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2 after upsert", len(got))
		}
		for _, d := range got {
			if d.ID == "debt-1" && d.Balance != 40000 {
				t.Errorf("balance = %.2f, want 40000", d.Balance)
			}
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := store.DeleteDebt(ctx, "debt-2"); err != nil {
			t.Fatalf("DeleteDebt() error = %v", err)
		}
		got, err := store.ListDebts(ctx)
		if err != nil {
			t.Fatalf("ListDebts() error = %v", err)
		}
		if len(got) != 1 {
			t.Errorf("len = %d, want 1 after delete", len(got))
		}

		if err := store.DeleteDebt(ctx, "debt-2"); !errors.Is(err, common.ErrNotFound) {
			t.Errorf("double delete error = %v, want common.ErrNotFound", err)
		}
	})
}

func TestSaveDebt_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		debt    *model.Debt
		wantErr error
		name    string
	}{
		{name: "nil", debt: nil, wantErr: ErrNilParameter},
		{name: "empty name", debt: &model.Debt{ID: "d", Balance: 100}, wantErr: ErrInvalidDebt},
		{name: "negative balance", debt: &model.Debt{ID: "d", Name: "loan", Balance: -1}, wantErr: ErrInvalidDebt},
		{name: "missing ID", debt: &model.Debt{Name: "loan", Balance: 100}, wantErr: ErrEmptyString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.SaveDebt(ctx, tt.debt); !errors.Is(err, tt.wantErr) {
				t.Errorf("SaveDebt() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
