package ledger

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"janudairy/m/internal/database"
	"janudairy/m/internal/migrations"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db := database.Connect(":memory:")
	t.Cleanup(func() { db.Close() })
	migrations.Run(db)
	return db
}

func TestRecordPurchase_SignalsOnChangeOnly(t *testing.T) {
	store := NewStore(testDB(t), StyleHistory)
	ctx := context.Background()

	old, err := store.RecordPurchase(ctx, "Milk", 50.0, 5, 0)
	if err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	if old != nil {
		t.Errorf("first purchase returned old price %v, want nil", *old)
	}

	// Same price again: no signal.
	old, err = store.RecordPurchase(ctx, "Milk", 50.0, 5, 0)
	if err != nil {
		t.Fatalf("repeat purchase: %v", err)
	}
	if old != nil {
		t.Errorf("identical price returned old price %v, want nil", *old)
	}

	old, err = store.RecordPurchase(ctx, "Milk", 55.0, 5, 0)
	if err != nil {
		t.Fatalf("changed purchase: %v", err)
	}
	if old == nil {
		t.Fatal("changed price returned nil, want old price 50")
	}
	if *old != 50.0 {
		t.Errorf("old price = %v, want 50", *old)
	}
}

func TestRecordPurchase_ChangeComparesImmediatelyPrecedingRecord(t *testing.T) {
	store := NewStore(testDB(t), StyleHistory)
	ctx := context.Background()

	store.RecordPurchase(ctx, "Milk", 50.0, 5, 0)
	store.RecordPurchase(ctx, "Milk", 55.0, 5, 0)

	// Back to the original price still signals against 55, not 50.
	old, err := store.RecordPurchase(ctx, "Milk", 50.0, 5, 0)
	if err != nil {
		t.Fatalf("third purchase: %v", err)
	}
	if old == nil || *old != 55.0 {
		t.Fatalf("old price = %v, want 55", old)
	}
}

func TestCurrentPrice_DefaultsToZero(t *testing.T) {
	store := NewStore(testDB(t), StyleHistory)

	p, err := store.CurrentPrice(context.Background(), "Ghee")
	if err != nil {
		t.Fatalf("CurrentPrice: %v", err)
	}
	if p.BasePrice != 0 || p.GSTPercent != 0 || p.DiscountPercent != 0 {
		t.Errorf("CurrentPrice = %+v, want zero value", p)
	}
}

func TestCurrentPrice_LatestRecordWins(t *testing.T) {
	store := NewStore(testDB(t), StyleHistory)
	ctx := context.Background()

	store.RecordPurchase(ctx, "Milk", 50.0, 5, 0)
	store.RecordPurchase(ctx, "Milk", 55.0, 12, 2)

	p, err := store.CurrentPrice(ctx, "Milk")
	if err != nil {
		t.Fatalf("CurrentPrice: %v", err)
	}
	if p.BasePrice != 55.0 || p.GSTPercent != 12 || p.DiscountPercent != 2 {
		t.Errorf("CurrentPrice = %+v, want {55 12 2}", p)
	}
}

func TestRecordPurchase_LatestStyleKeepsOneRow(t *testing.T) {
	store := NewStore(testDB(t), StyleLatest)
	ctx := context.Background()

	store.RecordPurchase(ctx, "Milk", 50.0, 5, 0)
	old, err := store.RecordPurchase(ctx, "Milk", 55.0, 5, 0)
	if err != nil {
		t.Fatalf("second purchase: %v", err)
	}
	if old == nil || *old != 50.0 {
		t.Fatalf("old price = %v, want 50", old)
	}

	records, err := store.History(ctx, "Milk")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].BasePrice != 55.0 {
		t.Errorf("kept price = %v, want 55", records[0].BasePrice)
	}
}

func TestHistory_StyleHistoryAppends(t *testing.T) {
	store := NewStore(testDB(t), StyleHistory)
	ctx := context.Background()

	store.RecordPurchase(ctx, "Milk", 50.0, 5, 0)
	store.RecordPurchase(ctx, "Milk", 55.0, 5, 0)
	store.RecordPurchase(ctx, "Curd", 30.0, 5, 0)

	records, err := store.History(ctx, "Milk")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].BasePrice != 50.0 || records[1].BasePrice != 55.0 {
		t.Errorf("history = [%v, %v], want [50, 55]", records[0].BasePrice, records[1].BasePrice)
	}
}

func TestSaleLog_RecordAndListByBatch(t *testing.T) {
	db := testDB(t)
	saleLog := NewSaleLog(db)
	ctx := context.Background()

	if _, err := saleLog.Record(ctx, "Milk", 60.0, 10.0, "batch-1"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := saleLog.Record(ctx, "Curd", 35.0, 5.0, "batch-1"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := saleLog.Record(ctx, "Milk", 58.0, 8.0, "batch-2"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	events, err := saleLog.ByBatch(ctx, "batch-1")
	if err != nil {
		t.Fatalf("ByBatch: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Item != "Milk" || events[1].Item != "Curd" {
		t.Errorf("items = [%s, %s], want [Milk, Curd]", events[0].Item, events[1].Item)
	}
}

func TestParseStyle(t *testing.T) {
	for _, valid := range []string{"history", "latest"} {
		if _, err := ParseStyle(valid); err != nil {
			t.Errorf("ParseStyle(%q) error = %v, want nil", valid, err)
		}
	}
	if _, err := ParseStyle("keyed"); err == nil {
		t.Error("ParseStyle(\"keyed\") error = nil, want error")
	}
}
