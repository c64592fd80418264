package mongo

import (
	"context"
	"errors"
	"testing"

	"moneytracker/internal/core"
	"moneytracker/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDocumentToTransaction(t *testing.T) {
	oid := primitive.NewObjectID()
	d := document{ID: oid, Name: "mobile", Description: "d", DateTime: "2024-01-02T03:04", Price: core.Float(20000)}

	got := d.toTransaction()
	if got.ID != oid.Hex() {
		t.Errorf("ID = %q, want %q", got.ID, oid.Hex())
	}
	if got.Name != "mobile" || got.Description != "d" || got.DateTime != "2024-01-02T03:04" {
		t.Errorf("unexpected fields: %+v", got)
	}
	if got.Price == nil || *got.Price != 20000 {
		t.Errorf("Price = %v, want 20000", got.Price)
	}
}

func TestDocumentBSONShape(t *testing.T) {
	raw, err := bson.Marshal(document{Name: "food", Description: "x", DateTime: "t"})
	if err != nil {
		t.Fatalf("bson.Marshal() error = %v", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("bson.Unmarshal() error = %v", err)
	}
	if _, ok := m["_id"]; ok {
		t.Error("zero ObjectID must be omitted so the server assigns one")
	}
	for _, key := range []string{"name", "description", "dateTime", "price"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing key %q in %v", key, m)
		}
	}
	if m["price"] != nil {
		t.Errorf("price = %v, want null", m["price"])
	}
}

func TestDocumentDecodesIntegerPrice(t *testing.T) {
	raw, err := bson.Marshal(bson.D{{Key: "name", Value: "n"}, {Key: "price", Value: int32(-200)}})
	if err != nil {
		t.Fatalf("bson.Marshal() error = %v", err)
	}
	var d document
	if err := bson.Unmarshal(raw, &d); err != nil {
		t.Fatalf("bson.Unmarshal() error = %v", err)
	}
	if d.Price == nil || *d.Price != -200 {
		t.Fatalf("Price = %v, want -200", d.Price)
	}
}

func TestUninitializedStore(t *testing.T) {
	var s Store
	ctx := context.Background()
	if _, err := s.Create(ctx, core.NewTransaction{}); !errors.Is(err, store.ErrNotInitialized) {
		t.Errorf("Create() error = %v, want ErrNotInitialized", err)
	}
	if _, err := s.List(ctx); !errors.Is(err, store.ErrNotInitialized) {
		t.Errorf("List() error = %v, want ErrNotInitialized", err)
	}
	if err := s.Ping(ctx); !errors.Is(err, store.ErrNotInitialized) {
		t.Errorf("Ping() error = %v, want ErrNotInitialized", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
