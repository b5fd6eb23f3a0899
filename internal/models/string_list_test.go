package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

type listHolder struct {
	IDs StringList `bson:"ids"`
}

func decodeHolder(t *testing.T, doc bson.M) listHolder {
	t.Helper()
	data, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var out listHolder
	if err := bson.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return out
}

func TestStringListAcceptsSingleString(t *testing.T) {
	got := decodeHolder(t, bson.M{"ids": " g1 "})
	if len(got.IDs) != 1 || got.IDs[0] != "g1" {
		t.Fatalf("expected [g1], got %v", got.IDs)
	}
}

func TestStringListAcceptsNumericArray(t *testing.T) {
	got := decodeHolder(t, bson.M{"ids": bson.A{int64(1712000000000), "g2", int32(7)}})
	want := []string{"1712000000000", "g2", "7"}
	if len(got.IDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, got.IDs)
	}
	for i := range want {
		if got.IDs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got.IDs)
		}
	}
}

func TestStringListNilMarshalsAsEmptyArray(t *testing.T) {
	data, err := bson.Marshal(listHolder{})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var raw bson.M
	if err := bson.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	arr, ok := raw["ids"].(bson.A)
	if !ok || len(arr) != 0 {
		t.Fatalf("expected empty array, got %#v", raw["ids"])
	}
}
