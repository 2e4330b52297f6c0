package utils

import (
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestOid(t *testing.T) {
	valid := bson.NewObjectID().Hex()

	oid, err := Oid(valid)
	if err != nil {
		t.Fatalf("Oid(%q) failed: %v", valid, err)
	}
	if oid.Hex() != valid {
		t.Errorf("round trip: got %q, want %q", oid.Hex(), valid)
	}

	if _, err := Oid("not-hex"); err == nil {
		t.Error("expected error for malformed id")
	}
	if _, err := Oid(""); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestOidsSkipsMalformed(t *testing.T) {
	a := bson.NewObjectID()
	b := bson.NewObjectID()

	got := Oids([]string{a.Hex(), "garbage", b.Hex(), ""})
	if len(got) != 2 {
		t.Fatalf("len: got %d, want 2", len(got))
	}
	if got[0] != a || got[1] != b {
		t.Errorf("got %v, want [%v %v]", got, a, b)
	}
}

func TestOidsEmpty(t *testing.T) {
	if got := Oids(nil); len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}
