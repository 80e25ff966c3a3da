package handles

import (
	"testing"
	"unsafe"
)

func TestMemoryStatementRowMajorBinding(t *testing.T) {
	type rowBuf struct {
		name    [16]byte
		nameInd int64
	}

	desc := []ColumnDescription{TextColumn("name", 15)}
	rows := [][]any{{"alpha"}, {"beta"}, {nil}, {"delta"}}
	s := NewMemoryStatement(desc, rows)

	buf := make([]rowBuf, 4)
	var fetched uint64
	if err := s.SetRowBindingOrientation(uint32(unsafe.Sizeof(buf[0]))); err != nil {
		t.Fatalf("SetRowBindingOrientation failed: %v", err)
	}
	if err := s.SetRowArraySize(4); err != nil {
		t.Fatalf("SetRowArraySize failed: %v", err)
	}
	if err := s.SetRowsFetchedTarget(&fetched); err != nil {
		t.Fatalf("SetRowsFetchedTarget failed: %v", err)
	}
	if err := s.BindColumn(1, CDataChar, unsafe.Pointer(&buf[0].name[0]), 16, &buf[0].nameInd); err != nil {
		t.Fatalf("BindColumn failed: %v", err)
	}

	hasRows, err := s.Fetch()
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !hasRows {
		t.Fatal("Fetch reported no rows")
	}
	if fetched != 4 {
		t.Fatalf("fetched = %d, want 4", fetched)
	}
	want := []string{"alpha", "beta", "", "delta"}
	for i, w := range want {
		if i == 2 {
			if buf[i].nameInd != NullData {
				t.Errorf("row %d indicator = %d, want NULL", i, buf[i].nameInd)
			}
			continue
		}
		got := string(buf[i].name[:buf[i].nameInd])
		if got != w {
			t.Errorf("row %d = %q, want %q", i, got, w)
		}
	}

	hasRows, err = s.Fetch()
	if err != nil {
		t.Fatalf("Fetch past end failed: %v", err)
	}
	if hasRows {
		t.Error("Fetch past end reported rows")
	}
	if fetched != 0 {
		t.Errorf("fetched = %d after exhaustion, want 0", fetched)
	}
}

func TestMemoryStatementTruncation(t *testing.T) {
	desc := []ColumnDescription{TextColumn("v", 32)}
	s := NewMemoryStatement(desc, [][]any{{"abcdefgh"}})

	var buf [5]byte
	var ind int64
	if err := s.BindColumn(1, CDataChar, unsafe.Pointer(&buf[0]), int64(len(buf)), &ind); err != nil {
		t.Fatalf("BindColumn failed: %v", err)
	}
	if _, err := s.Fetch(); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if ind != 8 {
		t.Errorf("indicator = %d, want the full length 8", ind)
	}
	if got := string(buf[:4]); got != "abcd" {
		t.Errorf("payload = %q, want %q", got, "abcd")
	}
	if buf[4] != 0 {
		t.Error("payload must be terminated")
	}
}

func TestMemoryStatementUnbindKeepsBookmark(t *testing.T) {
	desc := []ColumnDescription{TextColumn("a", 8), TextColumn("b", 8)}
	s := NewMemoryStatement(desc, nil)

	var bookmark int64
	var bookmarkInd int64
	var col [8]byte
	var colInd int64
	if err := s.BindColumn(0, CDataSBigInt, unsafe.Pointer(&bookmark), 8, &bookmarkInd); err != nil {
		t.Fatalf("BindColumn bookmark failed: %v", err)
	}
	if err := s.BindColumn(1, CDataChar, unsafe.Pointer(&col[0]), 8, &colInd); err != nil {
		t.Fatalf("BindColumn failed: %v", err)
	}
	if err := s.UnbindColumns(); err != nil {
		t.Fatalf("UnbindColumns failed: %v", err)
	}
	bound := s.BoundColumns()
	if len(bound) != 1 || bound[0] != 0 {
		t.Errorf("bound columns after unbind = %v, want only the bookmark", bound)
	}
}

func TestMemoryStatementRejectsZeroArraySize(t *testing.T) {
	s := NewMemoryStatement([]ColumnDescription{TextColumn("a", 8)}, nil)
	if err := s.SetRowArraySize(0); err == nil {
		t.Error("zero row array size should be rejected")
	}
}
