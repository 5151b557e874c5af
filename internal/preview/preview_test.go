package preview

import "testing"

func TestParseBasic(t *testing.T) {
	rows := Parse("a,b,c\n1,2,3\n4,5,6")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	want := []map[string]string{
		{"a": "1", "b": "2", "c": "3"},
		{"a": "4", "b": "5", "c": "6"},
	}
	for i, w := range want {
		for k, v := range w {
			if got := rows[i][k]; got != v {
				t.Errorf("row %d key %q: got %q, want %q", i, k, got, v)
			}
		}
	}
}

func TestParseCapsAtFiveRows(t *testing.T) {
	rows := Parse("h\n1\n2\n3\n4\n5\n6\n7")
	if len(rows) != MaxRows {
		t.Fatalf("expected %d rows, got %d", MaxRows, len(rows))
	}
	if rows[4]["h"] != "5" {
		t.Errorf("expected last preview row to be %q, got %q", "5", rows[4]["h"])
	}
}

func TestParseRaggedRow(t *testing.T) {
	rows := Parse("a,b,c\n1,2")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["a"] != "1" || rows[0]["b"] != "2" {
		t.Errorf("unexpected row values: %v", rows[0])
	}
	if _, ok := rows[0]["c"]; ok {
		t.Errorf("expected trailing header %q to be absent, got %v", "c", rows[0])
	}
}

func TestParseHeaderOnly(t *testing.T) {
	if rows := Parse("a,b,c"); len(rows) != 0 {
		t.Fatalf("expected no rows for header-only input, got %d", len(rows))
	}
}

// Quoted fields are split naively; this pins the known limitation so it is
// not "fixed" by surprise.
func TestParseDoesNotUnquote(t *testing.T) {
	rows := Parse("a,b\n\"x,y\",z")
	if rows[0]["a"] != "\"x" || rows[0]["b"] != "y\"" {
		t.Errorf("expected naive comma split of quoted field, got %v", rows[0])
	}
}
