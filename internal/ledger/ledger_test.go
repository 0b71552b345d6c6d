package ledger

import "testing"

func TestFilter(t *testing.T) {
	files := []string{
		"boursorama 2023-01-02 09:00:00.csv",
		"boursorama 2023-01-02 09:05:00.csv",
		"boursorama 2023-01-02 09:10:00.csv",
	}
	done := map[string]struct{}{
		"boursorama 2023-01-02 09:05:00.csv": {},
	}

	got := Filter(files, done)

	if len(got) != 2 {
		t.Fatalf("Filter returned %d files, want 2", len(got))
	}
	if got[0] != files[0] || got[1] != files[2] {
		t.Errorf("Filter = %v, want [%s %s]", got, files[0], files[2])
	}
}

func TestFilter_AllDone(t *testing.T) {
	files := []string{"a.csv", "b.csv"}
	done := map[string]struct{}{"a.csv": {}, "b.csv": {}}

	if got := Filter(files, done); len(got) != 0 {
		t.Errorf("Filter = %v, want empty", got)
	}
}

func TestFilter_EmptyDoneSet(t *testing.T) {
	files := []string{"a.csv", "b.csv"}

	got := Filter(files, map[string]struct{}{})
	if len(got) != len(files) {
		t.Errorf("Filter returned %d files, want %d", len(got), len(files))
	}
}

func TestFilter_NoFiles(t *testing.T) {
	if got := Filter(nil, map[string]struct{}{"a.csv": {}}); len(got) != 0 {
		t.Errorf("Filter = %v, want empty", got)
	}
}
