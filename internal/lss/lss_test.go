package lss

import "testing"

func TestInsertAndAt(t *testing.T) {
	m := New[uint32, string]()
	m.Insert(1, "a")
	m.Insert(2, "b")
	if v, ok := m.At(1); !ok || v != "a" {
		t.Fatalf("At(1) = %q, %v", v, ok)
	}
	if v, ok := m.At(2); !ok || v != "b" {
		t.Fatalf("At(2) = %q, %v", v, ok)
	}
	if _, ok := m.At(3); ok {
		t.Fatal("At(3) should be absent")
	}
}

func TestInsertOverwrites(t *testing.T) {
	m := New[uint32, int]()
	m.Insert(1, 10)
	m.Insert(1, 20)
	if v, _ := m.At(1); v != 20 {
		t.Fatalf("At(1) = %d, want 20", v)
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
}

func TestContains(t *testing.T) {
	m := New[uint32, bool]()
	m.Insert(5, true)
	if !m.Contains(5) {
		t.Fatal("Contains(5) should be true")
	}
	if m.Contains(6) {
		t.Fatal("Contains(6) should be false")
	}
}

func TestErase(t *testing.T) {
	m := New[uint32, int]()
	m.Insert(1, 1)
	m.Insert(2, 2)
	m.Erase(1)
	if m.Contains(1) {
		t.Fatal("1 should have been erased")
	}
	if !m.Contains(2) {
		t.Fatal("2 should still be present")
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	m.Erase(99) // no-op
	if m.Len() != 1 {
		t.Fatalf("Len() = %d after erasing absent key, want 1", m.Len())
	}
}

func TestGrowPreservesEntries(t *testing.T) {
	m := New[int, int]()
	const n = 500
	for i := 0; i < n; i++ {
		m.Insert(i, i*i)
	}
	if m.Len() != n {
		t.Fatalf("Len() = %d, want %d", m.Len(), n)
	}
	for i := 0; i < n; i++ {
		v, ok := m.At(i)
		if !ok || v != i*i {
			t.Fatalf("At(%d) = %d, %v, want %d, true", i, v, ok, i*i)
		}
	}
}

func TestAll(t *testing.T) {
	m := New[int, int]()
	want := map[int]int{1: 10, 2: 20, 3: 30}
	for k, v := range want {
		m.Insert(k, v)
	}
	got := map[int]int{}
	for k, v := range m.All() {
		got[k] = v
	}
	if len(got) != len(want) {
		t.Fatalf("All() yielded %d pairs, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("All()[%d] = %d, want %d", k, got[k], v)
		}
	}
}

func TestAllStopsEarly(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 10; i++ {
		m.Insert(i, i)
	}
	count := 0
	for range m.All() {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}
