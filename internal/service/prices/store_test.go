package prices

import "testing"

func TestStoreSetAndPrice(t *testing.T) {
	s := NewStore()
	if _, ok := s.Price("BTCUSDT"); ok {
		t.Fatalf("unexpected price before any update")
	}

	s.Set("BTCUSDT", 100.5)
	p, ok := s.Price("BTCUSDT")
	if !ok || p != 100.5 {
		t.Fatalf("price: got %v, %v", p, ok)
	}
	if _, ok := s.UpdatedAt("BTCUSDT"); !ok {
		t.Fatalf("expected an update timestamp")
	}
}

func TestStoreSuspendDropsUpdates(t *testing.T) {
	s := NewStore()
	s.Set("BTCUSDT", 100)

	s.Suspend()
	if !s.Suspended() {
		t.Fatalf("store should report suspended")
	}
	s.Set("BTCUSDT", 999)
	if p, _ := s.Price("BTCUSDT"); p != 100 {
		t.Fatalf("suspended store accepted an update: %v", p)
	}

	s.Resume()
	s.Set("BTCUSDT", 101)
	if p, _ := s.Price("BTCUSDT"); p != 101 {
		t.Fatalf("resumed store dropped an update: %v", p)
	}
}
