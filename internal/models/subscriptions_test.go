package models

import "testing"

func subNames(subs []*SubscriptionEntry) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.Name
	}
	return out
}

func TestSortSubscriptions(t *testing.T) {
	subs := []*SubscriptionEntry{
		{Name: "netflix", Price: 15.49, NextDate: "2026-11-05"},
		{Name: "Apple", Price: 9.99, NextDate: ""},
		{Name: "Max", Price: 191.88, Cycle: CycleYearly, NextDate: "2026-10-30"},
	}

	tests := []struct {
		key  SubscriptionSortKey
		desc bool
		want []string
	}{
		{SortByName, false, []string{"Apple", "Max", "netflix"}},
		{SortByName, true, []string{"netflix", "Max", "Apple"}},
		{SortByNextDate, false, []string{"Max", "netflix", "Apple"}},
		{SortByNextDate, true, []string{"Apple", "netflix", "Max"}},
		{SortByMonthly, false, []string{"Apple", "netflix", "Max"}},
	}

	for _, tt := range tests {
		got := subNames(SortSubscriptions(subs, tt.key, tt.desc))
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("SortSubscriptions(%s, desc=%v) = %v, want %v", tt.key, tt.desc, got, tt.want)
				break
			}
		}
	}
}

func TestFilterAndTotal(t *testing.T) {
	subs := []*SubscriptionEntry{
		{Name: "A", Price: 10, Status: SubscriptionActive},
		{Name: "B", Price: 120, Cycle: CycleYearly, Status: SubscriptionActive},
		{Name: "C", Price: 5, Status: SubscriptionPaused},
	}

	if got := FilterSubscriptions(subs, "All"); len(got) != 3 {
		t.Errorf("Expected all subscriptions, got %d", len(got))
	}
	active := FilterSubscriptions(subs, SubscriptionActive)
	if len(active) != 2 {
		t.Fatalf("Expected 2 active, got %d", len(active))
	}
	if total := MonthlyTotal(active); total != 20 {
		t.Errorf("Expected monthly total 20, got %v", total)
	}
}

func TestLookupPlan(t *testing.T) {
	p, ok := LookupPlan("Netflix", "Premium")
	if !ok || p.Price != 22.99 {
		t.Errorf("Expected Netflix Premium at 22.99, got %+v %v", p, ok)
	}
	if _, ok := LookupPlan("Netflix", "Ultra"); ok {
		t.Error("Unknown plan should not be found")
	}
}
