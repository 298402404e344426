package models

import (
	"sort"
	"strings"
	"time"
)

// SubscriptionSortKey selects the subscription list order
type SubscriptionSortKey string

const (
	SortByName     SubscriptionSortKey = "name"
	SortByNextDate SubscriptionSortKey = "nextDate"
	SortByMonthly  SubscriptionSortKey = "monthly"
)

// FilterSubscriptions keeps subscriptions with the given status.
// An empty status (or "All") keeps everything.
func FilterSubscriptions(subs []*SubscriptionEntry, status SubscriptionStatus) []*SubscriptionEntry {
	if status == "" || status == "All" {
		return subs
	}
	var kept []*SubscriptionEntry
	for _, s := range subs {
		if s.Status == status {
			kept = append(kept, s)
		}
	}
	return kept
}

// SortSubscriptions returns a sorted copy of subs.
// For nextDate, entries without a date go last when ascending and first when descending.
func SortSubscriptions(subs []*SubscriptionEntry, key SubscriptionSortKey, descending bool) []*SubscriptionEntry {
	sorted := make([]*SubscriptionEntry, len(subs))
	copy(sorted, subs)

	less := func(a, b *SubscriptionEntry) bool {
		switch key {
		case SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByMonthly:
			return a.Monthly() < b.Monthly()
		default:
			return nextDateValue(a) < nextDateValue(b)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})

	return sorted
}

// nextDateValue maps a missing date past every real one, which puts it last
// ascending and first descending
func nextDateValue(s *SubscriptionEntry) int64 {
	if s.NextDate == "" {
		return 1<<63 - 1
	}
	t, err := time.Parse(time.DateOnly, s.NextDate)
	if err != nil {
		return 1<<63 - 1
	}
	return t.Unix()
}

// MonthlyTotal sums the monthly cost of subs
func MonthlyTotal(subs []*SubscriptionEntry) float64 {
	var total float64
	for _, s := range subs {
		total += s.Monthly()
	}
	return RoundPrice(total)
}

// Plan is a priced tier of a streaming service
type Plan struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// StreamingServices lists the known services and their plans, used as form defaults
var StreamingServices = map[string][]Plan{
	"Netflix": {
		{Name: "Standard with Ads", Price: 6.99},
		{Name: "Standard", Price: 15.49},
		{Name: "Premium", Price: 22.99},
	},
	"Hulu": {
		{Name: "Hulu (Ads)", Price: 7.99},
		{Name: "Hulu (No Ads)", Price: 17.99},
		{Name: "Hulu + Live TV", Price: 76.99},
	},
	"Disney+": {
		{Name: "Basic (Ads)", Price: 7.99},
		{Name: "Premium (No Ads)", Price: 13.99},
	},
	"Max": {
		{Name: "With Ads", Price: 9.99},
		{Name: "Ad-Free", Price: 15.99},
		{Name: "Ultimate Ad-Free", Price: 19.99},
	},
	"Amazon": {
		{Name: "Prime Video (Standalone)", Price: 8.99},
		{Name: "Prime Membership", Price: 14.99},
	},
	"AppleTV": {
		{Name: "Apple TV+", Price: 9.99},
	},
}

// LookupPlan returns the listed price of a service plan
func LookupPlan(service, plan string) (Plan, bool) {
	for _, p := range StreamingServices[service] {
		if p.Name == plan {
			return p, true
		}
	}
	return Plan{}, false
}
