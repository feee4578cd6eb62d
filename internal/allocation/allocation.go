// Package allocation partitions a cart across candidate stores.
//
// The goal is to split a single checkout over as few stores as possible so a
// customer gets the fewest deliveries. Optimal set cover is NP-hard, so the
// engine runs the standard greedy approximation: each round the store that
// covers the most still-unassigned items wins the round and takes all of
// them. Candidate stores are scanned in ascending store-id order, which
// fixes the tie-break (first store reaching the maximum wins) and makes the
// result deterministic for a given input.
package allocation

import (
	"sort"

	"nearmart/internal/domain"
)

// Result is the outcome of one allocation run.
type Result struct {
	// Assignments maps a store id to the cart items it will fulfil, in
	// cart order.
	Assignments map[string][]domain.CartItem
	// StoreOrder lists the assigned store ids in ascending order. Callers
	// that persist sub-orders iterate this instead of the map to stay
	// deterministic.
	StoreOrder []string
	// Unassigned holds the cart items no candidate store can supply, in
	// cart order.
	Unassigned []domain.CartItem
}

// Allocate assigns cart items to stores using repeated greedy maximum
// coverage. It is a pure function: no retries, no state between calls.
func Allocate(items []domain.CartItem, avail []domain.Availability) Result {
	carries := make(map[string]map[string]bool)
	for _, a := range avail {
		byProduct := carries[a.StoreID]
		if byProduct == nil {
			byProduct = make(map[string]bool)
			carries[a.StoreID] = byProduct
		}
		byProduct[a.ProductID] = true
	}

	stores := make([]string, 0, len(carries))
	for id := range carries {
		stores = append(stores, id)
	}
	sort.Strings(stores)

	assignedTo := make([]string, len(items))
	remaining := len(items)

	for remaining > 0 {
		best := ""
		bestCount := 0
		for _, storeID := range stores {
			count := 0
			for i, item := range items {
				if assignedTo[i] == "" && carries[storeID][item.ProductID] {
					count++
				}
			}
			if count > bestCount {
				best = storeID
				bestCount = count
			}
		}
		if bestCount == 0 {
			break
		}
		for i, item := range items {
			if assignedTo[i] == "" && carries[best][item.ProductID] {
				assignedTo[i] = best
				remaining--
			}
		}
	}

	res := Result{Assignments: make(map[string][]domain.CartItem)}
	for i, item := range items {
		if assignedTo[i] == "" {
			res.Unassigned = append(res.Unassigned, item)
			continue
		}
		res.Assignments[assignedTo[i]] = append(res.Assignments[assignedTo[i]], item)
	}
	for id := range res.Assignments {
		res.StoreOrder = append(res.StoreOrder, id)
	}
	sort.Strings(res.StoreOrder)
	return res
}
