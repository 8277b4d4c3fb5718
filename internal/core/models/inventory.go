package models

import "sort"

// Inventory counts items by name.
type Inventory map[string]int

func (inv Inventory) Total() int {
	total := 0
	for _, n := range inv {
		total += n
	}
	return total
}

func (inv Inventory) IsEmpty() bool { return inv.Total() == 0 }

// Merge returns the per-item sum of all inventories.
func Merge(inventories ...Inventory) Inventory {
	out := make(Inventory)
	for _, inv := range inventories {
		for item, n := range inv {
			if n == 0 {
				continue
			}
			out[item] += n
		}
	}
	return out
}

// Items returns item names in lexical order.
func (inv Inventory) Items() []string {
	out := make([]string, 0, len(inv))
	for item := range inv {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
