package action

import "sort"

// SortChronological returns a copy of the ledger ordered ascending by
// (minute, second). Events sharing a clock time keep their insertion order;
// the input slice is assumed to be in insertion order, which every
// repository guarantees.
func SortChronological(ledger []Action) []Action {
	out := append([]Action(nil), ledger...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Minute != out[j].Minute {
			return out[i].Minute < out[j].Minute
		}
		return out[i].Second < out[j].Second
	})
	return out
}

// SortRecent returns a copy ordered descending by (minute, second), with
// clock-time ties broken by descending insertion order so the most recently
// logged event surfaces first.
func SortRecent(ledger []Action) []Action {
	type indexed struct {
		a   Action
		pos int
	}
	tmp := make([]indexed, len(ledger))
	for i, a := range ledger {
		tmp[i] = indexed{a: a, pos: i}
	}
	sort.Slice(tmp, func(i, j int) bool {
		if tmp[i].a.Minute != tmp[j].a.Minute {
			return tmp[i].a.Minute > tmp[j].a.Minute
		}
		if tmp[i].a.Second != tmp[j].a.Second {
			return tmp[i].a.Second > tmp[j].a.Second
		}
		return tmp[i].pos > tmp[j].pos
	})
	out := make([]Action, len(tmp))
	for i, item := range tmp {
		out[i] = item.a
	}
	return out
}
