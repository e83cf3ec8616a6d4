package layout

import (
	"slices"

	"deckfit/deck"
)

// DistributeBullets partitions an oversized list into balanced groups of
// roughly targetGroupSize items. Guarantees, for any input of 2 or more
// items: group sizes differ by at most one before hanger correction, no
// group of size one survives, and item order is preserved. A list of
// targetGroupSize or fewer items (or fewer than 2) is never split.
func DistributeBullets(items []deck.BulletItem, targetGroupSize int) [][]deck.BulletItem {
	if len(items) == 0 {
		return nil
	}
	if len(items) < 2 || len(items) <= targetGroupSize {
		return [][]deck.BulletItem{items}
	}

	groups := balancedSplit(items, ceilDiv(len(items), targetGroupSize))
	return fixHangers(groups)
}

// balancedSplit cuts items into k consecutive groups with sizes differing by
// at most one, larger groups first (7 items over 2 groups yield 4+3, never
// 6+1).
func balancedSplit(items []deck.BulletItem, k int) [][]deck.BulletItem {
	base, extra := len(items)/k, len(items)%k

	groups := make([][]deck.BulletItem, 0, k)
	pos := 0
	for i := range k {
		size := base
		if i < extra {
			size++
		}
		// detached copy - hanger correction moves items across boundaries
		groups = append(groups, slices.Clone(items[pos:pos+size]))
		pos += size
	}
	return groups
}

// fixHangers removes trailing single-item groups. While the last group holds
// exactly one item, an item is shifted rightward through group boundaries
// from the most recent group with more than two items; when no such donor
// exists the hanger is merged into its predecessor. Both moves keep the
// original item order intact.
func fixHangers(groups [][]deck.BulletItem) [][]deck.BulletItem {
	for len(groups) > 1 && len(groups[len(groups)-1]) == 1 {
		donor := -1
		for i := len(groups) - 2; i >= 0; i-- {
			if len(groups[i]) > 2 {
				donor = i
				break
			}
		}
		if donor < 0 {
			// nothing to borrow - collapse the hanger into the previous group
			last := len(groups) - 1
			groups[last-1] = append(groups[last-1], groups[last]...)
			groups = groups[:last]
			continue
		}
		// shift one item rightward across every boundary between donor and
		// the hanger
		for i := donor; i < len(groups)-1; i++ {
			n := len(groups[i])
			moved := groups[i][n-1]
			groups[i] = groups[i][:n-1]
			groups[i+1] = append([]deck.BulletItem{moved}, groups[i+1]...)
		}
	}
	return groups
}
