package resolver

import (
	"math/rand"
	"net"
	"sort"
)

// orderSRV arranges SRV records for use: ascending by priority, and
// shuffled within each priority group with probability proportional to
// weight, as per https://tools.ietf.org/html/rfc2782.
func orderSRV(s []*net.SRV) {
	if len(s) <= 1 {
		return
	}

	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Priority < s[j].Priority
	})

	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || s[i].Priority != s[start].Priority {
			shuffleByWeight(s[start:i])
			start = i
		}
	}
}

// shuffleByWeight reorders a single priority group. Records are drawn one
// at a time, each with probability proportional to its weight; zero-weight
// records get a small residual chance, so they sort towards the end rather
// than never being chosen.
func shuffleByWeight(group []*net.SRV) {
	for i := 0; i < len(group)-1; i++ {
		total := 0
		for _, rec := range group[i:] {
			total += int(rec.Weight) + 1
		}

		pick := rand.Intn(total)
		for j, rec := range group[i:] {
			pick -= int(rec.Weight) + 1
			if pick < 0 {
				group[i], group[i+j] = group[i+j], group[i]
				break
			}
		}
	}
}
