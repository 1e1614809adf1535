package mdns

import (
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("responseDelay", func() {
	It("samples within the bounds required by RFC-6762", func() {
		rng := rand.New(rand.NewSource(1))

		for i := 0; i < 1000; i++ {
			d := responseDelay(rng)

			Expect(d).To(BeNumerically(">=", 20*time.Millisecond))
			Expect(d).To(BeNumerically("<=", 120*time.Millisecond))
		}
	})

	It("samples more than one distinct value", func() {
		rng := rand.New(rand.NewSource(2))

		seen := map[time.Duration]bool{}
		for i := 0; i < 100; i++ {
			seen[responseDelay(rng)] = true
		}

		Expect(len(seen)).To(BeNumerically(">", 1))
	})
})
