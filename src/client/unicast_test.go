package client

import (
	"net"

	"github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = ginkgo.Describe("SelectNameserver", func() {
	ginkgo.It("prefers the first IPv4 address", func() {
		ns, err := SelectNameserver([]net.IP{
			net.ParseIP("2001:4860:4860::8888"),
			net.ParseIP("8.8.8.8"),
			net.ParseIP("8.8.4.4"),
		})

		Expect(err).ShouldNot(HaveOccurred())
		Expect(ns.String()).To(Equal("8.8.8.8"))
	})

	ginkgo.It("falls back to the first address when no IPv4 address is present", func() {
		ns, err := SelectNameserver([]net.IP{
			net.ParseIP("2001:4860:4860::8888"),
			net.ParseIP("2001:4860:4860::8844"),
		})

		Expect(err).ShouldNot(HaveOccurred())
		Expect(ns.String()).To(Equal("2001:4860:4860::8888"))
	})

	ginkgo.It("fails when the list is empty", func() {
		_, err := SelectNameserver(nil)
		Expect(err).To(MatchError(ErrNoNameservers))
	})
})
