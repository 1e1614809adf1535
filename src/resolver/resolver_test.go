package resolver

import (
	"context"
	"net"
	"time"

	"github.com/effuse/effuse/src/client"
	"github.com/effuse/effuse/src/effuse/wire"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// startStubServer starts a UDP nameserver that answers every question with
// the records produced by answer.
func startStubServer(answer func(q wire.Question) []wire.Record) (addr *net.UDPAddr, stop func()) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	Expect(err).ShouldNot(HaveOccurred())

	go func() {
		buf := make([]byte, 65536)

		for {
			n, src, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}

			q := &wire.Message{}
			if err := q.Unpack(buf[:n]); err != nil || len(q.Questions) == 0 {
				continue
			}

			res := &wire.Message{
				Header: wire.Header{
					ID:       q.Header.ID,
					Response: true,
				},
				Questions: q.Questions,
				Answers:   answer(q.Questions[0]),
			}

			data, err := res.Pack(false)
			if err != nil {
				continue
			}

			_, _ = conn.WriteToUDP(data, src)
		}
	}()

	return conn.LocalAddr().(*net.UDPAddr), func() {
		conn.Close()
	}
}

// dialStub connects a client to the stub server's address.
func dialStub(addr *net.UDPAddr) *client.Client {
	c, err := client.Dial(addr, client.UseTimeout(2*time.Second))
	Expect(err).ShouldNot(HaveOccurred())

	return c
}

var _ = Describe("Resolver", func() {
	var (
		ctx    context.Context
		cancel func()
	)

	BeforeEach(func() {
		c, f := context.WithTimeout(context.Background(), 5*time.Second)
		ctx, cancel = c, f
	})

	AfterEach(func() {
		cancel()
	})

	Describe("QueryA", func() {
		It("returns socket addresses carrying the requested port", func() {
			addr, stop := startStubServer(func(q wire.Question) []wire.Record {
				Expect(q.Type).To(Equal(wire.TypeA))

				return []wire.Record{
					{
						Name:  q.Name,
						Type:  wire.TypeA,
						Class: wire.ClassINET,
						TTL:   300,
						Data:  wire.A{Addr: net.IP{93, 184, 216, 34}},
					},
				}
			})
			defer stop()

			subject, err := New(UseClient(dialStub(addr)))
			Expect(err).ShouldNot(HaveOccurred())
			defer subject.Close()

			addrs, err := subject.QueryA(ctx, "example.com", 8080)
			Expect(err).ShouldNot(HaveOccurred())

			Expect(addrs).To(HaveLen(1))
			Expect(addrs[0].String()).To(Equal("93.184.216.34:8080"))
		})

		It("skips answers of other types", func() {
			addr, stop := startStubServer(func(q wire.Question) []wire.Record {
				return []wire.Record{
					{
						Name:  q.Name,
						Type:  wire.TypeTXT,
						Class: wire.ClassINET,
						Data:  wire.NewTXT("unrelated"),
					},
					{
						Name:  q.Name,
						Type:  wire.TypeA,
						Class: wire.ClassINET,
						Data:  wire.A{Addr: net.IP{10, 0, 0, 1}},
					},
				}
			})
			defer stop()

			subject, err := New(UseClient(dialStub(addr)))
			Expect(err).ShouldNot(HaveOccurred())
			defer subject.Close()

			addrs, err := subject.QueryA(ctx, "example.com", 53)
			Expect(err).ShouldNot(HaveOccurred())

			Expect(addrs).To(HaveLen(1))
			Expect(addrs[0].IP.String()).To(Equal("10.0.0.1"))
		})
	})

	Describe("QueryAAAA", func() {
		It("returns IPv6 socket addresses", func() {
			addr, stop := startStubServer(func(q wire.Question) []wire.Record {
				Expect(q.Type).To(Equal(wire.TypeAAAA))

				return []wire.Record{
					{
						Name:  q.Name,
						Type:  wire.TypeAAAA,
						Class: wire.ClassINET,
						Data:  wire.AAAA{Addr: net.ParseIP("2001:db8::1")},
					},
				}
			})
			defer stop()

			subject, err := New(UseClient(dialStub(addr)))
			Expect(err).ShouldNot(HaveOccurred())
			defer subject.Close()

			addrs, err := subject.QueryAAAA(ctx, "example.com", 443)
			Expect(err).ShouldNot(HaveOccurred())

			Expect(addrs).To(HaveLen(1))
			Expect(addrs[0].IP.Equal(net.ParseIP("2001:db8::1"))).To(BeTrue())
			Expect(addrs[0].Port).To(Equal(443))
		})
	})

	Describe("QuerySRV", func() {
		It("constructs the RFC-2782 name and orders the results", func() {
			addr, stop := startStubServer(func(q wire.Question) []wire.Record {
				Expect(q.Name.String()).To(Equal("_sip._udp.example.com."))

				return []wire.Record{
					{
						Name:  q.Name,
						Type:  wire.TypeSRV,
						Class: wire.ClassINET,
						Data: wire.SRV{
							Priority: 20,
							Port:     5061,
							Target:   wire.MustParseName("backup.example.com"),
						},
					},
					{
						Name:  q.Name,
						Type:  wire.TypeSRV,
						Class: wire.ClassINET,
						Data: wire.SRV{
							Priority: 10,
							Port:     5060,
							Target:   wire.MustParseName("primary.example.com"),
						},
					},
				}
			})
			defer stop()

			subject, err := New(UseClient(dialStub(addr)))
			Expect(err).ShouldNot(HaveOccurred())
			defer subject.Close()

			records, err := subject.QuerySRV(ctx, "sip", "udp", "example.com")
			Expect(err).ShouldNot(HaveOccurred())

			Expect(records).To(HaveLen(2))
			Expect(records[0].Target).To(Equal("primary.example.com."))
			Expect(records[1].Target).To(Equal("backup.example.com."))
		})
	})

	Describe("QueryTXT", func() {
		It("parses the key=value convention", func() {
			addr, stop := startStubServer(func(q wire.Question) []wire.Record {
				return []wire.Record{
					{
						Name:  q.Name,
						Type:  wire.TypeTXT,
						Class: wire.ClassINET,
						Data:  wire.NewTXT("version=1.0"),
					},
				}
			})
			defer stop()

			subject, err := New(UseClient(dialStub(addr)))
			Expect(err).ShouldNot(HaveOccurred())
			defer subject.Close()

			texts, err := subject.QueryTXT(ctx, "example.com")
			Expect(err).ShouldNot(HaveOccurred())

			Expect(texts).To(HaveLen(1))
			Expect(texts[0].Key).To(Equal("version"))
			Expect(texts[0].Value).To(Equal("1.0"))
		})
	})

	Describe("QueryAddr", func() {
		It("performs a reverse lookup via the arpa name", func() {
			addr, stop := startStubServer(func(q wire.Question) []wire.Record {
				Expect(q.Name.String()).To(Equal("34.216.184.93.in-addr.arpa."))
				Expect(q.Type).To(Equal(wire.TypePTR))

				return []wire.Record{
					{
						Name:  q.Name,
						Type:  wire.TypePTR,
						Class: wire.ClassINET,
						Data:  wire.PTR{Target: wire.MustParseName("example.com")},
					},
				}
			})
			defer stop()

			subject, err := New(UseClient(dialStub(addr)))
			Expect(err).ShouldNot(HaveOccurred())
			defer subject.Close()

			names, err := subject.QueryAddr(ctx, "93.184.216.34")
			Expect(err).ShouldNot(HaveOccurred())

			Expect(names).To(Equal([]string{"example.com."}))
		})

		It("rejects input that is not an IP address", func() {
			subject, err := New(UseClient(dialStub(&net.UDPAddr{
				IP:   net.IPv4(127, 0, 0, 1),
				Port: 1,
			})))
			Expect(err).ShouldNot(HaveOccurred())
			defer subject.Close()

			_, err = subject.QueryAddr(ctx, "not-an-address")
			Expect(err).Should(HaveOccurred())
		})
	})

	Describe("multicast names", func() {
		It("gathers streamed responses via the multicast client", func() {
			addr, stop := startStubServer(func(q wire.Question) []wire.Record {
				return []wire.Record{
					{
						Name:  q.Name,
						Type:  wire.TypePTR,
						Class: wire.ClassINET,
						TTL:   10,
						Data:  wire.PTR{Target: wire.MustParseName("test._fake._tcp.local")},
					},
				}
			})
			defer stop()

			subject, err := New(
				UseClient(dialStub(addr)),
				UseMulticastClient(dialStub(addr)),
				UseMulticastWait(250*time.Millisecond),
			)
			Expect(err).ShouldNot(HaveOccurred())
			defer subject.Close()

			targets, err := subject.QueryPTR(ctx, "_fake._tcp.local")
			Expect(err).ShouldNot(HaveOccurred())

			Expect(targets).To(Equal([]string{"test._fake._tcp.local."}))
		})
	})
})
