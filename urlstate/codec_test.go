package urlstate_test

import (
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/listview-go"
	"github.com/nrfta/listview-go/urlstate"
)

var _ = Describe("Codec", func() {
	var codec urlstate.Codec

	BeforeEach(func() {
		codec = urlstate.NewCodec(nil,
			urlstate.FilterSpec{Key: "status"},
			urlstate.FilterSpec{Key: "department", Multi: true},
		)
	})

	Describe("Decode", func() {
		It("should return defaults for an empty query", func() {
			q := codec.Decode(url.Values{})

			Expect(q.Equal(listview.NewQuery(10))).To(BeTrue())
		})

		It("should read page, size and filters", func() {
			q := codec.DecodeString("page=3&pageSize=25&status=active&department=engineering,finance")

			Expect(q.Page).To(Equal(3))
			Expect(q.PageSize).To(Equal(25))
			status, _ := q.Filter("status")
			Expect(status.Value()).To(Equal("active"))
			dept, _ := q.Filter("department")
			Expect(dept.IsMulti()).To(BeTrue())
			Expect(dept.Values()).To(Equal([]string{"engineering", "finance"}))
		})

		It("should fall back per field on malformed values", func() {
			q := codec.DecodeString("page=abc&pageSize=25&status=active")
			Expect(q.Page).To(Equal(1))
			Expect(q.PageSize).To(Equal(25))
			_, ok := q.Filter("status")
			Expect(ok).To(BeTrue())

			q = codec.DecodeString("page=-4&pageSize=33")
			Expect(q.Page).To(Equal(1))
			Expect(q.PageSize).To(Equal(10))

			q = codec.DecodeString("page=0&pageSize=ten")
			Expect(q.Page).To(Equal(1))
			Expect(q.PageSize).To(Equal(10))
		})

		It("should keep a page number past the end", func() {
			Expect(codec.DecodeString("page=999").Page).To(Equal(999))
		})

		It("should trim tokens and drop empty ones", func() {
			q := codec.DecodeString("department=%20engineering%20,,finance,")

			dept, _ := q.Filter("department")
			Expect(dept.Values()).To(Equal([]string{"engineering", "finance"}))
		})

		It("should decode percent-encoded tokens", func() {
			q := codec.DecodeString("department=research%20%26%20development,sales")

			dept, _ := q.Filter("department")
			Expect(dept.Values()).To(Equal([]string{"research & development", "sales"}))
		})

		It("should treat empty filters as absent", func() {
			q := codec.DecodeString("status=&department=,")

			Expect(q.HasFilters()).To(BeFalse())
		})

		It("should ignore undeclared keys", func() {
			q := codec.DecodeString("tab=details&status=active")

			Expect(q.FilterKeys()).To(Equal([]string{"status"}))
		})

		It("should fall back to defaults for an unparsable string", func() {
			Expect(codec.DecodeString("page=%zz").Equal(codec.Default())).To(BeTrue())
		})

		It("should honour a custom page config", func() {
			custom := urlstate.NewCodec(listview.NewPageConfig().WithAllowedSizes(20, 40).WithDefaultSize(20))

			Expect(custom.DecodeString("").PageSize).To(Equal(20))
			Expect(custom.DecodeString("pageSize=40").PageSize).To(Equal(40))
			Expect(custom.DecodeString("pageSize=10").PageSize).To(Equal(20))
		})
	})

	Describe("Encode", func() {
		It("should write only non-empty filters", func() {
			q := listview.NewQuery(25).WithPage(2).
				WithFilter("status", listview.Single("")).
				WithFilter("department", listview.Multi("engineering", "finance"))

			values := codec.Encode(q)

			Expect(values.Encode()).To(Equal("department=engineering%2Cfinance&page=2&pageSize=25"))
			Expect(values.Has("status")).To(BeFalse())
		})

		It("should round-trip well-formed queries", func() {
			queries := []listview.Query{
				listview.NewQuery(10),
				listview.NewQuery(100).WithPage(7),
				listview.NewQuery(50).WithFilter("status", listview.Single("on leave")),
				listview.NewQuery(25).WithPage(3).
					WithFilter("status", listview.Single("active")).
					WithFilter("department", listview.Multi("r&d", "sales", "finance")),
				listview.NewQuery(75).WithFilter("department", listview.Multi("engineering")),
			}

			for _, q := range queries {
				raw := codec.Encode(q).Encode()
				Expect(codec.DecodeString(raw).Equal(q)).To(BeTrue(), raw)
			}
		})
	})

	Describe("Merge", func() {
		It("should preserve unrelated keys and drop cleared filters", func() {
			base, err := url.ParseQuery("tab=details&status=active&page=4&pageSize=10")
			Expect(err).ToNot(HaveOccurred())

			merged := codec.Merge(base, listview.NewQuery(10).WithFilter("department", listview.Multi("sales")))

			Expect(merged.Get("tab")).To(Equal("details"))
			Expect(merged.Has("status")).To(BeFalse())
			Expect(merged.Get("department")).To(Equal("sales"))
			Expect(merged.Get("page")).To(Equal("1"))
		})

		It("should not modify the base values", func() {
			base := url.Values{"status": {"active"}}

			_ = codec.Merge(base, listview.NewQuery(10))

			Expect(base.Get("status")).To(Equal("active"))
		})
	})
})
