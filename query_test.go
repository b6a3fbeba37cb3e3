package listview_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/listview-go"
)

var _ = Describe("FilterValue", func() {
	It("should treat an empty single value as cleared", func() {
		Expect(listview.Single("").IsEmpty()).To(BeTrue())
		Expect(listview.Single("active").IsEmpty()).To(BeFalse())
	})

	It("should de-duplicate multi values keeping first occurrence order", func() {
		v := listview.Multi("finance", "engineering", "finance", "", "sales")

		Expect(v.IsMulti()).To(BeTrue())
		Expect(v.Values()).To(Equal([]string{"finance", "engineering", "sales"}))
	})

	It("should treat an empty set as cleared", func() {
		Expect(listview.Multi().IsEmpty()).To(BeTrue())
		Expect(listview.Multi("", "").IsEmpty()).To(BeTrue())
	})

	It("should not let callers mutate the values", func() {
		v := listview.Multi("a", "b")
		values := v.Values()
		values[0] = "z"

		Expect(v.Values()).To(Equal([]string{"a", "b"}))
	})

	It("should distinguish single from multi with one value", func() {
		Expect(listview.Single("a").Equal(listview.Multi("a"))).To(BeFalse())
		Expect(listview.Single("a").Equal(listview.Single("a"))).To(BeTrue())
		Expect(listview.Multi("a", "b").Equal(listview.Multi("b", "a"))).To(BeFalse())
	})
})

var _ = Describe("Query", func() {
	var base listview.Query

	BeforeEach(func() {
		base = listview.NewQuery(25).
			WithFilter("status", listview.Single("active")).
			WithFilter("department", listview.Multi("engineering", "finance"))
	})

	It("should start on page 1 without filters", func() {
		q := listview.NewQuery(10)

		Expect(q.Page).To(Equal(1))
		Expect(q.PageSize).To(Equal(10))
		Expect(q.HasFilters()).To(BeFalse())
	})

	It("should leave the receiver untouched on every mutation", func() {
		_ = base.WithPage(4)
		_ = base.WithPageSize(50)
		_ = base.WithFilter("status", listview.Single("terminated"))
		_ = base.WithFilter("department", listview.Multi())
		_ = base.WithoutFilters()

		Expect(base.Page).To(Equal(1))
		Expect(base.PageSize).To(Equal(25))
		status, _ := base.Filter("status")
		Expect(status.Value()).To(Equal("active"))
		Expect(base.FilterKeys()).To(Equal([]string{"department", "status"}))
	})

	It("should remove a key when set to an empty value", func() {
		q := base.WithFilter("status", listview.Single(""))

		_, ok := q.Filter("status")
		Expect(ok).To(BeFalse())
		Expect(q.FilterKeys()).To(Equal([]string{"department"}))
	})

	It("should clear every filter", func() {
		q := base.WithPage(3).WithoutFilters()

		Expect(q.HasFilters()).To(BeFalse())
		Expect(q.Page).To(Equal(3))
		Expect(q.PageSize).To(Equal(25))
	})

	It("should compare structurally regardless of insertion order", func() {
		other := listview.NewQuery(25).
			WithFilter("department", listview.Multi("engineering", "finance")).
			WithFilter("status", listview.Single("active"))

		Expect(base.Equal(other)).To(BeTrue())
		Expect(base.Equal(other.WithPage(2))).To(BeFalse())
		Expect(base.Equal(other.WithFilter("status", listview.Single("on_leave")))).To(BeFalse())
	})

	It("should not share the filter map between copies", func() {
		filters := base.Filters()
		delete(filters, "status")

		_, ok := base.Filter("status")
		Expect(ok).To(BeTrue())
	})

	It("should compute the offset of the page", func() {
		Expect(base.Offset()).To(Equal(0))
		Expect(base.WithPage(3).Offset()).To(Equal(50))
		Expect(base.WithPage(math.MaxInt / 10).Offset()).To(Equal(math.MaxInt))
	})

	It("should render a stable string for logs", func() {
		Expect(base.WithPage(2).String()).To(Equal("page=2 pageSize=25 department=[engineering,finance] status=active"))
	})
})
