package listview_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/listview-go"
)

var _ = Describe("PageConfig", func() {
	It("should default to size 10 out of 10, 25, 50, 75, 100", func() {
		config := listview.NewPageConfig()

		Expect(config.DefaultSize).To(Equal(10))
		Expect(config.AllowedSizes).To(Equal([]int{10, 25, 50, 75, 100}))
		Expect(config.DefaultQuery()).To(Equal(listview.NewQuery(10)))
	})

	It("should normalize allowed sizes", func() {
		config := listview.NewPageConfig().WithAllowedSizes(50, 20, 0, -5, 20)

		Expect(config.AllowedSizes).To(Equal([]int{20, 50}))
	})

	It("should ignore an empty allowed list", func() {
		config := listview.NewPageConfig().WithAllowedSizes()

		Expect(config.AllowedSizes).To(Equal(listview.DefaultAllowedPageSizes()))
	})

	It("should fall back to the smallest allowed size when the default is not allowed", func() {
		config := listview.NewPageConfig().WithAllowedSizes(20, 40)

		Expect(config.EffectiveDefault()).To(Equal(20))
	})

	It("should treat a nil config as the defaults", func() {
		var config *listview.PageConfig

		Expect(config.EffectiveDefault()).To(Equal(10))
		Expect(config.IsAllowed(25)).To(BeTrue())
		Expect(config.Validate(30)).To(HaveOccurred())
	})

	Describe("Validate", func() {
		It("should accept allowed sizes", func() {
			config := listview.NewPageConfig()

			for _, size := range []int{10, 25, 50, 75, 100} {
				Expect(config.Validate(size)).To(Succeed())
			}
		})

		It("should reject sizes outside the set with a PageSizeError", func() {
			err := listview.NewPageConfig().Validate(30)

			var sizeErr *listview.PageSizeError
			Expect(errors.As(err, &sizeErr)).To(BeTrue())
			Expect(sizeErr.Requested).To(Equal(30))
			Expect(sizeErr.Allowed).To(Equal([]int{10, 25, 50, 75, 100}))
			Expect(err.Error()).To(Equal("requested page size 30 is not one of the allowed page sizes [10, 25, 50, 75, 100]"))
		})
	})
})
