package tests_test

import (
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/listview-go"
	"github.com/nrfta/listview-go/internal/hr"
)

var _ = Describe("Offset Pagination Integration Tests", func() {
	var (
		employeeIDs []string
		employees   hr.List[*hr.Employee]
		expenses    hr.List[*hr.Expense]
	)

	BeforeEach(func() {
		err := CleanupTables(ctx, container.DB)
		Expect(err).ToNot(HaveOccurred())

		employeeIDs, err = SeedEmployees(ctx, container.DB, 45)
		Expect(err).ToNot(HaveOccurred())
		Expect(employeeIDs).To(HaveLen(45))

		_, err = SeedExpenses(ctx, container.DB, employeeIDs[:10], 3)
		Expect(err).ToNot(HaveOccurred())

		repo := hr.NewRepository(container.DB, container.DB.Dialect)
		employees = repo.EmployeeList(listview.NewPageConfig())
		expenses = repo.ExpenseList(listview.NewPageConfig())
	})

	Describe("Basic Offset Pagination", func() {
		It("should paginate employees with the default page size", func() {
			page, err := employees.Paginator("", false).FetchPage(ctx, employees.Codec.Default())
			Expect(err).ToNot(HaveOccurred())

			Expect(page.Items).To(HaveLen(10))
			Expect(page.TotalItems).To(Equal(45))
			Expect(page.TotalPages).To(Equal(5))
			Expect(page.Metadata.Strategy).To(Equal("offset"))

			info := page.Info(employees.Codec.Default())
			Expect(info.HasNextPage()).To(BeTrue())
			Expect(info.HasPreviousPage()).To(BeFalse())
		})

		It("should visit every employee exactly once across pages", func() {
			seen := map[string]bool{}
			paginator := employees.Paginator("hired", false)

			for n := 1; n <= 5; n++ {
				page, err := paginator.FetchPage(ctx, listview.NewQuery(10).WithPage(n))
				Expect(err).ToNot(HaveOccurred())

				for _, e := range page.Items {
					Expect(seen).ToNot(HaveKey(e.ID))
					seen[e.ID] = true
				}
			}

			Expect(seen).To(HaveLen(45))
		})

		It("should return the partial last page", func() {
			page, err := employees.Paginator("", false).FetchPage(ctx, listview.NewQuery(25).WithPage(2))

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Items).To(HaveLen(20))
			Expect(page.TotalPages).To(Equal(2))
		})

		It("should return no items past the last page", func() {
			page, err := employees.Paginator("", false).FetchPage(ctx, listview.NewQuery(10).WithPage(7))

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Items).To(BeEmpty())
			Expect(page.TotalItems).To(Equal(45))
		})
	})

	Describe("Filters", func() {
		It("should bind multi-valued filters with index placeholders", func() {
			q := listview.NewQuery(50).
				WithFilter("department", listview.Multi("engineering", "finance", "sales")).
				WithFilter("status", listview.Single(hr.StatusActive))

			page, err := employees.Paginator("", false).FetchPage(ctx, q)
			Expect(err).ToNot(HaveOccurred())

			Expect(page.TotalItems).To(Equal(len(page.Items)))
			for _, e := range page.Items {
				Expect(e.Department).To(BeElementOf("engineering", "finance", "sales"))
				Expect(e.Status).To(Equal(hr.StatusActive))
			}
		})

		It("should count only filtered rows", func() {
			q := listview.NewQuery(10).WithFilter("status", listview.Single(hr.StatusTerminated))

			page, err := employees.Paginator("", false).FetchPage(ctx, q)

			Expect(err).ToNot(HaveOccurred())
			Expect(page.TotalItems).To(Equal(4))
			Expect(page.TotalPages).To(Equal(1))
		})

		It("should filter expenses by employee and status", func() {
			q := listview.NewQuery(10).
				WithFilter("employee", listview.Single(employeeIDs[0])).
				WithFilter("status", listview.Multi(hr.ExpensePending, hr.ExpenseApproved, hr.ExpenseRejected, hr.ExpensePaid))

			page, err := expenses.Paginator("", false).FetchPage(ctx, q)

			Expect(err).ToNot(HaveOccurred())
			Expect(page.TotalItems).To(Equal(3))
		})
	})

	Describe("Sorting", func() {
		It("should sort by last name with stable tie-breakers by default", func() {
			page, err := employees.Paginator("", false).FetchPage(ctx, listview.NewQuery(50))
			Expect(err).ToNot(HaveOccurred())

			Expect(sort.SliceIsSorted(page.Items, func(i, j int) bool {
				a, b := page.Items[i], page.Items[j]
				if a.LastName != b.LastName {
					return a.LastName < b.LastName
				}
				if a.FirstName != b.FirstName {
					return a.FirstName < b.FirstName
				}
				return a.ID < b.ID
			})).To(BeTrue())
		})

		It("should sort expenses by amount descending", func() {
			page, err := expenses.Paginator("amount", true).FetchPage(ctx, listview.NewQuery(50))
			Expect(err).ToNot(HaveOccurred())

			Expect(page.Items).To(HaveLen(30))
			Expect(sort.SliceIsSorted(page.Items, func(i, j int) bool {
				return page.Items[i].AmountCents > page.Items[j].AmountCents
			})).To(BeTrue())
		})
	})
})
