package hr_test

import (
	"context"
	"errors"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/listview-go"
	"github.com/nrfta/listview-go/internal/hr"
	"github.com/nrfta/listview-go/internal/storage"
)

var _ = Describe("Lists", func() {
	var (
		ctx         context.Context
		db          *storage.DB
		repo        *hr.Repository
		employeeIDs []string
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = openDB(ctx)
		repo = hr.NewRepository(db, db.Dialect)

		var err error
		employeeIDs, err = hr.NewSeeder(db, db.Dialect).Employees(ctx, 45)
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("Employees", func() {
		var list hr.List[*hr.Employee]

		BeforeEach(func() {
			list = repo.EmployeeList(listview.NewPageConfig())
		})

		It("should page through all employees", func() {
			page, err := list.Paginator("", false).FetchPage(ctx, listview.NewQuery(10))

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Items).To(HaveLen(10))
			Expect(page.TotalItems).To(Equal(45))
			Expect(page.TotalPages).To(Equal(5))
			Expect(page.Metadata.Strategy).To(Equal("offset"))

			last, err := list.Paginator("", false).FetchPage(ctx, listview.NewQuery(10).WithPage(5))
			Expect(err).ToNot(HaveOccurred())
			Expect(last.Items).To(HaveLen(5))
		})

		It("should order by last name by default", func() {
			page, err := list.Paginator("", false).FetchPage(ctx, listview.NewQuery(50))
			Expect(err).ToNot(HaveOccurred())

			Expect(sort.SliceIsSorted(page.Items, func(i, j int) bool {
				return page.Items[i].LastName < page.Items[j].LastName
			})).To(BeTrue())
		})

		It("should sort by a whitelisted key", func() {
			page, err := list.Paginator("hired", true).FetchPage(ctx, listview.NewQuery(10))
			Expect(err).ToNot(HaveOccurred())

			Expect(page.Items[0].ID).To(Equal(employeeIDs[44]))
		})

		It("should filter by a single status", func() {
			q := listview.NewQuery(10).WithFilter("status", listview.Single(hr.StatusOnLeave))

			page, err := list.Paginator("", false).FetchPage(ctx, q)

			Expect(err).ToNot(HaveOccurred())
			Expect(page.TotalItems).To(Equal(6))
			for _, e := range page.Items {
				Expect(e.Status).To(Equal(hr.StatusOnLeave))
			}
		})

		It("should filter by several departments", func() {
			q := listview.NewQuery(25).WithFilter("department", listview.Multi("engineering", "finance"))

			page, err := list.Paginator("", false).FetchPage(ctx, q)

			Expect(err).ToNot(HaveOccurred())
			Expect(page.TotalItems).To(Equal(18))
			Expect(page.TotalPages).To(Equal(1))
			for _, e := range page.Items {
				Expect(e.Department).To(BeElementOf("engineering", "finance"))
			}
		})

		It("should combine filters", func() {
			q := listview.NewQuery(10).
				WithFilter("department", listview.Multi("engineering")).
				WithFilter("status", listview.Single(hr.StatusActive))

			page, err := list.Paginator("", false).FetchPage(ctx, q)

			Expect(err).ToNot(HaveOccurred())
			Expect(page.TotalItems).To(Equal(7))
		})

		It("should report totals for a page past the end", func() {
			page, err := list.Paginator("", false).FetchPage(ctx, listview.NewQuery(10).WithPage(9))

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Items).To(BeEmpty())
			Expect(page.TotalPages).To(Equal(5))
		})

		It("should decode a URL query into a filtered page", func() {
			q := list.Codec.DecodeString("page=2&pageSize=25&department=engineering,finance,sales")

			page, err := list.Paginator("", false).FetchPage(ctx, q)

			Expect(err).ToNot(HaveOccurred())
			Expect(page.TotalItems).To(Equal(27))
			Expect(page.Items).To(HaveLen(2))
		})
	})

	Describe("Expenses", func() {
		var list hr.List[*hr.Expense]

		BeforeEach(func() {
			_, err := hr.NewSeeder(db, db.Dialect).Expenses(ctx, employeeIDs[:5], 4)
			Expect(err).ToNot(HaveOccurred())

			list = repo.ExpenseList(listview.NewPageConfig())
		})

		It("should list the newest expenses first", func() {
			page, err := list.Paginator("", false).FetchPage(ctx, listview.NewQuery(25))
			Expect(err).ToNot(HaveOccurred())

			Expect(page.TotalItems).To(Equal(20))
			Expect(sort.SliceIsSorted(page.Items, func(i, j int) bool {
				return page.Items[i].SubmittedOn > page.Items[j].SubmittedOn
			})).To(BeTrue())
		})

		It("should filter by employee", func() {
			q := listview.NewQuery(10).WithFilter("employee", listview.Single(employeeIDs[0]))

			page, err := list.Paginator("", false).FetchPage(ctx, q)

			Expect(err).ToNot(HaveOccurred())
			Expect(page.TotalItems).To(Equal(4))
			for _, e := range page.Items {
				Expect(e.EmployeeID).To(Equal(employeeIDs[0]))
			}
		})

		It("should filter by several statuses", func() {
			q := listview.NewQuery(10).WithFilter("status", listview.Multi(hr.ExpensePending, hr.ExpenseApproved))

			page, err := list.Paginator("amount", true).FetchPage(ctx, q)

			Expect(err).ToNot(HaveOccurred())
			Expect(page.TotalItems).To(Equal(10))
			Expect(sort.SliceIsSorted(page.Items, func(i, j int) bool {
				return page.Items[i].AmountCents > page.Items[j].AmountCents
			})).To(BeTrue())
		})
	})

	Describe("EmployeeByID", func() {
		It("should find a seeded employee", func() {
			e, err := repo.EmployeeByID(ctx, employeeIDs[3])

			Expect(err).ToNot(HaveOccurred())
			Expect(e.Email).To(Equal("employee4@example.com"))
			Expect(e.Department).To(Equal("sales"))
		})

		It("should return ErrNotFound for an unknown ID", func() {
			_, err := repo.EmployeeByID(ctx, "missing")

			Expect(errors.Is(err, hr.ErrNotFound)).To(BeTrue())
		})
	})
})
