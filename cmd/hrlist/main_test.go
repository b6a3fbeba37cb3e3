package main

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/nrfta/listview-go/internal/config"
	"github.com/nrfta/listview-go/urlstate"
)

var _ = Describe("hrlist", func() {
	Describe("run", func() {
		It("should print usage without a command", func() {
			var stdout, stderr strings.Builder

			Expect(run(nil, strings.NewReader(""), &stdout, &stderr)).To(Equal(2))
			Expect(stderr.String()).To(ContainSubstring("usage: hrlist"))
		})

		It("should reject an unknown command", func() {
			var stdout, stderr strings.Builder

			Expect(run([]string{"dance"}, strings.NewReader(""), &stdout, &stderr)).To(Equal(2))
			Expect(stderr.String()).To(ContainSubstring(`unknown command "dance"`))
		})
	})

	Describe("listEndpoint", func() {
		It("should swap the last path segment for the list name", func() {
			Expect(listEndpoint("http://localhost:8080/api/employees", "expenses")).
				To(Equal("http://localhost:8080/api/expenses"))
			Expect(listEndpoint("http://localhost:8080/api/", "employees")).
				To(Equal("http://localhost:8080/api/employees"))
		})
	})

	Describe("openStore", func() {
		It("should keep the state in a URL without a session", func() {
			cfg := &config.Config{}

			store, closeStore, err := openStore(cfg, zap.NewNop(), "", "?page=4&department=sales")
			Expect(err).ToNot(HaveOccurred())
			defer closeStore()

			Expect(store).To(BeAssignableToTypeOf(&urlstate.URLStore{}))
			values, err := store.Load(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(values.Get("page")).To(Equal("4"))
			Expect(values.Get("department")).To(Equal("sales"))
		})
	})
})
