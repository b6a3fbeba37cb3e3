package redisstore_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/nrfta/listview-go/urlstate/redisstore"
)

// Round trips against a live server are covered by the integration suite in tests/.
var _ = Describe("Store", func() {
	var client *redis.Client

	BeforeEach(func() {
		client = redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
		DeferCleanup(client.Close)
	})

	It("should require a session key", func() {
		_, err := redisstore.New(client, "")

		Expect(err).To(MatchError(redisstore.ErrSessionRequired))
	})

	It("should namespace the session key", func() {
		store, err := redisstore.New(client, "42:employees", redisstore.WithTTL(time.Hour))

		Expect(err).ToNot(HaveOccurred())
		Expect(store.Key()).To(Equal("listview:state:42:employees"))
	})

	It("should accept a custom prefix", func() {
		store, err := redisstore.New(client, "42:expenses", redisstore.WithKeyPrefix("hr:lists:"))

		Expect(err).ToNot(HaveOccurred())
		Expect(store.Key()).To(Equal("hr:lists:42:expenses"))
	})
})
