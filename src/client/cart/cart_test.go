package cart_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"historyatlas/src/client/auth"
	"historyatlas/src/client/cart"
	"historyatlas/src/client/storage"
	"historyatlas/src/domain/entities"
	"historyatlas/src/test_artefacts/stubs"
)

type fakeCheckouter struct {
	loggedIn bool
	err      error
	calls    int
	items    []entities.LineItem
	total    float64
}

func (f *fakeCheckouter) LoggedIn() bool {
	return f.loggedIn
}

func (f *fakeCheckouter) CreateOrder(_ context.Context, items []entities.LineItem, total float64) (entities.Order, error) {
	f.calls++
	f.items = items
	f.total = total
	if f.err != nil {
		return entities.Order{}, f.err
	}
	return entities.Order{Items: items, Total: total, Status: entities.OrderStatusCompleted}, nil
}

// unreliableStore falha gravações e, opcionalmente, remoções.
type unreliableStore struct {
	*storage.MemoryStore
	failWrites  bool
	failDeletes bool
}

var errReadOnly = errors.New("read-only file system")

func (s *unreliableStore) Set(key, value string) error {
	if s.failWrites {
		return errReadOnly
	}
	return s.MemoryStore.Set(key, value)
}

func (s *unreliableStore) Delete(keys ...string) error {
	if s.failDeletes {
		return errReadOnly
	}
	return s.MemoryStore.Delete(keys...)
}

var _ = Describe("Cart", func() {
	var (
		store  *storage.MemoryStore
		c      *cart.Cart
		shirt  entities.Product
		hoodie entities.Product
	)

	BeforeEach(func() {
		store = storage.NewMemoryStore()

		var err error
		c, err = cart.Load(store)
		Expect(err).NotTo(HaveOccurred())

		shirt = stubs.NewProductStub().WithID("p1").WithPrice(10).Get()
		hoodie = stubs.NewProductStub().WithID("p2").WithPrice(25.5).Get()
	})

	persisted := func() []entities.LineItem {
		reloaded, err := cart.Load(store)
		Expect(err).NotTo(HaveOccurred())
		return reloaded.Items()
	}

	It("starts empty", func() {
		Expect(c.IsEmpty()).To(BeTrue())
		Expect(c.Count()).To(BeZero())
		Expect(c.Total()).To(BeZero())
	})

	Describe("Add", func() {
		It("increments the quantity of an existing line instead of duplicating it", func() {
			// ACT
			Expect(c.Add(shirt)).To(Succeed())
			Expect(c.Add(hoodie)).To(Succeed())
			Expect(c.Add(shirt)).To(Succeed())

			// ASSERT
			items := c.Items()
			Expect(items).To(HaveLen(2))
			Expect(items[0].ID).To(Equal("p1"))
			Expect(items[0].Quantity).To(Equal(2))
			Expect(items[1].Quantity).To(Equal(1))
			Expect(c.Count()).To(Equal(3))
			Expect(c.Subtotal()).To(BeNumerically("~", 45.5, 1e-9))
			Expect(persisted()).To(Equal(items))
		})

		It("snapshots the product fields", func() {
			Expect(c.Add(shirt)).To(Succeed())

			item := c.Items()[0]
			Expect(item.Name).To(Equal(shirt.Name))
			Expect(item.Price).To(Equal(shirt.Price))
			Expect(item.Category).To(Equal(shirt.Category))
		})
	})

	DescribeTable("ChangeQuantity",
		func(delta int, expected []int) {
			Expect(c.Add(shirt)).To(Succeed())
			Expect(c.Add(shirt)).To(Succeed())
			Expect(c.Add(hoodie)).To(Succeed())

			Expect(c.ChangeQuantity("p1", delta)).To(Succeed())

			var quantities []int
			for _, item := range persisted() {
				quantities = append(quantities, item.Quantity)
			}
			Expect(quantities).To(Equal(expected))
		},
		Entry("increments", 1, []int{3, 1}),
		Entry("decrements", -1, []int{1, 1}),
		Entry("removes the line at zero", -2, []int{1}),
		Entry("removes the line below zero", -5, []int{1}),
	)

	It("ignores quantity changes for unknown ids", func() {
		Expect(c.Add(shirt)).To(Succeed())

		Expect(c.ChangeQuantity("missing", -1)).To(Succeed())

		Expect(c.Count()).To(Equal(1))
	})

	It("removes a line", func() {
		Expect(c.Add(shirt)).To(Succeed())
		Expect(c.Add(hoodie)).To(Succeed())

		Expect(c.Remove("p1")).To(Succeed())

		Expect(persisted()).To(HaveLen(1))
		Expect(c.Items()[0].ID).To(Equal("p2"))
	})

	Describe("Checkout", func() {
		var checkouter *fakeCheckouter

		BeforeEach(func() {
			checkouter = &fakeCheckouter{loggedIn: true}
		})

		It("rejects an empty cart before any call", func() {
			_, err := c.Checkout(context.Background(), checkouter)

			Expect(err).To(MatchError(cart.ErrEmptyCart))
			Expect(checkouter.calls).To(BeZero())
		})

		It("requires an authenticated session", func() {
			Expect(c.Add(shirt)).To(Succeed())
			checkouter.loggedIn = false

			_, err := c.Checkout(context.Background(), checkouter)

			Expect(err).To(MatchError(auth.ErrNotAuthenticated))
			Expect(checkouter.calls).To(BeZero())
			Expect(c.IsEmpty()).To(BeFalse())
		})

		It("sends the snapshot with its subtotal and clears the cart", func() {
			// ARRANGE
			Expect(c.Add(shirt)).To(Succeed())
			Expect(c.Add(hoodie)).To(Succeed())
			Expect(c.Add(hoodie)).To(Succeed())

			// ACT
			order, err := c.Checkout(context.Background(), checkouter)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(order.Status).To(Equal(entities.OrderStatusCompleted))
			Expect(checkouter.items).To(HaveLen(2))
			Expect(checkouter.total).To(BeNumerically("~", 61, 1e-9))
			Expect(c.IsEmpty()).To(BeTrue())
			Expect(persisted()).To(BeEmpty())
		})

		It("keeps the cart unchanged when the order fails", func() {
			Expect(c.Add(shirt)).To(Succeed())
			checkouter.err = errors.New("Failed to create order")

			_, err := c.Checkout(context.Background(), checkouter)

			Expect(err).To(MatchError("Failed to create order"))
			Expect(c.Count()).To(Equal(1))
			Expect(persisted()).To(HaveLen(1))
		})

		Context("when the accepted order cannot be cleared from storage", func() {
			var (
				flaky        *unreliableStore
				shoppingCart *cart.Cart
			)

			BeforeEach(func() {
				flaky = &unreliableStore{MemoryStore: store}

				var err error
				shoppingCart, err = cart.Load(flaky)
				Expect(err).NotTo(HaveOccurred())
				Expect(shoppingCart.Add(shirt)).To(Succeed())
				flaky.failWrites = true
			})

			It("drops the saved cart instead", func() {
				order, err := shoppingCart.Checkout(context.Background(), checkouter)

				Expect(err).NotTo(HaveOccurred())
				Expect(order.Status).To(Equal(entities.OrderStatusCompleted))
				Expect(shoppingCart.IsEmpty()).To(BeTrue())
				Expect(persisted()).To(BeEmpty())
			})

			It("returns the order with ErrCartNotCleared and empties the cart in memory", func() {
				flaky.failDeletes = true

				order, err := shoppingCart.Checkout(context.Background(), checkouter)

				Expect(err).To(MatchError(cart.ErrCartNotCleared))
				Expect(err).To(MatchError(ContainSubstring("read-only file system")))
				Expect(order.Status).To(Equal(entities.OrderStatusCompleted))
				Expect(shoppingCart.IsEmpty()).To(BeTrue())
				Expect(checkouter.calls).To(Equal(1))
			})
		})
	})

	It("fails to load a corrupted snapshot", func() {
		Expect(store.Set(storage.KeyCart, "{oops")).To(Succeed())

		_, err := cart.Load(store)

		Expect(err).To(HaveOccurred())
	})
})
