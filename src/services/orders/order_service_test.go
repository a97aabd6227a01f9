package orders_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"historyatlas/src/domain"
	"historyatlas/src/domain/entities"
	"historyatlas/src/services/orders"
	"historyatlas/src/test_artefacts/fakes"
	"historyatlas/src/test_artefacts/stubs"

	"github.com/google/uuid"
)

var _ = Describe("OrderService", func() {
	var (
		ctx             context.Context
		orderRepository *fakes.OrderRepository
		publisher       *fakes.Publisher
		orderService    *orders.OrderService
		userID          uuid.UUID
	)

	BeforeEach(func() {
		ctx = context.Background()
		orderRepository = fakes.NewOrderRepository()
		publisher = &fakes.Publisher{}
		orderService = orders.NewOrderService(slog.New(slog.NewTextHandler(io.Discard, nil)), orderRepository, publisher)
		userID = uuid.New()
	})

	Context("Create", func() {
		It("stores a completed order with a copy of the items", func() {
			// ARRANGE
			items := []entities.LineItem{
				stubs.NewLineItemStub().WithPrice(25).WithQuantity(2).Get(),
				stubs.NewLineItemStub().WithPrice(10).WithQuantity(1).Get(),
			}

			// ACT
			order, err := orderService.Create(ctx, userID, items, 60)
			items[0].Name = "changed after checkout"

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(order.Status).To(Equal(entities.OrderStatusCompleted))
			Expect(order.UserID).To(Equal(userID))
			Expect(order.Total).To(Equal(60.0))
			Expect(order.Items[0].Name).NotTo(Equal("changed after checkout"))
			Expect(orderRepository.All()).To(HaveLen(1))
		})

		It("publishes order.created keyed by user", func() {
			order, err := orderService.Create(ctx, userID, []entities.LineItem{stubs.NewLineItemStub().Get()}, 10)
			Expect(err).NotTo(HaveOccurred())

			Expect(publisher.Events).To(HaveLen(1))
			event := publisher.Events[0]
			Expect(event.EventType).To(Equal(domain.EventTypeOrderCreated))
			Expect(event.Key).To(Equal(userID.String()))

			var published entities.Order
			Expect(json.Unmarshal(event.Data, &published)).To(Succeed())
			Expect(published.ID).To(Equal(order.ID))
		})

		It("keeps the order when publishing fails", func() {
			publisher.Err = errors.New("broker unavailable")

			_, err := orderService.Create(ctx, userID, []entities.LineItem{stubs.NewLineItemStub().Get()}, 10)

			Expect(err).NotTo(HaveOccurred())
			Expect(orderRepository.All()).To(HaveLen(1))
		})

		It("works without a publisher", func() {
			orderService = orders.NewOrderService(slog.New(slog.NewTextHandler(io.Discard, nil)), orderRepository, nil)

			_, err := orderService.Create(ctx, userID, []entities.LineItem{stubs.NewLineItemStub().Get()}, 10)

			Expect(err).NotTo(HaveOccurred())
		})

		DescribeTable("rejects invalid orders",
			func(items []entities.LineItem, total float64) {
				_, err := orderService.Create(ctx, userID, items, total)

				Expect(err).To(MatchError(domain.ErrInvalidInput))
				Expect(orderRepository.All()).To(BeEmpty())
			},
			Entry("no items", []entities.LineItem{}, 10.0),
			Entry("negative total", []entities.LineItem{{ID: "p1", Price: 1, Quantity: 1}}, -1.0),
			Entry("zero quantity", []entities.LineItem{{ID: "p1", Price: 1, Quantity: 0}}, 0.0),
			Entry("missing id", []entities.LineItem{{Price: 1, Quantity: 1}}, 1.0),
		)

		It("wraps repository failures", func() {
			orderRepository.Err = errors.New("insert failed")

			_, err := orderService.Create(ctx, userID, []entities.LineItem{stubs.NewLineItemStub().Get()}, 10)

			Expect(err).To(MatchError(ContainSubstring("insert failed")))
			Expect(publisher.Events).To(BeEmpty())
		})
	})

	Context("ListByUser", func() {
		It("returns an empty list for users without orders", func() {
			list, err := orderService.ListByUser(ctx, userID)

			Expect(err).NotTo(HaveOccurred())
			Expect(list).NotTo(BeNil())
			Expect(list).To(BeEmpty())
		})

		It("returns only the caller's orders", func() {
			_, _ = orderService.Create(ctx, userID, []entities.LineItem{stubs.NewLineItemStub().Get()}, 10)
			_, _ = orderService.Create(ctx, uuid.New(), []entities.LineItem{stubs.NewLineItemStub().Get()}, 10)

			list, err := orderService.ListByUser(ctx, userID)

			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].UserID).To(Equal(userID))
		})
	})
})
