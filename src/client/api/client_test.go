package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"historyatlas/src/client/api"
	"historyatlas/src/domain/entities"
	"historyatlas/src/timeline"
)

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

var _ = Describe("Client", func() {
	var (
		ctx    context.Context
		mux    *http.ServeMux
		server *httptest.Server
		client *api.Client
	)

	BeforeEach(func() {
		ctx = context.Background()
		mux = http.NewServeMux()
		server = httptest.NewServer(mux)
		DeferCleanup(server.Close)
		client = api.NewClient(server.URL + "/api/")
	})

	Describe("Do", func() {
		It("surfaces the server error message verbatim", func() {
			// ARRANGE
			mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
				respond(w, http.StatusBadRequest, `{"error": "Invalid credentials"}`)
			})

			// ACT
			_, err := client.Login(ctx, api.Credentials{Email: "a@b.c", Password: "x"})

			// ASSERT
			var apiErr *api.APIError
			Expect(err).To(BeAssignableToTypeOf(apiErr))
			Expect(err.Error()).To(Equal("Invalid credentials"))
			Expect(api.StatusOf(err)).To(Equal(http.StatusBadRequest))
		})

		It("falls back to the status text when the body has no error field", func() {
			mux.HandleFunc("GET /api/rulers", func(w http.ResponseWriter, r *http.Request) {
				respond(w, http.StatusBadGateway, `<html>`)
			})

			_, err := client.Rulers(ctx)

			Expect(err).To(MatchError("Bad Gateway"))
		})

		It("wraps transport failures in ErrNetwork", func() {
			server.Close()

			_, err := client.Products(ctx)

			Expect(err).To(MatchError(api.ErrNetwork))
			Expect(api.StatusOf(err)).To(BeZero())
		})

		It("sends the bearer token only when one is given", func() {
			// ARRANGE
			var authorization atomic.Value
			mux.HandleFunc("GET /api/orders", func(w http.ResponseWriter, r *http.Request) {
				authorization.Store(r.Header.Get("Authorization"))
				respond(w, http.StatusOK, `[]`)
			})

			// ACT
			orders, err := client.Orders(ctx, "tok")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(orders).To(BeEmpty())
			Expect(orders).NotTo(BeNil())
			Expect(authorization.Load()).To(Equal("Bearer tok"))
		})

		It("posts JSON bodies", func() {
			// ARRANGE
			var received api.CreateOrderRequest
			mux.HandleFunc("POST /api/orders", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))
				Expect(json.NewDecoder(r.Body).Decode(&received)).To(Succeed())
				respond(w, http.StatusOK, `{"id": "2f1ad0e6-6a3c-4d8e-8a0f-3b1f1f0b9d11", "total": 25, "status": "completed", "items": [{"id": "p1", "name": "Shirt", "price": 12.5, "quantity": 2}]}`)
			})

			// ACT
			order, err := client.CreateOrder(ctx, "tok", api.CreateOrderRequest{
				Items: []entities.LineItem{{ID: "p1", Name: "Shirt", Price: 12.5, Quantity: 2}},
				Total: 25,
			})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(received.Total).To(Equal(25.0))
			Expect(received.Items).To(HaveLen(1))
			Expect(order.Status).To(Equal(entities.OrderStatusCompleted))
			Expect(order.Items[0].Quantity).To(Equal(2))
		})
	})

	Describe("FetchHistory", func() {
		BeforeEach(func() {
			mux.HandleFunc("GET /api/rulers", func(w http.ResponseWriter, r *http.Request) {
				respond(w, http.StatusOK, `[{"id": "r1", "name": "Menelik II", "startYear": 1889, "endYear": 1913}]`)
			})
			mux.HandleFunc("GET /api/battles", func(w http.ResponseWriter, r *http.Request) {
				respond(w, http.StatusOK, `[{"id": "b1", "name": "Adwa", "year": 1896}]`)
			})
			mux.HandleFunc("GET /api/people", func(w http.ResponseWriter, r *http.Request) {
				respond(w, http.StatusOK, `[]`)
			})
		})

		It("joins the four collections", func() {
			mux.HandleFunc("GET /api/places", func(w http.ResponseWriter, r *http.Request) {
				respond(w, http.StatusOK, `null`)
			})

			collections, err := client.FetchHistory(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(collections.Rulers).To(HaveLen(1))
			Expect(collections.Battles).To(HaveLen(1))
			Expect(collections.People).To(BeEmpty())
			Expect(collections.Places).To(BeEmpty())
			Expect(timeline.Aggregate(collections)).To(HaveLen(2))
		})

		It("returns no partial data when one fetch fails", func() {
			mux.HandleFunc("GET /api/places", func(w http.ResponseWriter, r *http.Request) {
				respond(w, http.StatusInternalServerError, `{"error": "boom"}`)
			})

			collections, err := client.FetchHistory(ctx)

			Expect(err).To(MatchError("boom"))
			Expect(collections).To(Equal(timeline.Collections{}))
		})
	})

	It("decodes the merged timeline", func() {
		mux.HandleFunc("GET /api/timeline", func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusOK, `[{"type": "battles", "id": "b1", "name": "Adwa", "year": 1896}, {"type": "places", "id": "p1", "name": "Gondar", "startYear": 1636}]`)
		})

		items, err := client.Timeline(ctx)

		Expect(err).NotTo(HaveOccurred())
		Expect(items).To(HaveLen(2))
		Expect(items[0].Entry.Kind()).To(Equal(timeline.KindBattle))
		Expect(items[1].Entry.Kind()).To(Equal(timeline.KindPlace))
	})
})
