package repositories_test

import (
	"context"
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"historyatlas/src/domain"
	"historyatlas/src/domain/entities"
	"historyatlas/src/repositories"
	"historyatlas/src/test_artefacts/comparer"
	"historyatlas/src/test_artefacts/stubs"
	"historyatlas/src/test_artefacts/test_seeder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ = Describe("Postgres repositories", Ordered, func() {
	var (
		ctx        context.Context
		pool       *pgxpool.Pool
		testSeeder test_seeder.TestSeeder
	)

	BeforeAll(func() {
		var (
			enabled bool
			err     error
		)
		pool, enabled, err = test_seeder.ConnectFromEnv()
		if !enabled {
			Skip("TEST_DB_HOST not set")
		}
		Expect(err).NotTo(HaveOccurred())
		testSeeder = test_seeder.New(pool)
	})

	AfterAll(func() {
		if pool != nil {
			pool.Close()
		}
	})

	BeforeEach(func() {
		ctx = context.Background()
		testSeeder.Prepare(ctx)
	})

	Describe("CatalogRepository", func() {
		var repository *repositories.CatalogRepository

		BeforeEach(func() {
			repository = repositories.NewCatalogRepository(pool)
		})

		It("lists a collection in insertion order", func() {
			// ARRANGE
			second := stubs.NewRulerStub().WithID("z-second").Get()
			first := stubs.NewRulerStub().WithID("a-first").Get()
			testSeeder.InsertDocuments(ctx, domain.CollectionRulers, second, first)

			// ACT
			rulers, err := repository.ListRulers(ctx)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(rulers).To(HaveExactElements(BeComparableTo(second), BeComparableTo(first)))
		})

		It("upserts documents keeping the position of existing ids", func() {
			testSeeder.InsertDocuments(ctx, domain.CollectionPlaces, stubs.NewPlaceStub().WithID("p1").Get())

			err := repository.UpsertDocuments(ctx, domain.CollectionPlaces, []domain.Document{
				{ID: "p2", Body: []byte(`{"id": "p2", "name": "Aksum"}`)},
				{ID: "p1", Body: []byte(`{"id": "p1", "name": "Lalibela"}`)},
			})

			Expect(err).NotTo(HaveOccurred())
			ids, err := testSeeder.SelectDocumentIDs(ctx, domain.CollectionPlaces)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(Equal([]string{"p1", "p2"}))

			document, err := testSeeder.SelectDocument(ctx, domain.CollectionPlaces, "p1")
			Expect(err).NotTo(HaveOccurred())
			Expect(document).To(MatchJSON(`{"id": "p1", "name": "Lalibela"}`))
		})

		It("deletes documents by id", func() {
			testSeeder.InsertDocuments(ctx, domain.CollectionBattles,
				stubs.NewBattleStub().WithID("b1").Get(),
				stubs.NewBattleStub().WithID("b2").Get(),
			)

			err := repository.DeleteDocuments(ctx, domain.CollectionBattles, []string{"b1", "missing"})

			Expect(err).NotTo(HaveOccurred())
			ids, err := testSeeder.SelectDocumentIDs(ctx, domain.CollectionBattles)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(Equal([]string{"b2"}))
		})

		It("returns the stored documents as raw JSON", func() {
			err := repository.UpsertDocuments(ctx, domain.CollectionProducts, []domain.Document{
				{ID: "1", Body: []byte(`{"name": "Axum Tee",  "id": "1", "price": 450}`)},
			})
			Expect(err).NotTo(HaveOccurred())

			documents, err := repository.ListDocuments(ctx, domain.CollectionProducts)

			Expect(err).NotTo(HaveOccurred())
			Expect(documents).To(BeComparableTo(
				[]json.RawMessage{[]byte(`{"id":"1","name":"Axum Tee","price":450}`)},
				comparer.JSONRawMessage(),
			))
		})

		It("rejects unknown collections", func() {
			_, err := repository.ListDocuments(ctx, domain.Collection("users"))

			Expect(err).To(MatchError(domain.ErrUnknownCollection))
		})
	})

	Describe("UserRepository", func() {
		var repository *repositories.UserRepository

		BeforeEach(func() {
			repository = repositories.NewUserRepository(pool)
		})

		It("creates and finds users by email and id", func() {
			user := stubs.NewUserStub().WithPasswordHash("hash").Get()

			created, err := repository.Create(ctx, user)
			Expect(err).NotTo(HaveOccurred())

			byEmail, err := repository.FindByEmail(ctx, user.Email)
			Expect(err).NotTo(HaveOccurred())
			Expect(byEmail).To(BeComparableTo(created, comparer.TimeWithinTolerance(1)))

			byID, err := repository.FindByID(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(byID.PasswordHash).To(Equal("hash"))
		})

		It("stores missing city and country as empty", func() {
			user := stubs.NewUserStub().WithLocation("", "").WithPasswordHash("hash").Get()

			_, err := repository.Create(ctx, user)
			Expect(err).NotTo(HaveOccurred())

			found, err := repository.FindByID(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Location).To(Equal(entities.UserLocation{}))
		})

		It("maps duplicate emails to ErrUserAlreadyExists", func() {
			user := stubs.NewUserStub().WithPasswordHash("hash").Get()
			testSeeder.InsertUser(ctx, &user)

			duplicate := stubs.NewUserStub().WithEmail(user.Email).WithPasswordHash("other").Get()
			_, err := repository.Create(ctx, duplicate)

			Expect(err).To(MatchError(domain.ErrUserAlreadyExists))
		})

		It("maps missing users to ErrUserNotFound", func() {
			_, err := repository.FindByID(ctx, uuid.New())

			Expect(err).To(MatchError(domain.ErrUserNotFound))
		})
	})

	Describe("OrderRepository", func() {
		var (
			repository *repositories.OrderRepository
			user       entities.User
		)

		BeforeEach(func() {
			repository = repositories.NewOrderRepository(pool)
			user = stubs.NewUserStub().WithPasswordHash("hash").Get()
			testSeeder.InsertUser(ctx, &user)
		})

		It("creates orders with a snapshot of the items", func() {
			order := stubs.NewOrderStub().WithUserID(user.ID).Get()

			created, err := repository.Create(ctx, order)
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeComparableTo(order, comparer.IgnoreTimestamps[entities.Order]()))

			count, err := testSeeder.CountOrders(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))

			orders, err := repository.ListByUser(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(orders).To(HaveExactElements(BeComparableTo(created, comparer.TimeWithinTolerance(1), comparer.MoneyWithinCents())))
		})

		It("lists only the user's orders, newest first", func() {
			now := time.Now().UTC()
			older := stubs.NewOrderStub().WithUserID(user.ID).WithCreatedAt(now.Add(-time.Hour)).Get()
			newer := stubs.NewOrderStub().WithUserID(user.ID).WithCreatedAt(now).Get()
			testSeeder.InsertOrder(ctx, &older)
			testSeeder.InsertOrder(ctx, &newer)

			someoneElse := stubs.NewUserStub().WithPasswordHash("hash").Get()
			testSeeder.InsertUser(ctx, &someoneElse)
			foreign := stubs.NewOrderStub().WithUserID(someoneElse.ID).Get()
			testSeeder.InsertOrder(ctx, &foreign)

			orders, err := repository.ListByUser(ctx, user.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(orders).To(HaveLen(2))
			Expect(orders[0].ID).To(Equal(newer.ID))
			Expect(orders[1].ID).To(Equal(older.ID))
		})
	})
})
