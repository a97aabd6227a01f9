package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"historyatlas/src/client/api"
	"historyatlas/src/client/auth"
	"historyatlas/src/client/storage"
	"historyatlas/src/domain/entities"
)

const sessionBody = `{"token": "tok-1", "user": {"id": "2f1ad0e6-6a3c-4d8e-8a0f-3b1f1f0b9d11", "name": "Taytu", "email": "taytu@example.com", "location": {"city": "Addis Ababa"}}}`

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// readOnlyStore aceita leituras e recusa qualquer escrita.
type readOnlyStore struct {
	*storage.MemoryStore
}

var errDiskFull = errors.New("disk full")

func (readOnlyStore) Set(string, string) error        { return errDiskFull }
func (readOnlyStore) SetMany(map[string]string) error { return errDiskFull }

var _ = Describe("Session", func() {
	var (
		ctx      context.Context
		mux      *http.ServeMux
		store    *storage.MemoryStore
		client   *api.Client
		requests atomic.Int32
	)

	BeforeEach(func() {
		ctx = context.Background()
		requests.Store(0)
		mux = http.NewServeMux()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			mux.ServeHTTP(w, r)
		}))
		DeferCleanup(server.Close)
		client = api.NewClient(server.URL + "/api")
		store = storage.NewMemoryStore()
	})

	load := func() *auth.Session {
		session, err := auth.LoadSession(client, store)
		Expect(err).NotTo(HaveOccurred())
		return session
	}

	Describe("LoadSession", func() {
		It("starts logged out on an empty store", func() {
			session := load()

			Expect(session.LoggedIn()).To(BeFalse())
			_, ok := session.User()
			Expect(ok).To(BeFalse())
		})

		It("needs both token and user to be logged in", func() {
			Expect(store.Set(storage.KeyToken, "tok")).To(Succeed())

			Expect(load().LoggedIn()).To(BeFalse())
		})

		It("restores a persisted session", func() {
			Expect(store.Set(storage.KeyToken, "tok")).To(Succeed())
			Expect(store.Set(storage.KeyUser, `{"name": "Taytu", "email": "taytu@example.com"}`)).To(Succeed())

			session := load()

			Expect(session.LoggedIn()).To(BeTrue())
			user, _ := session.User()
			Expect(user.Name).To(Equal("Taytu"))
		})
	})

	Describe("Login", func() {
		It("persists and exposes the session on success", func() {
			// ARRANGE
			mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
				respond(w, http.StatusOK, sessionBody)
			})
			session := load()

			// ACT
			user, err := session.Login(ctx, "taytu@example.com", "secret")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Email).To(Equal("taytu@example.com"))
			Expect(session.LoggedIn()).To(BeTrue())
			Expect(session.Token()).To(Equal("tok-1"))

			token, _, _ := store.Get(storage.KeyToken)
			Expect(token).To(Equal("tok-1"))
			rawUser, _, _ := store.Get(storage.KeyUser)
			Expect(rawUser).To(ContainSubstring(`"Taytu"`))
			Expect(load().LoggedIn()).To(BeTrue())
		})

		It("leaves the previous state untouched on failure", func() {
			mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
				respond(w, http.StatusBadRequest, `{"error": "Invalid credentials"}`)
			})
			session := load()

			_, err := session.Login(ctx, "taytu@example.com", "wrong")

			Expect(err).To(MatchError("Invalid credentials"))
			Expect(session.LoggedIn()).To(BeFalse())
			_, ok, _ := store.Get(storage.KeyToken)
			Expect(ok).To(BeFalse())
		})

		It("keeps the previous account paired with its token when persisting fails", func() {
			// ARRANGE
			previous := storage.NewMemoryStore()
			Expect(previous.Set(storage.KeyToken, "tok-old")).To(Succeed())
			Expect(previous.Set(storage.KeyUser, `{"name": "Zewditu", "email": "zewditu@example.com"}`)).To(Succeed())
			store := readOnlyStore{MemoryStore: previous}

			mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
				respond(w, http.StatusOK, sessionBody)
			})
			session, err := auth.LoadSession(client, store)
			Expect(err).NotTo(HaveOccurred())

			// ACT
			_, err = session.Login(ctx, "taytu@example.com", "secret")

			// ASSERT
			Expect(err).To(MatchError(errDiskFull))
			Expect(session.Token()).To(Equal("tok-old"))

			reloaded, err := auth.LoadSession(client, store)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.Token()).To(Equal("tok-old"))
			user, _ := reloaded.User()
			Expect(user.Email).To(Equal("zewditu@example.com"))
		})
	})

	It("signs up and logs out", func() {
		// ARRANGE
		mux.HandleFunc("POST /api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusCreated, sessionBody)
		})
		session := load()

		// ACT
		_, err := session.Signup(ctx, api.SignupRequest{Name: "Taytu", Email: "taytu@example.com", Password: "secret"})
		Expect(err).NotTo(HaveOccurred())
		Expect(session.Logout()).To(Succeed())

		// ASSERT
		Expect(session.LoggedIn()).To(BeFalse())
		_, ok, _ := store.Get(storage.KeyToken)
		Expect(ok).To(BeFalse())
		_, ok, _ = store.Get(storage.KeyUser)
		Expect(ok).To(BeFalse())
	})

	Describe("authenticated calls", func() {
		It("fail without a network call when logged out", func() {
			session := load()

			_, err := session.Orders(ctx)
			Expect(err).To(MatchError(auth.ErrNotAuthenticated))

			_, err = session.CreateOrder(ctx, []entities.LineItem{{ID: "p1", Quantity: 1}}, 10)
			Expect(err).To(MatchError(auth.ErrNotAuthenticated))

			Expect(requests.Load()).To(BeZero())
		})

		It("attach the bearer token", func() {
			// ARRANGE
			Expect(store.Set(storage.KeyToken, "tok")).To(Succeed())
			Expect(store.Set(storage.KeyUser, `{"name": "Taytu"}`)).To(Succeed())
			mux.HandleFunc("GET /api/orders", func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "Bearer tok" {
					respond(w, http.StatusUnauthorized, `{"error": "Access token required"}`)
					return
				}
				respond(w, http.StatusOK, `[{"total": 10, "status": "completed", "items": []}]`)
			})

			// ACT
			orders, err := load().Orders(ctx)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(orders).To(HaveLen(1))
		})

		It("surface an expired token as the server's rejection", func() {
			Expect(store.Set(storage.KeyToken, "expired")).To(Succeed())
			Expect(store.Set(storage.KeyUser, `{"name": "Taytu"}`)).To(Succeed())
			mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
				respond(w, http.StatusForbidden, `{"error": "Invalid token"}`)
			})

			_, err := load().Me(ctx)

			Expect(err).To(MatchError("Invalid token"))
			Expect(api.StatusOf(err)).To(Equal(http.StatusForbidden))
		})
	})
})
