package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"historyatlas/src/domain"
	"historyatlas/src/services/auth"
	"historyatlas/src/test_artefacts/fakes"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var _ = Describe("AuthService", func() {
	var (
		ctx            context.Context
		userRepository *fakes.UserRepository
		tokenManager   *auth.TokenManager
		authService    *auth.AuthService
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		userRepository = fakes.NewUserRepository()
		tokenManager, err = auth.NewTokenManager("test-secret", time.Hour)
		Expect(err).NotTo(HaveOccurred())
		authService = auth.NewAuthService(slog.New(slog.NewTextHandler(io.Discard, nil)), userRepository, tokenManager, bcrypt.MinCost)
	})

	signup := func(email, password string) domain.Session {
		session, err := authService.Signup(ctx, auth.SignupInput{
			Name:     "Ada Lovelace",
			Email:    email,
			Password: password,
			City:     "London",
		})
		Expect(err).NotTo(HaveOccurred())
		return session
	}

	Context("Signup", func() {
		It("creates the user and returns a session for it", func() {
			session := signup("Ada@Example.com ", "analytical")

			Expect(session.Token).NotTo(BeEmpty())
			Expect(session.User.Email).To(Equal("ada@example.com"))
			Expect(session.User.Location.City).To(Equal("London"))
			Expect(session.User.Location.Country).To(BeEmpty())
			Expect(bcrypt.CompareHashAndPassword([]byte(session.User.PasswordHash), []byte("analytical"))).To(Succeed())

			principal, err := tokenManager.Validate(session.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(principal.UserID).To(Equal(session.User.ID))
			Expect(principal.Email).To(Equal("ada@example.com"))
		})

		It("rejects an email that is already registered", func() {
			signup("ada@example.com", "analytical")

			_, err := authService.Signup(ctx, auth.SignupInput{Name: "Other", Email: "ADA@example.com", Password: "x"})

			Expect(err).To(MatchError(domain.ErrUserAlreadyExists))
			Expect(err.Error()).To(Equal("User already exists"))
			Expect(userRepository.Count()).To(Equal(1))
		})

		It("wraps repository failures", func() {
			userRepository.Err = errors.New("db down")

			_, err := authService.Signup(ctx, auth.SignupInput{Email: "a@b.c", Password: "x"})

			Expect(err).To(MatchError(ContainSubstring("db down")))
			Expect(errors.Is(err, domain.ErrUserAlreadyExists)).To(BeFalse())
		})
	})

	Context("Login", func() {
		It("returns a fresh session for valid credentials", func() {
			created := signup("ada@example.com", "analytical")

			session, err := authService.Login(ctx, " ADA@example.com", "analytical")

			Expect(err).NotTo(HaveOccurred())
			Expect(session.User.ID).To(Equal(created.User.ID))
			Expect(session.Token).NotTo(BeEmpty())
		})

		It("rejects a wrong password", func() {
			signup("ada@example.com", "analytical")

			_, err := authService.Login(ctx, "ada@example.com", "difference-engine")

			Expect(err).To(MatchError(domain.ErrInvalidCredentials))
		})

		It("rejects an unknown email with the same error", func() {
			_, err := authService.Login(ctx, "nobody@example.com", "whatever")

			Expect(err).To(MatchError(domain.ErrInvalidCredentials))
			Expect(err.Error()).To(Equal("Invalid credentials"))
		})
	})

	Context("Me", func() {
		It("returns the profile of the token owner", func() {
			session := signup("ada@example.com", "analytical")

			user, err := authService.Me(ctx, session.User.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(user.Name).To(Equal("Ada Lovelace"))
		})

		It("reports unknown users", func() {
			_, err := authService.Me(ctx, uuid.New())

			Expect(err).To(MatchError(domain.ErrUserNotFound))
		})
	})
})

var _ = Describe("TokenManager", func() {
	var tokenManager *auth.TokenManager

	BeforeEach(func() {
		var err error
		tokenManager, err = auth.NewTokenManager("test-secret", time.Hour)
		Expect(err).NotTo(HaveOccurred())
	})

	It("requires a secret", func() {
		_, err := auth.NewTokenManager("", time.Hour)

		Expect(err).To(HaveOccurred())
	})

	It("rejects expired tokens", func() {
		issuedLongAgo := tokenManager.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
		token, err := issuedLongAgo.Generate(someUser())
		Expect(err).NotTo(HaveOccurred())

		_, err = tokenManager.Validate(token)

		Expect(err).To(MatchError(domain.ErrInvalidToken))
	})

	It("rejects tokens signed with another secret", func() {
		other, _ := auth.NewTokenManager("other-secret", time.Hour)
		token, _ := other.Generate(someUser())

		_, err := tokenManager.Validate(token)

		Expect(err).To(MatchError(domain.ErrInvalidToken))
	})

	It("rejects unsigned tokens", func() {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &auth.Claims{UserID: uuid.NewString()}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		Expect(err).NotTo(HaveOccurred())

		_, err = tokenManager.Validate(token)

		Expect(err).To(MatchError(domain.ErrInvalidToken))
	})

	It("rejects garbage", func() {
		_, err := tokenManager.Validate("not-a-token")

		Expect(err).To(MatchError(domain.ErrInvalidToken))
	})
})
