package storage_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"historyatlas/src/client/storage"
)

type profile struct {
	Name string `json:"name"`
}

func behavesLikeKeyValueStore(newStore func() storage.KeyValueStore) {
	var store storage.KeyValueStore

	BeforeEach(func() {
		store = newStore()
	})

	It("reports absent keys", func() {
		value, ok, err := store.Get(storage.KeyToken)

		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
		Expect(value).To(BeEmpty())
	})

	It("overwrites and deletes keys independently", func() {
		// ARRANGE
		Expect(store.Set(storage.KeyToken, "a")).To(Succeed())
		Expect(store.Set(storage.KeyToken, "b")).To(Succeed())
		Expect(store.Set(storage.KeyCart, "[]")).To(Succeed())

		// ACT
		Expect(store.Delete(storage.KeyCart, storage.KeyUser)).To(Succeed())

		// ASSERT
		token, ok, err := store.Get(storage.KeyToken)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(token).To(Equal("b"))

		_, ok, err = store.Get(storage.KeyCart)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("writes several keys together", func() {
		Expect(store.Set(storage.KeyToken, "old")).To(Succeed())

		err := store.SetMany(map[string]string{
			storage.KeyToken: "new",
			storage.KeyUser:  `{"name": "Taytu"}`,
		})

		Expect(err).NotTo(HaveOccurred())
		token, _, _ := store.Get(storage.KeyToken)
		Expect(token).To(Equal("new"))
		user, ok, _ := store.Get(storage.KeyUser)
		Expect(ok).To(BeTrue())
		Expect(user).To(Equal(`{"name": "Taytu"}`))
	})

	It("round-trips JSON values", func() {
		Expect(storage.SetJSON(store, storage.KeyUser, profile{Name: "Taytu"})).To(Succeed())

		var loaded profile
		found, err := storage.GetJSON(store, storage.KeyUser, &loaded)

		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(loaded.Name).To(Equal("Taytu"))
	})

	It("fails on corrupted JSON values", func() {
		Expect(store.Set(storage.KeyUser, "{not json")).To(Succeed())

		var loaded profile
		_, err := storage.GetJSON(store, storage.KeyUser, &loaded)

		Expect(err).To(MatchError(ContainSubstring("decode user")))
	})
}

var _ = Describe("MemoryStore", func() {
	behavesLikeKeyValueStore(func() storage.KeyValueStore {
		return storage.NewMemoryStore()
	})
})

var _ = Describe("BadgerStore", func() {
	behavesLikeKeyValueStore(func() storage.KeyValueStore {
		store, err := storage.OpenBadgerStore("")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(store.Close)
		return store
	})

	It("keeps values across reopen", func() {
		dir := GinkgoT().TempDir()

		store, err := storage.OpenBadgerStore(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Set(storage.KeyToken, "persisted")).To(Succeed())
		Expect(store.Close()).To(Succeed())

		reopened, err := storage.OpenBadgerStore(dir)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(reopened.Close)

		value, ok, err := reopened.Get(storage.KeyToken)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(value).To(Equal("persisted"))
	})
})
