package timeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"historyatlas/src/test_artefacts/stubs"
	"historyatlas/src/timeline"
)

var _ = Describe("Year resolution", func() {
	Context("DisplayYear", func() {
		It("prefers a battle's year", func() {
			battle := stubs.NewBattleStub().WithYear(stubs.Year(1896)).Get()

			Expect(timeline.DisplayYear(timeline.BattleEntry{Battle: battle})).To(Equal(1896))
		})

		It("uses startYear, then endYear, for ranged entries", func() {
			withStart := stubs.NewRulerStub().WithYears(stubs.Year(1700), stubs.Year(1750)).Get()
			onlyEnd := stubs.NewPersonStub().WithYears(nil, stubs.Year(1821)).Get()
			zeroStart := stubs.NewPlaceStub().WithYears(stubs.Year(0), stubs.Year(1453)).Get()

			Expect(timeline.DisplayYear(timeline.RulerEntry{Ruler: withStart})).To(Equal(1700))
			Expect(timeline.DisplayYear(timeline.PersonEntry{Person: onlyEnd})).To(Equal(1821))
			Expect(timeline.DisplayYear(timeline.PlaceEntry{Place: zeroStart})).To(Equal(1453))
		})

		It("falls back to zero when no year is known", func() {
			ruler := stubs.NewRulerStub().WithYears(nil, nil).Get()
			battle := stubs.NewBattleStub().WithYear(nil).Get()

			Expect(timeline.DisplayYear(timeline.RulerEntry{Ruler: ruler})).To(BeZero())
			Expect(timeline.DisplayYear(timeline.BattleEntry{Battle: battle})).To(BeZero())
		})
	})

	Context("ActiveAt", func() {
		When("only startYear is set", func() {
			It("is active from startYear onward", func() {
				start := stubs.Year(1855)

				for y := 1800; y < 1855; y++ {
					Expect(timeline.ActiveAt(y, start, nil)).To(BeFalse(), "year %d", y)
				}
				for y := 1855; y <= 2026; y++ {
					Expect(timeline.ActiveAt(y, start, nil)).To(BeTrue(), "year %d", y)
				}
			})
		})

		When("both ends are set", func() {
			It("is active only inside the closed range", func() {
				start, end := stubs.Year(1762), stubs.Year(1796)

				Expect(timeline.ActiveAt(1761, start, end)).To(BeFalse())
				Expect(timeline.ActiveAt(1762, start, end)).To(BeTrue())
				Expect(timeline.ActiveAt(1780, start, end)).To(BeTrue())
				Expect(timeline.ActiveAt(1796, start, end)).To(BeTrue())
				Expect(timeline.ActiveAt(1797, start, end)).To(BeFalse())
			})
		})

		When("startYear is missing", func() {
			It("is never active", func() {
				Expect(timeline.ActiveAt(1780, nil, nil)).To(BeFalse())
				Expect(timeline.ActiveAt(1780, nil, stubs.Year(1800))).To(BeFalse())
			})
		})
	})

	Context("VisibleAt", func() {
		It("matches battles only on their exact year", func() {
			battle := timeline.BattleEntry{Battle: stubs.NewBattleStub().WithYear(stubs.Year(1896)).Get()}

			Expect(timeline.VisibleAt(battle, 1895)).To(BeFalse())
			Expect(timeline.VisibleAt(battle, 1896)).To(BeTrue())
			Expect(timeline.VisibleAt(battle, 1897)).To(BeFalse())
		})

		It("treats a battle without year as never visible", func() {
			battle := timeline.BattleEntry{Battle: stubs.NewBattleStub().WithYear(nil).Get()}

			Expect(timeline.VisibleAt(battle, 0)).To(BeFalse())
		})

		It("uses range membership for everything else", func() {
			person := timeline.PersonEntry{Person: stubs.NewPersonStub().WithYears(stubs.Year(1769), stubs.Year(1821)).Get()}

			Expect(timeline.VisibleAt(person, 1800)).To(BeTrue())
			Expect(timeline.VisibleAt(person, 1822)).To(BeFalse())
		})
	})
})
