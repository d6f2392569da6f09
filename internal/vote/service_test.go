package vote_test

import (
	"errors"
	"net/http"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/stretchr/testify/mock"
	"github.com/zhulik/vote/internal/audit"
	"github.com/zhulik/vote/internal/core"
	"github.com/zhulik/vote/internal/store/memory"
	"github.com/zhulik/vote/internal/vote"
	"github.com/zhulik/vote/testhelpers"
	"github.com/zhulik/vote/testhelpers/mocks"
)

var errConnectionRefused = errors.New("connection refused")

var options = vote.Options{A: "Cats", B: "Dogs", Title: "Vote"}

func tally(a, b int64) core.RenderModel {
	return core.RenderModel{CountA: a, CountB: b, LabelA: "Cats", LabelB: "Dogs", Title: "Vote"}
}

var _ = Describe("Service", func() {
	var store *memory.Store
	var observer *testhelpers.RecordingObserver
	var service *vote.Service

	BeforeEach(func(ctx SpecContext) {
		store = memory.NewStore()
		observer = &testhelpers.RecordingObserver{}
		service = vote.New(store, observer, options, time.Second, testhelpers.NewLogger())
	})

	Describe("Initialize", func() {
		Context("when counters do not exist", func() {
			It("seeds both with zero", func(ctx SpecContext) {
				Expect(service.Initialize(ctx)).To(Succeed())

				Expect(store.Get(ctx, "Cats")).To(Equal(int64(0)))
				Expect(store.Get(ctx, "Dogs")).To(Equal(int64(0)))
			})
		})

		Context("when counters exist", func() {
			It("keeps their values", func(ctx SpecContext) {
				lo.Must0(store.Set(ctx, "Cats", 4))

				Expect(service.Initialize(ctx)).To(Succeed())

				Expect(store.Get(ctx, "Cats")).To(Equal(int64(4)))
				Expect(store.Get(ctx, "Dogs")).To(Equal(int64(0)))
			})
		})

		Context("when the store is unreachable", func() {
			It("fails without touching the counters", func(ctx SpecContext) {
				storeMock := mocks.NewMockStore(GinkgoT())
				storeMock.On("Ping", mock.Anything).Return(errConnectionRefused).Once()

				service := vote.New(storeMock, observer, options, time.Second, testhelpers.NewLogger())

				err := service.Initialize(ctx)

				Expect(err).To(MatchError(core.ErrStoreUnreachable))
				Expect(err).To(MatchError(errConnectionRefused))
				storeMock.AssertNotCalled(GinkgoT(), "Get", mock.Anything, mock.Anything)
				storeMock.AssertNotCalled(GinkgoT(), "Set", mock.Anything, mock.Anything, mock.Anything)
			})
		})

		Context("when seeding fails", func() {
			It("returns an error", func(ctx SpecContext) {
				storeMock := mocks.NewMockStore(GinkgoT())
				storeMock.On("Ping", mock.Anything).Return(nil).Once()
				storeMock.On("Get", mock.Anything, "Cats").Return(int64(0), core.ErrKeyNotFound).Once()
				storeMock.On("Set", mock.Anything, "Cats", int64(0)).Return(errConnectionRefused).Once()

				service := vote.New(storeMock, observer, options, time.Second, testhelpers.NewLogger())

				Expect(service.Initialize(ctx)).To(MatchError(core.ErrStoreUnreachable))
			})
		})

		DescribeTable("rejects invalid options",
			func(ctx SpecContext, options vote.Options) {
				service := vote.New(store, observer, options, time.Second, testhelpers.NewLogger())

				Expect(service.Initialize(ctx)).To(MatchError(core.ErrInvalidOptions))
			},
			Entry("empty option", vote.Options{A: "Cats"}),
			Entry("same options", vote.Options{A: "Cats", B: "Cats"}),
			Entry("reserved option", vote.Options{A: "Cats", B: "reset"}),
		)
	})

	Context("when initialized", func() {
		BeforeEach(func(ctx SpecContext) {
			lo.Must0(service.Initialize(ctx))
		})

		Describe("Handle", func() {
			Context("when GET", func() {
				It("returns the current tally", func(ctx SpecContext) {
					lo.Must0(store.Set(ctx, "Dogs", 2))

					Expect(service.Handle(ctx, http.MethodGet, "")).To(Equal(tally(0, 2)))
				})
			})

			Context("when POST with an option", func() {
				It("increments the option", func(ctx SpecContext) {
					Expect(service.Handle(ctx, http.MethodPost, "Cats")).To(Equal(tally(1, 0)))
					Expect(store.Get(ctx, "Cats")).To(Equal(int64(1)))
				})
			})

			Context("when POST with reset", func() {
				It("zeroes both counters", func(ctx SpecContext) {
					lo.Must(service.Vote(ctx, "Cats"))

					Expect(service.Handle(ctx, http.MethodPost, core.ResetVote)).To(Equal(tally(0, 0)))
				})
			})

			Context("when POST with an unknown vote", func() {
				It("rejects it without touching the store", func(ctx SpecContext) {
					_, err := service.Handle(ctx, http.MethodPost, "Hamsters")

					Expect(err).To(MatchError(core.ErrInvalidVoteTarget))

					_, err = store.Get(ctx, "Hamsters")
					Expect(err).To(MatchError(core.ErrKeyNotFound))
				})
			})

			Context("when POST without a vote", func() {
				It("rejects it", func(ctx SpecContext) {
					_, err := service.Handle(ctx, http.MethodPost, "")

					Expect(err).To(MatchError(core.ErrInvalidVoteTarget))
				})
			})

			Context("when another method", func() {
				It("returns an error", func(ctx SpecContext) {
					_, err := service.Handle(ctx, http.MethodDelete, "")

					Expect(err).To(MatchError(core.ErrMethodNotAllowed))
				})
			})
		})

		Describe("Tally", func() {
			It("reads fresh values on every call", func(ctx SpecContext) {
				Expect(service.Tally(ctx)).To(Equal(tally(0, 0)))

				lo.Must(store.Incr(ctx, "Cats", 5))

				Expect(service.Tally(ctx)).To(Equal(tally(5, 0)))
			})
		})

		Describe("Vote", func() {
			It("counts every sequential vote exactly once", func(ctx SpecContext) {
				for range 25 {
					lo.Must(service.Vote(ctx, "Cats"))
				}

				Expect(service.Tally(ctx)).To(Equal(tally(25, 0)))
			})

			It("does not lose concurrent votes", func(ctx SpecContext) {
				wg := sync.WaitGroup{}
				wg.Add(10)

				for range 10 {
					go func() {
						defer GinkgoRecover()
						defer wg.Done()

						for range 10 {
							_, err := service.Vote(ctx, "Dogs")
							Expect(err).ToNot(HaveOccurred())
						}
					}()
				}

				wg.Wait()

				Expect(service.Tally(ctx)).To(Equal(tally(0, 100)))
			})

			It("returns (3, 1) after three Cats and one Dogs", func(ctx SpecContext) {
				for range 3 {
					lo.Must(service.Vote(ctx, "Cats"))
				}

				lo.Must(service.Vote(ctx, "Dogs"))

				Expect(service.Tally(ctx)).To(Equal(tally(3, 1)))
			})
		})

		Describe("Reset", func() {
			It("is idempotent", func(ctx SpecContext) {
				lo.Must(service.Vote(ctx, "Cats"))

				Expect(service.Reset(ctx)).To(Equal(tally(0, 0)))
				Expect(service.Reset(ctx)).To(Equal(tally(0, 0)))
				Expect(service.Tally(ctx)).To(Equal(tally(0, 0)))
			})

			It("reports every option to the observer", func(ctx SpecContext) {
				lo.Must(service.Vote(ctx, "Cats"))
				lo.Must(service.Vote(ctx, "Cats"))
				lo.Must(service.Vote(ctx, "Dogs"))

				lo.Must(service.Reset(ctx))

				events := observer.Events()
				Expect(events).To(HaveLen(2))

				Expect(events[0].Option).To(Equal("Cats"))
				Expect(events[0].Previous).To(Equal(int64(2)))
				Expect(events[0].Value).To(Equal(int64(0)))

				Expect(events[1].Option).To(Equal("Dogs"))
				Expect(events[1].Previous).To(Equal(int64(1)))
				Expect(events[1].Value).To(Equal(int64(0)))

				Expect(events[0].ID).ToNot(Equal(events[1].ID))
			})

			Context("when the observer fails", func() {
				It("still resets", func(ctx SpecContext) {
					lo.Must(service.Vote(ctx, "Cats"))

					failing := audit.Observers{audit.NewLogObserver(testhelpers.NewLogger()), failingObserver{}}
					service := vote.New(store, failing, options, time.Second, testhelpers.NewLogger())

					Expect(service.Reset(ctx)).To(Equal(tally(0, 0)))
				})
			})
		})

		It("plays the Cats and Dogs scenario", func(ctx SpecContext) {
			Expect(service.Handle(ctx, http.MethodGet, "")).To(Equal(tally(0, 0)))

			lo.Must(service.Handle(ctx, http.MethodPost, "Cats"))
			Expect(service.Handle(ctx, http.MethodGet, "")).To(Equal(tally(1, 0)))

			lo.Must(service.Handle(ctx, http.MethodPost, "Dogs"))
			Expect(service.Handle(ctx, http.MethodGet, "")).To(Equal(tally(1, 1)))

			lo.Must(service.Handle(ctx, http.MethodPost, "reset"))
			Expect(service.Handle(ctx, http.MethodGet, "")).To(Equal(tally(0, 0)))

			events := observer.Events()
			Expect(events).To(HaveLen(2))
			Expect(events[0].Previous).To(Equal(int64(1)))
			Expect(events[1].Previous).To(Equal(int64(1)))
		})
	})

	Describe("store failures during requests", func() {
		var storeMock *mocks.MockStore

		BeforeEach(func() {
			storeMock = mocks.NewMockStore(GinkgoT())
			service = vote.New(storeMock, observer, options, time.Second, testhelpers.NewLogger())
		})

		It("fails reads instead of returning zero", func(ctx SpecContext) {
			storeMock.On("Get", mock.Anything, "Cats").Return(int64(0), errConnectionRefused).Once()

			_, err := service.Tally(ctx)

			Expect(err).To(MatchError(core.ErrStoreUnavailable))
		})

		It("fails votes when increment fails", func(ctx SpecContext) {
			storeMock.On("Incr", mock.Anything, "Cats", int64(1)).Return(int64(0), errConnectionRefused).Once()

			_, err := service.Vote(ctx, "Cats")

			Expect(err).To(MatchError(core.ErrStoreUnavailable))
		})

		It("fails resets when a set fails and does not audit", func(ctx SpecContext) {
			storeMock.On("Get", mock.Anything, mock.Anything).Return(int64(1), nil).Twice()
			storeMock.On("Set", mock.Anything, "Cats", int64(0)).Return(errConnectionRefused).Once()

			_, err := service.Reset(ctx)

			Expect(err).To(MatchError(core.ErrStoreUnavailable))
			Expect(observer.Events()).To(BeEmpty())
		})
	})

	Describe("NewService", func() {
		It("builds the service from the injector", func(ctx SpecContext) {
			injector := testhelpers.NewInjector(testhelpers.NewConfig())
			do.ProvideValue[core.Store](injector, store)
			do.ProvideValue[core.AuditObserver](injector, observer)

			service, err := vote.NewService(injector)

			Expect(err).ToNot(HaveOccurred())
			Expect(service.Options()).To(Equal(vote.Options{A: "Cats", B: "Dogs", Title: "Vote"}))
			Expect(service.Initialize(ctx)).To(Succeed())
		})
	})
})
