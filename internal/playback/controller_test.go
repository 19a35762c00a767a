package playback_test

import (
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/bal16/BubbleLab/internal/playback"
	"github.com/bal16/BubbleLab/internal/sequence"
	"github.com/bal16/BubbleLab/internal/timeline"
)

type recordingPublisher struct {
	mu     sync.Mutex
	frames []playback.Frame
	resets int
}

func (r *recordingPublisher) Publish(f playback.Frame) {
	r.mu.Lock()
	r.frames = append(r.frames, f)
	r.mu.Unlock()
}

func (r *recordingPublisher) Reset() {
	r.mu.Lock()
	r.resets++
	r.mu.Unlock()
}

func (r *recordingPublisher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *recordingPublisher) last() playback.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames[len(r.frames)-1]
}

func (r *recordingPublisher) resetCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resets
}

type speedBox struct{ ns atomic.Int64 }

func (s *speedBox) Speed() time.Duration { return time.Duration(s.ns.Load()) }
func (s *speedBox) set(d time.Duration)  { s.ns.Store(int64(d)) }

func newSpeed(d time.Duration) *speedBox {
	s := &speedBox{}
	s.set(d)
	return s
}

var _ = Describe("Controller", func() {
	const delay = 100 * time.Millisecond

	var (
		fc      *testingclock.FakeClock
		speed   *speedBox
		pub     *recordingPublisher
		hlog    *playback.HistoryLog
		ctrl    *playback.Controller
		stopped atomic.Int32
		tl      *timeline.Timeline
	)

	cursor := func() int { return ctrl.Status().Cursor }
	mode := func() playback.Mode { return ctrl.Status().Mode }

	tick := func() {
		GinkgoHelper()
		Eventually(fc.HasWaiters).Should(BeTrue())
		before := cursor()
		fc.Step(speed.Speed())
		Eventually(cursor).Should(Equal(before + 1))
	}

	BeforeEach(func() {
		fc = testingclock.NewFakeClock(time.Unix(0, 0))
		speed = newSpeed(delay)
		pub = &recordingPublisher{}
		hlog = playback.NewHistoryLog()
		stopped.Store(0)
		ctrl = playback.New(playback.Options{
			Clock:  fc,
			Speed:  speed,
			OnStop: func() { stopped.Add(1) },
		})
		ctrl.AddPublisher(pub)
		ctrl.AddPublisher(hlog)
		tl = timeline.Record(sequence.Sequence{5, 3, 8})
	})

	Describe("starting", func() {
		It("begins before the first step and clears publishers", func() {
			Expect(ctrl.Start(tl)).To(Succeed())

			Expect(ctrl.Status()).To(Equal(playback.Status{Mode: playback.Running, Cursor: -1, Total: tl.Len()}))
			Expect(pub.resetCount()).To(Equal(1))
			Expect(pub.count()).To(Equal(0))
		})

		It("publishes the initial step after one delay", func() {
			Expect(ctrl.Start(tl)).To(Succeed())
			tick()

			f := pub.last()
			Expect(f.Cursor).To(Equal(0))
			Expect(f.Step.Equal(tl.First())).To(BeTrue())
			Expect(f.Step.Highlight().Kind).To(Equal(timeline.KindNone))
			Expect(hlog.Len()).To(Equal(0))
		})

		It("rejects empty timelines", func() {
			Expect(ctrl.Start(nil)).To(MatchError(playback.ErrEmptyTimeline))
			Expect(mode()).To(Equal(playback.Idle))
		})

		It("rejects a second start while running", func() {
			Expect(ctrl.Start(tl)).To(Succeed())
			err := ctrl.Start(tl)
			Expect(err).To(MatchError(playback.ErrInvalidTransition))

			var te *playback.TransitionError
			Expect(err).To(BeAssignableToTypeOf(te))
			Expect(mode()).To(Equal(playback.Running))
		})
	})

	Describe("automatic advance", func() {
		It("runs to the last step and finishes", func() {
			Expect(ctrl.Start(tl)).To(Succeed())
			for i := 0; i < tl.Len(); i++ {
				tick()
			}

			Expect(mode()).To(Equal(playback.Finished))
			Expect(cursor()).To(Equal(tl.Len() - 1))
			Expect(pub.count()).To(Equal(tl.Len()))
			Expect(pub.last().Mode).To(Equal(playback.Finished))
			Expect(pub.last().Step.Highlight()).To(Equal(timeline.SortedFrom(0)))
			Expect(hlog.Len()).To(Equal(tl.Len() - 1))
			Consistently(fc.HasWaiters, 50*time.Millisecond).Should(BeFalse())
		})

		It("finishes a single-step timeline after one delay", func() {
			single := timeline.Record(sequence.Sequence{42})
			Expect(ctrl.Start(single)).To(Succeed())
			tick()

			Expect(mode()).To(Equal(playback.Finished))
			Expect(hlog.Len()).To(Equal(0))
		})

		It("reads the delay fresh for every wait", func() {
			Expect(ctrl.Start(tl)).To(Succeed())
			Eventually(fc.HasWaiters).Should(BeTrue())
			speed.set(5 * delay)

			fc.Step(delay)
			Eventually(cursor).Should(Equal(0))

			Eventually(fc.HasWaiters).Should(BeTrue())
			fc.Step(delay)
			Consistently(cursor, 50*time.Millisecond).Should(Equal(0))

			fc.Step(4 * delay)
			Eventually(cursor).Should(Equal(1))
		})

		It("can start again once finished", func() {
			Expect(ctrl.Start(tl)).To(Succeed())
			for i := 0; i < tl.Len(); i++ {
				tick()
			}
			Expect(ctrl.Start(tl)).To(Succeed())
			Expect(cursor()).To(Equal(-1))
			Expect(hlog.Len()).To(Equal(0))
			tick()
		})
	})

	Describe("pausing", func() {
		It("suspends a wait in flight and advances exactly once on resume", func() {
			Expect(ctrl.Start(tl)).To(Succeed())
			tick()

			Eventually(fc.HasWaiters).Should(BeTrue())
			Expect(ctrl.Pause()).To(Succeed())
			fc.Step(delay)
			Consistently(cursor, 50*time.Millisecond).Should(Equal(0))

			Expect(ctrl.Resume()).To(Succeed())
			Eventually(cursor).Should(Equal(1))
			Consistently(cursor, 50*time.Millisecond).Should(Equal(1))
		})

		It("does not alter the cursor", func() {
			Expect(ctrl.Start(tl)).To(Succeed())
			tick()
			tick()
			Expect(ctrl.Pause()).To(Succeed())
			Expect(ctrl.Status()).To(Equal(playback.Status{Mode: playback.Paused, Cursor: 1, Total: tl.Len()}))
		})

		It("finishes on resume when parked on the last step", func() {
			Expect(ctrl.Start(tl)).To(Succeed())
			Expect(ctrl.Pause()).To(Succeed())
			for i := 0; i < tl.Len()+3; i++ {
				Expect(ctrl.StepForward()).To(Succeed())
			}
			Expect(cursor()).To(Equal(tl.Len() - 1))
			Expect(mode()).To(Equal(playback.Paused))

			Expect(ctrl.Resume()).To(Succeed())
			Expect(mode()).To(Equal(playback.Finished))
		})
	})

	Describe("manual stepping", func() {
		BeforeEach(func() {
			Expect(ctrl.Start(tl)).To(Succeed())
			Expect(ctrl.Pause()).To(Succeed())
		})

		It("moves within the timeline bounds", func() {
			Expect(ctrl.StepBackward()).To(Succeed())
			Expect(cursor()).To(Equal(-1))

			Expect(ctrl.StepForward()).To(Succeed())
			Expect(cursor()).To(Equal(0))
			Expect(ctrl.StepBackward()).To(Succeed())
			Expect(cursor()).To(Equal(0))
		})

		It("is reversible at every reachable cursor", func() {
			Expect(ctrl.StepForward()).To(Succeed())
			for c := 0; c < tl.Len()-1; c++ {
				before := pub.last()
				Expect(ctrl.StepForward()).To(Succeed())
				Expect(ctrl.StepBackward()).To(Succeed())
				after := pub.last()

				Expect(after.Cursor).To(Equal(before.Cursor))
				Expect(after.Step.Equal(before.Step)).To(BeTrue())
				Expect(ctrl.StepForward()).To(Succeed())
			}
		})

		It("keeps the log length equal to the cursor", func() {
			moves := []bool{true, true, true, false, true, true, false, false, false, false, true, true, true, true, true, true, true, true, false}
			for _, fwd := range moves {
				if fwd {
					Expect(ctrl.StepForward()).To(Succeed())
				} else {
					Expect(ctrl.StepBackward()).To(Succeed())
				}
				Expect(hlog.Len()).To(Equal(max(0, cursor())))
			}
			Expect(hlog.Lines()[0]).To(Equal("[1] comparing 5 and 3"))
		})

		It("republishes identical frames on refresh", func() {
			for i := 0; i < 3; i++ {
				Expect(ctrl.StepForward()).To(Succeed())
			}
			ctrl.Refresh()
			first := pub.last()
			ctrl.Refresh()
			second := pub.last()

			Expect(second.Cursor).To(Equal(first.Cursor))
			Expect(second.Step.Equal(first.Step)).To(BeTrue())
			Expect(second.Step.Snapshot()).To(Equal(first.Step.Snapshot()))
			Expect(cursor()).To(Equal(2))
		})

		It("is rejected while running", func() {
			Expect(ctrl.Resume()).To(Succeed())
			Expect(ctrl.StepForward()).To(MatchError(playback.ErrInvalidTransition))
			Expect(ctrl.StepBackward()).To(MatchError(playback.ErrInvalidTransition))
			Expect(cursor()).To(Equal(-1))
		})
	})

	Describe("stopping", func() {
		It("cancels a wait in flight without publishing", func() {
			Expect(ctrl.Start(tl)).To(Succeed())
			Eventually(fc.HasWaiters).Should(BeTrue())

			Expect(ctrl.Stop()).To(Succeed())
			Expect(ctrl.Status()).To(Equal(playback.Status{Mode: playback.Idle, Cursor: -1, Total: 0}))

			fc.Step(delay)
			Consistently(pub.count, 50*time.Millisecond).Should(Equal(0))
			Expect(pub.resetCount()).To(Equal(2))
			Expect(stopped.Load()).To(Equal(int32(1)))
		})

		It("releases an advance suspended by pause", func() {
			Expect(ctrl.Start(tl)).To(Succeed())
			tick()
			Eventually(fc.HasWaiters).Should(BeTrue())
			Expect(ctrl.Pause()).To(Succeed())
			fc.Step(delay)

			Expect(ctrl.Stop()).To(Succeed())
			Consistently(pub.count, 50*time.Millisecond).Should(Equal(1))
			Expect(hlog.Len()).To(Equal(0))
		})

		It("drops the old generation on restart", func() {
			Expect(ctrl.Start(tl)).To(Succeed())
			Eventually(fc.HasWaiters).Should(BeTrue())
			Expect(ctrl.Stop()).To(Succeed())
			fc.Step(delay)
			Eventually(fc.HasWaiters).Should(BeFalse())

			other := timeline.Record(sequence.Sequence{9, 8, 7, 6})
			Expect(ctrl.Start(other)).To(Succeed())
			tick()

			Consistently(cursor, 50*time.Millisecond).Should(Equal(0))
			Expect(pub.count()).To(Equal(1))
			Expect(pub.last().Step.Equal(other.First())).To(BeTrue())
		})

		It("is rejected while idle", func() {
			Expect(ctrl.Stop()).To(MatchError(playback.ErrInvalidTransition))
			Expect(stopped.Load()).To(Equal(int32(0)))
		})
	})

	DescribeTable("operations outside their source mode",
		func(op func(*playback.Controller) error, name string) {
			err := op(ctrl)
			Expect(err).To(MatchError(playback.ErrInvalidTransition))
			Expect(err.Error()).To(ContainSubstring(name))
			Expect(ctrl.Status()).To(Equal(playback.Status{Mode: playback.Idle, Cursor: -1}))
		},
		Entry("pause", (*playback.Controller).Pause, "pause"),
		Entry("resume", (*playback.Controller).Resume, "resume"),
		Entry("step forward", (*playback.Controller).StepForward, "step forward"),
		Entry("step backward", (*playback.Controller).StepBackward, "step backward"),
		Entry("stop", (*playback.Controller).Stop, "stop"),
	)
})
