package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/scheduler"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Scheduler", func() {
	var cfg internal.SchedulerConfig

	BeforeEach(func() {
		cfg = internal.DefaultConfig().Scheduler
		cfg.Timezone = "Asia/Jakarta"
		cfg.SweepTimeout = time.Second
	})

	It("should run a sweep on demand with a deadline", func() {
		s, err := scheduler.New(cfg, testLogger())
		Expect(err).NotTo(HaveOccurred())

		var hadDeadline bool
		var loc string
		s.Register("task-cleanup", func(ctx context.Context, now time.Time) (int, error) {
			_, hadDeadline = ctx.Deadline()
			loc = now.Location().String()
			return 3, nil
		})

		n, err := s.Run(context.Background(), "task-cleanup")
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(3))
		Expect(hadDeadline).To(BeTrue())
		Expect(loc).To(Equal("Asia/Jakarta"))
	})

	It("should surface sweep failures and unknown names", func() {
		s, err := scheduler.New(cfg, testLogger())
		Expect(err).NotTo(HaveOccurred())
		boom := errors.New("boom")
		s.Register("auto-absent", func(context.Context, time.Time) (int, error) { return 0, boom })

		_, err = s.Run(context.Background(), "auto-absent")
		Expect(err).To(MatchError(boom))

		_, err = s.Run(context.Background(), "nope")
		Expect(err).To(MatchError(ContainSubstring("unknown sweep")))
	})

	It("should reject a bad timezone", func() {
		cfg.Timezone = "Mars/Olympus"
		_, err := scheduler.New(cfg, testLogger())
		Expect(err).To(HaveOccurred())
	})

	It("should fire scheduled sweeps until stopped", func() {
		cfg.TaskCleanup = "@every 1s"
		cfg.JobPostClose = ""
		s, err := scheduler.New(cfg, testLogger())
		Expect(err).NotTo(HaveOccurred())

		var runs, skipped atomic.Int32
		s.Register("task-cleanup", func(context.Context, time.Time) (int, error) {
			runs.Add(1)
			return 0, nil
		})
		s.Register("job-post-close", func(context.Context, time.Time) (int, error) {
			skipped.Add(1)
			return 0, nil
		})
		Expect(s.Names()).To(Equal([]string{"job-post-close", "task-cleanup"}))

		Expect(s.Start()).To(Succeed())
		Eventually(runs.Load, 3*time.Second, 100*time.Millisecond).Should(BeNumerically(">=", 1))

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		Expect(s.Stop(ctx)).To(Succeed())
		Expect(skipped.Load()).To(BeZero())
	})
})
