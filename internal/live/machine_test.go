package live_test

import (
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tixyva/internal/canvas"
	"github.com/san-kum/tixyva/internal/live"
	"github.com/san-kum/tixyva/internal/patterns"
	"github.com/san-kum/tixyva/internal/script"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func typeText(m *live.Machine, s string) {
	for _, r := range s {
		m.HandleKey(live.RuneKey(r))
	}
}

var _ = Describe("Construct", func() {
	now := time.Unix(1000, 0)

	It("runs a valid script from the given start time", func() {
		mode := live.Construct("cos(t+i+x*y)", now)
		r, ok := mode.(live.Running)
		Expect(ok).To(BeTrue())
		Expect(r.Source).To(Equal("cos(t+i+x*y)"))
		Expect(r.Start).To(Equal(now))
		Expect(r.Program).NotTo(BeNil())
	})

	It("keeps the exact text of a script that does not compile", func() {
		mode := live.Construct("sin(x", now)
		e, ok := mode.(live.Editing)
		Expect(ok).To(BeTrue())
		Expect(e.Source).To(Equal("sin(x"))
		Expect(e.Err).To(HaveOccurred())
		Expect(e.Err.Error()).NotTo(BeEmpty())
		Expect(errors.Is(e.Err, script.ErrCompile)).To(BeTrue())
	})

	It("rejects unknown bindings", func() {
		_, ok := live.Construct("z*2", now).(live.Editing)
		Expect(ok).To(BeTrue())
	})
})

var _ = Describe("Machine", func() {
	var (
		clock *fakeClock
		m     *live.Machine
	)

	BeforeEach(func() {
		clock = &fakeClock{now: time.Unix(1000, 0)}
		m = live.New(patterns.Builtin, live.WithClock(clock.Now))
	})

	It("starts running the first pattern on a blank canvas", func() {
		r, ok := m.Mode().(live.Running)
		Expect(ok).To(BeTrue())
		Expect(r.Source).To(Equal(patterns.Builtin[0].Source))
		Expect(m.Canvas().Len()).To(Equal(canvas.DefaultWidth * canvas.DefaultHeight))
		Expect(m.Canvas().IsBlank()).To(BeTrue())
		Expect(m.Editor()).To(BeNil())
	})

	Describe("running", func() {
		It("evaluates cos(0) at the origin on the first frame", func() {
			Expect(m.Step(0)).To(Succeed())
			Expect(m.Canvas().At(0, 0)).To(BeNumerically("~", 1.0, 1e-9))
		})

		It("binds i, x and y to the cell position", func() {
			m.Load("i - (y*32 + x)")
			Expect(m.Step(0)).To(Succeed())
			for _, v := range m.Canvas().Cells {
				Expect(v).To(BeZero())
			}

			m.Load("x + 100*y")
			Expect(m.Step(0)).To(Succeed())
			Expect(m.Canvas().At(5, 7)).To(Equal(705.0))
		})

		It("feeds the previous frame back through a", func() {
			m.Load("a + 1")
			for n := 0; n < 3; n++ {
				Expect(m.Step(0)).To(Succeed())
			}
			Expect(m.Canvas().At(9, 9)).To(Equal(3.0))
		})

		It("passes the volume and elapsed time", func() {
			m.Load("v*10 + t")
			clock.Advance(2 * time.Second)
			Expect(m.Step(0.5)).To(Succeed())
			Expect(m.Canvas().At(0, 0)).To(BeNumerically("~", 7.0, 1e-9))
			Expect(m.Elapsed()).To(BeNumerically("~", 2.0, 1e-9))
		})

		It("leaves the canvas untouched when a cell fails", func() {
			// first frame fills the canvas with 1, the second divides by
			// zero at i=40 after the cells before it were computed
			src := "a > 0 ? int(i) % int(i - 40) + 0.5 : 1.0"
			Expect(m.Load(src)).To(BeTrue())
			Expect(m.Step(0)).To(Succeed())
			committed := m.Canvas().Clone()
			Expect(committed.At(0, 0)).To(Equal(1.0))

			err := m.Step(0)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, script.ErrEval)).To(BeTrue())

			var fe *live.FrameError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(fe.Index).To(Equal(40))

			for _, v := range m.Canvas().Cells {
				Expect(v).To(Equal(1.0))
			}

			e, ok := m.Mode().(live.Editing)
			Expect(ok).To(BeTrue())
			Expect(e.Source).To(Equal(src))
			Expect(e.Err).To(MatchError(err))
			Expect(m.Editor().Text()).To(Equal(src))
		})

		It("does not evaluate while editing", func() {
			m.HandleKey(live.Key{Code: live.KeyEscape})
			Expect(m.Step(0)).To(Succeed())
			Expect(m.Canvas().IsBlank()).To(BeTrue())
		})

		It("quits on interrupt", func() {
			Expect(m.HandleKey(live.Key{Code: live.KeyInterrupt})).To(Equal(live.ActionQuit))
		})

		It("ignores digits without a pattern", func() {
			m = live.New(patterns.Builtin[:2], live.WithClock(clock.Now))
			Expect(m.Step(0)).To(Succeed())
			before := m.Canvas().Clone()

			Expect(m.HandleKey(live.RuneKey('7'))).To(Equal(live.ActionNone))
			Expect(m.Mode().Text()).To(Equal(patterns.Builtin[0].Source))
			Expect(m.Canvas().Equal(before)).To(BeTrue())
		})

		It("resets every cell when a pattern is selected", func() {
			Expect(m.Step(0)).To(Succeed())
			Expect(m.Canvas().IsBlank()).To(BeFalse())

			Expect(m.HandleKey(live.RuneKey('2'))).To(Equal(live.ActionRedraw))
			Expect(m.Mode().Text()).To(Equal(patterns.Builtin[2].Source))
			for _, v := range m.Canvas().Cells {
				Expect(v).To(Equal(0.0))
			}
		})

		It("restarts time when a pattern is selected", func() {
			clock.Advance(5 * time.Second)
			m.HandleKey(live.RuneKey('1'))
			Expect(m.Elapsed()).To(BeZero())
		})
	})

	Describe("escape round trip", func() {
		var before canvas.Canvas

		BeforeEach(func() {
			Expect(m.Step(0)).To(Succeed())
			clock.Advance(time.Second)
			Expect(m.Step(0)).To(Succeed())
			before = m.Canvas().Clone()
		})

		It("enters editing without an error and keeps the canvas", func() {
			Expect(m.HandleKey(live.Key{Code: live.KeyEscape})).To(Equal(live.ActionRedraw))

			e, ok := m.Mode().(live.Editing)
			Expect(ok).To(BeTrue())
			Expect(e.Source).To(Equal(patterns.Builtin[0].Source))
			Expect(e.Err).NotTo(HaveOccurred())
			Expect(m.Canvas().Equal(before)).To(BeTrue())

			Expect(m.Editor()).NotTo(BeNil())
			Expect(m.Editor().Text()).To(Equal(e.Source))
			Expect(m.Editor().Cursor()).To(Equal(m.Editor().Len()))
		})

		It("returns to the same script and keeps the canvas on a second escape", func() {
			m.HandleKey(live.Key{Code: live.KeyEscape})
			m.HandleKey(live.Key{Code: live.KeyEscape})

			r, ok := m.Mode().(live.Running)
			Expect(ok).To(BeTrue())
			Expect(r.Source).To(Equal(patterns.Builtin[0].Source))
			Expect(m.Canvas().Equal(before)).To(BeTrue())
			Expect(m.Editor()).To(BeNil())
		})

		It("discards edits on escape", func() {
			m.HandleKey(live.Key{Code: live.KeyEscape})
			typeText(m, "+1")
			m.HandleKey(live.Key{Code: live.KeyEscape})

			Expect(m.Mode().Text()).To(Equal(patterns.Builtin[0].Source))
			Expect(m.Canvas().Equal(before)).To(BeTrue())
		})
	})

	Describe("editing", func() {
		BeforeEach(func() {
			m.HandleKey(live.RuneKey('2'))
			Expect(m.Step(0)).To(Succeed())
			m.HandleKey(live.Key{Code: live.KeyEscape})
		})

		It("commits the buffer on enter and resets the canvas", func() {
			m.HandleKey(live.Key{Code: live.KeyBackspace, Shift: true})
			typeText(m, "0")
			Expect(m.Editor().Text()).To(Equal("0"))

			Expect(m.HandleKey(live.Key{Code: live.KeyEnter})).To(Equal(live.ActionRedraw))
			r, ok := m.Mode().(live.Running)
			Expect(ok).To(BeTrue())
			Expect(r.Source).To(Equal("0"))
			Expect(m.Canvas().IsBlank()).To(BeTrue())
		})

		It("does not select patterns with digit keys", func() {
			m.HandleKey(live.Key{Code: live.KeyBackspace, Shift: true})
			typeText(m, "0")
			Expect(m.Mode()).To(BeAssignableToTypeOf(live.Editing{}))
			Expect(m.Mode().Text()).To(Equal(patterns.Builtin[2].Source))
		})

		It("stays in editing with the typed text when the commit does not compile", func() {
			m.HandleKey(live.Key{Code: live.KeyBackspace, Shift: true})
			typeText(m, "sin(x")
			m.HandleKey(live.Key{Code: live.KeyEnter})

			e, ok := m.Mode().(live.Editing)
			Expect(ok).To(BeTrue())
			Expect(e.Source).To(Equal("sin(x"))
			Expect(e.Err).To(HaveOccurred())
			Expect(m.Editor().Text()).To(Equal("sin(x"))
		})

		It("edits at the cursor", func() {
			m.HandleKey(live.Key{Code: live.KeyBackspace, Shift: true})
			typeText(m, "xy")
			m.HandleKey(live.Key{Code: live.KeyLeft})
			typeText(m, "*")
			Expect(m.Editor().Text()).To(Equal("x*y"))

			m.HandleKey(live.Key{Code: live.KeyUp})
			Expect(m.Editor().Cursor()).To(Equal(0))
			m.HandleKey(live.Key{Code: live.KeyBackspace})
			Expect(m.Editor().Text()).To(Equal("x*y"))

			m.HandleKey(live.Key{Code: live.KeyDown})
			Expect(m.Editor().Cursor()).To(Equal(3))
			m.HandleKey(live.Key{Code: live.KeyRight})
			Expect(m.Editor().Cursor()).To(Equal(3))
			m.HandleKey(live.Key{Code: live.KeyBackspace})
			Expect(m.Editor().Text()).To(Equal("x*"))
		})

		It("uppercases shifted characters", func() {
			m.HandleKey(live.Key{Code: live.KeyBackspace, Shift: true})
			m.HandleKey(live.Key{Code: live.KeyRune, Rune: 'p', Shift: true})
			m.HandleKey(live.Key{Code: live.KeyRune, Rune: 'i', Shift: true})
			Expect(m.Editor().Text()).To(Equal("PI"))
		})

		It("ignores watched file loads", func() {
			Expect(m.Load("x")).To(BeFalse())
			Expect(m.Mode()).To(BeAssignableToTypeOf(live.Editing{}))
		})

		It("quits on interrupt", func() {
			Expect(m.HandleKey(live.Key{Code: live.KeyInterrupt})).To(Equal(live.ActionQuit))
		})
	})

	Describe("committing pattern zero from the editor", func() {
		It("runs pattern zero's text on a blank canvas", func() {
			m.HandleKey(live.RuneKey('1'))
			Expect(m.Step(0)).To(Succeed())
			m.HandleKey(live.Key{Code: live.KeyEscape})

			m.HandleKey(live.Key{Code: live.KeyBackspace, Shift: true})
			typeText(m, patterns.Builtin[0].Source)
			m.HandleKey(live.Key{Code: live.KeyEnter})

			Expect(m.Mode().Text()).To(Equal(patterns.Builtin[0].Source))
			Expect(m.Running()).To(BeTrue())
			Expect(m.Canvas().IsBlank()).To(BeTrue())
		})
	})
})

var _ = Describe("Advance", func() {
	It("does not modify the previous canvas", func() {
		prev := canvas.New(8, 8)
		next, err := live.Advance(script.MustCompile("x + 1"), prev, 0, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(prev.IsBlank()).To(BeTrue())
		Expect(next.At(7, 0)).To(Equal(8.0))
	})

	It("reports the failing index", func() {
		prev := canvas.New(4, 4)
		_, err := live.Advance(script.MustCompile("int(x) % int(y - 2)"), prev, 0, 0)
		var fe *live.FrameError
		Expect(errors.As(err, &fe)).To(BeTrue())
		Expect(fe.Index).To(Equal(8))
	})

	It("lets NaN through as a value", func() {
		next, err := live.Advance(script.MustCompile("a / a"), canvas.New(2, 2), 0, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(math.IsNaN(next.Cells[0])).To(BeTrue())
	})
})

var _ = Describe("FrameDelay", func() {
	It("waits out the rest of the budget", func() {
		budget := live.FrameBudget(30)
		Expect(live.FrameDelay(budget, 10*time.Millisecond)).To(Equal(budget - 10*time.Millisecond))
	})

	It("never goes negative on overrun", func() {
		Expect(live.FrameDelay(live.FrameBudget(30), time.Second)).To(BeZero())
	})

	It("falls back to the default rate", func() {
		Expect(live.FrameBudget(0)).To(Equal(time.Second / live.DefaultFPS))
	})
})
