package table

import (
	"github.com/inburst/prhub/config"
	"github.com/inburst/prhub/datasource"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func keys(columns []Column) []ColumnKey {
	out := []ColumnKey{}
	for _, c := range columns {
		out = append(out, c.Key)
	}
	return out
}

var _ = Describe("BuildColumns", func() {
	It("returns the same columns in the same order every time", func() {
		expected := []ColumnKey{ColumnID, ColumnCreatedBy, ColumnTitle, ColumnRepository, ColumnStatus, ColumnReviewers}

		Expect(keys(BuildColumns())).To(Equal(expected))
		Expect(keys(BuildColumns())).To(Equal(expected))
	})

	It("only lacks an ordering for status and reviewers", func() {
		for _, c := range BuildColumns() {
			_, ok := c.Comparator()
			switch c.Key {
			case ColumnStatus, ColumnReviewers:
				Expect(ok).To(BeFalse(), string(c.Key))
			default:
				Expect(ok).To(BeTrue(), string(c.Key))
			}
		}
	})

	It("compares ids by subtraction", func() {
		cmp, _ := BuildColumns()[0].Comparator()

		Expect(cmp(&datasource.PullRequest{ID: 7}, &datasource.PullRequest{ID: 42})).To(BeNumerically("<", 0))
		Expect(cmp(&datasource.PullRequest{ID: 42}, &datasource.PullRequest{ID: 7})).To(BeNumerically(">", 0))
		Expect(cmp(&datasource.PullRequest{ID: 7}, &datasource.PullRequest{ID: 7})).To(Equal(0))
	})
})

var _ = Describe("ComputeBreakpoints", func() {
	It("builds the width vectors of the default columns", func() {
		widths := ComputeBreakpoints(BuildColumns(), DefaultBreakpoints())

		Expect(widths).To(HaveLen(3))
		Expect(widths[Small]).To(Equal([]int{0, 26, 0, 0, 0, 18}))
		Expect(widths[Medium]).To(Equal([]int{7, 26, 0, 0, 14, 18}))
		Expect(widths[Large]).To(Equal([]int{7, 26, 0, 0, 14, 18}))
	})

	It("never gives width to a column outside its breakpoints", func() {
		columns := BuildColumns()
		widths := ComputeBreakpoints(columns, DefaultBreakpoints())

		for name, vector := range widths {
			for i, c := range columns {
				if !c.VisibleAt(name) {
					Expect(vector[i]).To(Equal(0), "%s at %s", c.Key, name)
				}
			}
		}
	})

	It("never gives width to proportional columns", func() {
		columns := []Column{
			{Key: "everywhere", Width: -10, Breakpoints: []BreakpointName{Small, Medium, Large}},
			{Key: "fixed", Width: 12, Breakpoints: []BreakpointName{Large}},
			{Key: "nowhere", Width: 30},
		}
		widths := ComputeBreakpoints(columns, DefaultBreakpoints())

		Expect(widths[Small]).To(Equal([]int{0, 0, 0}))
		Expect(widths[Medium]).To(Equal([]int{0, 0, 0}))
		Expect(widths[Large]).To(Equal([]int{0, 12, 0}))
	})
})

var _ = Describe("Layout", func() {
	var layout *Layout

	BeforeEach(func() {
		layout = NewLayout(DefaultBreakpoints())
	})

	It("refuses duplicate column keys", func() {
		columns := []Column{{Key: "a"}, {Key: "a"}}
		Expect(func() { newLayout(columns, DefaultBreakpoints()) }).To(Panic())
	})

	It("orders breakpoints by width", func() {
		bps := BreakpointsFromConfig(config.BreakpointConfig{Medium: 80, Large: 120})
		l := NewLayout([]Breakpoint{bps[2], bps[0], bps[1]})

		Expect(l.Breakpoints[0].Name).To(Equal(Small))
		Expect(l.Breakpoints[1].Name).To(Equal(Medium))
		Expect(l.Breakpoints[2].Name).To(Equal(Large))
	})

	It("picks the widest breakpoint reached", func() {
		Expect(layout.ActiveBreakpoint(0).Name).To(Equal(Small))
		Expect(layout.ActiveBreakpoint(99).Name).To(Equal(Small))
		Expect(layout.ActiveBreakpoint(100).Name).To(Equal(Medium))
		Expect(layout.ActiveBreakpoint(139).Name).To(Equal(Medium))
		Expect(layout.ActiveBreakpoint(140).Name).To(Equal(Large))
		Expect(layout.ActiveBreakpoint(500).Name).To(Equal(Large))
	})

	Describe("Resolve", func() {
		widthOf := func(resolved []ResolvedColumn) map[ColumnKey]int {
			out := map[ColumnKey]int{}
			for _, rc := range resolved {
				out[rc.Key] = rc.Width
			}
			return out
		}

		It("gives the title the remaining space on medium screens", func() {
			resolved := layout.Resolve(120)

			Expect(widthOf(resolved)).To(Equal(map[ColumnKey]int{
				ColumnID:        7,
				ColumnCreatedBy: 26,
				ColumnTitle:     55,
				ColumnStatus:    14,
				ColumnReviewers: 18,
			}))
		})

		It("swaps the title for the repository on large screens", func() {
			resolved := layout.Resolve(200)

			Expect(widthOf(resolved)).To(Equal(map[ColumnKey]int{
				ColumnID:         7,
				ColumnCreatedBy:  26,
				ColumnRepository: 135,
				ColumnStatus:     14,
				ColumnReviewers:  18,
			}))
		})

		It("keeps the column order and sortability", func() {
			resolved := layout.Resolve(60)

			Expect(resolved).To(HaveLen(3))
			Expect(resolved[0].Key).To(Equal(ColumnCreatedBy))
			Expect(resolved[0].Sortable).To(BeTrue())
			Expect(resolved[1].Key).To(Equal(ColumnTitle))
			Expect(resolved[1].Width).To(Equal(16))
			Expect(resolved[2].Key).To(Equal(ColumnReviewers))
			Expect(resolved[2].Sortable).To(BeFalse())
			Expect(resolved[2].Index).To(Equal(5))
		})

		It("falls back to the minimum width when space runs out", func() {
			resolved := layout.Resolve(30)

			Expect(widthOf(resolved)[ColumnTitle]).To(Equal(10))
		})

		It("never resolves wider than the view", func() {
			for width := 0; width <= 220; width++ {
				resolved := layout.Resolve(width)
				total := 0
				for _, rc := range resolved {
					Expect(rc.Width).To(BeNumerically(">=", 0))
					total += rc.Width
				}
				Expect(total).To(BeNumerically("<=", width), "view width %d", width)
				Expect(resolved).NotTo(BeEmpty())
			}
		})

		It("shrinks fixed columns before dropping any", func() {
			Expect(widthOf(layout.Resolve(40))).To(Equal(map[ColumnKey]int{
				ColumnCreatedBy: 12,
				ColumnTitle:     10,
				ColumnReviewers: 18,
			}))
		})

		It("drops the rightmost columns once every column is at its minimum", func() {
			resolved := layout.Resolve(25)

			Expect(resolved).To(HaveLen(2))
			Expect(resolved[0].Key).To(Equal(ColumnCreatedBy))
			Expect(resolved[1].Key).To(Equal(ColumnTitle))
			Expect(widthOf(layout.Resolve(5))).To(Equal(map[ColumnKey]int{ColumnCreatedBy: 5}))
		})

		It("splits space between proportional columns by weight", func() {
			columns := []Column{
				{Key: "a", Width: -1, Breakpoints: []BreakpointName{Small}},
				{Key: "b", Width: 10, Breakpoints: []BreakpointName{Small}},
				{Key: "c", Width: -3, Breakpoints: []BreakpointName{Small}},
			}
			l := newLayout(columns, DefaultBreakpoints())

			Expect(widthOf(l.Resolve(50))).To(Equal(map[ColumnKey]int{"a": 10, "b": 10, "c": 30}))
		})
	})
})
