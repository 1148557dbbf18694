package ui

import (
	"github.com/inburst/prhub/datasource"
	"github.com/inburst/prhub/table"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func rows() []*datasource.PullRequest {
	return []*datasource.PullRequest{
		{ID: 1, CreatedBy: datasource.Identity{UniqueName: "ada"}, Repository: datasource.Repository{ID: "r"}},
		{ID: 2, CreatedBy: datasource.Identity{UniqueName: "bob"}, IsDraft: true, Repository: datasource.Repository{ID: "r"},
			Reviewers: []datasource.Reviewer{{Identity: datasource.Identity{UniqueName: "ada"}}}},
		{ID: 3, CreatedBy: datasource.Identity{UniqueName: "ada"}, IsDraft: true, Repository: datasource.Repository{ID: "r"}},
	}
}

func viewIDs(v *PRView) []int {
	out := []int{}
	for _, pr := range v.GetPulls() {
		out = append(out, pr.ID)
	}
	return out
}

var _ = Describe("PRView", func() {
	It("filters rows per tab", func() {
		views := []*PRView{AllPRs(), MyPRs("ada"), ReviewingPRs("ada"), DraftPRs()}
		for _, v := range views {
			v.OnNewPullData(rows())
		}

		Expect(viewIDs(views[0])).To(Equal([]int{1, 2, 3}))
		Expect(viewIDs(views[1])).To(Equal([]int{1, 3}))
		Expect(viewIDs(views[2])).To(Equal([]int{2}))
		Expect(viewIDs(views[3])).To(Equal([]int{2, 3}))
	})

	It("keeps the cursor inside the rows", func() {
		v := AllPRs()
		Expect(v.GetSelectedPull()).To(BeNil())
		Expect(v.OnCursorMove(1)).To(BeFalse())

		v.OnNewPullData(rows())
		Expect(v.OnCursorMove(-1)).To(BeFalse())
		Expect(v.OnCursorMove(5)).To(BeTrue())
		Expect(v.GetSelectedIndex()).To(Equal(2))
	})

	It("follows the selected row when the order changes", func() {
		v := AllPRs()
		r := rows()
		v.OnNewPullData(r)
		v.OnCursorMove(1)
		Expect(v.GetSelectedPull().ID).To(Equal(2))

		v.OnNewPullData([]*datasource.PullRequest{r[2], r[1], r[0]})
		Expect(v.GetSelectedIndex()).To(Equal(1))
		Expect(v.GetSelectedPull().ID).To(Equal(2))

		v.OnNewPullData(r[:1])
		Expect(v.GetSelectedIndex()).To(Equal(0))

		v.Clear()
		Expect(v.GetPulls()).To(BeEmpty())
	})
})

var _ = Describe("SortState", func() {
	layout := table.NewLayout(table.DefaultBreakpoints())

	It("starts unsorted", func() {
		s := NewSortState()
		Expect(s.Sorted()).To(BeFalse())
		Expect(s.Label(layout)).To(BeEmpty())
		Expect(s.ToggleDirection()).To(Equal(s))
	})

	It("flips the direction when the same column is picked again", func() {
		s := NewSortState().Select(0)
		Expect(s.Direction).To(Equal(table.Ascending))
		Expect(s.Label(layout)).To(Equal("Sorted low to high"))

		s = s.Select(0)
		Expect(s.Direction).To(Equal(table.Descending))
		Expect(s.Label(layout)).To(Equal("Sorted high to low"))

		s = s.Select(2)
		Expect(s.Column).To(Equal(2))
		Expect(s.Direction).To(Equal(table.Ascending))
		Expect(s.Label(layout)).To(Equal("Sorted A to Z"))
		Expect(s.ToggleDirection().Label(layout)).To(Equal("Sorted Z to A"))
	})
})
