// Package table declares the pull request listing columns, the responsive
// breakpoints they appear at and the sorting applied from column headers.
package table

import (
	"sync"

	"github.com/inburst/prhub/datasource"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type ColumnKey string

const (
	ColumnID         ColumnKey = "id"
	ColumnCreatedBy  ColumnKey = "createdBy"
	ColumnTitle      ColumnKey = "title"
	ColumnRepository ColumnKey = "repository"
	ColumnStatus     ColumnKey = "status"
	ColumnReviewers  ColumnKey = "reviewers"
)

// Width is a column width in terminal cells. A negative width is a weight
// for sharing the space left over by the fixed columns.
type Width int

// Fixed returns the width in cells, ok is false for proportional widths.
func (w Width) Fixed() (cells int, ok bool) {
	if w < 0 {
		return 0, false
	}
	return int(w), true
}

func (w Width) Weight() int {
	if w >= 0 {
		return 0
	}
	return int(-w)
}

// Comparator orders two rows with the usual negative/zero/positive result.
type Comparator func(a, b *datasource.PullRequest) int

type SortLabels struct {
	Ascending  string
	Descending string
}

type Column struct {
	Key         ColumnKey
	Label       string
	MinWidth    int
	Width       Width
	SortLabels  SortLabels
	Breakpoints []BreakpointName

	compare Comparator
}

// Comparator returns the column ordering. Columns without a natural order
// report ok == false and must not be sorted.
func (c Column) Comparator() (cmp Comparator, ok bool) {
	return c.compare, c.compare != nil
}

func (c Column) Sortable() bool {
	return c.compare != nil
}

func (c Column) VisibleAt(name BreakpointName) bool {
	for _, bp := range c.Breakpoints {
		if bp == name {
			return true
		}
	}
	return false
}

var (
	numericSortLabels = SortLabels{Ascending: "Sorted low to high", Descending: "Sorted high to low"}
	textSortLabels    = SortLabels{Ascending: "Sorted A to Z", Descending: "Sorted Z to A"}
)

// BuildColumns returns the listing columns in display order.
func BuildColumns() []Column {
	text := newCollator()

	return []Column{
		{
			Key:         ColumnID,
			Label:       "ID",
			MinWidth:    6,
			Width:       7,
			SortLabels:  numericSortLabels,
			Breakpoints: []BreakpointName{Medium, Large},
			compare: func(a, b *datasource.PullRequest) int {
				return a.ID - b.ID
			},
		},
		{
			Key:         ColumnCreatedBy,
			Label:       "Created By",
			MinWidth:    10,
			Width:       26,
			SortLabels:  textSortLabels,
			Breakpoints: []BreakpointName{Small, Medium, Large},
			compare: func(a, b *datasource.PullRequest) int {
				return text.compare(a.CreatedBy.DisplayName, b.CreatedBy.DisplayName)
			},
		},
		{
			Key:         ColumnTitle,
			Label:       "Title",
			MinWidth:    10,
			Width:       -50,
			SortLabels:  textSortLabels,
			Breakpoints: []BreakpointName{Small, Medium},
			compare: func(a, b *datasource.PullRequest) int {
				return text.compare(a.Title, b.Title)
			},
		},
		{
			Key:         ColumnRepository,
			Label:       "Repository",
			MinWidth:    10,
			Width:       -50,
			SortLabels:  textSortLabels,
			Breakpoints: []BreakpointName{Large},
			compare: func(a, b *datasource.PullRequest) int {
				return text.compare(a.Repository.Name, b.Repository.Name)
			},
		},
		{
			Key:         ColumnStatus,
			Label:       "Status",
			MinWidth:    10,
			Width:       14,
			Breakpoints: []BreakpointName{Medium, Large},
		},
		{
			Key:         ColumnReviewers,
			Label:       "Reviewers",
			MinWidth:    10,
			Width:       18,
			Breakpoints: []BreakpointName{Small, Medium, Large},
		},
	}
}

// collator compares strings by locale rules. collate.Collator keeps
// internal buffers so calls are serialised.
type collator struct {
	mutex sync.Mutex
	c     *collate.Collator
}

func newCollator() *collator {
	return &collator{c: collate.New(language.English)}
}

func (c *collator) compare(a, b string) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.c.CompareString(a, b)
}
