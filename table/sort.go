package table

import (
	"github.com/inburst/prhub/datasource"
	"github.com/inburst/prhub/logger"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

var ErrUnknownColumn = errors.New("unknown column")

type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

func (d SortDirection) Toggle() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

func ParseSortDirection(s string) (SortDirection, error) {
	switch s {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, errors.Errorf("unknown sort direction %q", s)
}

// Sort returns rows ordered by the column at columnIndex. The result is a new
// slice and ties keep their relative order. Columns without a comparator
// return rows unchanged.
func (l *Layout) Sort(columnIndex int, direction SortDirection, rows []*datasource.PullRequest) []*datasource.PullRequest {
	if columnIndex < 0 || columnIndex >= len(l.Columns) {
		logger.Shared().Warnf("sort requested on unknown column %d", columnIndex)
		return rows
	}
	cmp, ok := l.Columns[columnIndex].Comparator()
	if !ok {
		return rows
	}

	sorted := make([]*datasource.PullRequest, len(rows))
	copy(sorted, rows)
	slices.SortStableFunc(sorted, func(a, b *datasource.PullRequest) int {
		if direction == Descending {
			return -cmp(a, b)
		}
		return cmp(a, b)
	})
	return sorted
}

func (l *Layout) SortByKey(key ColumnKey, direction SortDirection, rows []*datasource.PullRequest) ([]*datasource.PullRequest, error) {
	i, ok := l.ColumnIndex(key)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownColumn, "%q", key)
	}
	return l.Sort(i, direction, rows), nil
}
