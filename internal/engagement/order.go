package engagement

import (
	"slices"
	"strings"

	"inkwell/internal/core"
)

func sortNewestFirst(posts []*core.Post) {
	slices.SortStableFunc(posts, func(a, b *core.Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
