package engagement

import (
	"time"

	"github.com/samber/lo"

	"inkwell/internal/core"
)

const (
	timelineDays = 7
	dateLayout   = "2006-01-02"
)

// ComputeDashboard aggregates the statistics of a user from the posts they
// authored and the number of comments they wrote. Day boundaries of the timeline
// are midnights in now's location.
func ComputeDashboard(posts []*core.Post, commentsCount int, now time.Time) core.DashboardSnapshot {
	return core.DashboardSnapshot{
		PostsCount: len(posts),
		LikesReceived: lo.SumBy(posts, func(post *core.Post) int {
			return len(post.LikedBy)
		}),
		CommentsCount: commentsCount,
		LikesTimeline: postsPerDay(posts, now),
	}
}

// postsPerDay counts posts created on each of the last seven calendar days,
// oldest first, today last.
func postsPerDay(posts []*core.Post, now time.Time) []core.TimelineEntry {
	timeline := make([]core.TimelineEntry, 0, timelineDays)

	year, month, day := now.Date()

	for i := timelineDays - 1; i >= 0; i-- {
		start := time.Date(year, month, day-i, 0, 0, 0, 0, now.Location())
		end := time.Date(year, month, day-i, 23, 59, 59, int(999*time.Millisecond), now.Location())

		count := lo.CountBy(posts, func(post *core.Post) bool {
			createdAt := post.CreatedAt.In(now.Location())
			return !createdAt.Before(start) && !createdAt.After(end)
		})

		timeline = append(timeline, core.TimelineEntry{
			Date:  start.Format(dateLayout),
			Count: count,
		})
	}

	return timeline
}
