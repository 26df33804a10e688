package memory

import (
	"context"
	"slices"
	"strings"

	"inkwell/internal/core"
)

type Activities struct {
	*Store
}

func (r *Activities) Insert(_ context.Context, activities ...core.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, activity := range activities {
		if _, ok := r.activities[activity.ID]; ok {
			continue
		}
		r.activities[activity.ID] = activity
	}

	return nil
}

func (r *Activities) ListForPostAuthor(_ context.Context, authorID string, limit int) ([]core.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activities := make([]core.Activity, 0)
	for _, activity := range r.activities {
		if activity.PostAuthorID == authorID {
			activities = append(activities, activity)
		}
	}

	slices.SortFunc(activities, func(a, b core.Activity) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	if limit > 0 && len(activities) > limit {
		activities = activities[:limit]
	}

	return activities, nil
}
