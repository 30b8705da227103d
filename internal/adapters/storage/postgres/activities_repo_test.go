package postgres

import (
	"strings"
	"testing"
	"time"

	"pet-health/internal/domain/activities"

	"github.com/stretchr/testify/assert"
)

func TestActivityListQuery_Defaults(t *testing.T) {
	q, args := activityListQuery("pet-1", activities.ListFilter{})

	assert.True(t, strings.HasSuffix(q, " ORDER BY occurred_at DESC LIMIT $2"))
	assert.Equal(t, []any{"pet-1", 50}, args)
}

func TestActivityListQuery_AllFilters(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	q, args := activityListQuery("pet-1", activities.ListFilter{
		Types: []activities.Type{activities.TypeVitals, activities.TypeCheckup},
		From:  &from,
		To:    &to,
		Query: " weight ",
		Limit: 500,
	})

	assert.Contains(t, q, "type IN ($2,$3)")
	assert.Contains(t, q, "occurred_at >= $4")
	assert.Contains(t, q, "occurred_at <= $5")
	assert.Contains(t, q, "(title ILIKE $6 OR description ILIKE $6)")
	assert.Contains(t, q, "LIMIT $7")
	assert.Equal(t, []any{"pet-1", "vitals", "checkup", from, to, "%weight%", activities.MaxLimit}, args)
}
