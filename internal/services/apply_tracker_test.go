package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yungbote/careerpulse-backend/internal/platform/apierr"
)

func TestNormalizeApplyStatus(t *testing.T) {
	cases := map[string]string{
		"":          "planned",
		" Applied ": "applied",
		"INTERVIEW": "interview",
		"offer":     "offer",
		"rejected":  "rejected",
		"ghosted":   "planned",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeApplyStatus(in), in)
	}
}

func TestApplyTrackerUpsertKeepsCreatedAt(t *testing.T) {
	h := newHarness(t)
	tag := "  "
	first, err := h.apply.Upsert(h.ctx, ApplyTrackerUpsert{
		Role: "Backend Developer", Source: "LinkedIn", URL: "https://jobs.example.com/1", MatchTag: &tag,
	})
	require.NoError(t, err)
	assert.Equal(t, "planned", first.Status)
	assert.Nil(t, first.MatchTag)

	tag = "Highly Matched"
	second, err := h.at(testNow.Add(2*time.Hour)).apply.Upsert(h.ctx, ApplyTrackerUpsert{
		Role: "Backend Engineer", Source: "Naukri", URL: "https://jobs.example.com/1", MatchTag: &tag, Status: "Applied",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	assert.Equal(t, "Backend Engineer", second.Role)
	assert.Equal(t, "applied", second.Status)
	require.NotNil(t, second.MatchTag)
	assert.Equal(t, "Highly Matched", *second.MatchTag)

	items, err := h.apply.List(h.ctx, 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestApplyTrackerValidation(t *testing.T) {
	h := newHarness(t)
	_, err := h.apply.Upsert(h.ctx, ApplyTrackerUpsert{Role: "SDE", Source: " ", URL: "https://x"})
	ae, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, ae.Status)
	assert.EqualError(t, err, "role, source, and url are required")
}

func TestApplyTrackerStatusAndDeleteAreOwnerScoped(t *testing.T) {
	h := newHarness(t)
	item, err := h.apply.Upsert(h.ctx, ApplyTrackerUpsert{Role: "SDE", Source: "Indeed", URL: "https://x/2"})
	require.NoError(t, err)

	updated, err := h.at(testNow.Add(time.Hour)).apply.UpdateStatus(h.ctx, item.ID, "offer")
	require.NoError(t, err)
	assert.Equal(t, "offer", updated.Status)

	_, err = h.apply.UpdateStatus(h.ctx, uuid.New(), "offer")
	assert.Equal(t, 404, statusOf(err))
	assert.EqualError(t, err, "Item not found")

	other := newHarness(t)
	other.db = h.db
	other.at(testNow)
	assert.Equal(t, 404, statusOf(other.apply.Delete(other.ctx, item.ID)))

	require.NoError(t, h.apply.Delete(h.ctx, item.ID))
	assert.Equal(t, 404, statusOf(h.apply.Delete(h.ctx, item.ID)))
}

func TestApplyTrackerListOrderAndLimit(t *testing.T) {
	h := newHarness(t)
	for i, url := range []string{"https://a", "https://b", "https://c"} {
		_, err := h.at(testNow.Add(time.Duration(i)*time.Minute)).apply.Upsert(h.ctx, ApplyTrackerUpsert{Role: "SDE", Source: "Site", URL: url})
		require.NoError(t, err)
	}
	items, err := h.apply.List(h.ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://c", items[0].URL)
	assert.Equal(t, "https://b", items[1].URL)
}

func TestApplyTrackerExportXLSX(t *testing.T) {
	h := newHarness(t)
	_, err := h.apply.Upsert(h.ctx, ApplyTrackerUpsert{Role: "Data Analyst", Source: "LinkedIn", URL: "https://x/3", Status: "interview"})
	require.NoError(t, err)

	buf, err := h.apply.ExportXLSX(h.ctx)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Role", rows[0][0])
	assert.Equal(t, []string{"Data Analyst", "LinkedIn", "https://x/3"}, rows[1][:3])
	assert.Equal(t, "interview", rows[1][4])
}
