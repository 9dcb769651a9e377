package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordLikeToggle(t *testing.T) {
	likesBefore := testutil.ToFloat64(LikeToggles.WithLabelValues("like"))
	unlikesBefore := testutil.ToFloat64(LikeToggles.WithLabelValues("unlike"))

	RecordLikeToggle(true)
	RecordLikeToggle(true)
	RecordLikeToggle(false)

	assert.Equal(t, likesBefore+2, testutil.ToFloat64(LikeToggles.WithLabelValues("like")))
	assert.Equal(t, unlikesBefore+1, testutil.ToFloat64(LikeToggles.WithLabelValues("unlike")))
}

func TestRecordCacheLookup(t *testing.T) {
	hitsBefore := testutil.ToFloat64(ArticleCacheLookups.WithLabelValues("hit"))
	missesBefore := testutil.ToFloat64(ArticleCacheLookups.WithLabelValues("miss"))

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(ArticleCacheLookups.WithLabelValues("hit")))
	assert.Equal(t, missesBefore+2, testutil.ToFloat64(ArticleCacheLookups.WithLabelValues("miss")))
}
