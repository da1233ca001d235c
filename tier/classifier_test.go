package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBoundaries(t *testing.T) {
	c := DefaultClassifier(false)

	cases := []struct {
		followers uint64
		want      int
	}{
		{0, 0},
		{399, 0},
		{400, 1},
		{401, 1},
		{999, 1},
		{1_000, 2},
		{9_999, 2},
		{10_000, 3},
		{49_999, 3},
		{50_000, 4},
		{1 << 40, 4},
	}
	for _, tc := range cases {
		for _, badge := range []bool{true, false} {
			got := c.Classify(SocialProfile{FollowerCount: tc.followers, HasPowerBadge: badge})
			assert.Equal(t, tc.want, got, "followers=%d badge=%v", tc.followers, badge)
		}
	}
}

func TestClassifyPowerBadgePenalty(t *testing.T) {
	c := DefaultClassifier(true)

	cases := []struct {
		followers uint64
		badge     bool
		want      int
	}{
		{100, false, 0},
		{100, true, 0},
		{400, false, 0},
		{400, true, 1},
		{1_000, false, 1},
		{1_000, true, 2},
		{10_000, false, 2},
		{50_000, false, 3},
		{50_000, true, 4},
	}
	for _, tc := range cases {
		got := c.Classify(SocialProfile{FollowerCount: tc.followers, HasPowerBadge: tc.badge})
		assert.Equal(t, tc.want, got, "followers=%d badge=%v", tc.followers, tc.badge)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := DefaultClassifier(true)
	p := SocialProfile{FollowerCount: 12_345, HasPowerBadge: false}
	first := c.Classify(p)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, c.Classify(p))
	}
}

func TestNewClassifier(t *testing.T) {
	_, err := NewClassifier(nil, false)
	assert.ErrorIs(t, err, ErrNoThresholds)

	_, err = NewClassifier([]uint64{400, 400}, false)
	assert.ErrorIs(t, err, ErrThresholdsUnsorted)

	_, err = NewClassifier([]uint64{1000, 400}, false)
	assert.ErrorIs(t, err, ErrThresholdsUnsorted)

	thresholds := []uint64{10, 20}
	c, err := NewClassifier(thresholds, true)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Tiers())
	assert.True(t, c.PowerBadgePenalty())

	// the classifier keeps its own copy
	thresholds[0] = 15
	assert.Equal(t, []uint64{10, 20}, c.Thresholds())
	assert.Equal(t, 1, c.Classify(SocialProfile{FollowerCount: 10, HasPowerBadge: true}))
}

func TestDefaultThresholdsIsolated(t *testing.T) {
	thresholds := DefaultThresholds()
	thresholds[0] = 1

	assert.Equal(t, []uint64{400, 1000, 10000, 50000}, DefaultThresholds())
	assert.Equal(t, 0, DefaultClassifier(false).Classify(SocialProfile{FollowerCount: 399}))

	c := DefaultClassifier(false)
	c.Thresholds()[0] = 1
	assert.Equal(t, 0, c.Classify(SocialProfile{FollowerCount: 399}))
}
