package tier

import (
	"errors"
	"fmt"
	"sort"
)

var defaultThresholds = [...]uint64{400, 1_000, 10_000, 50_000}

// DefaultThresholds returns the follower counts at which the next tier
// starts. Each call returns a fresh slice.
func DefaultThresholds() []uint64 {
	return append([]uint64(nil), defaultThresholds[:]...)
}

var (
	ErrNoThresholds       = errors.New("classifier needs at least one threshold")
	ErrThresholdsUnsorted = errors.New("classifier thresholds must be strictly ascending")
)

// SocialProfile is the part of an author's social-graph record that drives
// tier assignment.
type SocialProfile struct {
	FollowerCount uint64 `json:"follower_count"`
	HasPowerBadge bool   `json:"power_badge"`
}

// Classifier buckets follower counts into tiers.
//
// Buckets are half-open: a count equal to a threshold belongs to the tier
// that starts there. With the defaults 399 is tier 0, 400 is tier 1 and
// 50000 is tier 4.
type Classifier struct {
	thresholds        []uint64
	powerBadgePenalty bool
}

// NewClassifier builds a classifier over len(thresholds)+1 tiers. When
// powerBadgePenalty is set, authors without a power badge are moved one
// tier down (never below tier 0).
func NewClassifier(thresholds []uint64, powerBadgePenalty bool) (*Classifier, error) {
	if len(thresholds) == 0 {
		return nil, ErrNoThresholds
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return nil, fmt.Errorf("%w: %d follows %d", ErrThresholdsUnsorted, thresholds[i], thresholds[i-1])
		}
	}
	return &Classifier{
		thresholds:        append([]uint64(nil), thresholds...),
		powerBadgePenalty: powerBadgePenalty,
	}, nil
}

// DefaultClassifier uses DefaultThresholds.
func DefaultClassifier(powerBadgePenalty bool) *Classifier {
	c, err := NewClassifier(DefaultThresholds(), powerBadgePenalty)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the tier index for profile.
func (c *Classifier) Classify(profile SocialProfile) int {
	// number of thresholds <= FollowerCount
	tier := sort.Search(len(c.thresholds), func(i int) bool {
		return c.thresholds[i] > profile.FollowerCount
	})
	if c.powerBadgePenalty && !profile.HasPowerBadge && tier > 0 {
		tier--
	}
	return tier
}

// Tiers is the number of tiers the classifier can return.
func (c *Classifier) Tiers() int {
	return len(c.thresholds) + 1
}

func (c *Classifier) Thresholds() []uint64 {
	return append([]uint64(nil), c.thresholds...)
}

func (c *Classifier) PowerBadgePenalty() bool {
	return c.powerBadgePenalty
}
