package feed

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/krazyTry/cast-tickets/tier"
	"github.com/tidwall/gjson"
)

var (
	ErrInvalidJSON  = errors.New("invalid json document")
	ErrUserNotFound = errors.New("user object not found")
	ErrInvalidField = errors.New("invalid field")
	ErrMissingField = errors.New("missing field")
)

// ParseUser reads a social-graph user object. The object may be the
// document root or wrapped as {"user": {...}} or {"users": [{...}]}.
func ParseUser(body []byte) (tier.SocialProfile, error) {
	if !gjson.ValidBytes(body) {
		return tier.SocialProfile{}, ErrInvalidJSON
	}
	root := gjson.ParseBytes(body)
	for _, path := range []string{"user", "users.0", "result.user"} {
		if u := root.Get(path); u.IsObject() {
			return profileFromResult(u)
		}
	}
	if root.Get("follower_count").Exists() {
		return profileFromResult(root)
	}
	return tier.SocialProfile{}, ErrUserNotFound
}

// ParseCastAuthor reads the author of a cast lookup response
// ({"cast": {"author": {...}}}).
func ParseCastAuthor(body []byte) (tier.SocialProfile, error) {
	if !gjson.ValidBytes(body) {
		return tier.SocialProfile{}, ErrInvalidJSON
	}
	author := gjson.GetBytes(body, "cast.author")
	if !author.IsObject() {
		return tier.SocialProfile{}, fmt.Errorf("%w: cast.author", ErrUserNotFound)
	}
	return profileFromResult(author)
}

func profileFromResult(u gjson.Result) (tier.SocialProfile, error) {
	followers, err := nonNegativeInt(u.Get("follower_count"), "follower_count")
	if err != nil {
		return tier.SocialProfile{}, err
	}

	badge := u.Get("power_badge")
	if badge.Exists() && badge.Type != gjson.True && badge.Type != gjson.False && badge.Type != gjson.Null {
		return tier.SocialProfile{}, fmt.Errorf("%w: power_badge=%s", ErrInvalidField, badge.Raw)
	}

	return tier.SocialProfile{
		FollowerCount: uint64(followers),
		HasPowerBadge: badge.Bool(),
	}, nil
}

// nonNegativeInt accepts JSON integers and base-10 integer strings.
func nonNegativeInt(r gjson.Result, name string) (int64, error) {
	if !r.Exists() || r.Type == gjson.Null {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	var text string
	switch r.Type {
	case gjson.Number:
		text = r.Raw
	case gjson.String:
		text = r.Str
	default:
		return 0, fmt.Errorf("%w: %s=%s", ErrInvalidField, name, r.Raw)
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%s is not an integer", ErrInvalidField, name, r.Raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s=%d is negative", ErrInvalidField, name, n)
	}
	return n, nil
}
