// Package routepath stores canonical HTTP paths for the blog.
package routepath

import (
	"strconv"
	"strings"
)

const (
	Root              = "/"
	Health            = "/healthz"
	BlogPrefix        = "/blog/"
	Blog              = BlogPrefix
	BlogCreate        = BlogPrefix + "create/"
	BlogFeed          = BlogPrefix + "feed/"
	PostIDParam       = "id"
	RootPattern       = "/{$}"
	HealthPattern     = Health
	BlogPattern       = BlogPrefix + "{$}"
	BlogCreatePattern = BlogCreate + "{$}"
	BlogFeedPattern   = BlogFeed + "{$}"
	PostPattern       = BlogPrefix + "{" + PostIDParam + "}/{$}"
	PostUpdatePattern = BlogPrefix + "{" + PostIDParam + "}/update/{$}"
	PostDeletePattern = BlogPrefix + "{" + PostIDParam + "}/delete/{$}"
	postUpdateSuffix  = "update/"
	postDeleteSuffix  = "delete/"
)

// Post returns the post detail route.
func Post(id int64) string {
	return BlogPrefix + strconv.FormatInt(id, 10) + "/"
}

// PostUpdate returns the post update route.
func PostUpdate(id int64) string {
	return Post(id) + postUpdateSuffix
}

// PostDelete returns the post delete route.
func PostDelete(id int64) string {
	return Post(id) + postDeleteSuffix
}

// ParseID parses a post id path segment. Only positive decimal integers
// without sign or leading zeros are accepted.
func ParseID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw[0] < '1' || raw[0] > '9' {
		return 0, false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
