// Package routepath stores canonical HTTP paths for blog modules.
package routepath

import (
	"strconv"
	"strings"
)

const (
	Root              = "/"
	RootPattern       = "/{$}"
	About             = "/about"
	Categories        = "/categories"
	Contact           = "/contact"
	Health            = "/healthz"
	StaticPrefix      = "/static/"
	PostPattern       = "/{postID}"
	PublicRestPattern = "/{rest...}"

	Backend                  = "/backend"
	BackendPrefix            = "/backend/"
	BackendRootPattern       = BackendPrefix + "{$}"
	BackendCreatePost        = "/backend/create-post"
	BackendPostPrefix        = "/backend/post/"
	BackendPostPattern       = BackendPostPrefix + "{postID}"
	BackendEditPostPattern   = BackendPostPrefix + "{postID}/edit-post"
	BackendDeletePostPattern = BackendPostPrefix + "{postID}/delete-post"
	BackendRestPattern       = BackendPrefix + "{rest...}"

	// PostIDParam is the path wildcard carrying a post id.
	PostIDParam = "postID"
)

// Post returns the public post detail route.
func Post(id int64) string {
	return Root + strconv.FormatInt(id, 10)
}

// BackendPost returns the admin post detail route.
func BackendPost(id int64) string {
	return BackendPostPrefix + strconv.FormatInt(id, 10)
}

// BackendEditPost returns the admin edit-form route.
func BackendEditPost(id int64) string {
	return BackendPost(id) + "/edit-post"
}

// BackendDeletePost returns the admin delete route.
func BackendDeletePost(id int64) string {
	return BackendPost(id) + "/delete-post"
}

// ParsePostID parses a post id path segment. Only positive decimal ids are
// accepted.
func ParsePostID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "+") {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// IsBackend reports whether path belongs to the admin area.
func IsBackend(path string) bool {
	return path == Backend || strings.HasPrefix(path, BackendPrefix)
}
