package util

import "github.com/gosimple/slug"

// ModuleSlug turns a module title into the folder segment of its
// /pronounce/<slug>/<file> audio URLs. Kept deterministic so the URL
// stays predictable across uploads and deletes.
func ModuleSlug(title string) string {
	s := slug.Make(title)
	if s == "" {
		return "misc"
	}
	return s
}
