package models

import "sort"

// TagSet maps a tag category name (e.g. "sector", "custom") to the ordered
// set of tags applied under that category. Categories are user-defined;
// callers add and remove them through the methods below rather than mutating
// the map directly.
type TagSet map[string][]string

// AddCategory registers an empty category if it does not already exist.
func (ts TagSet) AddCategory(category string) {
	if _, ok := ts[category]; !ok {
		ts[category] = []string{}
	}
}

// RemoveCategory drops a category and all of its tags.
func (ts TagSet) RemoveCategory(category string) {
	delete(ts, category)
}

// Add appends a tag under the category, creating the category if needed.
// Duplicate tags within a category are ignored.
func (ts TagSet) Add(category, tag string) {
	for _, existing := range ts[category] {
		if existing == tag {
			return
		}
	}
	ts[category] = append(ts[category], tag)
}

// Remove deletes a tag from the category. Removing the last tag keeps the
// category present but empty.
func (ts TagSet) Remove(category, tag string) {
	tags, ok := ts[category]
	if !ok {
		return
	}
	for i, existing := range tags {
		if existing == tag {
			ts[category] = append(tags[:i:i], tags[i+1:]...)
			return
		}
	}
}

// Has reports whether the tag is present under the category.
func (ts TagSet) Has(category, tag string) bool {
	for _, existing := range ts[category] {
		if existing == tag {
			return true
		}
	}
	return false
}

// Categories returns the category names in sorted order.
func (ts TagSet) Categories() []string {
	names := make([]string, 0, len(ts))
	for name := range ts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the tag set.
func (ts TagSet) Clone() TagSet {
	if ts == nil {
		return nil
	}
	cp := make(TagSet, len(ts))
	for category, tags := range ts {
		cp[category] = append([]string(nil), tags...)
	}
	return cp
}
