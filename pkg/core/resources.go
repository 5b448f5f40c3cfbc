package core

import "maps"

// ResourceDictionary holds named values shared by a subtree: styles,
// templates, brushes.
type ResourceDictionary map[string]any

// SetResource stores a resource on the element.
func (u *UIElement) SetResource(key string, v any) {
	if u.resources == nil {
		u.resources = make(ResourceDictionary)
	}
	u.resources[key] = v
}

// Resources returns the element's own dictionary, possibly nil.
func (u *UIElement) Resources() ResourceDictionary {
	return u.resources
}

// MergeResources copies every entry of r into the element's dictionary,
// replacing existing keys.
func (u *UIElement) MergeResources(r ResourceDictionary) {
	if len(r) == 0 {
		return
	}
	if u.resources == nil {
		u.resources = make(ResourceDictionary, len(r))
	}
	maps.Copy(u.resources, r)
}

// FindResource looks key up on el and then on its ancestors.
func FindResource(el Element, key string) (any, bool) {
	for e := el; e != nil; e = e.Framework().Parent() {
		if v, ok := e.Framework().resources[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// FindResourceAs is FindResource with a type assertion.
func FindResourceAs[T any](el Element, key string) (T, bool) {
	v, ok := FindResource(el, key)
	t, isT := v.(T)
	return t, ok && isT
}
