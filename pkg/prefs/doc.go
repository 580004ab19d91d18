// Package prefs implements the typed configuration-item model and the
// skeleton registry of the prefkit preferences system.
//
// An Item represents one named setting with a current, default, and
// last-loaded value. Items of every supported value kind share one generic
// core; applications register items on a Skeleton, which orchestrates bulk
// load, save, and default handling against a types.Store.
//
// Example:
//
//	var showTips bool
//	s := prefs.NewSkeleton(store)
//	s.SetCurrentGroup("General")
//	s.AddBool("ShowTips", &showTips, true, "")
//	s.Load()
//	...
//	showTips = false
//	s.Save()
package prefs
