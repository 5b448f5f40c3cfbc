// Package testing provides a headless test harness for skins.
//
// # Quick Start
//
// Create a tester, pump a tree, and make assertions:
//
//	func TestMenu(t *testing.T) {
//	    tester := skintest.NewScreenTesterWithT(t)
//	    tester.PumpTree(menu)
//
//	    // Find elements
//	    play := tester.Find(skintest.ByName("Play")).First()
//
//	    // Move focus and activate
//	    tester.SendKeys(input.Down, input.Enter)
//
//	    // Assert state
//	    if tester.Focused() != play {
//	        t.Error("expected Play to be focused")
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare layout snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/menu.snapshot.yaml")
//
// Update snapshots with:
//
//	SKIN_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Time
//
// Frames are stamped with a fake clock, advanced one frame interval per
// Pump:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import skintest "github.com/go-drift/skin/pkg/testing"
package testing
