// Package widgets adapts the toggle controller to a retained view tree.
//
// A host creates a [ToggleView], installs its children, and lays it out:
//
//	view := widgets.NewToggleView(parent, attrs)
//	view.SetHandle(graphics.Size{Width: 60, Height: 40})
//	view.SetOffView(graphics.Size{Width: 240, Height: 40})
//	view.SetOnView(graphics.Size{Width: 240, Height: 40})
//	view.Layout(graphics.Size{Width: 300, Height: 40})
//
// Pointer events go to [ToggleView.HandlePointer]. Settle animations run on
// an animation.Ticker, so the host's frame loop must call
// animation.StepTickers once per frame while any ticker is active.
//
// Draw children at [ToggleView.ChildFrame], which already accounts for the
// live scroll offset.
package widgets
