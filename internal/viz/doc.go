// Package viz renders setup selections and descriptors in the terminal.
//
// Two entry points:
//
//   - [RenderDescriptor], [RenderList]: styled text for the CLI commands
//   - [Pick]: an interactive Bubble Tea picker walking the catalog
//
// # Key Bindings
//
//	j/k   - Move the cursor
//	enter - Choose the highlighted entry
//	esc   - Back to the previous step
//	q     - Quit without a selection
package viz
