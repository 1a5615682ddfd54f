// Package testing provides test doubles for the toolkit's collaborators.
//
// [Recorder] is a renderer that records every draw call as a [DisplayOp]
// instead of touching pixels, so tests can assert on exactly what a
// widget drew. [Fonts] is a deterministic font provider and text
// rasterizer: every glyph is half the font size wide and a line is one
// font size tall.
//
//	rec := wktest.NewRecorder()
//	fonts := wktest.NewFonts()
//	ctx, _ := core.NewContext(core.WithFonts(fonts, fonts))
//	...
//	if err := button.Render(rec, false); err != nil { ... }
//	if rec.Count(wktest.OpFillRect) == 0 { ... }
//
// # Snapshot Testing
//
// Recorded ops can be compared against a golden file:
//
//	rec.Snapshot().MatchesFile(t, "testdata/button.snapshot.json")
//
// Set WIDGETKIT_UPDATE_SNAPSHOTS=1 to rewrite golden files.
package testing
