// Package widgets provides the concrete widgets: Button, Label, ComboBox,
// ProgressBar, Canvas and Plot.
//
// # Construction
//
// Widgets are class-registry objects. A [Toolkit] registers the widget
// classes in a context once; widgets are then built and released through
// it:
//
//	ctx, _ := core.NewContext(core.WithFonts(fonts, fonts))
//	tk, _ := widgets.NewToolkit(ctx)
//	ok, _ := tk.NewButton("OK")
//	ok.OnClicked = save
//	defer tk.Free(ok)
//
// Every widget holds its [element.Base] as its super-object. Constructing
// a widget constructs the Base first; freeing it releases the widget's own
// state first and the Base last, which also invalidates the widget's arena
// handle.
//
// # Rendering
//
// All widgets render through the same template: class check, mock
// short-circuit, corner-notched background, bevel border, foreground
// content placed by the Base's justification, then the redraw flag is
// cleared. A mock render only measures.
//
// # Configuration
//
// Text widgets accept settings either typed:
//
//	btn.Set(settings.FontSize(14), settings.FontBold(true))
//
// or as strings:
//
//	btn.Configure("FontSize=14", "FontBold", "!FontItalic")
//
// Unusable items are skipped with a warning. A call that changes anything
// requests exactly one redraw. Theme defaults from the context's
// configuration are applied when a widget is built.
package widgets
