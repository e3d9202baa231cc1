// Package mustache implements a single-pass mustache template
// interpreter driven by a capability interface rather than a concrete
// data tree.
//
// Basic Usage:
//
//	model := mapmodel.New(map[string]any{
//	    "name": "John Doe",
//	    "items": []any{
//	        map[string]any{"product": "Widget", "price": "19.99"},
//	        map[string]any{"product": "Gadget", "price": "29.99"},
//	    },
//	})
//
//	out, err := mustache.RenderString("Hello {{name}}!", model)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(out)
//
// Template Syntax:
//
// Variables: {{name}}, escaped by default; {{{name}}} or {{&name}}
// emit the value verbatim.
//
// Sections: {{#items}}...{{/items}} iterate or branch under control of
// the data model; {{^items}}...{{/items}} renders when the section
// would not activate.
//
// Comments: {{! ignored }}. Partials: {{>header}}. Delimiters can be
// reassigned mid-template: {{=<% %>=}}.
//
// The data model is anything implementing Model; optional capabilities
// (Getter, Putter, Emitter, PartialProvider, StartHook, StopHook) are
// discovered once before rendering. The mapmodel subpackage provides a
// ready-made model over plain map/slice trees as decoded from JSON,
// YAML or TOML.
package mustache
