// Package template expands the placeholders used in project descriptors and
// code templates.
//
// Two constructs are recognized:
//
//	${NAME}               replaced with the value of variable NAME
//	@include(REF)         replaced with the code REF resolves to
//
// A reference of the form "lib::component" names a file relative to a code
// library registered with AddLibrary. Any other reference names a code
// template registered with RegisterTemplate.
//
// Usage:
//
//	engine := template.New()
//	engine.SetVariable("PROJECT_NAME", "demo")
//	engine.AddLibrary("core", "lib/core")
//	engine.RegisterTemplate("banner", "// ${PROJECT_NAME}")
//
//	body, err := engine.Expand("@include(banner)\nreturn 0;")
package template
