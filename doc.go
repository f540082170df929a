// Package starldoc renders documentation trees to Markdown.
//
// A tree is built from Module, Type, Function and Property values, each with
// optional DocString prose and typed parameters. Rendering is pure: the same
// tree always produces the same text, members are sorted by name, and the
// tree is only read, so it may be shared between goroutines.
//
// Example:
//
//	md := starldoc.RenderDocItem("max_size", &starldoc.Property{
//		Type: typing.Name("int"),
//		Docs: &starldoc.DocString{Summary: "Maximum size."},
//	})
//	fmt.Println(md)
//
// Output:
//
//	## max\_size
//
//	```python
//	max_size: int
//	```
//
//	Maximum size.
//
// Function prototypes are split over several lines when they carry more
// documented parameters than WithMaxDocParams allows or when the one-line form
// is longer than WithMaxLineWidth.
package starldoc
