// Package forms builds transparent-redirect gateway forms on top of the
// fieldtree engine. A Definition declares which nested fields a form sends,
// their labels and help text, and the protected overlay the server controls;
// a Form instance walks the request lifecycle: build from the definition
// (optionally pre-filled from a confirmed gateway Result), caller mutation,
// then a single protected-merge, flatten and sign that freezes the instance.
// The package does not render HTML or touch HTTP; it hands the host framework
// ordered field descriptors and the signed hidden tr_data value.
package forms
