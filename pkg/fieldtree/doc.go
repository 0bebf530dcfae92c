// Package fieldtree implements the ordered, nested field structure behind
// transparent-redirect gateway forms. A Tree is built once per form from a
// declarative Template, mutated through dotted or bracketed paths (section
// removal, value overrides), merged with a protected overlay whose values
// always win over caller mutation, and finally flattened into the bracketed
// flat-key sequence (transaction[credit_card][number]) the gateway signs and
// the browser posts. Insertion order is preserved at every level and drives
// both flatten order and rendered field order. The package also carries the
// sparse label lookup used when rendering and a YAML loader for declaring
// templates outside of Go code.
package fieldtree
