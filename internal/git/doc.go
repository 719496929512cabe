// Package git inspects the repository enclosing the docs root.
//
// It only reads the index: the guard uses it to remind developers that a
// freshly built artifact still has to be committed for hosted builds that
// lack the toolchain.
package git
