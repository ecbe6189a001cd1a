// Package object holds the data shared by the assembler and the linker:
// address tagged ORIG blocks of 16-bit words, symbol tables with external
// fill sites, address to source line debug maps, and relocations.
//
// Each type has a line oriented text form:
//
//	.obj     ORIG: x3000 header lines, each followed by x1234 data lines
//	.sym     ADDRESS LABEL EXTERNAL [EXTLABEL] rows after a header line
//	.dbgsym  x3000: <source line> rows
//
// Marshal and Unmarshal convert between the two. Save and Load move a whole
// Bundle to and from a file system; Save only replaces the target files once
// every one of them has been written out.
package object
