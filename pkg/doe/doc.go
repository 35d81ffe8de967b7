/*
Package doe generates Box-Behnken experimental designs.

A Box-Behnken design for k factors is the union of all two-factor full
factorial blocks: for every factor pair the four {-1,+1} combinations with
every other factor held at 0, plus a configurable number of all-zero center
rows. Substitute maps the coded levels onto each factor's quantized
low/mid/high physical values, and Build produces the final numbered table.

Row and column order are deterministic: pairs in ascending (i, j) order, the
lower-indexed factor varying fastest within a block, center rows last.
*/
package doe
