/*
Package sublist generates all fixed-size sublists of an ordered list.

For the input list [A, B, C, D] and size 2 the generator yields
[A, B], [A, C], [A, D], [B, C], [B, D], [C, D]. Enumeration is lazy and
in lexicographic order by index tuple.
*/
package sublist
