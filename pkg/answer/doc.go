/*
Package answer composes DNS answer sets.

A DNS record entry can carry multiple record values (e.g. an "A" entry
with four IP addresses) but binds at most one health check. An answer Set
mixes plain and health-checked endpoints in one answer: when more than one
distinct health check is present, ToRecords emits a chain of alias
entries, each dependent on a different health check, forming a logical AND
series. A resolver that backtracks through failed weighted answers can use
such a chain anywhere a regular entry would appear.
*/
package answer
