/*
Package log provides structured logging for rubbertree using zerolog.

Call Init once from the embedding application, then derive child loggers
with WithComponent and the domain helpers. The zero-value Logger is usable
before Init and discards all output, so library packages may hold child
loggers unconditionally.
*/
package log
