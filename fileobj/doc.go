/*
File Objects

A FileObject is a random access file independent of what stores it. The
index engine reads and writes byte ranges of a named store through this
contract and never learns whether the bytes live in process memory, in a
read/write disk file (package file) or in a memory mapped file (package
fmap).

A FileObject has a cursor. ReadFully and Write work at the cursor and
advance it. Seeking past the end is allowed; a later Write fills the gap
with zeros. Reading past the end is an errors.ErrEndOfData failure unless
nothing was asked for.

A FileObject is not safe for concurrent use. It belongs to whoever opened
it until Close.

Memory is the in memory backend. It keeps the content in fixed size
blocks (consts.BLOCKSIZE) so growing the file only reallocates the block
table, never the content.
*/
package fileobj
