/*
Package fsys routes store names to file object backends.

A name starts with the prefix of the selector that should open it:

	memFS:name           fileobj.Memory, a fresh one on every Open
	nio:/path/to/file    file.File, a read/write disk file
	nioMapped:/path      fmap.File, a memory mapped disk file

A Registry is built once by whoever owns the index and handed to the
parts that need to open stores. It does not cache handles; whoever opens
a file object closes it.
*/
package fsys
