/*
File memory MAP

The fmap package implements a fileobj.FileObject over a memory mapped
file. The whole file is mapped. Reads and writes are copies in and out of
the mapping; growing or shrinking the file re-maps it:

	remember the cursor
	flush the mapping
	release the mapping
	resize the file
	map the new length (and optionally preload it)
	restore the cursor

Releasing a mapping is the platform sensitive part. A ReleaseStrategy does
it. Eager unmaps right away. Reclaim drops the last reference and waits
(bounded by a timeout) for the collector to unmap it through a finalizer.
The default tries Eager and falls back to Reclaim. A Reclaim that times
out panics: a dangling mapping keeps some platforms from resizing or
deleting the file and carrying on would leave the file size and the
mapping out of step.

Files larger than Options.MaxMapSize are not supported yet. Opening or
growing to such a size fails with errors.ErrUnsupportedSize.
*/
package fmap
