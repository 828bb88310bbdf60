/*
Package file is the plain disk backend of fileobj.FileObject. It reads and
writes the file with ReadAt/WriteAt through a small write back LRU cache of
consts.PAGESIZE pages. Dirty pages reach the disk when they are evicted and
on Sync, SetLength and Close. Opened with zero cache pages every read and
write goes straight to the file.
*/
package file
