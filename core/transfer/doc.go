// Package transfer implements the transfer manager used for bulk uploads and
// downloads.
//
// A Manager is a scoped resource: acquire it with NewManager before the first
// transfer of a call or batch and release it with Close after the last one,
// on every exit path. Close cancels anything still in flight.
//
// Each Upload, Download, UploadDirectory or DownloadDirectory call starts a
// background Transfer and returns immediately. Callers observe it by polling
// Progress/IsDone or block with Wait; Await does both, logging progress at
// the configured interval until the transfer completes.
//
// Chunking and part parallelism for a single file are left to the storage
// SDK. Directory transfers walk the tree (local files for uploads, a paged
// listing for downloads) and move files with bounded parallelism; a failed
// file does not stop the rest, and every failure is reported by Wait.
package transfer
