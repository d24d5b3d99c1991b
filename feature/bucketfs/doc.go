// Package bucketfs puts filesystem verbs on top of one object storage bucket.
//
// A directory is a zero-byte marker object whose key ends in "/". Every
// directory operation normalizes its path with utils.DirKey first, except
// RemoveDirectory, which deletes by raw prefix. File operations use keys
// exactly as given.
//
// # Operations
//
//   - Existence: DirectoryExists, FileExists
//   - Listing: List (flat, all pages), ListOneLevel (ls-style, directories first), Usage
//   - Directories: MakeDirectory(ies), RemoveDirectory(ies)
//   - Objects: Remove, RemoveAll, Copy, CopyInto, Move, MoveAll
//   - Transfers: UploadFile(s), UploadDirectory, DownloadFile(s), DownloadDirectory
//
// # Errors
//
// Precondition violations are reported, never acted on: MakeDirectory on an
// existing marker returns ErrDirectoryExists and Remove on a missing key
// returns ErrObjectNotFound, both without writing. Callers that want the
// forgiving behavior can ignore those two errors with errors.Is.
//
// Batch calls (MakeDirectories, RemoveAll, CopyInto, MoveAll, UploadFiles,
// DownloadFiles, RemoveDirectories) process every item in order and return
// one Result per item; a failing item never stops the rest.
//
// Move is copy, confirm, delete. When the delete fails the copy is kept and
// a *MoveError is returned that matches ErrCopiedNotRemoved.
//
// # Transfers
//
// Each transfer call acquires a transfer.Manager, waits for completion while
// logging progress, and releases the manager before returning. Batch
// transfers share one manager. Failures are logged and returned.
//
// # HTTP
//
// Feature exposes the verbs under /fs for the start command.
package bucketfs
