// Package reconcile makes a single destination path a symbolic link to a
// source inside the repository.
//
// Reconcile runs four steps, in order:
//
//  1. If the destination is a symlink (working or broken) the link itself
//     is removed. Links are detected with readlink, not existence checks,
//     so broken links are found.
//  2. Otherwise, if something exists at the destination it is deleted:
//     regular files directly, directories recursively. Any other file type
//     (device, socket, fifo) or a path that disappears between checks is an
//     INVALID_PATH error.
//  3. If the source does not exist the call fails with SOURCE_MISSING and
//     no link is created.
//  4. A link to the source is created. Regular file sources get a file
//     link, directory sources a directory link; anything else is
//     INVALID_PATH.
//
// Steps 1 and 2 run before the source is checked. A SOURCE_MISSING failure
// therefore still deletes whatever occupied the destination, and nothing is
// backed up. Callers own their destination paths.
//
// None of this is transactional. Inspection and mutation are separate
// system calls, so a concurrent writer at the destination can race the
// reconciler, and a failure after step 2 leaves the destination absent.
package reconcile
