//go:build linux

package hostfd

import "golang.org/x/sys/unix"

// DupFlagCloexec makes Dup2 set close-on-exec on the new descriptor
// (dup3's O_CLOEXEC).
const DupFlagCloexec DupFlags = unix.O_CLOEXEC

// Fallocate mode bits, as for fallocate(2).
const (
	FallocKeepSize      FallocateFlags = unix.FALLOC_FL_KEEP_SIZE
	FallocPunchHole     FallocateFlags = unix.FALLOC_FL_PUNCH_HOLE
	FallocCollapseRange FallocateFlags = unix.FALLOC_FL_COLLAPSE_RANGE
	FallocZeroRange     FallocateFlags = unix.FALLOC_FL_ZERO_RANGE
	FallocInsertRange   FallocateFlags = unix.FALLOC_FL_INSERT_RANGE
	FallocUnshareRange  FallocateFlags = unix.FALLOC_FL_UNSHARE_RANGE
)
