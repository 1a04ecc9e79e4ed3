package hostfd

// DupFlags is the flag set accepted by Dup2. The legal bits are
// target-dependent; targets without a flagged duplication primitive
// define none, so portable callers always pass 0 there.
type DupFlags uint32

// FallocateFlags is the mode set accepted by Fallocate. Targets offering
// only the POSIX baseline behavior define no bits.
type FallocateFlags uint32
