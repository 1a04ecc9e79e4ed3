//go:build darwin

package hostfd

// Darwin has no dup3 and no general fallocate: Dup2 goes through
// dup2(2), and Fallocate provides only the POSIX baseline via
// F_PREALLOCATE. DupFlags and FallocateFlags therefore define no bits
// here; the types exist so that code written against the full flag
// vocabulary still compiles, with the empty set as the only value.
