//go:build linux && !hostfd_native

package main

import "github.com/walteh/hostfd/pkg/fd"

// ttynameOf returns an empty name on build configurations where the
// facade does not compile Ttyname (the direct backend).
func ttynameOf(fd.Lender) string {
	return ""
}
