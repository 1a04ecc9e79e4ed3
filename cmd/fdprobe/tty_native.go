//go:build darwin || (linux && hostfd_native)

package main

import (
	"github.com/walteh/hostfd/pkg/fd"
	"github.com/walteh/hostfd/pkg/hostfd"
)

// ttynameOf resolves the terminal name where the facade compiles
// Ttyname. Resolution failures fold into an empty name.
func ttynameOf(f fd.Lender) string {
	name, err := hostfd.Ttyname(f, nil)
	if err != nil {
		return ""
	}
	return string(name)
}
