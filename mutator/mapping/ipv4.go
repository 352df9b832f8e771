package mapping

import (
	"net"

	"github.com/corefuzz/corefuzz/mutator"
)

// IPv4Mutator mutates a net.IP by mutating its uint32 big-endian
// representation. Worked example from SPEC_FULL.md §7 ("socket-address ↔
// u32" in spec.md §4.8's own example list).
type IPv4Mutator = Map[uint32, net.IP, mutator.None, mutator.IntMutationStep, mutator.IntArbitraryStep, mutator.IntToken[uint32], mutator.None]

// NewIPv4Mutator builds an IPv4 address mutator over the full address
// space.
func NewIPv4Mutator() *IPv4Mutator {
	inner := mutator.NewUint32()
	return NewMap[uint32, net.IP](
		inner,
		func(bits uint32) net.IP {
			return net.IPv4(byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
		},
		func(ip net.IP) (uint32, bool) {
			v4 := ip.To4()
			if v4 == nil {
				return 0, false
			}
			return uint32(v4[0])<<24 | uint32(v4[1])<<16 | uint32(v4[2])<<8 | uint32(v4[3]), true
		},
		nil,
	)
}
