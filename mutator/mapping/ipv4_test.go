package mapping_test

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/mutator/mapping"
)

func TestIPv4MutatorGeneratesFourByteAddresses(t *testing.T) {
	m := mapping.NewIPv4Mutator()
	for i := 0; i < 10; i++ {
		ip, _ := m.RandomArbitrary(m.MaxComplexity())
		assert.NotNil(t, ip.To4())
	}
}

func TestIPv4MutatorValidateRejectsIPv6(t *testing.T) {
	m := mapping.NewIPv4Mutator()
	v6 := net.ParseIP("::1")
	_, ok := m.Validate(&v6)
	assert.False(t, ok)
}

func TestIPv4MutatorUnmutateRoundTrip(t *testing.T) {
	m := mapping.NewIPv4Mutator()
	ip, _ := m.RandomArbitrary(m.MaxComplexity())
	cache, ok := m.Validate(&ip)
	require.True(t, ok)

	original := ip.String()
	token, _ := m.RandomMutate(&ip, &cache, m.MaxComplexity())
	m.Unmutate(&ip, &cache, token)
	assert.Equal(t, original, ip.String())
}
