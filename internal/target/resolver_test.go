package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidate_IPv4Literal verifies that dotted IPv4 literals pass
// validation without any DNS lookup.
func TestValidate_IPv4Literal(t *testing.T) {
	assert.True(t, Validate("127.0.0.1"))
	assert.True(t, Validate("10.255.255.1"))
	assert.True(t, Validate("192.168.0.254"))
}

// TestValidate_IPv6Literal verifies the stated limitation: IPv6
// literals are rejected, not silently accepted.
func TestValidate_IPv6Literal(t *testing.T) {
	assert.False(t, Validate("::1"))
	assert.False(t, Validate("2001:db8::1"))
}

// TestValidate_UnresolvableHost verifies that a hostname under the
// reserved .invalid TLD (guaranteed never to resolve, RFC 2606) fails
// validation.
func TestValidate_UnresolvableHost(t *testing.T) {
	assert.False(t, Validate("not-a-real-host.invalid"))
}

// TestValidate_GarbageInput verifies that junk strings fail validation
// rather than panicking or erroring.
func TestValidate_GarbageInput(t *testing.T) {
	assert.False(t, Validate(""))
	assert.False(t, Validate("999.999.999.999.invalid"))
}

// TestValidate_Localhost verifies hostname resolution against the one
// name every test environment can resolve.
func TestValidate_Localhost(t *testing.T) {
	assert.True(t, Validate("localhost"))
}

// TestResolveIPv4_Literal verifies that an IPv4 literal resolves to
// itself.
func TestResolveIPv4_Literal(t *testing.T) {
	ip, err := ResolveIPv4("127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", ip)
}

// TestResolveIPv4_IPv6Literal verifies the error path for IPv6 input.
func TestResolveIPv4_IPv6Literal(t *testing.T) {
	_, err := ResolveIPv4("::1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IPv6")
}
