package addressing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownAddresses(t *testing.T) {
	assert.Equal(t,
		"00ec02deea862b798f9b0a6bae2472b185a79be9a811e3495498331c535249e017a00a",
		ComputeContractAddress("intkey", "1.0"))
	assert.Equal(t,
		"00ec011cf126a27a1fd9ba83e819ebff8c9f98ec8976f39cce35e984242a2ee40368fd",
		ComputeContractRegistryAddress("intkey"))
	assert.Equal(t,
		"00ec03a269f8f2e0ff66bd697cb4953cc21b601ffbd925f4f81aa687b1a5918a3c25d9",
		ComputeSmartPermissionAddress("org1", "perm"))
	assert.Equal(t,
		"cad11d00088131cf07436508677379858f48a8a2a5d649e84b95f3e1eaffe3438b354a",
		ComputeAccountAddress("02abc"))
	assert.Equal(t,
		"cad11d01a269f8f035de2c0f4918d57fce4669bce514c5b3f9f924afd4497d244fc807",
		ComputeOrganizationAddress("org1"))

	address, err := ComputeNamespaceRegistryAddress("abcdef")
	require.NoError(t, err)
	assert.Equal(t, "00ec00e32ef19623e8ed9d267f657a81944b3d07adbb768518068e88435745564e8d41", address)
}

func TestAddressesAreWellFormed(t *testing.T) {
	nsAddress, err := ComputeNamespaceRegistryAddress("1cf126")
	require.NoError(t, err)

	for _, address := range []string{
		ComputeContractAddress("a", "b"),
		ComputeContractRegistryAddress(""),
		ComputeSmartPermissionAddress("org", "name"),
		ComputeAccountAddress("key"),
		ComputeOrganizationAddress("org"),
		nsAddress,
		AdministratorsSettingAddress,
	} {
		assert.Len(t, address, AddressLength)
		assert.True(t, IsValid(address), address)
	}
}

func TestNamespaceRegistryAddressUsesFirstSixCharacters(t *testing.T) {
	short, err := ComputeNamespaceRegistryAddress("abcdef")
	require.NoError(t, err)
	long, err := ComputeNamespaceRegistryAddress("abcdef0123456789")
	require.NoError(t, err)

	assert.Equal(t, short, long)
}

func TestNamespaceRegistryAddressTooShort(t *testing.T) {
	_, err := ComputeNamespaceRegistryAddress("abcde")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "Namespace must be at least 6 characters long: abcde")
}

func TestSmartPermissionAddressGroupsByOrganization(t *testing.T) {
	a := ComputeSmartPermissionAddress("org1", "read")
	b := ComputeSmartPermissionAddress("org1", "write")
	assert.Equal(t, a[:12], b[:12])
	assert.NotEqual(t, a, b)
}

func TestContractAddressSeparatesNameAndVersion(t *testing.T) {
	assert.NotEqual(t, ComputeContractAddress("ab", "c"), ComputeContractAddress("a", "bc"))
	assert.True(t, strings.HasPrefix(ComputeContractAddress("a", "1"), ContractPrefix))
}

func TestIsValid(t *testing.T) {
	assert.False(t, IsValid(""))
	assert.False(t, IsValid(strings.Repeat("A", AddressLength)))
	assert.False(t, IsValid(strings.Repeat("a", AddressLength-1)))
	assert.True(t, IsValid(strings.Repeat("a", AddressLength)))
}

func TestNamespace(t *testing.T) {
	ns, err := Namespace("00ec02deadbeef")
	require.NoError(t, err)
	assert.Equal(t, "00ec02", ns)

	_, err = Namespace("00ec")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNamespaceMustEndOnCharacterBoundary(t *testing.T) {
	// "é" is two bytes, so the sixth byte falls inside it
	_, err := Namespace("1cf12é01")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeNamespaceRegistryAddress("1cf12é")
	assert.ErrorIs(t, err, ErrInvalidInput)

	ns, err := Namespace("1cf1é0")
	require.NoError(t, err)
	assert.Equal(t, "1cf1é", ns)
}
