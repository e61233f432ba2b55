// Package addressing derives the state addresses of every registry entity.
//
// An address is a 6 hex character namespace prefix followed by a truncated
// SHA-512 hex digest of the entity key, 70 characters in total. Distinct keys
// may truncate to the same address; the state layer keeps such entries
// together in one sorted list.
package addressing

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Namespace prefixes.
const (
	NamespaceRegistryPrefix = "00ec00"
	ContractRegistryPrefix  = "00ec01"
	ContractPrefix          = "00ec02"
	SmartPermissionPrefix   = "00ec03"

	// PikePrefix is shared by accounts and organizations; a type byte follows.
	PikePrefix         = "cad11d"
	AccountPrefix      = PikePrefix + "00"
	OrganizationPrefix = PikePrefix + "01"
)

// The validator settings entry listing administrator public keys.
const (
	AdministratorsSettingAddress = "000000a87cb5eafdcca6a814e4add97c4b517d3c530c2f44b31d18e3b0c44298fc1c14"
	AdministratorsSettingKey     = "sawtooth.swa.administrators"
)

const (
	// AddressLength is the length of every state address in hex characters.
	AddressLength = 70
	// NamespaceLength is the length of a namespace prefix.
	NamespaceLength = 6
)

var addressPattern = regexp.MustCompile(`^[0-9a-f]{70}$`)

// Hash returns the first num hex characters of the SHA-512 digest of s.
func Hash(s string, num int) string {
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])[:num]
}

// ComputeContractAddress addresses the Contract (name, version).
func ComputeContractAddress(name, version string) string {
	return ContractPrefix + Hash(name+","+version, 64)
}

// ComputeContractRegistryAddress addresses the registry of a contract name.
func ComputeContractRegistryAddress(name string) string {
	return ContractRegistryPrefix + Hash(name, 64)
}

// ComputeNamespaceRegistryAddress addresses the registry of a namespace. Only
// the first six characters take part in the hash, so every namespace sharing
// them lands in the same list.
func ComputeNamespaceRegistryAddress(namespace string) (string, error) {
	short, ok := namespacePrefix(namespace)
	if !ok {
		return "", fmt.Errorf("%w: Namespace must be at least 6 characters long: %s", ErrInvalidInput, namespace)
	}
	return NamespaceRegistryPrefix + Hash(short, 64), nil
}

// ComputeSmartPermissionAddress addresses the smart permission name of org_id.
func ComputeSmartPermissionAddress(orgID, name string) string {
	return SmartPermissionPrefix + Hash(orgID, 6) + Hash(name, 58)
}

func ComputeAccountAddress(publicKey string) string {
	return AccountPrefix + Hash(publicKey, 62)
}

func ComputeOrganizationAddress(orgID string) string {
	return OrganizationPrefix + Hash(orgID, 62)
}

// IsValid reports whether address is 70 lowercase hex characters.
func IsValid(address string) bool {
	return addressPattern.MatchString(address)
}

// Namespace returns the namespace part of an address or input.
func Namespace(address string) (string, error) {
	short, ok := namespacePrefix(address)
	if !ok {
		return "", fmt.Errorf("%w: Input must have at least 6 characters: %s", ErrInvalidInput, address)
	}
	return short, nil
}

// namespacePrefix returns the first NamespaceLength bytes of s. The cut must
// fall on a character boundary.
func namespacePrefix(s string) (string, bool) {
	if len(s) < NamespaceLength {
		return "", false
	}
	short := s[:NamespaceLength]
	if !utf8.ValidString(short) {
		return "", false
	}
	return short, true
}
