package wallet

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// AddressPrefix marks every wallet address of the community.
const AddressPrefix = "zpk_"

var addressRE = regexp.MustCompile(`^zpk_[0-9a-f]{40}$`)

// GenerateAddress derives a new address from a fresh secp256k1 key. The
// key itself is not kept: the address only identifies the wallet.
func GenerateAddress() (string, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("generating key: %w", err)
	}

	addr := crypto.PubkeyToAddress(privateKey.PublicKey)
	return AddressPrefix + strings.ToLower(hex.EncodeToString(addr.Bytes())), nil
}

// IsAddress reports whether the string is a well formed wallet address.
func IsAddress(s string) bool {
	return addressRE.MatchString(s)
}
