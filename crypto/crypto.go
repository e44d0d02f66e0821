package crypto

import (
	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/blake2b"
	"io"
	"os"
	"path/filepath"
)

// HashFile returns the Base-58 encoded 64 byte BLAKE2b digest of a file.
// Used to check a copied file against its source.
func HashFile(filePath string) (string, error) {
	file, err := os.Open(filepath.Clean(filePath))

	if err != nil {
		return "", err
	}

	defer file.Close()

	hash, err := blake2b.New512(nil)

	if err != nil {
		return "", err
	}

	if _, err = io.Copy(hash, file); err != nil {
		return "", err
	}

	return base58.Encode(hash.Sum(nil)), nil
}
