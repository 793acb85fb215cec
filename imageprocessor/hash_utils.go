package imageprocessor

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
)

// HashFile returns the hex BLAKE3 digest of the file contents
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "cannot open %s for hashing", path)
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrapf(err, "cannot hash %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
