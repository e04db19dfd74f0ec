package ledgersdk

import "fmt"

const checksumAlphabet = "abcdefghijklmnopqrstuvwxyz"

// computeChecksum derives the five-lowercase-letter checksum bound to a
// ledger identifier for a canonical "shard.realm.num" string.
//
// This is an implementation-defined deterministic mixing rule (spec
// §4.A calls for "a fixed mixing rule" without specifying the network's
// exact published algorithm, which is outside this SDK's wire-protocol
// scope). It combines two running weighted sums, one over the id text
// and one over the ledger identifier bytes, and folds the result into
// five base-26 digits.
func computeChecksum(ledgerID string, idText string) string {
	var h1 uint64
	for _, b := range []byte(idText) {
		h1 = (h1*31 + uint64(b) + 1) % 1000003
	}
	var h2 uint64
	for i, b := range []byte(ledgerID) {
		h2 = (h2*37 + uint64(b) + uint64(i) + 1) % 1000003
	}
	mixed := (h1*1000003 + h2) % 11881376 // 26^5
	letters := make([]byte, 5)
	for i := 4; i >= 0; i-- {
		letters[i] = checksumAlphabet[mixed%26]
		mixed /= 26
	}
	return string(letters)
}

func verifyChecksum(ledgerID string, idText string, checksum string) error {
	want := computeChecksum(ledgerID, idText)
	if want != checksum {
		return newErr(ErrParse, fmt.Sprintf("checksum %q does not match expected %q for ledger %q", checksum, want, ledgerID), nil)
	}
	return nil
}
