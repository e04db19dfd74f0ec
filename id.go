package ledgersdk

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// entityID is the shared (shard, realm, num) triple. Every specialized
// identifier type below embeds it so each kind stays a distinct Go type
// that does not implicitly convert to another kind, per SPEC_FULL.md §3.
type entityID struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

func (e entityID) text() string {
	return fmt.Sprintf("%d.%d.%d", e.Shard, e.Realm, e.Num)
}

func (e entityID) compare(other entityID) int {
	switch {
	case e.Shard != other.Shard:
		return cmpUint64(e.Shard, other.Shard)
	case e.Realm != other.Realm:
		return cmpUint64(e.Realm, other.Realm)
	default:
		return cmpUint64(e.Num, other.Num)
	}
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func parseEntityID(s string) (entityID, string, error) {
	body, checksum, _ := strings.Cut(s, "-")
	parts := strings.Split(body, ".")
	if len(parts) != 3 {
		return entityID{}, "", newErr(ErrParse, "id must have the form shard.realm.num", nil)
	}
	nums := make([]uint64, 3)
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return entityID{}, "", newErr(ErrParse, "id component is not a non-negative integer: "+p, err)
		}
		nums[i] = n
	}
	if checksum != "" && (len(checksum) != 5 || strings.ToLower(checksum) != checksum) {
		return entityID{}, "", newErr(ErrParse, "checksum must be exactly five lowercase letters", nil)
	}
	return entityID{Shard: nums[0], Realm: nums[1], Num: nums[2]}, checksum, nil
}

// AccountID identifies a ledger account, optionally by a 20-byte
// EVM-style alias instead of (shard, realm, num).
type AccountID struct {
	entityID
	AliasEvmAddress *[20]byte
}

// NewAccountID constructs an AccountID from its numeric triple.
func NewAccountID(shard, realm, num uint64) AccountID {
	return AccountID{entityID: entityID{Shard: shard, Realm: realm, Num: num}}
}

// ParseAccountID parses "shard.realm.num[-checksum]" or a 40-hex-character
// EVM address, with or without a "0x" prefix.
func ParseAccountID(s string, ledgerID string) (AccountID, error) {
	if addr, ok := tryParseEvmAddress(s); ok {
		return AccountID{AliasEvmAddress: &addr}, nil
	}
	id, checksum, err := parseEntityID(s)
	if err != nil {
		return AccountID{}, err
	}
	if checksum != "" {
		if err := verifyChecksum(ledgerID, id.text(), checksum); err != nil {
			return AccountID{}, err
		}
	}
	return AccountID{entityID: id}, nil
}

// String renders the canonical textual form, or the EVM alias if set.
func (a AccountID) String() string {
	if a.AliasEvmAddress != nil {
		return "0x" + hex.EncodeToString(a.AliasEvmAddress[:])
	}
	return a.entityID.text()
}

// ToStringWithChecksum appends the ledger-identifier checksum.
func (a AccountID) ToStringWithChecksum(ledgerID string) string {
	if a.AliasEvmAddress != nil {
		return a.String()
	}
	return a.entityID.text() + "-" + computeChecksum(ledgerID, a.entityID.text())
}

// Equal reports whether two AccountIDs denote the same account.
func (a AccountID) Equal(other AccountID) bool {
	if a.AliasEvmAddress != nil || other.AliasEvmAddress != nil {
		return a.AliasEvmAddress != nil && other.AliasEvmAddress != nil && *a.AliasEvmAddress == *other.AliasEvmAddress
	}
	return a.entityID == other.entityID
}

func tryParseEvmAddress(s string) ([20]byte, bool) {
	hexPart := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(hexPart) != 40 {
		return [20]byte{}, false
	}
	raw, err := hex.DecodeString(hexPart)
	if err != nil {
		return [20]byte{}, false
	}
	var out [20]byte
	copy(out[:], raw)
	return out, true
}

// ContractID identifies a smart contract instance.
type ContractID struct {
	entityID
	AliasEvmAddress *[20]byte
}

// NewContractID constructs a ContractID from its numeric triple.
func NewContractID(shard, realm, num uint64) ContractID {
	return ContractID{entityID: entityID{Shard: shard, Realm: realm, Num: num}}
}

// ParseContractID parses "shard.realm.num[-checksum]" or an EVM address.
func ParseContractID(s string, ledgerID string) (ContractID, error) {
	if addr, ok := tryParseEvmAddress(s); ok {
		return ContractID{AliasEvmAddress: &addr}, nil
	}
	id, checksum, err := parseEntityID(s)
	if err != nil {
		return ContractID{}, err
	}
	if checksum != "" {
		if err := verifyChecksum(ledgerID, id.text(), checksum); err != nil {
			return ContractID{}, err
		}
	}
	return ContractID{entityID: id}, nil
}

func (c ContractID) String() string {
	if c.AliasEvmAddress != nil {
		return "0x" + hex.EncodeToString(c.AliasEvmAddress[:])
	}
	return c.entityID.text()
}

// FileID identifies a file entity.
type FileID struct{ entityID }

// NewFileID constructs a FileID from its numeric triple.
func NewFileID(shard, realm, num uint64) FileID {
	return FileID{entityID{Shard: shard, Realm: realm, Num: num}}
}

// ParseFileID parses "shard.realm.num[-checksum]".
func ParseFileID(s string, ledgerID string) (FileID, error) {
	id, checksum, err := parseEntityID(s)
	if err != nil {
		return FileID{}, err
	}
	if checksum != "" {
		if err := verifyChecksum(ledgerID, id.text(), checksum); err != nil {
			return FileID{}, err
		}
	}
	return FileID{id}, nil
}

func (f FileID) String() string { return f.entityID.text() }

// TokenID identifies a fungible or non-fungible token type.
type TokenID struct{ entityID }

// NewTokenID constructs a TokenID from its numeric triple.
func NewTokenID(shard, realm, num uint64) TokenID {
	return TokenID{entityID{Shard: shard, Realm: realm, Num: num}}
}

// ParseTokenID parses "shard.realm.num[-checksum]".
func ParseTokenID(s string, ledgerID string) (TokenID, error) {
	id, checksum, err := parseEntityID(s)
	if err != nil {
		return TokenID{}, err
	}
	if checksum != "" {
		if err := verifyChecksum(ledgerID, id.text(), checksum); err != nil {
			return TokenID{}, err
		}
	}
	return TokenID{id}, nil
}

func (t TokenID) String() string { return t.entityID.text() }

// Equal reports whether two TokenIDs denote the same token type.
func (t TokenID) Equal(other TokenID) bool { return t.entityID == other.entityID }

// TopicID identifies a consensus message topic.
type TopicID struct{ entityID }

// NewTopicID constructs a TopicID from its numeric triple.
func NewTopicID(shard, realm, num uint64) TopicID {
	return TopicID{entityID{Shard: shard, Realm: realm, Num: num}}
}

// ParseTopicID parses "shard.realm.num[-checksum]".
func ParseTopicID(s string, ledgerID string) (TopicID, error) {
	id, checksum, err := parseEntityID(s)
	if err != nil {
		return TopicID{}, err
	}
	if checksum != "" {
		if err := verifyChecksum(ledgerID, id.text(), checksum); err != nil {
			return TopicID{}, err
		}
	}
	return TopicID{id}, nil
}

func (t TopicID) String() string { return t.entityID.text() }

// ScheduleID identifies a schedulable transaction entity.
type ScheduleID struct{ entityID }

// NewScheduleID constructs a ScheduleID from its numeric triple.
func NewScheduleID(shard, realm, num uint64) ScheduleID {
	return ScheduleID{entityID{Shard: shard, Realm: realm, Num: num}}
}

// ParseScheduleID parses "shard.realm.num[-checksum]".
func ParseScheduleID(s string, ledgerID string) (ScheduleID, error) {
	id, checksum, err := parseEntityID(s)
	if err != nil {
		return ScheduleID{}, err
	}
	if checksum != "" {
		if err := verifyChecksum(ledgerID, id.text(), checksum); err != nil {
			return ScheduleID{}, err
		}
	}
	return ScheduleID{id}, nil
}

func (s ScheduleID) String() string { return s.entityID.text() }

// NftID identifies a single serial of a token collection.
type NftID struct {
	TokenID TokenID
	Serial  int64
}

// ParseNftID parses "token_id/serial".
func ParseNftID(s string, ledgerID string) (NftID, error) {
	tokenPart, serialPart, ok := strings.Cut(s, "/")
	if !ok {
		return NftID{}, newErr(ErrParse, "nft id must have the form token_id/serial", nil)
	}
	tok, err := ParseTokenID(tokenPart, ledgerID)
	if err != nil {
		return NftID{}, err
	}
	serial, err := strconv.ParseInt(serialPart, 10, 64)
	if err != nil || serial <= 0 {
		return NftID{}, newErr(ErrParse, "nft serial must be a positive integer", err)
	}
	return NftID{TokenID: tok, Serial: serial}, nil
}

func (n NftID) String() string {
	return fmt.Sprintf("%s/%d", n.TokenID, n.Serial)
}
