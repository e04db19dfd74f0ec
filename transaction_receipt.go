package ledgersdk

import "github.com/withObsrvr/ledger-sdk/internal/wire"

// TransactionReceipt is the consensus outcome of a transaction: its
// terminal Status plus whichever entity id or counter that kind of
// transaction creates or updates (SPEC_FULL.md §6).
type TransactionReceipt struct {
	Status              Status
	AccountID           *AccountID
	FileID              *FileID
	ContractID          *ContractID
	TokenID             *TokenID
	TopicID             *TopicID
	ScheduleID          *ScheduleID
	TopicSequenceNumber *uint64
	TopicRunningHash    []byte
	SerialNumbers       []int64
}

const (
	tagReceiptStatus              = wire.TagReceiptStatus
	tagReceiptAccountID           = wire.TagReceiptAccountID
	tagReceiptFileID              = wire.TagReceiptFileID
	tagReceiptContractID          = wire.TagReceiptContractID
	tagReceiptTokenID             = wire.TagReceiptTokenID
	tagReceiptTopicID             = wire.TagReceiptTopicID
	tagReceiptScheduleID          = wire.TagReceiptScheduleID
	tagReceiptTopicSequenceNumber = wire.TagReceiptTopicSeqNo
	tagReceiptTopicRunningHash    = wire.TagReceiptTopicRunHash
	tagReceiptSerialNumbers       = wire.TagReceiptSerials
)

func decodeEntityID(r *wire.Reader) (entityID, error) {
	var parts [4]uint64
	for r.Len() > 0 {
		field, _, err := r.ReadTag()
		if err != nil {
			return entityID{}, newErr(ErrParse, "malformed entity id", err)
		}
		v, err := r.ReadVarint()
		if err != nil {
			return entityID{}, newErr(ErrParse, "malformed entity id", err)
		}
		if field >= 1 && field <= 3 {
			parts[field] = v
		}
	}
	return entityID{Shard: parts[1], Realm: parts[2], Num: parts[3]}, nil
}

// DecodeTransactionReceipt parses the wire bytes produced by a
// TransactionGetReceipt response into a TransactionReceipt.
func DecodeTransactionReceipt(data []byte) (TransactionReceipt, error) {
	r := wire.NewReader(data)
	var out TransactionReceipt
	for r.Len() > 0 {
		field, wt, err := r.ReadTag()
		if err != nil {
			return TransactionReceipt{}, newErr(ErrParse, "malformed receipt", err)
		}
		switch field {
		case tagReceiptStatus:
			v, err := r.ReadVarint()
			if err != nil {
				return TransactionReceipt{}, newErr(ErrParse, "malformed receipt status", err)
			}
			out.Status = StatusFromWire(int32(v))
		case tagReceiptAccountID:
			nested, err := r.ReadMessage()
			if err != nil {
				return TransactionReceipt{}, newErr(ErrParse, "malformed receipt account id", err)
			}
			id, _ := decodeEntityID(nested)
			a := AccountID{entityID: id}
			out.AccountID = &a
		case tagReceiptFileID:
			nested, err := r.ReadMessage()
			if err != nil {
				return TransactionReceipt{}, newErr(ErrParse, "malformed receipt file id", err)
			}
			id, _ := decodeEntityID(nested)
			f := FileID{id}
			out.FileID = &f
		case tagReceiptContractID:
			nested, err := r.ReadMessage()
			if err != nil {
				return TransactionReceipt{}, newErr(ErrParse, "malformed receipt contract id", err)
			}
			id, _ := decodeEntityID(nested)
			c := ContractID{entityID: id}
			out.ContractID = &c
		case tagReceiptTokenID:
			nested, err := r.ReadMessage()
			if err != nil {
				return TransactionReceipt{}, newErr(ErrParse, "malformed receipt token id", err)
			}
			id, _ := decodeEntityID(nested)
			tk := TokenID{id}
			out.TokenID = &tk
		case tagReceiptTopicID:
			nested, err := r.ReadMessage()
			if err != nil {
				return TransactionReceipt{}, newErr(ErrParse, "malformed receipt topic id", err)
			}
			id, _ := decodeEntityID(nested)
			tp := TopicID{id}
			out.TopicID = &tp
		case tagReceiptScheduleID:
			nested, err := r.ReadMessage()
			if err != nil {
				return TransactionReceipt{}, newErr(ErrParse, "malformed receipt schedule id", err)
			}
			id, _ := decodeEntityID(nested)
			s := ScheduleID{id}
			out.ScheduleID = &s
		case tagReceiptTopicSequenceNumber:
			v, err := r.ReadVarint()
			if err != nil {
				return TransactionReceipt{}, newErr(ErrParse, "malformed receipt topic sequence number", err)
			}
			out.TopicSequenceNumber = &v
		case tagReceiptTopicRunningHash:
			b, err := r.ReadBytes()
			if err != nil {
				return TransactionReceipt{}, newErr(ErrParse, "malformed receipt topic running hash", err)
			}
			out.TopicRunningHash = append([]byte(nil), b...)
		case tagReceiptSerialNumbers:
			nested, err := r.ReadMessage()
			if err != nil {
				return TransactionReceipt{}, newErr(ErrParse, "malformed receipt serial numbers", err)
			}
			if _, _, err := nested.ReadTag(); err != nil {
				return TransactionReceipt{}, newErr(ErrParse, "malformed receipt serial numbers", err)
			}
			v, _ := nested.ReadVarintI64()
			out.SerialNumbers = append(out.SerialNumbers, v)
		default:
			if err := r.SkipField(wt); err != nil {
				return TransactionReceipt{}, newErr(ErrParse, "malformed receipt field", err)
			}
		}
	}
	return out, nil
}

// EncodeTransactionReceipt renders r as wire bytes, primarily useful
// for tests that stub a node's receipt response.
func EncodeTransactionReceipt(r TransactionReceipt) []byte {
	w := wire.NewWriter()
	w.WriteVarintU64(tagReceiptStatus, uint64(r.Status))
	if r.AccountID != nil {
		w.WriteMessage(tagReceiptAccountID, func(inner *wire.Writer) { encodeEntityID(inner, r.AccountID.entityID) })
	}
	if r.FileID != nil {
		w.WriteMessage(tagReceiptFileID, func(inner *wire.Writer) { encodeEntityID(inner, r.FileID.entityID) })
	}
	if r.ContractID != nil {
		w.WriteMessage(tagReceiptContractID, func(inner *wire.Writer) { encodeEntityID(inner, r.ContractID.entityID) })
	}
	if r.TokenID != nil {
		w.WriteMessage(tagReceiptTokenID, func(inner *wire.Writer) { encodeEntityID(inner, r.TokenID.entityID) })
	}
	if r.TopicID != nil {
		w.WriteMessage(tagReceiptTopicID, func(inner *wire.Writer) { encodeEntityID(inner, r.TopicID.entityID) })
	}
	if r.ScheduleID != nil {
		w.WriteMessage(tagReceiptScheduleID, func(inner *wire.Writer) { encodeEntityID(inner, r.ScheduleID.entityID) })
	}
	if r.TopicSequenceNumber != nil {
		w.WriteVarintU64(tagReceiptTopicSequenceNumber, *r.TopicSequenceNumber)
	}
	if len(r.TopicRunningHash) > 0 {
		w.WriteBytes(tagReceiptTopicRunningHash, r.TopicRunningHash)
	}
	for _, serial := range r.SerialNumbers {
		w.WriteMessage(tagReceiptSerialNumbers, func(inner *wire.Writer) { inner.WriteVarintI64(1, serial) })
	}
	return w.Bytes()
}

func encodeEntityID(w *wire.Writer, id entityID) {
	w.WriteVarintU64(1, id.Shard)
	w.WriteVarintU64(2, id.Realm)
	w.WriteVarintU64(3, id.Num)
}
