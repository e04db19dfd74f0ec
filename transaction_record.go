package ledgersdk

import "github.com/withObsrvr/ledger-sdk/internal/wire"

// TransactionRecord is a transaction's receipt plus the detail the
// receipt omits: the actual transfer list that took effect, the memo
// and fee charged, and (for contract calls) the call's return value
// and logs (SPEC_FULL.md §6).
type TransactionRecord struct {
	Receipt            TransactionReceipt
	TransactionID      TransactionID
	TransactionHash    []byte
	TransactionMemo    string
	TransactionFee     Amount
	ConsensusTimestamp Timestamp
	HbarTransfers      []hbarTransfer
	ContractCallResult []byte
}

const (
	tagRecordReceipt            uint32 = 1
	tagRecordTransactionID      uint32 = 2
	tagRecordTransactionHash    uint32 = 3
	tagRecordMemo               uint32 = 4
	tagRecordFee                uint32 = 5
	tagRecordConsensusTimestamp uint32 = 6
	tagRecordTransfers          uint32 = 7
	tagRecordContractCallResult uint32 = 8
)

// DecodeTransactionRecord parses the wire bytes returned by a
// TransactionRecordQuery response.
func DecodeTransactionRecord(data []byte) (TransactionRecord, error) {
	r := wire.NewReader(data)
	var out TransactionRecord
	for r.Len() > 0 {
		field, wt, err := r.ReadTag()
		if err != nil {
			return TransactionRecord{}, newErr(ErrParse, "malformed transaction record", err)
		}
		switch field {
		case tagRecordReceipt:
			b, err := r.ReadBytes()
			if err != nil {
				return TransactionRecord{}, newErr(ErrParse, "malformed record receipt", err)
			}
			receipt, err := DecodeTransactionReceipt(b)
			if err != nil {
				return TransactionRecord{}, err
			}
			out.Receipt = receipt
		case tagRecordTransactionID:
			sub, err := r.ReadMessage()
			if err != nil {
				return TransactionRecord{}, newErr(ErrParse, "malformed record transaction id", err)
			}
			id, err := decodeTransactionIDMessage(sub)
			if err != nil {
				return TransactionRecord{}, err
			}
			out.TransactionID = id
		case tagRecordTransactionHash:
			b, err := r.ReadBytes()
			if err != nil {
				return TransactionRecord{}, newErr(ErrParse, "malformed record transaction hash", err)
			}
			out.TransactionHash = append([]byte(nil), b...)
		case tagRecordMemo:
			s, err := r.ReadString()
			if err != nil {
				return TransactionRecord{}, newErr(ErrParse, "malformed record memo", err)
			}
			out.TransactionMemo = s
		case tagRecordFee:
			v, err := r.ReadVarintI64()
			if err != nil {
				return TransactionRecord{}, newErr(ErrParse, "malformed record fee", err)
			}
			out.TransactionFee = NewAmountFromTinyunits(v)
		case tagRecordConsensusTimestamp:
			sub, err := r.ReadMessage()
			if err != nil {
				return TransactionRecord{}, newErr(ErrParse, "malformed record consensus timestamp", err)
			}
			if _, _, err := sub.ReadTag(); err != nil {
				return TransactionRecord{}, newErr(ErrParse, "malformed record consensus timestamp", err)
			}
			seconds, _ := sub.ReadVarintI64()
			_, wt2, err := sub.ReadTag()
			if err == nil && wt2 == wire.WireVarint {
				nanos, _ := sub.ReadVarintI64()
				out.ConsensusTimestamp = Timestamp{Seconds: seconds, Nanos: int32(nanos)}
			} else {
				out.ConsensusTimestamp = Timestamp{Seconds: seconds}
			}
		case tagRecordTransfers:
			sub, err := r.ReadMessage()
			if err != nil {
				return TransactionRecord{}, newErr(ErrParse, "malformed record transfer list", err)
			}
			transfer, err := decodeAccountAmount(sub)
			if err != nil {
				return TransactionRecord{}, err
			}
			out.HbarTransfers = append(out.HbarTransfers, transfer)
		case tagRecordContractCallResult:
			b, err := r.ReadBytes()
			if err != nil {
				return TransactionRecord{}, newErr(ErrParse, "malformed record contract call result", err)
			}
			out.ContractCallResult = append([]byte(nil), b...)
		default:
			if err := r.SkipField(wt); err != nil {
				return TransactionRecord{}, newErr(ErrParse, "malformed transaction record", err)
			}
		}
	}
	return out, nil
}

func decodeTransactionIDMessage(r *wire.Reader) (TransactionID, error) {
	var out TransactionID
	for r.Len() > 0 {
		field, wt, err := r.ReadTag()
		if err != nil {
			return TransactionID{}, newErr(ErrParse, "malformed transaction id", err)
		}
		switch field {
		case wire.TagTxIDAccountID:
			sub, err := r.ReadMessage()
			if err != nil {
				return TransactionID{}, newErr(ErrParse, "malformed transaction id account", err)
			}
			id, err := decodeEntityID(sub)
			if err != nil {
				return TransactionID{}, err
			}
			out.AccountID = AccountID{entityID: id}
		case wire.TagTxIDValidStart:
			sub, err := r.ReadMessage()
			if err != nil {
				return TransactionID{}, newErr(ErrParse, "malformed transaction id valid start", err)
			}
			if _, _, err := sub.ReadTag(); err != nil {
				return TransactionID{}, newErr(ErrParse, "malformed transaction id valid start", err)
			}
			seconds, _ := sub.ReadVarintI64()
			_, _, err2 := sub.ReadTag()
			var nanos int64
			if err2 == nil {
				nanos, _ = sub.ReadVarintI64()
			}
			out.ValidStart = Timestamp{Seconds: seconds, Nanos: int32(nanos)}
		default:
			if err := r.SkipField(wt); err != nil {
				return TransactionID{}, newErr(ErrParse, "malformed transaction id", err)
			}
		}
	}
	return out, nil
}

func decodeAccountAmount(r *wire.Reader) (hbarTransfer, error) {
	var out hbarTransfer
	for r.Len() > 0 {
		field, wt, err := r.ReadTag()
		if err != nil {
			return hbarTransfer{}, newErr(ErrParse, "malformed account amount", err)
		}
		switch field {
		case wire.TagAccountAmountAccountID:
			sub, err := r.ReadMessage()
			if err != nil {
				return hbarTransfer{}, newErr(ErrParse, "malformed account amount account id", err)
			}
			id, err := decodeEntityID(sub)
			if err != nil {
				return hbarTransfer{}, err
			}
			out.AccountID = AccountID{entityID: id}
		case wire.TagAccountAmountAmount:
			v, err := r.ReadVarintI64()
			if err != nil {
				return hbarTransfer{}, newErr(ErrParse, "malformed account amount value", err)
			}
			out.Amount = NewAmountFromTinyunits(v)
		default:
			if err := r.SkipField(wt); err != nil {
				return hbarTransfer{}, newErr(ErrParse, "malformed account amount", err)
			}
		}
	}
	return out, nil
}
