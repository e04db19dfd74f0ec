package wire

// Field tags are centralized per message kind here rather than scattered
// as literals through the encoders (spec's redesign note: "Protobuf
// field-tag hardcoding scattered through encoders... Centralize tag
// constants per message type").

// TransactionID fields.
const (
	TagTxIDAccountID   uint32 = 1
	TagTxIDValidStart  uint32 = 2
	TagTxIDNonce       uint32 = 3
	TagTxIDScheduled   uint32 = 4
)

// AccountID/ContractID/TokenID/TopicID/FileID/ScheduleID share this shape.
const (
	TagEntityShard uint32 = 1
	TagEntityRealm uint32 = 2
	TagEntityNum   uint32 = 3
	TagEntityAlias uint32 = 4
)

// Timestamp/Duration.
const (
	TagTimeSeconds uint32 = 1
	TagTimeNanos   uint32 = 2
)

// TransactionBody common fields.
const (
	TagBodyTransactionID    uint32 = 1
	TagBodyNodeAccountID    uint32 = 2
	TagBodyTransactionFee   uint32 = 3
	TagBodyValidDuration    uint32 = 4
	TagBodyMemo             uint32 = 5
	TagBodyScheduled        uint32 = 6
	TagBodyDataOneof        uint32 = 20
)

// SignaturePair / SignatureMap.
const (
	TagSigPairPrefix    uint32 = 1
	TagSigPairEd25519   uint32 = 2
	TagSigPairECDSA     uint32 = 3
	TagSigMapEntries    uint32 = 1
)

// SignedTransaction envelope.
const (
	TagSignedBodyBytes uint32 = 1
	TagSignedSigMap    uint32 = 2
)

// TransferTransaction body.
const (
	TagTransferAccountAmounts uint32 = 1
	TagTransferTokenTransfers uint32 = 2
)

// AccountAmount entry.
const (
	TagAccountAmountAccountID uint32 = 1
	TagAccountAmountAmount    uint32 = 2
)

// TokenTransferList entry.
const (
	TagTokenTransferToken            uint32 = 1
	TagTokenTransferTransfers         uint32 = 2
	TagTokenTransferNftTransfers      uint32 = 3
	TagTokenTransferExpectedDecimals  uint32 = 4
)

// NftTransfer entry.
const (
	TagNftTransferSender   uint32 = 1
	TagNftTransferReceiver uint32 = 2
	TagNftTransferSerial   uint32 = 3
)

// ConsensusSubmitMessage body.
const (
	TagSubmitMessageTopicID        uint32 = 1
	TagSubmitMessageMessage        uint32 = 2
	TagSubmitMessageChunkInfo      uint32 = 3
)

// ConsensusMessageChunkInfo.
const (
	TagChunkInfoInitialTxID uint32 = 1
	TagChunkInfoTotal       uint32 = 2
	TagChunkInfoNumber      uint32 = 3
)

// TransactionReceipt.
const (
	TagReceiptStatus        uint32 = 1
	TagReceiptAccountID     uint32 = 2
	TagReceiptFileID        uint32 = 3
	TagReceiptContractID    uint32 = 4
	TagReceiptTopicID       uint32 = 5
	TagReceiptTokenID       uint32 = 6
	TagReceiptTopicSeqNo    uint32 = 7
	TagReceiptTopicRunHash  uint32 = 8
	TagReceiptSerials       uint32 = 9
	TagReceiptScheduleID    uint32 = 10
)

// Key / KeyList / ThresholdKey.
const (
	TagKeyEd25519      uint32 = 1
	TagKeyECDSASecp    uint32 = 2
	TagKeyKeyList      uint32 = 3
	TagKeyThresholdKey uint32 = 4
	TagKeyContractID   uint32 = 5
)

const (
	TagKeyListKeys uint32 = 1
)

const (
	TagThresholdKeyThreshold uint32 = 1
	TagThresholdKeyKeys      uint32 = 2
)

// Query envelope (common to every paid/unpaid query).
const (
	TagQueryHeader        uint32 = 1
	TagQueryResponseType  uint32 = 2
	TagQueryPayment       uint32 = 3
)
