package ledgersdk

// Status is the closed, wire-stable enumeration of precheck and receipt
// outcomes. Numeric values match the network's published schema; unknown
// wire codes decode to StatusUnknown rather than failing parse, so a
// client built against an older status list keeps working.
type Status int32

const (
	StatusUnknown Status = iota
	StatusOk
	StatusInvalidTransaction
	StatusPayerAccountNotFound
	StatusInvalidNodeAccount
	StatusTransactionExpired
	StatusInvalidTransactionStart
	StatusInvalidTransactionDuration
	StatusInvalidSignature
	StatusMemoTooLong
	StatusInsufficientTxFee
	StatusInsufficientPayerBalance
	StatusDuplicateTransaction
	StatusBusy
	StatusNotSupported
	StatusInvalidAccountID
	StatusAccountDeleted
	StatusInvalidContractID
	StatusPlatformNotActive
	StatusInvalidSignatureType
	StatusTransactionOversize
	StatusUnauthorized
	StatusInvalidTokenID
	StatusTokenWasDeleted
	StatusInvalidTopicID
	StatusAutoRenewDurationNotInRange
	StatusSuccess
	StatusFail
	StatusReceiptNotFound
	StatusRecordNotFound
	StatusUnknownTransactionID
)

var statusNames = map[Status]string{
	StatusUnknown:                     "UNKNOWN",
	StatusOk:                          "OK",
	StatusInvalidTransaction:          "INVALID_TRANSACTION",
	StatusPayerAccountNotFound:        "PAYER_ACCOUNT_NOT_FOUND",
	StatusInvalidNodeAccount:          "INVALID_NODE_ACCOUNT",
	StatusTransactionExpired:          "TRANSACTION_EXPIRED",
	StatusInvalidTransactionStart:     "INVALID_TRANSACTION_START",
	StatusInvalidTransactionDuration:  "INVALID_TRANSACTION_DURATION",
	StatusInvalidSignature:            "INVALID_SIGNATURE",
	StatusMemoTooLong:                 "MEMO_TOO_LONG",
	StatusInsufficientTxFee:           "INSUFFICIENT_TX_FEE",
	StatusInsufficientPayerBalance:    "INSUFFICIENT_PAYER_BALANCE",
	StatusDuplicateTransaction:        "DUPLICATE_TRANSACTION",
	StatusBusy:                        "BUSY",
	StatusNotSupported:                "NOT_SUPPORTED",
	StatusInvalidAccountID:            "INVALID_ACCOUNT_ID",
	StatusAccountDeleted:              "ACCOUNT_DELETED",
	StatusInvalidContractID:           "INVALID_CONTRACT_ID",
	StatusPlatformNotActive:           "PLATFORM_NOT_ACTIVE",
	StatusInvalidSignatureType:        "INVALID_SIGNATURE_TYPE",
	StatusTransactionOversize:         "TRANSACTION_OVERSIZE",
	StatusUnauthorized:                "UNAUTHORIZED",
	StatusInvalidTokenID:              "INVALID_TOKEN_ID",
	StatusTokenWasDeleted:             "TOKEN_WAS_DELETED",
	StatusInvalidTopicID:              "INVALID_TOPIC_ID",
	StatusAutoRenewDurationNotInRange: "AUTO_RENEW_DURATION_NOT_IN_RANGE",
	StatusSuccess:                     "SUCCESS",
	StatusFail:                        "FAIL",
	StatusReceiptNotFound:             "RECEIPT_NOT_FOUND",
	StatusRecordNotFound:              "RECORD_NOT_FOUND",
	StatusUnknownTransactionID:        "UNKNOWN_TRANSACTION_ID",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// StatusFromWire maps a raw wire status code to a Status, falling back
// to StatusUnknown for codes this build does not recognize.
func StatusFromWire(code int32) Status {
	s := Status(code)
	if _, ok := statusNames[s]; ok {
		return s
	}
	return StatusUnknown
}

// disposition partitions statuses for the execution framework
// (SPEC_FULL.md §4.D): terminal success, retry-this-node,
// retry-next-node, or fatal.
type disposition int

const (
	dispositionSuccess disposition = iota
	dispositionRetrySameNode
	dispositionRetryNextNode
	dispositionFatal
)

func (s Status) disposition() disposition {
	switch s {
	case StatusOk, StatusSuccess:
		return dispositionSuccess
	case StatusBusy, StatusPlatformNotActive, StatusReceiptNotFound, StatusRecordNotFound, StatusUnknown:
		return dispositionRetrySameNode
	case StatusInvalidNodeAccount, StatusNotSupported:
		return dispositionRetryNextNode
	default:
		return dispositionFatal
	}
}
