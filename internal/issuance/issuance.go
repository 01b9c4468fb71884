package issuance

import "errors"

var (
	// ErrMintingDisabled indicates the owner has switched issuance off.
	ErrMintingDisabled = errors.New("minting is disabled")

	// ErrAmountNotPositive indicates a requested amount of zero or less.
	ErrAmountNotPositive = errors.New("amount must be above zero")

	// ErrItemExists indicates the item id was already created; supply for an
	// existing id only grows through IncreaseExisting.
	ErrItemExists = errors.New("item id already exists")

	// ErrItemNotFound indicates no unit of the item id was ever minted.
	ErrItemNotFound = errors.New("item id does not exist")
)

// errBatchShape is a plain precondition failure, deliberately not part of the
// named error set callers branch on.
var errBatchShape = errors.New("invalid batch shape")

