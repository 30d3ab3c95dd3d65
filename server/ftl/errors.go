package ftl

import "errors"

// Sentinel errors for the fatal taxonomy. All of these signal an
// implementation or configuration bug rather than a recoverable runtime
// condition: a host request never observes one directly, the simulation
// aborts instead. The sole recoverable condition, DoubleInsertion during
// refresh, is not an error at all -- it is counted in stat.doubleInsertionCount
// and skipped (see RefreshEngine.RefreshTick).
var (
	ErrInvalidIOUnit       = errors.New("ftl: block constructed or addressed with inconsistent io-unit count")
	ErrIOMapSizeMismatch   = errors.New("ftl: io-unit bitmap size does not match ioUnitInPage")
	ErrSequentialWrite     = errors.New("ftl: write to block should be sequential")
	ErrWriteToNonErased    = errors.New("ftl: write to non-erased page")
	ErrOutOfFreeBlocks     = errors.New("ftl: out of free blocks")
	ErrCorruptedFreeBlock  = errors.New("ftl: block present in active map and free pool simultaneously")
	ErrCorruptedMapping    = errors.New("ftl: mapping entry references a missing block")
	ErrGCDuringWarmup      = errors.New("ftl: garbage collection triggered during warmup fill")
	ErrRefreshLostLayer    = errors.New("ftl: refresh queue references a layer with no enrolled block")
	ErrWrongQueueOnRefresh = errors.New("ftl: layer drained from a queue that does not match its enrolment")
	ErrInvalidPolicy       = errors.New("ftl: unrecognised eviction policy")
	ErrInvalidGCMode       = errors.New("ftl: unrecognised GC mode")
)

// OpError wraps a sentinel with the operation that triggered it.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return e.Op + ": <nil>"
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// NewOpError attaches an operation name to a sentinel error for diagnostics.
func NewOpError(op string, err error) error {
	return &OpError{Op: op, Err: err}
}

func IsOutOfFreeBlocks(err error) bool {
	return errors.Is(err, ErrOutOfFreeBlocks)
}

func IsCorruptedMapping(err error) bool {
	return errors.Is(err, ErrCorruptedMapping)
}

func IsInvalidPolicy(err error) bool {
	return errors.Is(err, ErrInvalidPolicy)
}

func IsInvalidGCMode(err error) bool {
	return errors.Is(err, ErrInvalidGCMode)
}

func IsGCDuringWarmup(err error) bool {
	return errors.Is(err, ErrGCDuringWarmup)
}
