package tessera

// Operation tags what a change event or commit log record did to a row.
type Operation int

const (
	OperationUnknown Operation = iota
	OperationRead
	OperationWrite
	OperationDelete
	OperationIncrement
	OperationTruncate
)

func (o Operation) String() string {
	switch o {
	case OperationRead:
		return "READ"
	case OperationWrite:
		return "WRITE"
	case OperationDelete:
		return "DELETE"
	case OperationIncrement:
		return "INCREMENT"
	case OperationTruncate:
		return "TRUNCATE"
	}
	return "UNKNOWN"
}
