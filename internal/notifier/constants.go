package notifier

// Message framing
const (
	BrokenLinksMarker = ":bug::bug::bug:"
	ErrorPrefix       = ":skull: :bug: :skull:"
	ErrorSuffix       = ":bug: :skull: :bug:"
	BrokenURLSep      = ",\n"
)
