package notifier

import (
	"fmt"
	"strings"
)

// FormatBrokenLinksMessage reports how many references on target were checked and lists the broken ones.
func FormatBrokenLinksMessage(target string, total int, broken []string) string {
	return fmt.Sprintf("%s\n*%d* links on %s were checked.\nHowever, some links are inaccessible:\n%s\n%s",
		BrokenLinksMarker, total, target, strings.Join(broken, BrokenURLSep), BrokenLinksMarker)
}

// FormatErrorMessage reports a run that failed before producing a result.
func FormatErrorMessage(target, errorCode string) string {
	return fmt.Sprintf("%s - Error occurred when accessing %s - ErrorCode: %s - %s", ErrorPrefix, target, errorCode, ErrorSuffix)
}
