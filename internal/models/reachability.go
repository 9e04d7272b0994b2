package models

// ReachabilityResult is the outcome of probing one URL.
type ReachabilityResult struct {
	URL       string `json:"url"`
	Reachable bool   `json:"reachable"`
	// Error holds the probe failure for logging; it never changes Reachable.
	Error string `json:"error,omitempty"`
}

// BrokenURLs returns the URLs of unreachable results in result order.
func BrokenURLs(results []ReachabilityResult) []string {
	var broken []string
	for _, r := range results {
		if !r.Reachable {
			broken = append(broken, r.URL)
		}
	}
	return broken
}
