package models

// ResourceKind is the category of a page resource reference.
type ResourceKind string

const (
	ResourceKindScript ResourceKind = "script"
	ResourceKindLink   ResourceKind = "link"
	ResourceKindImage  ResourceKind = "image"
)

// Resource is a reference found in a page, already resolved to an absolute URL.
type Resource struct {
	URL       string       `json:"url"`
	Raw       string       `json:"raw"` // attribute value as written in the markup
	Kind      ResourceKind `json:"kind"`
	Tag       string       `json:"tag"`       // e.g., "script", "img"
	Attribute string       `json:"attribute"` // e.g., "src", "href"
}

// URLs returns the resolved URL of every resource, preserving order and duplicates.
func URLs(resources []Resource) []string {
	urls := make([]string, 0, len(resources))
	for _, r := range resources {
		urls = append(urls, r.URL)
	}
	return urls
}
