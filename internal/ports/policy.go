package ports

// OptionMergePort decides how repeated URL-like option values combine into
// the accumulated list.
type OptionMergePort interface {
	MergeIndexURLs(existing []string, value string) []string
}
