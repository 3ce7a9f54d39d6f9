package ports

type NameNormalizer interface {
	Normalize(name string) string
}
