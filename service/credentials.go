package service

// CredentialComparer decides whether a presented credential matches the
// stored one. The store and the existing frontend exchange plaintext
// passwords, so the production implementation is an equality check; hashed
// comparison can be swapped in here without touching any call site.
type CredentialComparer interface {
	Compare(stored, presented string) bool
}

// PlaintextComparer compares credentials as opaque strings.
type PlaintextComparer struct{}

func (PlaintextComparer) Compare(stored, presented string) bool {
	return stored == presented
}
