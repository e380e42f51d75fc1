package model

// Product is a read-only catalog entry. The catalog is provisioned outside
// this service; orders reference products but never own them.
type Product struct {
	ID    int64
	Name  string
	Price int
}
