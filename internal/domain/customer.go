package domain

type Customer struct {
	ID   int64
	RTN  string
	Name string
}

// FinalConsumer is printed when a sale names no customer.
const FinalConsumer = "CONSUMIDOR FINAL"
