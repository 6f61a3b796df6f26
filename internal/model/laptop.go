package model

// Laptop is the single record served by the laptopstore backend.
// ID is assigned by the server; it is 0 until the record is created.
type Laptop struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Brand     string  `json:"brand"`
	Storage   string  `json:"storage"`
	RAM       string  `json:"ram"`
	Processor string  `json:"processor"`
}
