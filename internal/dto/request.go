package dto

// PaymentRequest is the POST /api/process_payment body. Card fields are
// required but forwarded to a simulated gateway, never a real processor.
type PaymentRequest struct {
	Date          string   `json:"date"`
	Timeslots     []string `json:"timeslots"`
	CourtID       string   `json:"courtId"`
	CustomerName  string   `json:"customerName"`
	CustomerEmail string   `json:"customerEmail"`
	CustomerPhone string   `json:"customerPhone"`
	Amount        float64  `json:"amount"`
	CardNumber    string   `json:"cardNumber"`
	CardName      string   `json:"cardName"`
	ExpiryMonth   string   `json:"expiryMonth"`
	ExpiryYear    string   `json:"expiryYear"`
	CVV           string   `json:"cvv"`
}
