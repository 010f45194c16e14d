package review

// Request is the body of a review call.
type Request struct {
	Code string `json:"code"`
}

// Result carries the text returned to the caller.
// Refused is set when the pre-filter answered instead of the provider.
type Result struct {
	Text    string `json:"text"`
	Refused bool   `json:"-"`
}
