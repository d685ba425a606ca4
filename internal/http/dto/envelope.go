package dto

// Envelope wraps every JSON response body.
type Envelope struct {
	Data    any     `json:"data"`
	Error   *string `json:"error"`
	Success bool    `json:"success"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Fail(msg string) Envelope {
	return Envelope{Error: &msg}
}
