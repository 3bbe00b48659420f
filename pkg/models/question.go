package models

// Question is one multiple-choice question from the bank. CorrectAnswer holds
// the full option text ("B) 28"); answers are checked by exact string match.
type Question struct {
	ID            string   `json:"id"`
	Subject       string   `json:"subject"`
	Topic         string   `json:"topic"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}
