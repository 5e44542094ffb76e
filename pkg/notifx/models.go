package notifx

// Message represents a notification to be delivered, typically as email.
type Message struct {
	From     string   `json:"from"`
	To       []string `json:"to"`
	ReplyTo  string   `json:"reply_to,omitempty"`
	Subject  string   `json:"subject"`
	TextBody string   `json:"text_body,omitempty"`
	HTMLBody string   `json:"html_body,omitempty"`
}
