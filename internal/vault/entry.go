package vault

// Entry is one stored credential. Password always holds plaintext; the
// encrypted form never leaves this package.
type Entry struct {
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}
