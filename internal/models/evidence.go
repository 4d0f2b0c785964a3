package models

// EvidenceMode selects how a payload digest is salted.
type EvidenceMode string

const (
	EvidenceModeNonce    EvidenceMode = "nonce"
	EvidenceModePeppered EvidenceMode = "peppered"
)

// EvidenceToken is a tamper-evident reference to a payload fragment.
// At most one is issued per evaluation; nonce-mode tokens are not
// reproducible after issuance.
type EvidenceToken struct {
	Algorithm    string       `json:"algorithm"`
	Mode         EvidenceMode `json:"mode"`
	DigestPrefix string       `json:"digest_prefix"`
	Nonce        string       `json:"nonce,omitempty"`
}

// String renders the fixed display form, e.g. "sha256:9f2a...".
func (t EvidenceToken) String() string {
	return t.Algorithm + ":" + t.DigestPrefix
}
