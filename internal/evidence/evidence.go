// Package evidence issues salted hash tokens for sensitive payload
// fragments. Tokens are write-once: nothing retained here allows a
// nonce-mode token to be recomputed after issuance.
package evidence

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/paradoxe/paradoxe/internal/models"
)

const (
	// Algorithm is fixed. The guarantee is tamper-evidence, not
	// cryptographic tamper-proofness.
	Algorithm = "sha256"

	// PrefixLen hex chars in the display form
	PrefixLen = 16

	nonceBytes = 16
)

// Issue computes a salted digest over the fragment and returns the
// token. Peppered mode is refused when the policy is strict or no
// pepper is configured; the call degrades to nonce mode rather than
// failing the evaluation.
func Issue(fragment string, policy *models.PolicyContext) (models.EvidenceToken, error) {
	mode := policy.EvidenceMode()
	if mode == models.EvidenceModePeppered && (policy.Strict() || policy.Pepper() == "") {
		mode = models.EvidenceModeNonce
	}

	var salt, nonce string
	switch mode {
	case models.EvidenceModePeppered:
		salt = policy.Pepper()
	default:
		mode = models.EvidenceModeNonce
		var buf [nonceBytes]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return models.EvidenceToken{}, fmt.Errorf("evidence: nonce: %w", err)
		}
		nonce = hex.EncodeToString(buf[:])
		salt = nonce
	}

	sum := sha256.Sum256([]byte(fragment + salt))
	digest := hex.EncodeToString(sum[:])

	return models.EvidenceToken{
		Algorithm:    Algorithm,
		Mode:         mode,
		DigestPrefix: digest[:PrefixLen],
		Nonce:        nonce,
	}, nil
}
