package evidence

import (
	"regexp"
	"testing"

	"github.com/paradoxe/paradoxe/internal/models"
)

var tokenRe = regexp.MustCompile(`^sha256:[0-9a-f]{16}$`)

func TestIssue_NonceTokenForm(t *testing.T) {
	policy := models.FreezePolicy(models.PolicyOptions{})

	token, err := Issue("eval(self.rules = {})", policy)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if !tokenRe.MatchString(token.String()) {
		t.Errorf("token = %q, want sha256:<16 hex>", token.String())
	}
	if token.Mode != models.EvidenceModeNonce {
		t.Errorf("mode = %q, want nonce", token.Mode)
	}
	if len(token.Nonce) != nonceBytes*2 {
		t.Errorf("nonce length = %d, want %d", len(token.Nonce), nonceBytes*2)
	}
}

func TestIssue_NonceNotReplayable(t *testing.T) {
	policy := models.FreezePolicy(models.PolicyOptions{})

	a, err := Issue("same fragment", policy)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	b, err := Issue("same fragment", policy)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if a.DigestPrefix == b.DigestPrefix {
		t.Error("nonce-mode tokens for the same fragment matched; replay must be impossible")
	}
}

func TestIssue_PepperedDeterministic(t *testing.T) {
	policy := models.FreezePolicy(models.PolicyOptions{
		EvidenceMode: models.EvidenceModePeppered,
		Pepper:       "test-pepper",
	})

	a, err := Issue("fragment", policy)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	b, err := Issue("fragment", policy)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if a.Mode != models.EvidenceModePeppered {
		t.Fatalf("mode = %q, want peppered", a.Mode)
	}
	if a.DigestPrefix != b.DigestPrefix {
		t.Error("peppered tokens for the same fragment differed")
	}
	if a.Nonce != "" {
		t.Errorf("peppered token carries a nonce: %q", a.Nonce)
	}
}

func TestIssue_PepperedRefusedUnderStrict(t *testing.T) {
	policy := models.FreezePolicy(models.PolicyOptions{
		Strict:       true,
		EvidenceMode: models.EvidenceModePeppered,
		Pepper:       "test-pepper",
	})

	token, err := Issue("fragment", policy)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token.Mode != models.EvidenceModeNonce {
		t.Errorf("mode = %q under strict, want nonce fallback", token.Mode)
	}
}

func TestIssue_PepperedWithoutPepperFallsBack(t *testing.T) {
	policy := models.FreezePolicy(models.PolicyOptions{
		EvidenceMode: models.EvidenceModePeppered,
	})

	token, err := Issue("fragment", policy)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token.Mode != models.EvidenceModeNonce {
		t.Errorf("mode = %q without pepper, want nonce fallback", token.Mode)
	}
}

func TestIssue_FragmentBound(t *testing.T) {
	policy := models.FreezePolicy(models.PolicyOptions{
		EvidenceMode: models.EvidenceModePeppered,
		Pepper:       "test-pepper",
	})

	a, _ := Issue("fragment one", policy)
	b, _ := Issue("fragment two", policy)
	if a.DigestPrefix == b.DigestPrefix {
		t.Error("different fragments produced the same digest")
	}
}
