package observability

import (
	"context"
	"regexp"
	"testing"
)

var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestWithOpID(t *testing.T) {
	ctx := WithOpID(context.Background())
	id := OpID(ctx)
	if !uuidRe.MatchString(id) {
		t.Errorf("OpID = %q, want UUIDv4 form", id)
	}
}

func TestOpID_Unset(t *testing.T) {
	if id := OpID(context.Background()); id != "" {
		t.Errorf("OpID on empty context = %q, want empty", id)
	}
}

func TestWithOpID_Unique(t *testing.T) {
	a := OpID(WithOpID(context.Background()))
	b := OpID(WithOpID(context.Background()))
	if a == b {
		t.Error("two invocations produced the same op_id")
	}
}
