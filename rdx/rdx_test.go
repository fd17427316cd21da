package rdx

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return New(mr.Addr(), "", 0), mr
}

func TestRevokeExpires(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	if err := c.Revoke(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	revoked, err := c.IsRevoked(ctx, "jti-1")
	if err != nil || !revoked {
		t.Fatalf("expected revoked, got %v %v", revoked, err)
	}

	mr.FastForward(2 * time.Minute)
	revoked, err = c.IsRevoked(ctx, "jti-1")
	if err != nil || revoked {
		t.Fatalf("expected revocation to expire, got %v %v", revoked, err)
	}
}

func TestJSONRoundTripAndDelPrefix(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	type entry struct{ Name string }
	if err := c.SetJSON(ctx, "destinations:list:a", entry{Name: "Toskana"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.SetJSON(ctx, "destinations:list:b", entry{Name: "Tromsø"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.SetJSON(ctx, "other", entry{Name: "keep"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got entry
	ok, err := c.GetJSON(ctx, "destinations:list:a", &got)
	if err != nil || !ok || got.Name != "Toskana" {
		t.Fatalf("unexpected get: %v %v %+v", ok, err, got)
	}

	if err := c.DelPrefix(ctx, "destinations:list:"); err != nil {
		t.Fatalf("del prefix: %v", err)
	}
	if ok, _ := c.GetJSON(ctx, "destinations:list:b", &got); ok {
		t.Fatalf("expected prefixed key to be gone")
	}
	if ok, _ := c.GetJSON(ctx, "other", &got); !ok {
		t.Fatalf("expected unrelated key to survive")
	}
}
