package token

import (
	"context"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := NewContext(context.Background(), "abc123")

	tok, ok := FromContext(ctx)
	if !ok || tok != "abc123" {
		t.Errorf("FromContext = %q, %v", tok, ok)
	}

	var src ContextSource
	tok, ok = src.Token(ctx)
	if !ok || tok != "abc123" {
		t.Errorf("ContextSource.Token = %q, %v", tok, ok)
	}
}

func TestFromContext_Absent(t *testing.T) {
	if tok, ok := FromContext(context.Background()); ok || tok != "" {
		t.Errorf("FromContext on bare context = %q, %v", tok, ok)
	}
}

func TestStatic(t *testing.T) {
	tok, ok := Static("fixed").Token(context.Background())
	if !ok || tok != "fixed" {
		t.Errorf("Static.Token = %q, %v", tok, ok)
	}
	if _, ok := Static("").Token(context.Background()); ok {
		t.Error("empty static source should report no token")
	}
}

func TestStore(t *testing.T) {
	var s Store

	if _, ok := s.Token(context.Background()); ok {
		t.Error("fresh store should report no token")
	}

	s.Set("t1")
	tok, ok := s.Token(context.Background())
	if !ok || tok != "t1" {
		t.Errorf("Token after Set = %q, %v", tok, ok)
	}

	s.Clear()
	if _, ok := s.Token(context.Background()); ok {
		t.Error("store should report no token after Clear")
	}
}
