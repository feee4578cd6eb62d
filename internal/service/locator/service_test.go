package locator

import (
	"context"
	"errors"
	"testing"
)

type stubStoreRepo struct {
	ids        []string
	err        error
	lastRadius float64
}

func (s *stubStoreRepo) FindIDsWithinRadius(_ context.Context, _, _, radiusKm float64) ([]string, error) {
	s.lastRadius = radiusKm
	return s.ids, s.err
}

func TestNearbyStoreIDsUsesDefaultRadius(t *testing.T) {
	repo := &stubStoreRepo{ids: []string{"s1"}}
	svc := New(repo, 50, nil)

	got := svc.NearbyStoreIDs(context.Background(), 31.9, 35.9, 0)
	if len(got) != 1 || got[0] != "s1" {
		t.Fatalf("unexpected ids %v", got)
	}
	if repo.lastRadius != 50 {
		t.Fatalf("expected default radius 50, got %f", repo.lastRadius)
	}
}

func TestNearbyStoreIDsExplicitRadius(t *testing.T) {
	repo := &stubStoreRepo{}
	svc := New(repo, 50, nil)

	svc.NearbyStoreIDs(context.Background(), 31.9, 35.9, 10)
	if repo.lastRadius != 10 {
		t.Fatalf("expected radius 10, got %f", repo.lastRadius)
	}
}

func TestNearbyStoreIDsDegradesToEmptyOnError(t *testing.T) {
	repo := &stubStoreRepo{err: errors.New("connection refused")}
	svc := New(repo, 50, nil)

	if got := svc.NearbyStoreIDs(context.Background(), 31.9, 35.9, 0); got != nil {
		t.Fatalf("expected nil on backend failure, got %v", got)
	}
}
