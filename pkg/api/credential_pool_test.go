package api

import (
	"errors"
	"sync"
	"testing"
)

func testCredentials(n int) []Credential {
	creds := make([]Credential, n)
	for i := range creds {
		creds[i] = Credential{PartnerID: 1000 + i, Key: string(rune('a' + i))}
	}
	return creds
}

func TestCredentialPool_Empty(t *testing.T) {
	pool, err := NewCredentialPool(nil)
	if !errors.Is(err, ErrNoCredentials) {
		t.Errorf("Expected ErrNoCredentials, got %v", err)
	}
	if pool != nil {
		t.Error("Expected nil pool")
	}
}

func TestCredentialPool_SingleCredential(t *testing.T) {
	pool, err := NewCredentialPool(testCredentials(1))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Single credential should always be returned
	for i := 0; i < 10; i++ {
		if cred := pool.Next(); cred.PartnerID != 1000 {
			t.Errorf("Expected partner 1000, got %d", cred.PartnerID)
		}
	}
}

func TestCredentialPool_RoundRobin(t *testing.T) {
	creds := testCredentials(3)
	pool, err := NewCredentialPool(creds)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if pool.Size() != 3 {
		t.Errorf("Expected size 3, got %d", pool.Size())
	}

	// Two full cycles plus the wrap-around call
	for i := 0; i < 7; i++ {
		cred := pool.Next()
		if cred != creds[i%3] {
			t.Errorf("At iteration %d, expected %+v, got %+v", i, creds[i%3], cred)
		}
	}
}

func TestCredentialPool_CopiesInput(t *testing.T) {
	creds := testCredentials(2)
	pool, _ := NewCredentialPool(creds)
	creds[0].Key = "mutated"

	if pool.Next().Key == "mutated" {
		t.Error("Pool should not share the caller's slice")
	}

	listed := pool.Credentials()
	listed[1].Key = "mutated"
	if pool.Credentials()[1].Key == "mutated" {
		t.Error("Credentials() should return a copy")
	}
}

func TestCredentialPool_ThreadSafety(t *testing.T) {
	const size, rounds = 4, 250
	creds := testCredentials(size)
	pool, _ := NewCredentialPool(creds)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		counts = make(map[int]int)
	)

	for i := 0; i < size*rounds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cred := pool.Next()
			mu.Lock()
			counts[cred.PartnerID]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	// Every credential is issued exactly once per cycle
	for _, cred := range creds {
		if counts[cred.PartnerID] != rounds {
			t.Errorf("Credential %d issued %d times, want %d", cred.PartnerID, counts[cred.PartnerID], rounds)
		}
	}
}

func BenchmarkCredentialPool_Next(b *testing.B) {
	pool, _ := NewCredentialPool(testCredentials(3))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Next()
	}
}
