package api

import (
	"errors"
	"sync"
)

// ErrNoCredentials is returned when a pool is built without credentials
var ErrNoCredentials = errors.New("credential pool must contain at least one credential")

// Credential is a Glassdoor partner id / key pair
type Credential struct {
	PartnerID int    `json:"partner_id" mapstructure:"partner_id"`
	Key       string `json:"key" mapstructure:"key"`
}

// CredentialPool hands out credentials in round-robin order.
// The cursor read and advance happen under one lock, so concurrent callers
// never skip or double-issue a position.
type CredentialPool struct {
	mu          sync.Mutex
	credentials []Credential
	next        int
}

// NewCredentialPool creates a pool over a fixed, non-empty credential list
func NewCredentialPool(credentials []Credential) (*CredentialPool, error) {
	if len(credentials) == 0 {
		return nil, ErrNoCredentials
	}

	pool := &CredentialPool{credentials: make([]Credential, len(credentials))}
	copy(pool.credentials, credentials)
	return pool, nil
}

// Next returns the credential at the cursor and advances it, wrapping to 0
func (p *CredentialPool) Next() Credential {
	p.mu.Lock()
	defer p.mu.Unlock()

	credential := p.credentials[p.next]
	p.next++
	if p.next >= len(p.credentials) {
		p.next = 0
	}
	return credential
}

// Credentials returns a copy of the pool contents (for diagnostics)
func (p *CredentialPool) Credentials() []Credential {
	result := make([]Credential, len(p.credentials))
	copy(result, p.credentials)
	return result
}

// Size returns the number of credentials in the pool
func (p *CredentialPool) Size() int {
	return len(p.credentials)
}
