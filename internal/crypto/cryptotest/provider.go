// Package cryptotest provides misbehaving algorithm implementations for
// exercising the self-tests' failure paths.
package cryptotest

import (
	"sync"

	"github.com/TheMichaelB/cryptokat/internal/crypto"
)

// Fault describes how allocations of one algorithm name misbehave.
type Fault struct {
	// Async marks the implementation as completing outside the caller.
	Async bool
	// AllocErr fails allocation.
	AllocErr error
	// SetKeyErr fails key setup (and DRBG reset).
	SetKeyErr error
	// OpErr fails every encrypt, decrypt, digest and generate call.
	OpErr error
	// DecryptErr fails decrypt only.
	DecryptErr error
	// Corrupt flips the first byte of every output.
	Corrupt bool
	// Info edits the metadata reported by Info.
	Info func(*crypto.AlgInfo)
}

// Provider wraps a real provider, injecting faults by requested name and
// counting allocations and releases.
type Provider struct {
	base crypto.Provider

	mu     sync.Mutex
	faults map[string]Fault
	allocs map[string]int
	frees  map[string]int
}

// New wraps base.
func New(base crypto.Provider) *Provider {
	return &Provider{
		base:   base,
		faults: make(map[string]Fault),
		allocs: make(map[string]int),
		frees:  make(map[string]int),
	}
}

// Inject sets the fault for name, replacing any previous one.
func (p *Provider) Inject(name string, f Fault) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.faults[name] = f
	return p
}

// Allocs returns successful allocations of name.
func (p *Provider) Allocs(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocs[name]
}

// Frees returns Free calls on handles allocated as name.
func (p *Provider) Frees(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frees[name]
}

// Outstanding returns allocations not yet freed, across all names.
// Negative values mean a handle was freed twice.
func (p *Provider) Outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.allocs {
		n += c
	}
	for _, c := range p.frees {
		n -= c
	}
	return n
}

func (p *Provider) fault(name string) (Fault, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f := p.faults[name]
	return f, f.AllocErr
}

func (p *Provider) recordAlloc(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.allocs[name]++
}

func (p *Provider) recordFree(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frees[name]++
}

// handle carries the bookkeeping shared by every wrapper.
type handle struct {
	p     *Provider
	name  string
	fault Fault
}

func (h handle) info(base crypto.AlgInfo) crypto.AlgInfo {
	if h.fault.Async {
		base.Async = true
	}
	if h.fault.Info != nil {
		h.fault.Info(&base)
	}
	return base
}

func (h handle) corrupt(out []byte) {
	if h.fault.Corrupt && len(out) > 0 {
		out[0] ^= 0xff
	}
}

func (h handle) decryptErr() error {
	if h.fault.DecryptErr != nil {
		return h.fault.DecryptErr
	}
	return h.fault.OpErr
}

// AllocCipher allocates a wrapped single-block cipher.
func (p *Provider) AllocCipher(name string) (crypto.Cipher, error) {
	f, err := p.fault(name)
	if err != nil {
		return nil, err
	}
	c, err := p.base.AllocCipher(name)
	if err != nil {
		return nil, err
	}
	p.recordAlloc(name)
	return &faultyCipher{Cipher: c, h: handle{p, name, f}}, nil
}

// AllocSkcipher allocates a wrapped length-preserving cipher.
func (p *Provider) AllocSkcipher(name string) (crypto.Skcipher, error) {
	f, err := p.fault(name)
	if err != nil {
		return nil, err
	}
	s, err := p.base.AllocSkcipher(name)
	if err != nil {
		return nil, err
	}
	p.recordAlloc(name)
	return &faultySkcipher{Skcipher: s, h: handle{p, name, f}}, nil
}

// AllocAEAD allocates a wrapped AEAD.
func (p *Provider) AllocAEAD(name string) (crypto.AEAD, error) {
	f, err := p.fault(name)
	if err != nil {
		return nil, err
	}
	a, err := p.base.AllocAEAD(name)
	if err != nil {
		return nil, err
	}
	p.recordAlloc(name)
	return &faultyAEAD{AEAD: a, h: handle{p, name, f}}, nil
}

// AllocHash allocates a wrapped hash.
func (p *Provider) AllocHash(name string) (crypto.Hash, error) {
	f, err := p.fault(name)
	if err != nil {
		return nil, err
	}
	h, err := p.base.AllocHash(name)
	if err != nil {
		return nil, err
	}
	p.recordAlloc(name)
	return &faultyHash{Hash: h, h: handle{p, name, f}}, nil
}

// AllocRNG allocates a wrapped generator.
func (p *Provider) AllocRNG(name string) (crypto.RNG, error) {
	f, err := p.fault(name)
	if err != nil {
		return nil, err
	}
	r, err := p.base.AllocRNG(name)
	if err != nil {
		return nil, err
	}
	p.recordAlloc(name)
	return &faultyRNG{RNG: r, h: handle{p, name, f}}, nil
}
