package crypto

import (
	"fmt"
	"sort"
	"sync"
)

// Default priorities for the built-in software implementations.
const (
	PriorityGeneric = 100
	PriorityFallback = 50
)

// Algorithm is a registration: metadata plus a constructor.
type Algorithm struct {
	Info AlgInfo
	New  func(info AlgInfo) (Transform, error)
}

// Registry maps algorithm names to implementations. When several
// implementations share a name, the highest priority one is allocated.
type Registry struct {
	mu    sync.RWMutex
	algos []Algorithm
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewProvider creates a registry holding every built-in software algorithm.
func NewProvider() *Registry {
	r := NewRegistry()
	registerSoftware(r)
	return r
}

// Register adds an implementation. Driver names must be unique.
func (r *Registry) Register(alg Algorithm) error {
	if alg.Info.Name == "" || alg.Info.DriverName == "" {
		return fmt.Errorf("register: name and driver name are required")
	}
	if alg.New == nil {
		return fmt.Errorf("register %s: missing constructor", alg.Info.DriverName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.algos {
		if a.Info.DriverName == alg.Info.DriverName {
			return fmt.Errorf("register %s: driver already registered", alg.Info.DriverName)
		}
	}
	r.algos = append(r.algos, alg)
	return nil
}

func (r *Registry) mustRegister(alg Algorithm) {
	if err := r.Register(alg); err != nil {
		panic(err)
	}
}

// Lookup resolves name against both algorithm and driver names and returns
// the highest priority match of the given type. Earlier registrations win ties.
func (r *Registry) Lookup(name string, typ AlgType) (AlgInfo, error) {
	alg, err := r.lookup(name, typ)
	if err != nil {
		return AlgInfo{}, err
	}
	return alg.Info, nil
}

func (r *Registry) lookup(name string, typ AlgType) (Algorithm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		best       Algorithm
		found      bool
		wrongTyped bool
	)
	for _, a := range r.algos {
		if a.Info.Name != name && a.Info.DriverName != name {
			continue
		}
		if a.Info.Type != typ {
			wrongTyped = true
			continue
		}
		if !found || a.Info.Priority > best.Info.Priority {
			best, found = a, true
		}
	}

	switch {
	case found:
		return best, nil
	case wrongTyped:
		return Algorithm{}, fmt.Errorf("%s: %w (want %s)", name, ErrWrongType, typ)
	default:
		return Algorithm{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
}

// Algorithms lists all registrations sorted by name, then priority descending.
func (r *Registry) Algorithms() []AlgInfo {
	r.mu.RLock()
	infos := make([]AlgInfo, 0, len(r.algos))
	for _, a := range r.algos {
		infos = append(infos, a.Info)
	}
	r.mu.RUnlock()

	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].Name != infos[j].Name {
			return infos[i].Name < infos[j].Name
		}
		return infos[i].Priority > infos[j].Priority
	})
	return infos
}

func (r *Registry) alloc(name string, typ AlgType) (Transform, error) {
	alg, err := r.lookup(name, typ)
	if err != nil {
		return nil, err
	}
	tfm, err := alg.New(alg.Info)
	if err != nil {
		return nil, fmt.Errorf("allocate %s: %w", alg.Info.DriverName, err)
	}
	return tfm, nil
}

// AllocCipher allocates a single-block cipher.
func (r *Registry) AllocCipher(name string) (Cipher, error) {
	tfm, err := r.alloc(name, TypeCipher)
	if err != nil {
		return nil, err
	}
	return castTransform[Cipher](tfm, name)
}

// AllocSkcipher allocates a length-preserving cipher.
func (r *Registry) AllocSkcipher(name string) (Skcipher, error) {
	tfm, err := r.alloc(name, TypeSkcipher)
	if err != nil {
		return nil, err
	}
	return castTransform[Skcipher](tfm, name)
}

// AllocAEAD allocates an AEAD.
func (r *Registry) AllocAEAD(name string) (AEAD, error) {
	tfm, err := r.alloc(name, TypeAEAD)
	if err != nil {
		return nil, err
	}
	return castTransform[AEAD](tfm, name)
}

// AllocHash allocates a hash or MAC.
func (r *Registry) AllocHash(name string) (Hash, error) {
	tfm, err := r.alloc(name, TypeHash)
	if err != nil {
		return nil, err
	}
	return castTransform[Hash](tfm, name)
}

// AllocRNG allocates a deterministic generator.
func (r *Registry) AllocRNG(name string) (RNG, error) {
	tfm, err := r.alloc(name, TypeRNG)
	if err != nil {
		return nil, err
	}
	return castTransform[RNG](tfm, name)
}

func castTransform[T Transform](tfm Transform, name string) (T, error) {
	t, ok := tfm.(T)
	if !ok {
		tfm.Free()
		var zero T
		return zero, fmt.Errorf("%s: %w", name, ErrWrongType)
	}
	return t, nil
}

func registerSoftware(r *Registry) {
	r.mustRegister(Algorithm{
		Info: AlgInfo{Name: "aes", DriverName: "aes-generic", Priority: PriorityGeneric,
			Type: TypeCipher, BlockSize: aesBlockSize},
		New: newAESCipher,
	})

	for _, m := range []struct {
		name, driver string
		blockSize    int
		ivSize       int
		newMode      func(AlgInfo) (Transform, error)
	}{
		{"cbc(aes)", "cbc-aes-generic", aesBlockSize, aesBlockSize, newCBC},
		{"ctr(aes)", "ctr-aes-generic", 1, aesBlockSize, newCTR},
		{"ecb(aes)", "ecb-aes-generic", aesBlockSize, 0, newECB},
		{"xts(aes)", "xts-aes-generic", aesBlockSize, aesBlockSize, newXTS},
	} {
		r.mustRegister(Algorithm{
			Info: AlgInfo{Name: m.name, DriverName: m.driver, Priority: PriorityGeneric,
				Type: TypeSkcipher, BlockSize: m.blockSize, IVSize: m.ivSize},
			New: m.newMode,
		})
	}

	r.mustRegister(Algorithm{
		Info: AlgInfo{Name: "gcm(aes)", DriverName: "gcm-aes-generic", Priority: PriorityGeneric,
			Type: TypeAEAD, BlockSize: 1, IVSize: gcmIVSize, MaxAuthSize: gcmMaxTagSize},
		New: newGCM,
	})

	for _, h := range hashAlgorithms {
		r.mustRegister(Algorithm{
			Info: AlgInfo{Name: h.name, DriverName: h.driver, Priority: PriorityGeneric,
				Type: TypeHash, BlockSize: h.blockSize, DigestSize: h.digestSize},
			New: h.newHash,
		})
	}

	// DRBGs answer to "stdrng" and to their driver name
	for _, d := range drbgAlgorithms {
		r.mustRegister(Algorithm{
			Info: AlgInfo{Name: "stdrng", DriverName: d.driver, Priority: d.priority, Type: TypeRNG},
			New:  d.newDRBG,
		})
	}
}
