package cryptotest

import (
	"github.com/TheMichaelB/cryptokat/internal/crypto"
)

type faultyCipher struct {
	crypto.Cipher
	h handle
}

func (c *faultyCipher) Info() crypto.AlgInfo { return c.h.info(c.Cipher.Info()) }

func (c *faultyCipher) Free() {
	c.h.p.recordFree(c.h.name)
	c.Cipher.Free()
}

func (c *faultyCipher) SetKey(key []byte) error {
	if c.h.fault.SetKeyErr != nil {
		return c.h.fault.SetKeyErr
	}
	return c.Cipher.SetKey(key)
}

func (c *faultyCipher) Encrypt(dst, src []byte) error {
	if c.h.fault.OpErr != nil {
		return c.h.fault.OpErr
	}
	if err := c.Cipher.Encrypt(dst, src); err != nil {
		return err
	}
	c.h.corrupt(dst)
	return nil
}

func (c *faultyCipher) Decrypt(dst, src []byte) error {
	if err := c.h.decryptErr(); err != nil {
		return err
	}
	if err := c.Cipher.Decrypt(dst, src); err != nil {
		return err
	}
	c.h.corrupt(dst)
	return nil
}

type faultySkcipher struct {
	crypto.Skcipher
	h handle
}

func (s *faultySkcipher) Info() crypto.AlgInfo { return s.h.info(s.Skcipher.Info()) }

func (s *faultySkcipher) Free() {
	s.h.p.recordFree(s.h.name)
	s.Skcipher.Free()
}

func (s *faultySkcipher) SetKey(key []byte) error {
	if s.h.fault.SetKeyErr != nil {
		return s.h.fault.SetKeyErr
	}
	return s.Skcipher.SetKey(key)
}

func (s *faultySkcipher) Encrypt(buf, iv []byte) error {
	if s.h.fault.OpErr != nil {
		return s.h.fault.OpErr
	}
	if err := s.Skcipher.Encrypt(buf, iv); err != nil {
		return err
	}
	s.h.corrupt(buf)
	return nil
}

func (s *faultySkcipher) Decrypt(buf, iv []byte) error {
	if err := s.h.decryptErr(); err != nil {
		return err
	}
	if err := s.Skcipher.Decrypt(buf, iv); err != nil {
		return err
	}
	s.h.corrupt(buf)
	return nil
}

type faultyAEAD struct {
	crypto.AEAD
	h handle
}

func (a *faultyAEAD) Info() crypto.AlgInfo { return a.h.info(a.AEAD.Info()) }

func (a *faultyAEAD) Free() {
	a.h.p.recordFree(a.h.name)
	a.AEAD.Free()
}

func (a *faultyAEAD) SetKey(key []byte) error {
	if a.h.fault.SetKeyErr != nil {
		return a.h.fault.SetKeyErr
	}
	return a.AEAD.SetKey(key)
}

func (a *faultyAEAD) Encrypt(buf []byte, ptLen int, iv, assoc []byte) error {
	if a.h.fault.OpErr != nil {
		return a.h.fault.OpErr
	}
	if err := a.AEAD.Encrypt(buf, ptLen, iv, assoc); err != nil {
		return err
	}
	a.h.corrupt(buf)
	return nil
}

func (a *faultyAEAD) Decrypt(buf []byte, iv, assoc []byte) error {
	if err := a.h.decryptErr(); err != nil {
		return err
	}
	if err := a.AEAD.Decrypt(buf, iv, assoc); err != nil {
		return err
	}
	a.h.corrupt(buf)
	return nil
}

type faultyHash struct {
	crypto.Hash
	h handle
}

func (h *faultyHash) Info() crypto.AlgInfo { return h.h.info(h.Hash.Info()) }

func (h *faultyHash) Free() {
	h.h.p.recordFree(h.h.name)
	h.Hash.Free()
}

func (h *faultyHash) SetKey(key []byte) error {
	if h.h.fault.SetKeyErr != nil {
		return h.h.fault.SetKeyErr
	}
	return h.Hash.SetKey(key)
}

func (h *faultyHash) Digest(msg []byte) ([]byte, error) {
	if h.h.fault.OpErr != nil {
		return nil, h.h.fault.OpErr
	}
	out, err := h.Hash.Digest(msg)
	if err != nil {
		return nil, err
	}
	h.h.corrupt(out)
	return out, nil
}

type faultyRNG struct {
	crypto.RNG
	h handle
}

func (r *faultyRNG) Info() crypto.AlgInfo { return r.h.info(r.RNG.Info()) }

func (r *faultyRNG) Free() {
	r.h.p.recordFree(r.h.name)
	r.RNG.Free()
}

func (r *faultyRNG) ResetTest(entropy, pers []byte) error {
	if r.h.fault.SetKeyErr != nil {
		return r.h.fault.SetKeyErr
	}
	return r.RNG.ResetTest(entropy, pers)
}

func (r *faultyRNG) GenerateTest(n int, addtl, entropy []byte) ([]byte, error) {
	if r.h.fault.OpErr != nil {
		return nil, r.h.fault.OpErr
	}
	out, err := r.RNG.GenerateTest(n, addtl, entropy)
	if err != nil {
		return nil, err
	}
	r.h.corrupt(out)
	return out, nil
}
