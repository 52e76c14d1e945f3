package vm

import (
	"crypto/sha256"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var digestEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	digestEncMode = em
}

// slotDigest is the canonical form of one slot. Exactly one field besides
// Kind is meaningful. Double is always encoded so that 0 and -0 differ.
type slotDigest struct {
	Kind   Type     `cbor:"1,keyasint"`
	Int    int64    `cbor:"2,keyasint,omitempty"`
	Double float64  `cbor:"3,keyasint"`
	Str    string   `cbor:"4,keyasint,omitempty"`
	Oid    string   `cbor:"5,keyasint,omitempty"`
	Nested [32]byte `cbor:"6,keyasint,omitempty"`
}

type layoutDigest struct {
	Class   string       `cbor:"1,keyasint"`
	NbAttrs int          `cbor:"2,keyasint"`
	Slots   []slotDigest `cbor:"3,keyasint"`
}

// Digest returns a sha256 hash of the instance's layout: its class oid and
// the content of every slot, nested instances included by their own
// digest. Two instances with the same class and the same slot contents
// have the same digest.
func (inst *Instance) Digest() ([32]byte, error) {
	ld := layoutDigest{
		Class:   inst.class.Oid().String(),
		NbAttrs: inst.nbattrs,
		Slots:   make([]slotDigest, len(inst.sons)),
	}
	for i, v := range inst.sons {
		sd, err := digestSlot(v)
		if err != nil {
			return [32]byte{}, fmt.Errorf("digest slot %d: %w", i, err)
		}
		ld.Slots[i] = sd
	}
	data, err := digestEncMode.Marshal(&ld)
	if err != nil {
		return [32]byte{}, fmt.Errorf("digest: %w", err)
	}
	return sha256.Sum256(data), nil
}

func digestSlot(v Value) (slotDigest, error) {
	if IsEmpty(v) {
		return slotDigest{Kind: TypeNone}, nil
	}
	switch x := v.(type) {
	case Int:
		return slotDigest{Kind: TypeInt, Int: int64(x)}, nil
	case Double:
		return slotDigest{Kind: TypeDouble, Double: float64(x)}, nil
	case String:
		return slotDigest{Kind: TypeString, Str: string(x)}, nil
	case Ref:
		return slotDigest{Kind: TypeObject, Oid: x.Oid().String()}, nil
	case *Instance:
		h, err := x.Digest()
		if err != nil {
			return slotDigest{}, err
		}
		return slotDigest{Kind: TypeInstance, Nested: h}, nil
	}
	return slotDigest{}, fmt.Errorf("unsupported value type %T", v)
}
