package adt

import (
	"fmt"
	"io"

	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/requestnet/request-actors/actors/runtime"
)

// EmptyValue is the parameter and return type of methods that take or return nothing.
type EmptyValue struct{}

var _ runtime.CBORMarshaler = (*EmptyValue)(nil)
var _ runtime.CBORUnmarshaler = (*EmptyValue)(nil)

// Empty is a shared instance of EmptyValue.
var Empty = &EmptyValue{}

// 0x80 is empty list (major type 4 with zero length)
// 0xa0 is empty map (major type 5 with zero length)
// This is encoded with empty-list since we use tuple-encoding for everything.
const emptyListEncoded = 0x80

func (EmptyValue) MarshalCBOR(w io.Writer) error {
	_, err := w.Write([]byte{emptyListEncoded})
	return err
}

func (EmptyValue) UnmarshalCBOR(r io.Reader) error {
	buf := make([]byte, 1)
	_, err := r.Read(buf)
	if err != nil {
		return err
	}
	if buf[0] != emptyListEncoded {
		return fmt.Errorf("invalid empty value %x", buf[0])
	}
	return nil
}

// Writes a new empty map to the store and returns its CID.
func StoreEmptyMap(s Store, bitwidth int) (cid.Cid, error) {
	m, err := MakeEmptyMap(s, bitwidth)
	if err != nil {
		return cid.Undef, xerrors.Errorf("failed to create empty map: %w", err)
	}
	return m.Root()
}

// Writes a new empty set to the store and returns its CID.
func StoreEmptySet(s Store, bitwidth int) (cid.Cid, error) {
	return StoreEmptyMap(s, bitwidth)
}

// Writes a new empty array to the store and returns its CID.
func StoreEmptyArray(s Store, bitwidth int) (cid.Cid, error) {
	a, err := MakeEmptyArray(s, bitwidth)
	if err != nil {
		return cid.Undef, xerrors.Errorf("failed to create empty array: %w", err)
	}
	return a.Root()
}
