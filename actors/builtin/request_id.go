package builtin

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	cbg "github.com/whyrusleeping/cbor-gen"
)

// RequestID identifies a request for its whole lifetime.
type RequestID [32]byte

// Computes the identifier of a new request as
// keccak256(ledger ‖ creator ‖ payee ‖ payer ‖ amount ‖ extension ‖ data ‖ counter),
// with addresses in their byte encoding (empty when undefined), the amount as 32 big-endian bytes
// and the counter as 8 big-endian bytes. The amount must lie in [0, MaxAmount].
func ComputeRequestID(ledger, creator, payee, payer addr.Address, amount abi.TokenAmount, extension addr.Address, data string, counter uint64) RequestID {
	amt := make([]byte, 32)
	amount.Int.FillBytes(amt)
	ctr := make([]byte, 8)
	binary.BigEndian.PutUint64(ctr, counter)
	return RequestID(crypto.Keccak256Hash(
		ledger.Bytes(),
		creator.Bytes(),
		payee.Bytes(),
		payer.Bytes(),
		amt,
		extension.Bytes(),
		[]byte(data),
		ctr,
	))
}

// Key implements abi.Keyer so request IDs can key HAMTs directly.
func (id RequestID) Key() string {
	return string(id[:])
}

func (id RequestID) String() string {
	return common.Hash(id).Hex()
}

// Parses a request ID from a HAMT key.
func ParseRequestIDKey(key string) (RequestID, error) {
	var id RequestID
	if len(key) != len(id) {
		return id, fmt.Errorf("request id key must be %d bytes, got %d", len(id), len(key))
	}
	copy(id[:], key)
	return id, nil
}

// Parses a 0x-prefixed hex request ID.
func ParseRequestID(s string) (RequestID, error) {
	var id RequestID
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, err
	}
	return ParseRequestIDKey(string(b))
}

func (id *RequestID) MarshalCBOR(w io.Writer) error {
	if id == nil {
		_, err := w.Write(cbg.CborNull)
		return err
	}
	scratch := make([]byte, 9)
	if err := cbg.WriteMajorTypeHeaderBuf(scratch, w, cbg.MajByteString, uint64(len(id))); err != nil {
		return err
	}
	_, err := w.Write(id[:])
	return err
}

func (id *RequestID) UnmarshalCBOR(r io.Reader) error {
	br := cbg.GetPeeker(r)
	scratch := make([]byte, 9)

	maj, extra, err := cbg.CborReadHeaderBuf(br, scratch)
	if err != nil {
		return err
	}
	if maj != cbg.MajByteString {
		return fmt.Errorf("expected byte array for request id")
	}
	if extra != uint64(len(id)) {
		return fmt.Errorf("request id must be %d bytes, got %d", len(id), extra)
	}
	_, err = io.ReadFull(br, id[:])
	return err
}
