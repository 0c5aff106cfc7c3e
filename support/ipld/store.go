package ipld

import (
	"context"

	block "github.com/ipfs/go-block-format"
	cid "github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	"golang.org/x/xerrors"

	"github.com/requestnet/request-actors/actors/util/adt"
)

// Creates a new, empty, unsynchronized IPLD store in memory.
// This store is appropriate for most kinds of testing.
func NewADTStore(ctx context.Context) adt.Store {
	return adt.WrapStore(ctx, ipldcbor.NewCborStore(NewBlockStoreInMemory()))
}

// Returned (wrapped) by the in-memory block store for a missing block.
var ErrNotFound = xerrors.New("not found")

//
// A basic in-memory block store.
//
type BlockStoreInMemory struct {
	data map[cid.Cid]block.Block
}

var _ ipldcbor.IpldBlockstore = (*BlockStoreInMemory)(nil)

func NewBlockStoreInMemory() *BlockStoreInMemory {
	return &BlockStoreInMemory{make(map[cid.Cid]block.Block)}
}

func (mb *BlockStoreInMemory) Get(c cid.Cid) (block.Block, error) {
	d, ok := mb.data[c]
	if ok {
		return d, nil
	}
	return nil, xerrors.Errorf("block %s: %w", c, ErrNotFound)
}

func (mb *BlockStoreInMemory) Put(b block.Block) error {
	mb.data[b.Cid()] = b
	return nil
}

// Number of distinct blocks held.
func (mb *BlockStoreInMemory) Len() int {
	return len(mb.data)
}

//
// Wraps a block store and counts the number and size of reads and writes.
//
type MetricsBlockStore struct {
	bs         ipldcbor.IpldBlockstore
	Writes     uint64
	WriteBytes uint64
	Reads      uint64
	ReadBytes  uint64
}

var _ ipldcbor.IpldBlockstore = (*MetricsBlockStore)(nil)

func NewMetricsBlockStore(underlying ipldcbor.IpldBlockstore) *MetricsBlockStore {
	return &MetricsBlockStore{bs: underlying}
}

func (ms *MetricsBlockStore) Get(c cid.Cid) (block.Block, error) {
	ms.Reads++
	blk, err := ms.bs.Get(c)
	if err != nil {
		return blk, err
	}
	ms.ReadBytes += uint64(len(blk.RawData()))
	return blk, nil
}

func (ms *MetricsBlockStore) Put(b block.Block) error {
	ms.Writes++
	ms.WriteBytes += uint64(len(b.RawData()))
	return ms.bs.Put(b)
}

func (ms *MetricsBlockStore) ReadCount() uint64 {
	return ms.Reads
}

func (ms *MetricsBlockStore) WriteCount() uint64 {
	return ms.Writes
}
