package builtin

import (
	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// The built-in actor code IDs
var (
	AccountActorCodeID  cid.Cid
	CoreActorCodeID     cid.Cid
	EthereumActorCodeID cid.Cid
	EscrowActorCodeID   cid.Cid
	BurnActorCodeID     cid.Cid
)

var builtinActors map[cid.Cid]*actorInfo

type actorInfo struct {
	name string
}

func init() {
	builtinActors = make(map[cid.Cid]*actorInfo)

	for id, info := range map[*cid.Cid]*actorInfo{ //nolint:nomaprange
		&AccountActorCodeID:  {name: "request/1/account"},
		&CoreActorCodeID:     {name: "request/1/core"},
		&EthereumActorCodeID: {name: "request/1/ethereum"},
		&EscrowActorCodeID:   {name: "request/1/escrow"},
		&BurnActorCodeID:     {name: "request/1/burn"},
	} {
		c, err := MakeCodeID(info.name)
		if err != nil {
			panic(err)
		}
		*id = c
		builtinActors[c] = info
	}
}

// MakeCodeID builds an identity-hashed code CID from an actor name.
// Actors defined outside this package (e.g. test extensions) use it to derive their code.
func MakeCodeID(name string) (cid.Cid, error) {
	builder := cid.V1Builder{Codec: cid.Raw, MhType: mh.IDENTITY}
	return builder.Sum([]byte(name))
}

// IsBuiltinActor returns true if the code belongs to an actor defined in this repo.
func IsBuiltinActor(code cid.Cid) bool {
	_, isBuiltin := builtinActors[code]
	return isBuiltin
}

// ActorNameByCode returns the (string) name of the actor given a cid code.
// When a code is unknown, the code's string form is returned instead.
func ActorNameByCode(code cid.Cid) string {
	if !code.Defined() {
		return "<undefined>"
	} else if info, ok := builtinActors[code]; ok {
		return info.name
	}
	return code.String()
}

// Tests whether a code CID represents an actor that can be an external principal: i.e. an account.
func IsPrincipal(code cid.Cid) bool {
	return code.Equals(AccountActorCodeID)
}
