package exported

import (
	"github.com/requestnet/request-actors/actors/builtin/account"
	"github.com/requestnet/request-actors/actors/builtin/burn"
	"github.com/requestnet/request-actors/actors/builtin/core"
	"github.com/requestnet/request-actors/actors/builtin/escrow"
	"github.com/requestnet/request-actors/actors/builtin/ethereum"
	"github.com/requestnet/request-actors/actors/runtime"
)

// BuiltinActors returns the implementations of every actor defined in this repo.
func BuiltinActors() []runtime.VMActor {
	return []runtime.VMActor{
		account.Actor{},
		core.Actor{},
		ethereum.Actor{},
		escrow.Actor{},
		burn.Actor{},
	}
}
