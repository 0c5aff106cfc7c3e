package builtin

import (
	"sync"

	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	"github.com/requestnet/request-actors/actors/runtime"
)

// ActorLog holds log level overrides keyed by actor code.
type ActorLog struct {
	sync.RWMutex
	Actors map[cid.Cid]rtt.LogLevel
}

var actorLogSingle *ActorLog

func init() {
	actorLogSingle = &ActorLog{Actors: make(map[cid.Cid]rtt.LogLevel)}
}

// Sets the level at which the given actors log their routine activity.
func SetActorsLogLevel(logLevel rtt.LogLevel, actors ...runtime.VMActor) {
	actorLogSingle.Lock()
	defer actorLogSingle.Unlock()

	for _, actor := range actors {
		actorLogSingle.Actors[actor.Code()] = logLevel
	}
}

// Clears all overrides.
func ResetActorsLogLevel() {
	actorLogSingle.Lock()
	defer actorLogSingle.Unlock()
	actorLogSingle.Actors = make(map[cid.Cid]rtt.LogLevel)
}

// Returns the level at which an actor should log routine activity, or defValue if it has no override.
func GetActorLogLevel(actor runtime.VMActor, defValue rtt.LogLevel) rtt.LogLevel {
	actorLogSingle.RLock()
	defer actorLogSingle.RUnlock()

	actorLogLevel, ok := actorLogSingle.Actors[actor.Code()]
	if ok {
		return actorLogLevel
	}

	return defValue
}
