package mock

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/requestnet/request-actors/actors/runtime"
)

// Checks that every exported method of an actor has the signature expected by the VM,
// and that the method table has no gaps after the constructor.
func CheckActorExports(t *testing.T, act runtime.VMActor) {
	for i, m := range act.Exports() {
		if i == 0 { // Send is implicit
			continue
		}

		if m == nil {
			continue
		}

		meth := reflect.ValueOf(m)
		mt := meth.Type()
		require.Equal(t, reflect.Func, mt.Kind(), "method %d is not a function", i)
		require.Equal(t, 2, mt.NumIn(), "method %d must take runtime and params", i)
		assert.Equal(t, typeOfRuntimeInterface, mt.In(0), "method %d first parameter must be the runtime", i)
		assert.True(t, mt.In(1).Implements(typeOfCborUnmarshaler), "method %d params must be CBOR-unmarshalable", i)
		require.Equal(t, 1, mt.NumOut(), "method %d must return a single value", i)
		assert.True(t, mt.Out(0).Implements(typeOfCborMarshaler), "method %d return must be CBOR-marshalable", i)
	}
}
