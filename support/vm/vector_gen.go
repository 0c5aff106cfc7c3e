package vm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/minio/sha256-simd"

	"github.com/requestnet/request-actors/actors/builtin"
)

//
// Message trace generation utilities
//

// Environment variable naming the directory message traces are written to. Tracing is off when unset.
const TraceDirEnv = "REQUEST_ACTORS_TRACE_DIR"

type traceWriter struct {
	dir  string
	name string
}

type traceEvent struct {
	Emitter   string `json:"emitter"`
	Signature string `json:"signature"`
	Topic     string `json:"topic"`
	Data      []byte `json:"data"`
}

type messageTrace struct {
	From      string       `json:"from"`
	To        string       `json:"to"`
	Actor     string       `json:"actor"`
	Method    uint64       `json:"method"`
	Value     string       `json:"value"`
	ExitCode  int64        `json:"exit_code"`
	Return    []byte       `json:"return,omitempty"`
	Events    []traceEvent `json:"events"`
	StateRoot string       `json:"state_root"`
}

func newTraceWriter() *traceWriter {
	return &traceWriter{
		dir:  os.Getenv(TraceDirEnv),
		name: "messages",
	}
}

func (g *traceWriter) enabled() bool {
	return g.dir != ""
}

// SetTraceName sets the subdirectory traces of subsequent messages are written to, usually the test name.
func (vm *VM) SetTraceName(name string) {
	vm.trace.name = strings.ReplaceAll(name, "/", "_")
}

func (g *traceWriter) after(v *VM, from, to addr.Address, value abi.TokenAmount, method abi.MethodNum, result MessageResult) error {
	if !g.enabled() {
		return nil
	}

	toID, _ := v.NormalizeAddress(to)
	actName := "unknown"
	if act, found, err := v.GetActor(toID); err == nil && found {
		parts := strings.Split(builtin.ActorNameByCode(act.Code), "/")
		actName = parts[len(parts)-1]
	}

	trace := messageTrace{
		From:      from.String(),
		To:        toID.String(),
		Actor:     actName,
		Method:    uint64(method),
		Value:     value.String(),
		ExitCode:  int64(result.Code),
		Events:    []traceEvent{},
		StateRoot: v.StateRoot().String(),
	}
	if result.Ret != nil {
		buf := bytes.Buffer{}
		if err := result.Ret.MarshalCBOR(&buf); err != nil {
			return err
		}
		trace.Return = buf.Bytes()
	}
	for _, ev := range result.Events {
		buf := bytes.Buffer{}
		if err := ev.Event.MarshalCBOR(&buf); err != nil {
			return err
		}
		trace.Events = append(trace.Events, traceEvent{
			Emitter:   ev.Emitter.String(),
			Signature: ev.Event.Signature(),
			Topic:     ev.Topic().Hex(),
			Data:      buf.Bytes(),
		})
	}

	traceBytes, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return err
	}
	h := sha256.Sum256(traceBytes)
	fname := fmt.Sprintf("%x-%s-%s-%s-%d.json", h[:8], from, toID, actName, method)
	return writeTrace(filepath.Join(g.dir, g.name), fname, traceBytes)
}

func writeTrace(dir, fname string, data []byte) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, fname), data, 0644)
}
