package engine

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// scriptFuncArity maps each required function to its parameter count.
var scriptFuncArity = map[string]int{
	"Init":      4,
	"Shutdown":  0,
	"Size":      0,
	"LocalSize": 0,
	"Rank":      0,
	"LocalRank": 0,
}

// Script is an engine written in Go source and evaluated with yaegi. The
// file must declare:
//
//	func Init(rank, localRank, size, localSize int) int
//	func Shutdown() int
//	func Size() int
//	func LocalSize() int
//	func Rank() int
//	func LocalRank() int
type Script struct {
	mu    sync.Mutex
	path  string
	funcs map[string]reflect.Value
}

// LoadScript evaluates the engine source at path.
func LoadScript(path string) (*Script, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("engine: read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(code))) == 0 {
		return nil, fmt.Errorf("engine: %s is empty", path)
	}
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("engine: load stdlib symbols: %w", err)
	}
	if _, err := i.EvalPath(path); err != nil {
		return nil, fmt.Errorf("engine: interpret %s: %w", path, err)
	}
	funcs := make(map[string]reflect.Value, len(scriptFuncArity))
	for name, arity := range scriptFuncArity {
		fn, err := i.Eval(name)
		if err != nil {
			return nil, fmt.Errorf("engine: %s must define %s: %w", path, name, err)
		}
		if err := checkScriptFunc(fn, arity); err != nil {
			return nil, fmt.Errorf("engine: %s: %s %w", path, name, err)
		}
		funcs[name] = fn
	}
	return &Script{path: path, funcs: funcs}, nil
}

// Path returns the source file the engine was loaded from.
func (s *Script) Path() string {
	return s.path
}

func (s *Script) Init(rank, localRank, size, localSize int) int {
	return s.call("Init", rank, localRank, size, localSize)
}

func (s *Script) Shutdown() int  { return s.call("Shutdown") }
func (s *Script) Size() int      { return s.call("Size") }
func (s *Script) LocalSize() int { return s.call("LocalSize") }
func (s *Script) Rank() int      { return s.call("Rank") }
func (s *Script) LocalRank() int { return s.call("LocalRank") }

func (s *Script) Close() error { return nil }

func (s *Script) call(name string, args ...int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn := s.funcs[name]
	in := make([]reflect.Value, len(args))
	for idx, arg := range args {
		in[idx] = reflect.ValueOf(arg).Convert(fn.Type().In(idx))
	}
	return int(fn.Call(in)[0].Int())
}

func checkScriptFunc(fn reflect.Value, arity int) error {
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return fmt.Errorf("is not a function")
	}
	typ := fn.Type()
	if typ.NumIn() != arity || typ.NumOut() != 1 {
		return fmt.Errorf("must take %d ints and return an int", arity)
	}
	for idx := 0; idx < arity; idx++ {
		if !isIntKind(typ.In(idx).Kind()) {
			return fmt.Errorf("parameter %d must be an int", idx)
		}
	}
	if !isIntKind(typ.Out(0).Kind()) {
		return fmt.Errorf("must return an int")
	}
	return nil
}

func isIntKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}
